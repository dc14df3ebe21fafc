package domain

import (
	"math"
	"sort"
)

// JoinStats reports what the commute/weather feature join kept and dropped.
// The drops are expected operational noise (sensor gaps, areas with trips
// but no weather station), so they are counted and logged, never fatal.
type JoinStats struct {
	Joined          int
	CommuteOnly     int
	WeatherOnly     int
	MissingGeometry int
}

// BuildIndex joins the per-(area, day) feature aggregates, scores the four
// SCHI components against dataset-wide extremes, blends them with the given
// weights, and attaches area boundaries. Rows come back sorted by area then
// day, so identical inputs serialize identically.
//
// Only keys present in both feature sets survive the join. Areas missing
// from the geometry lookup get an empty boundary and a MissingGeometry
// count, never an error.
//
// The weights must pass Validate (exactly the four required components,
// positive sum). The blend uses them as-is: callers wanting the SCHI ∈ [0,1]
// guarantee pass a vector that sums to 1, normally by calling Normalize
// first. Scoring spans the whole joined dataset, so rows from a partial
// batch are not comparable with rows from a full one.
func BuildIndex(commute []CommuteFeatureRow, weather []WeatherFeatureRow, geometry map[string]GeometryRecord, weights Weights) ([]IndexRow, JoinStats, error) {
	if err := weights.Validate(); err != nil {
		return nil, JoinStats{}, err
	}

	commuteByKey := make(map[AreaDate]CommuteFeatureRow, len(commute))
	for _, r := range commute {
		commuteByKey[r.Key()] = r
	}
	weatherByKey := make(map[AreaDate]WeatherFeatureRow, len(weather))
	for _, r := range weather {
		weatherByKey[r.Key()] = r
	}

	shared := make([]AreaDate, 0, len(commuteByKey))
	for k := range commuteByKey {
		if _, ok := weatherByKey[k]; ok {
			shared = append(shared, k)
		}
	}
	sort.Slice(shared, func(i, j int) bool { return shared[i].Less(shared[j]) })

	stats := JoinStats{
		Joined:      len(shared),
		CommuteOnly: len(commuteByKey) - len(shared),
		WeatherOnly: len(weatherByKey) - len(shared),
	}

	rows := make([]IndexRow, len(shared))
	delays := make([]float64, len(shared))
	moods := make([]float64, len(shared))
	rainfalls := make([]float64, len(shared))
	tempRanges := make([]float64, len(shared))
	for i, k := range shared {
		c := commuteByKey[k]
		w := weatherByKey[k]
		rows[i] = IndexRow{
			AreaID:           k.AreaID,
			Date:             k.Date,
			AvgDelayMin:      c.AvgDelayMin,
			SevereDelayShare: c.SevereDelayShare,
			TripCount:        c.TripCount,
			AvgMood:          c.AvgMood,
			RainfallTotalMM:  w.RainfallTotalMM,
			TempMeanC:        w.TempMeanC,
			TempRangeC:       w.TempRangeC,
		}
		delays[i] = c.AvgDelayMin
		moods[i] = c.AvgMood
		rainfalls[i] = w.RainfallTotalMM
		// Swing magnitude is what matters; a negative range (max/min columns
		// swapped upstream) still means an unstable day.
		tempRanges[i] = math.Abs(w.TempRangeC)
	}

	// Component orientation: delay, rainfall, and temperature swing hurt the
	// commute, so they scale inverted; mood scales directly.
	reliability := MinMaxScaleInverse(delays)
	moodScores := MinMaxScale(moods)
	rainComfort := MinMaxScaleInverse(rainfalls)
	temperature := MinMaxScaleInverse(tempRanges)

	for i := range rows {
		rows[i].ReliabilityScore = reliability[i]
		rows[i].MoodScore = moodScores[i]
		rows[i].RainComfortScore = rainComfort[i]
		rows[i].TemperatureScore = temperature[i]
		rows[i].SCHI = blendSCHI(rows[i], weights)

		if g, ok := geometry[rows[i].AreaID]; ok {
			rows[i].GeometryWKT = g.GeometryWKT
		} else {
			stats.MissingGeometry++
		}
	}

	return rows, stats, nil
}

// Reblend recomputes only the blended index from the component scores
// already stored on the rows. Dashboards use it to react to weight slider
// changes without re-running aggregation or rescaling. The input rows are
// left untouched.
func Reblend(rows []IndexRow, weights Weights) ([]IndexRow, error) {
	if err := weights.Validate(); err != nil {
		return nil, err
	}

	out := make([]IndexRow, len(rows))
	copy(out, rows)
	for i := range out {
		out[i].SCHI = blendSCHI(out[i], weights)
	}
	return out, nil
}

// blendSCHI computes the weighted sum of the four component scores, rounded
// to four decimals.
func blendSCHI(r IndexRow, weights Weights) float64 {
	schi := r.ReliabilityScore*weights[ComponentReliability] +
		r.MoodScore*weights[ComponentMood] +
		r.RainComfortScore*weights[ComponentRainComfort] +
		r.TemperatureScore*weights[ComponentTemperature]
	return roundTo(schi, 4)
}
