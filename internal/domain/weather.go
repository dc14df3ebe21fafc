package domain

import "sort"

// AggregateWeather collapses daily weather observations into one feature row
// per (area, day): total rainfall, mean of the daily temperature midpoints
// ((max+min)/2), and mean of the daily spreads (max-min). Rows come back
// sorted by area then day; empty input yields an empty slice.
//
// Inputs are typically one observation per station per day, so the means
// smooth across stations reporting for the same area.
func AggregateWeather(obs []WeatherObservation) []WeatherFeatureRow {
	groups := make(map[AreaDate][]WeatherObservation)
	for _, o := range obs {
		k := o.Key()
		groups[k] = append(groups[k], o)
	}

	keys := make([]AreaDate, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	rows := make([]WeatherFeatureRow, 0, len(keys))
	for _, k := range keys {
		readings := groups[k]
		var rainSum, midSum, rangeSum float64
		for _, r := range readings {
			rainSum += r.RainfallMM
			midSum += (r.TempMaxC + r.TempMinC) / 2
			rangeSum += r.TempMaxC - r.TempMinC
		}

		n := float64(len(readings))
		rows = append(rows, WeatherFeatureRow{
			AreaID:          k.AreaID,
			Date:            k.Date,
			RainfallTotalMM: roundTo(rainSum, 3),
			TempMeanC:       roundTo(midSum/n, 3),
			TempRangeC:      roundTo(rangeSum/n, 3),
		})
	}
	return rows
}
