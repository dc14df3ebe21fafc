package domain

import "sort"

// DefaultSevereDelayThreshold is the delay, in minutes, at or above which a
// trip counts as severely delayed. A trip delayed exactly this long is
// severe; the comparison is inclusive.
const DefaultSevereDelayThreshold = 10.0

// AggregateCommute collapses trip-level observations into one feature row
// per (area, day): mean delay, share of severely delayed trips, trip count,
// and mean rider mood. Rows come back sorted by area then day. Empty input
// yields an empty (non-nil) slice; a day with no trips simply produces no
// row for that day.
func AggregateCommute(obs []CommuteObservation, severeThreshold float64) []CommuteFeatureRow {
	groups := make(map[AreaDate][]CommuteObservation)
	for _, o := range obs {
		k := o.Key()
		groups[k] = append(groups[k], o)
	}

	keys := make([]AreaDate, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].Less(keys[j]) })

	rows := make([]CommuteFeatureRow, 0, len(keys))
	for _, k := range keys {
		trips := groups[k]
		var delaySum, moodSum float64
		severe := 0
		for _, t := range trips {
			delaySum += t.DelayMinutes
			moodSum += t.Mood
			if t.DelayMinutes >= severeThreshold {
				severe++
			}
		}

		n := float64(len(trips))
		rows = append(rows, CommuteFeatureRow{
			AreaID:           k.AreaID,
			Date:             k.Date,
			AvgDelayMin:      roundTo(delaySum/n, 3),
			SevereDelayShare: roundTo(float64(severe)/n, 3),
			TripCount:        len(trips),
			AvgMood:          roundTo(moodSum/n, 3),
		})
	}
	return rows
}
