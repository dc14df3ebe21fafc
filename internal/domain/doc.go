// Package domain models Sydney commute and weather data and computes the
// Sydney Commute Happiness Index (SCHI).
//
// # Data Sources
//
// Two cleaned daily feeds arrive from the upstream cleaning jobs as flat
// CSV files, one row per observation:
//
//	commute:  date, area_id, observed_delay_minutes, mood
//	weather:  date, area_id, rainfall_mm, temp_max_c, temp_min_c
//
// plus two reference files mapping statistical areas to display names and
// WKT boundary polygons. Area IDs are opaque statistical-area codes; dates
// are ISO "2006-01-02" strings, which sort lexicographically in
// chronological order.
//
// # Aggregation Conventions
//
// Features are grouped by (area_id, date):
//
//	commute:  mean delay, share of trips with delay >= 10 minutes
//	          (inclusive; see DefaultSevereDelayThreshold), trip count,
//	          mean mood on the 1..5 rider scale
//	weather:  rainfall total, mean of daily (max+min)/2 midpoints, mean of
//	          daily max-min spreads
//
// Aggregates round to three decimals and index blends to four, so a rerun
// over the same input produces byte-identical artifacts.
//
// # Scoring
//
// The four SCHI components are min-max scaled against the extremes of the
// whole joined dataset, never a partial batch:
//
//	reliability  = inverse-scaled mean delay   (less delay → higher)
//	mood         = scaled mean mood            (happier → higher)
//	rain_comfort = inverse-scaled rainfall     (drier → higher)
//	temperature  = inverse-scaled temp spread  (steadier → higher)
//
// A flat series (all values equal, or no finite values at all) scores 0.0
// across the board rather than dividing by a zero-width range. SCHI is the
// weighted sum of the four scores and stays in [0, 1] when the weight
// vector sums to 1; Weights.Normalize establishes that invariant and
// Weights.Validate guards the component set.
//
// # Joins
//
// The index keeps only (area, day) keys present in both feature sets. An
// area without a boundary polygon still gets an index row, just an empty
// geometry_wkt. One-sided keys and missing boundaries are counted by the
// caller for logging; neither is an error.
package domain
