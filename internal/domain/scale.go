package domain

import "math"

// relTol matches the tolerance used when deciding whether a series is flat.
// abs(min-max) within one part in 1e9 of the larger magnitude counts as equal.
const relTol = 1e-9

// MinMaxScale maps a series onto [0, 1] using the dataset-wide minimum and
// maximum. The whole batch must be in hand before calling: scores are only
// comparable when every row was scaled against the same extremes.
//
// Edge behavior:
//   - empty input returns an empty slice
//   - NaN and ±Inf are excluded from the min/max computation but still
//     occupy an output slot (clamped: +Inf→1, -Inf→0, NaN→0)
//   - if no finite values exist, or min and max are effectively equal,
//     every output is 0.0 (a flat series carries no signal)
//   - outputs are clamped to [0, 1] against float round-off
func MinMaxScale(values []float64) []float64 {
	scaled := make([]float64, len(values))
	if len(values) == 0 {
		return scaled
	}

	minVal := math.Inf(1)
	maxVal := math.Inf(-1)
	finite := 0
	for _, v := range values {
		if !isFinite(v) {
			continue
		}
		finite++
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	if finite == 0 || almostEqual(minVal, maxVal) {
		return scaled
	}

	span := maxVal - minVal
	for i, v := range values {
		scaled[i] = clamp01((v - minVal) / span)
	}
	return scaled
}

// MinMaxScaleInverse scales like MinMaxScale but flips the orientation, so
// the smallest input maps to 1.0. Used for metrics where lower is better:
// delay, rainfall, temperature swing.
func MinMaxScaleInverse(values []float64) []float64 {
	scaled := MinMaxScale(values)
	for i, v := range scaled {
		scaled[i] = 1 - v
	}
	return scaled
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// almostEqual reports whether a and b agree to within relTol of the larger
// magnitude. Zero-width ranges produced by float noise count as flat.
func almostEqual(a, b float64) bool {
	return math.Abs(a-b) <= relTol*math.Max(math.Abs(a), math.Abs(b))
}

// clamp01 pins v into [0, 1]. NaN pins to 0: an unknowable ratio contributes
// no signal, same as a flat series.
func clamp01(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// roundTo rounds v to the given number of decimal places. Aggregates carry
// three places, the blended index four, so serialized output is bit-stable.
func roundTo(v float64, places int) float64 {
	factor := math.Pow(10, float64(places))
	return math.Round(v*factor) / factor
}
