package domain

// MoodScaleMax is the top of the rider mood rating scale (1 = miserable,
// 5 = delighted). QuickSCHI divides by it to turn mood into a fraction.
const MoodScaleMax = 5.0

// Default weights for the quick snapshot score. Unlike the full index these
// two need not sum to 1; the formula bakes in its own scaling.
const (
	DefaultQuickDelayWeight = 0.4
	DefaultQuickMoodWeight  = 0.6
)

// FeatureMatrix is the compact city-wide summary used for a quick pulse
// check before per-area aggregates exist: mean delay and mood over every
// observation in the batch, plus how many fed in.
type FeatureMatrix struct {
	AvgDelayMinutes float64
	AvgMood         float64
	Observations    int
}

// BuildFeatureMatrix averages delay and mood across all commute
// observations, ignoring area and day. An empty batch returns
// ErrNoCommuteRows: the caller asked for a summary of nothing, which is
// different from malformed input.
func BuildFeatureMatrix(obs []CommuteObservation) (FeatureMatrix, error) {
	if len(obs) == 0 {
		return FeatureMatrix{}, ErrNoCommuteRows
	}

	var delaySum, moodSum float64
	for _, o := range obs {
		delaySum += o.DelayMinutes
		moodSum += o.Mood
	}

	n := float64(len(obs))
	return FeatureMatrix{
		AvgDelayMinutes: delaySum / n,
		AvgMood:         moodSum / n,
		Observations:    len(obs),
	}, nil
}

// QuickSCHI turns a feature matrix into a single 0..100 headline score:
// mood lifts it, delay drags it, and the result is clamped to the scale.
// It trades the full index's per-area rigor for a number that works with
// one day of city-wide data.
func QuickSCHI(m FeatureMatrix, delayWeight, moodWeight float64) float64 {
	raw := moodWeight*(m.AvgMood/MoodScaleMax)*100 - delayWeight*m.AvgDelayMinutes*2
	if raw < 0 {
		return 0
	}
	if raw > 100 {
		return 100
	}
	return raw
}
