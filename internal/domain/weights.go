package domain

import (
	"fmt"
	"sort"
)

// Component names for the four SCHI inputs. These are the exact keys a
// weight vector must carry; the blend rejects anything else.
const (
	ComponentReliability = "reliability"
	ComponentMood        = "mood"
	ComponentRainComfort = "rain_comfort"
	ComponentTemperature = "temperature"
)

// Weights maps component names to their blend weights.
type Weights map[string]float64

// RequiredComponents returns the component names every weight vector must
// define, sorted for stable error messages.
func RequiredComponents() []string {
	return []string{
		ComponentMood,
		ComponentRainComfort,
		ComponentReliability,
		ComponentTemperature,
	}
}

// DefaultWeights returns the standard SCHI blend: reliability dominates,
// then mood, rain comfort, and temperature stability.
func DefaultWeights() Weights {
	return Weights{
		ComponentReliability: 0.4,
		ComponentMood:        0.3,
		ComponentRainComfort: 0.2,
		ComponentTemperature: 0.1,
	}
}

// Normalize returns a copy of w scaled so the weights sum to 1. When the raw
// sum is zero or negative (all sliders at zero, say) it falls back to uniform
// weights rather than failing, so interactive callers always get a usable
// vector. Already-normalized input comes back unchanged, making the operation
// idempotent.
func (w Weights) Normalize() Weights {
	out := make(Weights, len(w))
	sum := w.Sum()

	if sum <= 0 {
		n := float64(len(w))
		for k := range w {
			out[k] = 1 / n
		}
		return out
	}

	for k, v := range w {
		out[k] = v / sum
	}
	return out
}

// Sum returns the total of all weights. Accumulation runs in sorted key
// order so the float result does not depend on map iteration.
func (w Weights) Sum() float64 {
	var sum float64
	for _, k := range w.Components() {
		sum += w[k]
	}
	return sum
}

// Components returns the component names present in w, sorted.
func (w Weights) Components() []string {
	keys := make([]string, 0, len(w))
	for k := range w {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that w carries exactly the four required components and a
// positive total. Violations are configuration mistakes, so the returned
// *WeightError lists the full required-versus-present picture.
func (w Weights) Validate() error {
	required := RequiredComponents()
	present := w.Components()

	if !equalStrings(required, present) {
		return &WeightError{
			Reason:   "component set mismatch",
			Required: required,
			Present:  present,
			Sum:      w.Sum(),
		}
	}

	if sum := w.Sum(); sum <= 0 {
		return &WeightError{
			Reason:   fmt.Sprintf("weights sum to %g, need a positive total", sum),
			Required: required,
			Present:  present,
			Sum:      sum,
		}
	}
	return nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
