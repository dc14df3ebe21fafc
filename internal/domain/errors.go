package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrNoCommuteRows reports that a feature matrix was requested over an empty
// observation set. Callers distinguish it from schema problems: the input was
// well-formed, there was just nothing in it.
var ErrNoCommuteRows = errors.New("no commute observations to build features from")

// SchemaError reports that an input dataset is missing required columns.
// Missing is sorted so the message is stable across runs.
type SchemaError struct {
	Dataset string
	Missing []string
}

// NewSchemaError builds a SchemaError with the missing column names sorted.
func NewSchemaError(dataset string, missing []string) *SchemaError {
	sorted := make([]string, len(missing))
	copy(sorted, missing)
	sort.Strings(sorted)
	return &SchemaError{Dataset: dataset, Missing: sorted}
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s dataset missing required columns: %s",
		e.Dataset, strings.Join(e.Missing, ", "))
}

// WeightError reports an unusable weight vector: wrong component set or a
// non-positive total. Both Required and Present are carried so operators can
// see the full mismatch, not just the first offender.
type WeightError struct {
	Reason   string
	Required []string
	Present  []string
	Sum      float64
}

func (e *WeightError) Error() string {
	return fmt.Sprintf("invalid weight vector: %s (required: %s, present: %s)",
		e.Reason, strings.Join(e.Required, ", "), strings.Join(e.Present, ", "))
}
