package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/sydneypulse/schi-pipeline/internal/domain"
)

// indexHeader is the published column order of the SCHI artifact. Dashboards
// and downstream notebooks read it positionally; never reorder.
var indexHeader = []string{
	"area_id",
	"date",
	"avg_delay_min",
	"severe_delay_share",
	"trip_count",
	"avg_mood",
	"rainfall_total_mm",
	"temp_mean_c",
	"temp_range_c",
	"reliability_score",
	"mood_score",
	"rain_comfort_score",
	"temperature_score",
	"schi",
	"geometry_wkt",
}

// IndexHeader returns the published column order of the index artifact.
func IndexHeader() []string {
	out := make([]string, len(indexHeader))
	copy(out, indexHeader)
	return out
}

// WriteCommuteFeatures persists the per-(area, day) commute aggregates.
func (s *Store) WriteCommuteFeatures(_ context.Context, rows []domain.CommuteFeatureRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"area_id", "date", "avg_delay_min", "severe_delay_share", "trip_count", "avg_mood"})
	for _, r := range rows {
		records = append(records, []string{
			r.AreaID,
			r.Date,
			float3(r.AvgDelayMin),
			float3(r.SevereDelayShare),
			strconv.Itoa(r.TripCount),
			float3(r.AvgMood),
		})
	}
	return s.writeAtomic(CommuteFeaturesFile, records)
}

// WriteWeatherFeatures persists the per-(area, day) weather aggregates.
func (s *Store) WriteWeatherFeatures(_ context.Context, rows []domain.WeatherFeatureRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"area_id", "date", "rainfall_total_mm", "temp_mean_c", "temp_range_c"})
	for _, r := range rows {
		records = append(records, []string{
			r.AreaID,
			r.Date,
			float3(r.RainfallTotalMM),
			float3(r.TempMeanC),
			float3(r.TempRangeC),
		})
	}
	return s.writeAtomic(WeatherFeaturesFile, records)
}

// WriteGeometryTable persists the joined area reference table.
func (s *Store) WriteGeometryTable(_ context.Context, rows []domain.GeometryRecord) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, []string{"area_id", "area_name", "geometry_wkt"})
	for _, r := range rows {
		records = append(records, []string{r.AreaID, r.AreaName, r.GeometryWKT})
	}
	return s.writeAtomic(GeometryTableFile, records)
}

// WriteIndex persists the terminal SCHI artifact: three decimals for the
// feature and score columns, four for schi itself.
func (s *Store) WriteIndex(_ context.Context, rows []domain.IndexRow) error {
	records := make([][]string, 0, len(rows)+1)
	records = append(records, indexHeader)
	for _, r := range rows {
		records = append(records, []string{
			r.AreaID,
			r.Date,
			float3(r.AvgDelayMin),
			float3(r.SevereDelayShare),
			strconv.Itoa(r.TripCount),
			float3(r.AvgMood),
			float3(r.RainfallTotalMM),
			float3(r.TempMeanC),
			float3(r.TempRangeC),
			float3(r.ReliabilityScore),
			float3(r.MoodScore),
			float3(r.RainComfortScore),
			float3(r.TemperatureScore),
			float4(r.SCHI),
			r.GeometryWKT,
		})
	}
	return s.writeAtomic(IndexFile, records)
}

// writeAtomic writes records to a temp file in the output directory and
// renames it over the target, so readers only ever see the previous complete
// artifact or the new complete artifact.
func (s *Store) writeAtomic(name string, records [][]string) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.outputDir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName) // no-op after a successful rename

	w := csv.NewWriter(tmp)
	if err := w.WriteAll(records); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	target := filepath.Join(s.outputDir, name)
	if err := os.Rename(tmpName, target); err != nil {
		return fmt.Errorf("replace %s: %w", name, err)
	}
	return nil
}

func float3(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

func float4(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
