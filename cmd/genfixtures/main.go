// Command genfixtures writes a deterministic set of cleaned input CSVs and
// runs the actual pipeline over them, so demo environments and test suites
// get artifacts that match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genfixtures \
//	  -input-dir data/interim \
//	  -output-dir data/processed
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sydneypulse/schi-pipeline/internal/adapter/csvfile"
	"github.com/sydneypulse/schi-pipeline/internal/domain"
	"github.com/sydneypulse/schi-pipeline/internal/observability"
	"github.com/sydneypulse/schi-pipeline/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	inputDir := flag.String("input-dir", "", "directory for the cleaned input CSVs")
	outputDir := flag.String("output-dir", "", "directory for the derived artifacts")
	flag.Parse()

	if *inputDir == "" || *outputDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flags: -input-dir, -output-dir")
	}

	if err := writeInputs(*inputDir); err != nil {
		return fmt.Errorf("writing input fixtures: %w", err)
	}

	store := csvfile.NewStore(*inputDir, *outputDir)
	metrics := observability.NewMetricsForTesting()
	p := pipeline.New(store, store, domain.DefaultWeights(), domain.DefaultSevereDelayThreshold,
		slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})), metrics)

	report, err := p.Run(context.Background())
	if err != nil {
		return fmt.Errorf("running pipeline over fixtures: %w", err)
	}
	log.Printf("wrote artifacts: %s", *outputDir)

	printStats(report)
	return nil
}

// Fixture geography: four inner and western Sydney areas over three March
// days. Liverpool has trips but no polygon, so geometry misses show up in
// the artifact; Marrickville is missing a weather day, so the join drops it.
var fixtureAreas = []struct {
	id   string
	name string
	wkt  string
}{
	{"117031337", "Sydney - Haymarket - The Rocks", "POLYGON((151.195 -33.855, 151.215 -33.855, 151.215 -33.875, 151.195 -33.875, 151.195 -33.855))"},
	{"119011355", "Marrickville", "POLYGON((151.145 -33.895, 151.175 -33.895, 151.175 -33.920, 151.145 -33.920, 151.145 -33.895))"},
	{"125011473", "Parramatta - Rosehill", "POLYGON((150.995 -33.805, 151.035 -33.805, 151.035 -33.830, 150.995 -33.830, 150.995 -33.805))"},
	{"127011503", "Liverpool", ""},
}

func writeInputs(dir string) error {
	commute := [][]string{
		{"date", "area_id", "observed_delay_minutes", "mood"},
		{"2025-03-03", "117031337", "3.0", "4"},
		{"2025-03-03", "117031337", "5.5", "4"},
		{"2025-03-03", "117031337", "2.0", "5"},
		{"2025-03-03", "119011355", "6.0", "3"},
		{"2025-03-03", "119011355", "8.5", "3"},
		{"2025-03-03", "125011473", "12.0", "2"},
		{"2025-03-03", "125011473", "15.5", "2"},
		{"2025-03-03", "125011473", "9.0", "3"},
		{"2025-03-03", "127011503", "18.0", "1"},
		{"2025-03-03", "127011503", "11.0", "2"},
		{"2025-03-04", "117031337", "4.0", "4"},
		{"2025-03-04", "117031337", "3.5", "5"},
		{"2025-03-04", "119011355", "7.0", "3"},
		{"2025-03-04", "119011355", "5.0", "4"},
		{"2025-03-04", "119011355", "10.0", "3"},
		{"2025-03-04", "125011473", "8.0", "3"},
		{"2025-03-04", "125011473", "6.5", "3"},
		{"2025-03-04", "127011503", "22.0", "1"},
		{"2025-03-04", "127011503", "14.5", "2"},
		{"2025-03-04", "127011503", "16.0", "1"},
		{"2025-03-05", "117031337", "2.5", "5"},
		{"2025-03-05", "117031337", "3.0", "4"},
		{"2025-03-05", "119011355", "4.5", "4"},
		{"2025-03-05", "125011473", "7.5", "3"},
		{"2025-03-05", "125011473", "11.5", "2"},
		{"2025-03-05", "127011503", "9.5", "2"},
		{"2025-03-05", "127011503", "13.0", "2"},
	}

	weather := [][]string{
		{"date", "area_id", "rainfall_mm", "temp_max_c", "temp_min_c"},
		{"2025-03-03", "117031337", "0.0", "27.5", "19.0"},
		{"2025-03-03", "119011355", "0.2", "28.0", "18.5"},
		{"2025-03-03", "125011473", "0.0", "31.0", "17.5"},
		{"2025-03-03", "127011503", "0.0", "32.0", "16.5"},
		{"2025-03-04", "117031337", "12.4", "24.0", "20.0"},
		{"2025-03-04", "119011355", "14.0", "23.5", "19.5"},
		{"2025-03-04", "125011473", "18.6", "25.0", "18.0"},
		{"2025-03-04", "127011503", "21.2", "25.5", "17.0"},
		{"2025-03-05", "117031337", "1.8", "25.5", "18.0"},
		{"2025-03-05", "125011473", "2.4", "28.0", "16.5"},
		{"2025-03-05", "127011503", "3.0", "29.5", "15.5"},
		// Marrickville's station skipped 2025-03-05; the join drops that day.
		{"2025-03-06", "119011355", "0.0", "26.0", "17.5"},
	}

	attributes := [][]string{{"area_id", "area_name"}}
	geometries := [][]string{{"area_id", "geometry_wkt"}}
	for _, a := range fixtureAreas {
		attributes = append(attributes, []string{a.id, a.name})
		if a.wkt != "" {
			geometries = append(geometries, []string{a.id, a.wkt})
		}
	}

	files := map[string][][]string{
		csvfile.CommuteFile:    commute,
		csvfile.WeatherFile:    weather,
		csvfile.AttributesFile: attributes,
		csvfile.GeometriesFile: geometries,
	}
	for name, records := range files {
		if err := writeCSV(filepath.Join(dir, name), records); err != nil {
			return err
		}
		log.Printf("wrote %s: %d rows", name, len(records)-1)
	}
	return nil
}

func writeCSV(path string, records [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if err := w.WriteAll(records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func printStats(report pipeline.Report) {
	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Input rows: commute=%d, weather=%d\n", report.CommuteRows, report.WeatherRows)
	fmt.Printf("Feature rows: commute=%d, weather=%d\n", report.CommuteFeatures, report.WeatherFeatures)
	fmt.Printf("Geometry reference rows: %d\n", report.GeometryRows)
	fmt.Printf("Index rows: %d (joined=%d, commute-only=%d, weather-only=%d, missing geometry=%d)\n",
		report.IndexRows, report.Join.Joined, report.Join.CommuteOnly,
		report.Join.WeatherOnly, report.Join.MissingGeometry)
	fmt.Printf("Quick pulse: %.1f\n", report.QuickSCHI)
}
