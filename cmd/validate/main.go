// Command validate performs integrity checks on a published SCHI artifact:
// column order, row parity against an in-process recompute of the cleaned
// inputs, score and blend invariants, and byte-level determinism of the
// build. It assumes the artifact was built with the default weight vector
// and severe-delay threshold.
//
// Usage:
//
//	go run ./cmd/validate \
//	  -input-dir data/interim \
//	  -output-dir data/processed
package main

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"encoding/hex"
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"

	"github.com/sydneypulse/schi-pipeline/internal/adapter/csvfile"
	"github.com/sydneypulse/schi-pipeline/internal/domain"
	"github.com/sydneypulse/schi-pipeline/internal/observability"
	"github.com/sydneypulse/schi-pipeline/internal/pipeline"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	inputDir := flag.String("input-dir", "", "directory containing the cleaned input CSVs")
	outputDir := flag.String("output-dir", "", "directory containing the artifact under validation")
	flag.Parse()

	if *inputDir == "" || *outputDir == "" {
		flag.Usage()
		os.Exit(1)
	}

	if code := run(*inputDir, *outputDir); code != 0 {
		os.Exit(code)
	}
}

func run(inputDir, outputDir string) int {
	fmt.Println("=== SCHI Artifact Validation ===")
	fmt.Println()

	store := csvfile.NewStore(inputDir, outputDir)
	ctx := context.Background()

	// ── Load the inputs and the artifact ──

	commute, err := store.LoadCommute(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load commute: %v\n", err)
		return 1
	}
	weather, err := store.LoadWeather(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load weather: %v\n", err)
		return 1
	}
	attrs, err := store.LoadAreaAttributes(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load area attributes: %v\n", err)
		return 1
	}
	geoms, err := store.LoadAreaGeometries(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load area geometries: %v\n", err)
		return 1
	}
	rows, err := store.LoadIndex(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: load index artifact: %v\n", err)
		return 1
	}
	header, err := readHeader(store.IndexPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read artifact header: %v\n", err)
		return 1
	}

	// ── Run validation phases ──

	phases := []*phase{
		validateShape(header),
		validateParity(rows, commute, weather, attrs, geoms),
		validateInvariants(rows),
		validateDeterminism(inputDir, store.IndexPath()),
	}

	// ── Report results ──

	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-46s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Rows: %d commute, %d weather, %d index\n", len(commute), len(weather), len(rows))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// readHeader returns the first record of the artifact CSV.
func readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return csv.NewReader(f).Read()
}

// ── Phase 1: Artifact Shape ──
// The column order is the published interface; dashboards read it positionally.

func validateShape(header []string) *phase {
	p := &phase{name: "Phase 1: Artifact Shape (column order)"}

	want := csvfile.IndexHeader()
	if len(header) != len(want) {
		p.errorf("header has %d columns, want %d", len(header), len(want))
		return p
	}
	for i := range want {
		if header[i] != want[i] {
			p.errorf("column %d: got %q, want %q", i, header[i], want[i])
		}
	}
	return p
}

// ── Phase 2: Row Parity ──
// Recomputes the index from the cleaned inputs and compares every field.

func validateParity(rows []domain.IndexRow, commute []domain.CommuteObservation, weather []domain.WeatherObservation, attrs []domain.AreaAttribute, geoms []domain.AreaGeometry) *phase {
	p := &phase{name: "Phase 2: Row Parity (recompute vs artifact)"}

	commuteFeatures := domain.AggregateCommute(commute, domain.DefaultSevereDelayThreshold)
	weatherFeatures := domain.AggregateWeather(weather)
	geometry := domain.GeometryLookup(domain.BuildGeometryTable(attrs, geoms))

	want, _, err := domain.BuildIndex(commuteFeatures, weatherFeatures, geometry, domain.DefaultWeights().Normalize())
	if err != nil {
		p.errorf("recompute failed: %v", err)
		return p
	}

	if len(want) != len(rows) {
		p.errorf("row count: recomputed %d, artifact has %d", len(want), len(rows))
		return p
	}

	for i := range want {
		compareRow(p, i, want[i], rows[i])
	}
	return p
}

func compareRow(p *phase, i int, want, got domain.IndexRow) {
	key := fmt.Sprintf("row %d (%s, %s)", i, want.AreaID, want.Date)

	if got.AreaID != want.AreaID || got.Date != want.Date {
		p.errorf("%s: artifact key is (%s, %s)", key, got.AreaID, got.Date)
		return
	}
	if got.TripCount != want.TripCount {
		p.errorf("%s: trip_count: expected %d, got %d", key, want.TripCount, got.TripCount)
	}
	if got.GeometryWKT != want.GeometryWKT {
		p.errorf("%s: geometry_wkt mismatch", key)
	}

	// The recompute carries full-precision scores while the artifact stores
	// them at three decimals (four for schi), so parity means identical
	// rendering at each column's published precision.
	floats := []struct {
		col       string
		want, got float64
		places    int
	}{
		{"avg_delay_min", want.AvgDelayMin, got.AvgDelayMin, 3},
		{"severe_delay_share", want.SevereDelayShare, got.SevereDelayShare, 3},
		{"avg_mood", want.AvgMood, got.AvgMood, 3},
		{"rainfall_total_mm", want.RainfallTotalMM, got.RainfallTotalMM, 3},
		{"temp_mean_c", want.TempMeanC, got.TempMeanC, 3},
		{"temp_range_c", want.TempRangeC, got.TempRangeC, 3},
		{"reliability_score", want.ReliabilityScore, got.ReliabilityScore, 3},
		{"mood_score", want.MoodScore, got.MoodScore, 3},
		{"rain_comfort_score", want.RainComfortScore, got.RainComfortScore, 3},
		{"temperature_score", want.TemperatureScore, got.TemperatureScore, 3},
		{"schi", want.SCHI, got.SCHI, 4},
	}
	for _, f := range floats {
		wantStr, gotStr := fmtFloat(f.want, f.places), fmtFloat(f.got, f.places)
		if wantStr != gotStr {
			p.errorf("%s: %s: expected %s, got %s", key, f.col, wantStr, gotStr)
		}
	}
}

// ── Phase 3: Value Invariants ──
// Scores and the blended index stay in [0,1], the stored SCHI stays within
// quantization distance of re-blending the stored scores, and rows are
// sorted by (area, date).

// reblendTol bounds |stored schi - reblend of the stored scores|. The stored
// SCHI was blended from full-precision scores, but the artifact carries them
// at three decimals, which shifts a unit-sum blend by up to 5e-4, plus 5e-5
// for each of the two four-decimal roundings.
const reblendTol = 6e-4

func validateInvariants(rows []domain.IndexRow) *phase {
	p := &phase{name: "Phase 3: Value Invariants (ranges, blend, order)"}

	for i := range rows {
		checkUnitInterval(p, i, &rows[i])
	}

	reblended, err := domain.Reblend(rows, domain.DefaultWeights().Normalize())
	if err != nil {
		p.errorf("reblend failed: %v", err)
		return p
	}
	for i := range rows {
		if math.Abs(rows[i].SCHI-reblended[i].SCHI) > reblendTol {
			p.errorf("row %d (%s, %s): schi %g is not the blend of its stored scores (%g)",
				i, rows[i].AreaID, rows[i].Date, rows[i].SCHI, reblended[i].SCHI)
		}
	}

	for i := 1; i < len(rows); i++ {
		if !rows[i-1].Key().Less(rows[i].Key()) {
			p.errorf("rows %d..%d: (%s, %s) does not sort before (%s, %s)",
				i-1, i, rows[i-1].AreaID, rows[i-1].Date, rows[i].AreaID, rows[i].Date)
		}
	}
	return p
}

func checkUnitInterval(p *phase, i int, r *domain.IndexRow) {
	scores := []struct {
		col string
		v   float64
	}{
		{"reliability_score", r.ReliabilityScore},
		{"mood_score", r.MoodScore},
		{"rain_comfort_score", r.RainComfortScore},
		{"temperature_score", r.TemperatureScore},
		{"schi", r.SCHI},
	}
	for _, s := range scores {
		if s.v < 0 || s.v > 1 {
			p.errorf("row %d (%s, %s): %s=%g outside [0,1]", i, r.AreaID, r.Date, s.col, s.v)
		}
	}
}

// ── Phase 4: Determinism ──
// Two fresh in-process rebuilds must serialize byte for byte, and match the
// artifact under validation.

func validateDeterminism(inputDir, artifactPath string) *phase {
	p := &phase{name: "Phase 4: Determinism (rebuild twice)"}

	first, err := rebuildDigest(inputDir)
	if err != nil {
		p.errorf("first rebuild: %v", err)
		return p
	}
	second, err := rebuildDigest(inputDir)
	if err != nil {
		p.errorf("second rebuild: %v", err)
		return p
	}
	if first != second {
		p.errorf("rebuilds differ: %s vs %s", first, second)
	}

	current, err := fileDigest(artifactPath)
	if err != nil {
		p.errorf("digest artifact: %v", err)
		return p
	}
	if current != first {
		p.errorf("artifact digest %s does not match a fresh rebuild %s (stale inputs or non-default weights?)", current, first)
	}
	return p
}

// rebuildDigest runs the full pipeline into a scratch directory and hashes
// the resulting artifact.
func rebuildDigest(inputDir string) (string, error) {
	tmp, err := os.MkdirTemp("", "schi-validate-*")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmp)

	store := csvfile.NewStore(inputDir, tmp)
	quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	p := pipeline.New(store, store, domain.DefaultWeights(), domain.DefaultSevereDelayThreshold, quiet, observability.NewMetricsForTesting())

	if _, err := p.Run(context.Background()); err != nil {
		return "", err
	}
	return fileDigest(store.IndexPath())
}

func fileDigest(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}

// ── Helpers ──

// fmtFloat renders v the way the artifact writer does, fixed-point at the
// column's published number of decimals.
func fmtFloat(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}
