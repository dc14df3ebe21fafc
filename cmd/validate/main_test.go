package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sydneypulse/schi-pipeline/internal/adapter/csvfile"
	"github.com/sydneypulse/schi-pipeline/internal/domain"
	"github.com/sydneypulse/schi-pipeline/internal/observability"
	"github.com/sydneypulse/schi-pipeline/internal/pipeline"
)

// seedInputs writes a cleaned input set whose joined delay column is 0/1/3.
// Area B's reliability score is then 2/3, which has no exact three-decimal
// form, so the stored score columns differ from a full-precision recompute.
func seedInputs(t *testing.T, dir string) {
	t.Helper()
	files := map[string]string{
		csvfile.CommuteFile: "date,area_id,observed_delay_minutes,mood\n" +
			"2025-03-01,A,0,3\n" +
			"2025-03-01,B,1,3\n" +
			"2025-03-01,C,3,3\n",
		csvfile.WeatherFile: "date,area_id,rainfall_mm,temp_max_c,temp_min_c\n" +
			"2025-03-01,A,0,25,15\n" +
			"2025-03-01,B,0,25,15\n" +
			"2025-03-01,C,0,25,15\n",
		csvfile.AttributesFile: "area_id,area_name\n" +
			"A,Inner West\n" +
			"B,Western Sydney\n" +
			"C,North Shore\n",
		csvfile.GeometriesFile: "area_id,geometry_wkt\n",
	}
	for name, contents := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600))
	}
}

func buildArtifact(t *testing.T, inputDir, outputDir string) *csvfile.Store {
	t.Helper()
	store := csvfile.NewStore(inputDir, outputDir)
	quiet := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	p := pipeline.New(store, store, domain.DefaultWeights(), domain.DefaultSevereDelayThreshold, quiet, observability.NewMetricsForTesting())
	_, err := p.Run(context.Background())
	require.NoError(t, err)
	return store
}

func TestRun_FreshArtifactPasses(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	seedInputs(t, inputDir)
	buildArtifact(t, inputDir, outputDir)

	require.Equal(t, 0, run(inputDir, outputDir))
}

func TestRun_TamperedSCHIFails(t *testing.T) {
	inputDir := t.TempDir()
	outputDir := t.TempDir()
	seedInputs(t, inputDir)
	store := buildArtifact(t, inputDir, outputDir)
	ctx := context.Background()

	rows, err := store.LoadIndex(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, rows)
	rows[0].SCHI += 0.01
	require.NoError(t, store.WriteIndex(ctx, rows))

	require.Equal(t, 1, run(inputDir, outputDir))
}
