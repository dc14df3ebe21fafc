package csvfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sydneypulse/schi-pipeline/internal/domain"
)

func writeInput(t *testing.T, dir, name, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(contents), 0o600))
}

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()
	inputDir := t.TempDir()
	return NewStore(inputDir, t.TempDir()), inputDir
}

func TestLoadCommute(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, CommuteFile,
			"date,area_id,observed_delay_minutes,mood\n"+
				"2025-01-01,117031337,5.5,3\n"+
				"2025-01-02,120021388,0,4.5\n")

		obs, err := store.LoadCommute(ctx)

		require.NoError(t, err)
		require.Len(t, obs, 2)
		assert.Equal(t, domain.CommuteObservation{
			Date: "2025-01-01", AreaID: "117031337", DelayMinutes: 5.5, Mood: 3,
		}, obs[0])
		assert.Equal(t, "120021388", obs[1].AreaID)
		assert.Equal(t, 4.5, obs[1].Mood)
	})

	t.Run("extra columns are ignored", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, CommuteFile,
			"route,date,area_id,observed_delay_minutes,mood,notes\n"+
				"T1,2025-01-01,A,5,3,fine\n")

		obs, err := store.LoadCommute(ctx)

		require.NoError(t, err)
		require.Len(t, obs, 1)
		assert.Equal(t, "A", obs[0].AreaID)
	})

	t.Run("header only is empty, not an error", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, CommuteFile, "date,area_id,observed_delay_minutes,mood\n")

		obs, err := store.LoadCommute(ctx)

		require.NoError(t, err)
		assert.Empty(t, obs)
	})

	t.Run("missing columns name the dataset and the exact columns", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, CommuteFile, "date,area_id\n2025-01-01,A\n")

		_, err := store.LoadCommute(ctx)

		var serr *domain.SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "commute", serr.Dataset)
		assert.Equal(t, []string{"mood", "observed_delay_minutes"}, serr.Missing)
	})

	t.Run("zero-byte file reports every required column", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, CommuteFile, "")

		_, err := store.LoadCommute(ctx)

		var serr *domain.SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Len(t, serr.Missing, 4)
	})

	t.Run("missing file", func(t *testing.T) {
		store, _ := newTestStore(t)

		_, err := store.LoadCommute(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "open commute dataset")
	})

	t.Run("malformed numeric cell carries the file line", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, CommuteFile,
			"date,area_id,observed_delay_minutes,mood\n"+
				"2025-01-01,A,5,3\n"+
				"2025-01-01,B,a lot,3\n")

		_, err := store.LoadCommute(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 3")
		assert.Contains(t, err.Error(), "observed_delay_minutes")
	})

	t.Run("malformed date is rejected", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, CommuteFile,
			"date,area_id,observed_delay_minutes,mood\n"+
				"01/02/2025,A,5,3\n")

		_, err := store.LoadCommute(ctx)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "YYYY-MM-DD")
	})
}

func TestLoadWeather(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, WeatherFile,
			"date,area_id,rainfall_mm,temp_max_c,temp_min_c\n"+
				"2025-01-01,A,2.0,30,20\n")

		obs, err := store.LoadWeather(ctx)

		require.NoError(t, err)
		require.Len(t, obs, 1)
		assert.Equal(t, domain.WeatherObservation{
			Date: "2025-01-01", AreaID: "A", RainfallMM: 2, TempMaxC: 30, TempMinC: 20,
		}, obs[0])
	})

	t.Run("missing column", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, WeatherFile, "date,area_id,rainfall_mm,temp_max_c\n")

		_, err := store.LoadWeather(ctx)

		var serr *domain.SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "weather", serr.Dataset)
		assert.Equal(t, []string{"temp_min_c"}, serr.Missing)
	})
}

func TestLoadReferenceData(t *testing.T) {
	ctx := context.Background()

	t.Run("attributes", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, AttributesFile,
			"area_id,area_name\n"+
				"117031337,Sydney - Haymarket\n")

		attrs, err := store.LoadAreaAttributes(ctx)

		require.NoError(t, err)
		require.Len(t, attrs, 1)
		assert.Equal(t, "Sydney - Haymarket", attrs[0].AreaName)
	})

	t.Run("geometries keep WKT verbatim including commas", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, GeometriesFile,
			"area_id,geometry_wkt\n"+
				"117031337,\"POLYGON((151.19 -33.87, 151.21 -33.87, 151.21 -33.89, 151.19 -33.87))\"\n")

		geoms, err := store.LoadAreaGeometries(ctx)

		require.NoError(t, err)
		require.Len(t, geoms, 1)
		assert.Equal(t, "POLYGON((151.19 -33.87, 151.21 -33.87, 151.21 -33.89, 151.19 -33.87))", geoms[0].GeometryWKT)
	})

	t.Run("attributes schema error", func(t *testing.T) {
		store, dir := newTestStore(t)
		writeInput(t, dir, AttributesFile, "area_id\nA\n")

		_, err := store.LoadAreaAttributes(ctx)

		var serr *domain.SchemaError
		require.ErrorAs(t, err, &serr)
		assert.Equal(t, "area attributes", serr.Dataset)
	})
}
