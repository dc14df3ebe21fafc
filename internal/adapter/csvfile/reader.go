package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/sydneypulse/schi-pipeline/internal/domain"
)

// dateLayout is the ISO day format every dataset carries.
const dateLayout = "2006-01-02"

// Required columns per dataset. Extra columns are allowed and ignored;
// these must be present.
var (
	commuteColumns   = []string{"date", "area_id", "observed_delay_minutes", "mood"}
	weatherColumns   = []string{"date", "area_id", "rainfall_mm", "temp_max_c", "temp_min_c"}
	attributeColumns = []string{"area_id", "area_name"}
	geometryColumns  = []string{"area_id", "geometry_wkt"}
	indexColumns     = []string{"area_id", "date", "reliability_score", "mood_score", "rain_comfort_score", "temperature_score", "schi"}
)

// LoadCommute reads the cleaned trip-level commute dataset. A header-only
// file returns an empty slice; missing columns return a *domain.SchemaError
// and malformed cells a row-numbered parse error.
func (s *Store) LoadCommute(_ context.Context) ([]domain.CommuteObservation, error) {
	rows, cols, err := readTable(s.inputPath(CommuteFile), "commute", commuteColumns)
	if err != nil {
		return nil, err
	}

	obs := make([]domain.CommuteObservation, 0, len(rows))
	for i, row := range rows {
		line := i + 2 // header is line 1
		date, err := parseDate(row, cols, "date", "commute", line)
		if err != nil {
			return nil, err
		}
		delay, err := parseFloat(row, cols, "observed_delay_minutes", "commute", line)
		if err != nil {
			return nil, err
		}
		mood, err := parseFloat(row, cols, "mood", "commute", line)
		if err != nil {
			return nil, err
		}
		obs = append(obs, domain.CommuteObservation{
			Date:         date,
			AreaID:       cell(row, cols, "area_id"),
			DelayMinutes: delay,
			Mood:         mood,
		})
	}
	return obs, nil
}

// LoadWeather reads the cleaned daily weather dataset.
func (s *Store) LoadWeather(_ context.Context) ([]domain.WeatherObservation, error) {
	rows, cols, err := readTable(s.inputPath(WeatherFile), "weather", weatherColumns)
	if err != nil {
		return nil, err
	}

	obs := make([]domain.WeatherObservation, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		date, err := parseDate(row, cols, "date", "weather", line)
		if err != nil {
			return nil, err
		}
		rainfall, err := parseFloat(row, cols, "rainfall_mm", "weather", line)
		if err != nil {
			return nil, err
		}
		tempMax, err := parseFloat(row, cols, "temp_max_c", "weather", line)
		if err != nil {
			return nil, err
		}
		tempMin, err := parseFloat(row, cols, "temp_min_c", "weather", line)
		if err != nil {
			return nil, err
		}
		obs = append(obs, domain.WeatherObservation{
			Date:       date,
			AreaID:     cell(row, cols, "area_id"),
			RainfallMM: rainfall,
			TempMaxC:   tempMax,
			TempMinC:   tempMin,
		})
	}
	return obs, nil
}

// LoadAreaAttributes reads the area-to-name reference dataset.
func (s *Store) LoadAreaAttributes(_ context.Context) ([]domain.AreaAttribute, error) {
	rows, cols, err := readTable(s.inputPath(AttributesFile), "area attributes", attributeColumns)
	if err != nil {
		return nil, err
	}

	attrs := make([]domain.AreaAttribute, 0, len(rows))
	for _, row := range rows {
		attrs = append(attrs, domain.AreaAttribute{
			AreaID:   cell(row, cols, "area_id"),
			AreaName: cell(row, cols, "area_name"),
		})
	}
	return attrs, nil
}

// LoadAreaGeometries reads the area-to-boundary reference dataset. WKT
// strings are passed through untouched; this pipeline never parses geometry.
func (s *Store) LoadAreaGeometries(_ context.Context) ([]domain.AreaGeometry, error) {
	rows, cols, err := readTable(s.inputPath(GeometriesFile), "area geometries", geometryColumns)
	if err != nil {
		return nil, err
	}

	geoms := make([]domain.AreaGeometry, 0, len(rows))
	for _, row := range rows {
		geoms = append(geoms, domain.AreaGeometry{
			AreaID:      cell(row, cols, "area_id"),
			GeometryWKT: cell(row, cols, "geometry_wkt"),
		})
	}
	return geoms, nil
}

// LoadIndex reads a previously written SCHI artifact back into rows, for
// re-blending and for artifact validation. Only the key, score, and index
// columns are required; feature columns are parsed when present.
func (s *Store) LoadIndex(_ context.Context) ([]domain.IndexRow, error) {
	rows, cols, err := readTable(s.outputPath(IndexFile), "index", indexColumns)
	if err != nil {
		return nil, err
	}

	out := make([]domain.IndexRow, 0, len(rows))
	for i, row := range rows {
		line := i + 2
		r := domain.IndexRow{
			AreaID:      cell(row, cols, "area_id"),
			GeometryWKT: cell(row, cols, "geometry_wkt"),
		}
		if r.Date, err = parseDate(row, cols, "date", "index", line); err != nil {
			return nil, err
		}

		floats := []struct {
			col string
			dst *float64
		}{
			{"reliability_score", &r.ReliabilityScore},
			{"mood_score", &r.MoodScore},
			{"rain_comfort_score", &r.RainComfortScore},
			{"temperature_score", &r.TemperatureScore},
			{"schi", &r.SCHI},
			{"avg_delay_min", &r.AvgDelayMin},
			{"severe_delay_share", &r.SevereDelayShare},
			{"avg_mood", &r.AvgMood},
			{"rainfall_total_mm", &r.RainfallTotalMM},
			{"temp_mean_c", &r.TempMeanC},
			{"temp_range_c", &r.TempRangeC},
		}
		for _, f := range floats {
			if _, ok := cols[f.col]; !ok {
				continue
			}
			if *f.dst, err = parseFloat(row, cols, f.col, "index", line); err != nil {
				return nil, err
			}
		}

		if _, ok := cols["trip_count"]; ok {
			count, err := parseFloat(row, cols, "trip_count", "index", line)
			if err != nil {
				return nil, err
			}
			r.TripCount = int(count)
		}
		out = append(out, r)
	}
	return out, nil
}

// readTable opens a CSV file, checks the required columns, and returns the
// data rows with a column-name index. A file with no header at all reports
// every required column missing.
func readTable(path, dataset string, required []string) ([][]string, map[string]int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s dataset: %w", dataset, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s dataset: %w", dataset, err)
	}
	if len(rows) == 0 {
		return nil, nil, domain.NewSchemaError(dataset, required)
	}

	cols := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		cols[strings.TrimSpace(h)] = i
	}

	var missing []string
	for _, col := range required {
		if _, ok := cols[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, nil, domain.NewSchemaError(dataset, missing)
	}
	return rows[1:], cols, nil
}

// cell returns the trimmed value of the named column, or "" when the row is
// ragged and too short.
func cell(row []string, cols map[string]int, col string) string {
	i, ok := cols[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFloat parses the named cell as a float64. Upstream cleaning
// guarantees numeric columns, so a malformed cell means the input is
// corrupt and the whole load fails with the file line for the operator.
func parseFloat(row []string, cols map[string]int, col, dataset string, line int) (float64, error) {
	raw := cell(row, cols, col)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s dataset line %d: column %s: bad numeric value %q", dataset, line, col, raw)
	}
	return v, nil
}

// parseDate validates the named cell as an ISO day and returns it in string
// form. Downstream grouping and sorting rely on the lexicographic order of
// the validated strings.
func parseDate(row []string, cols map[string]int, col, dataset string, line int) (string, error) {
	raw := cell(row, cols, col)
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return "", fmt.Errorf("%s dataset line %d: column %s: bad date %q, want YYYY-MM-DD", dataset, line, col, raw)
	}
	return raw, nil
}

func (s *Store) inputPath(name string) string {
	return filepath.Join(s.inputDir, name)
}

func (s *Store) outputPath(name string) string {
	return filepath.Join(s.outputDir, name)
}
