// Package csvfile reads the cleaned input datasets and writes the feature
// and index artifacts as flat CSV files. It is the only place that knows
// filenames, column orders, and decimal formatting; everything inward of it
// works with typed rows.
package csvfile

// Input files, produced by the upstream cleaning jobs.
const (
	CommuteFile    = "commute_clean.csv"
	WeatherFile    = "weather_clean.csv"
	AttributesFile = "area_attributes.csv"
	GeometriesFile = "area_geometries.csv"
)

// Output artifacts.
const (
	CommuteFeaturesFile = "commute_features.csv"
	WeatherFeaturesFile = "weather_features.csv"
	GeometryTableFile   = "geometry_reference.csv"
	IndexFile           = "schi.csv"
)

// Store is a Source/Sink over two directories: cleaned inputs are read from
// inputDir, artifacts land in outputDir. The zero value is not usable; call
// NewStore.
type Store struct {
	inputDir  string
	outputDir string
}

// NewStore returns a Store rooted at the given directories. The output
// directory is created on first write, not here, so constructing a Store
// never touches the filesystem.
func NewStore(inputDir, outputDir string) *Store {
	return &Store{inputDir: inputDir, outputDir: outputDir}
}

// IndexPath returns where the terminal SCHI artifact is written.
func (s *Store) IndexPath() string {
	return s.outputPath(IndexFile)
}
