package domain

// CommuteObservation is one cleaned trip-level record from the commute
// collector. Dates are calendar days in ISO form ("2006-01-02"); upstream
// cleaning guarantees the numeric columns are populated.
type CommuteObservation struct {
	Date         string
	AreaID       string
	DelayMinutes float64
	Mood         float64 // rider-reported rating on a 1..5 scale
}

// WeatherObservation is one cleaned daily weather record for an area.
type WeatherObservation struct {
	Date       string
	AreaID     string
	RainfallMM float64
	TempMaxC   float64
	TempMinC   float64
}

// AreaAttribute carries the human-readable name for a statistical area.
type AreaAttribute struct {
	AreaID   string
	AreaName string
}

// AreaGeometry carries the WKT boundary polygon for a statistical area.
type AreaGeometry struct {
	AreaID      string
	GeometryWKT string
}

// GeometryRecord is one row of the joined area reference table: areas that
// have both a name and a boundary.
type GeometryRecord struct {
	AreaID      string
	AreaName    string
	GeometryWKT string
}

// CommuteFeatureRow is the per-(area, day) commute aggregate. Float fields
// are rounded to three decimals at aggregation time so repeated runs over
// the same input serialize identically.
type CommuteFeatureRow struct {
	AreaID           string
	Date             string
	AvgDelayMin      float64
	SevereDelayShare float64 // fraction of trips at or above the severe threshold
	TripCount        int
	AvgMood          float64
}

// WeatherFeatureRow is the per-(area, day) weather aggregate, rounded to
// three decimals like its commute counterpart.
type WeatherFeatureRow struct {
	AreaID          string
	Date            string
	RainfallTotalMM float64
	TempMeanC       float64 // mean of daily (max+min)/2 midpoints
	TempRangeC      float64 // mean of daily max-min spreads
}

// IndexRow is one row of the terminal SCHI artifact: the joined feature
// aggregates, the four scaled component scores, the blended index, and the
// area boundary for mapping.
type IndexRow struct {
	AreaID           string
	Date             string
	AvgDelayMin      float64
	SevereDelayShare float64
	TripCount        int
	AvgMood          float64
	RainfallTotalMM  float64
	TempMeanC        float64
	TempRangeC       float64
	ReliabilityScore float64
	MoodScore        float64
	RainComfortScore float64
	TemperatureScore float64
	SCHI             float64
	GeometryWKT      string // empty when the area has no known boundary
}

// AreaDate is the grouping and join key shared by every per-day dataset.
type AreaDate struct {
	AreaID string
	Date   string
}

// Less orders keys by area first, then by day. ISO dates sort
// lexicographically in chronological order, so string comparison is enough.
func (k AreaDate) Less(other AreaDate) bool {
	if k.AreaID != other.AreaID {
		return k.AreaID < other.AreaID
	}
	return k.Date < other.Date
}

// Key returns the grouping key for a commute observation.
func (o CommuteObservation) Key() AreaDate {
	return AreaDate{AreaID: o.AreaID, Date: o.Date}
}

// Key returns the grouping key for a weather observation.
func (o WeatherObservation) Key() AreaDate {
	return AreaDate{AreaID: o.AreaID, Date: o.Date}
}

// Key returns the join key for a commute feature row.
func (r CommuteFeatureRow) Key() AreaDate {
	return AreaDate{AreaID: r.AreaID, Date: r.Date}
}

// Key returns the join key for a weather feature row.
func (r WeatherFeatureRow) Key() AreaDate {
	return AreaDate{AreaID: r.AreaID, Date: r.Date}
}

// Key returns the sort key for an index row.
func (r IndexRow) Key() AreaDate {
	return AreaDate{AreaID: r.AreaID, Date: r.Date}
}
