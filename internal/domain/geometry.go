package domain

import "sort"

// BuildGeometryTable inner-joins area attributes with area boundaries into
// the reference table used to attach WKT polygons to index rows. Areas
// present on only one side are dropped; the result is sorted by area ID.
// Duplicate IDs within a side resolve last-one-wins, matching how the
// reference files are maintained (later corrections appended).
func BuildGeometryTable(attrs []AreaAttribute, geoms []AreaGeometry) []GeometryRecord {
	names := make(map[string]string, len(attrs))
	for _, a := range attrs {
		names[a.AreaID] = a.AreaName
	}

	boundaries := make(map[string]string, len(geoms))
	for _, g := range geoms {
		boundaries[g.AreaID] = g.GeometryWKT
	}

	shared := make([]string, 0, len(names))
	for id := range names {
		if _, ok := boundaries[id]; ok {
			shared = append(shared, id)
		}
	}
	sort.Strings(shared)

	records := make([]GeometryRecord, 0, len(shared))
	for _, id := range shared {
		records = append(records, GeometryRecord{
			AreaID:      id,
			AreaName:    names[id],
			GeometryWKT: boundaries[id],
		})
	}
	return records
}

// GeometryLookup indexes a geometry table by area ID for O(1) boundary
// attachment during index construction.
func GeometryLookup(records []GeometryRecord) map[string]GeometryRecord {
	lookup := make(map[string]GeometryRecord, len(records))
	for _, r := range records {
		lookup[r.AreaID] = r
	}
	return lookup
}
