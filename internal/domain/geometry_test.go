package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildGeometryTable(t *testing.T) {
	attrs := []AreaAttribute{
		{AreaID: "117031337", AreaName: "Sydney - Haymarket"},
		{AreaID: "117031338", AreaName: "Surry Hills"},
		{AreaID: "120021388", AreaName: "Parramatta"},
	}
	geoms := []AreaGeometry{
		{AreaID: "120021388", GeometryWKT: "POLYGON((150.9 -33.8, 151.0 -33.8, 151.0 -33.9, 150.9 -33.9, 150.9 -33.8))"},
		{AreaID: "117031337", GeometryWKT: "POLYGON((151.2 -33.8, 151.3 -33.8, 151.3 -33.9, 151.2 -33.9, 151.2 -33.8))"},
		{AreaID: "999999999", GeometryWKT: "POLYGON((0 0, 1 0, 1 1, 0 1, 0 0))"},
	}

	t.Run("keeps only areas on both sides, sorted by ID", func(t *testing.T) {
		records := BuildGeometryTable(attrs, geoms)

		require.Len(t, records, 2)
		assert.Equal(t, "117031337", records[0].AreaID)
		assert.Equal(t, "Sydney - Haymarket", records[0].AreaName)
		assert.Contains(t, records[0].GeometryWKT, "151.2 -33.8")
		assert.Equal(t, "120021388", records[1].AreaID)
		assert.Equal(t, "Parramatta", records[1].AreaName)
	})

	t.Run("duplicate IDs resolve last-one-wins", func(t *testing.T) {
		dupAttrs := []AreaAttribute{
			{AreaID: "X", AreaName: "Old Name"},
			{AreaID: "X", AreaName: "Corrected Name"},
		}
		dupGeoms := []AreaGeometry{{AreaID: "X", GeometryWKT: "POLYGON EMPTY"}}

		records := BuildGeometryTable(dupAttrs, dupGeoms)

		require.Len(t, records, 1)
		assert.Equal(t, "Corrected Name", records[0].AreaName)
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, BuildGeometryTable(nil, nil))
		assert.Empty(t, BuildGeometryTable(attrs, nil))
		assert.Empty(t, BuildGeometryTable(nil, geoms))
	})
}

func TestGeometryLookup(t *testing.T) {
	records := []GeometryRecord{
		{AreaID: "A", AreaName: "Alpha", GeometryWKT: "POLYGON EMPTY"},
		{AreaID: "B", AreaName: "Beta", GeometryWKT: "POLYGON EMPTY"},
	}

	lookup := GeometryLookup(records)

	require.Len(t, lookup, 2)
	assert.Equal(t, "Alpha", lookup["A"].AreaName)
	_, ok := lookup["C"]
	assert.False(t, ok)
}
