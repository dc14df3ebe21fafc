package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateWeather(t *testing.T) {
	t.Run("single area and day", func(t *testing.T) {
		obs := []WeatherObservation{
			{Date: "2025-01-01", AreaID: "A", RainfallMM: 2.0, TempMaxC: 30, TempMinC: 20},
			{Date: "2025-01-01", AreaID: "A", RainfallMM: 0.0, TempMaxC: 30, TempMinC: 19},
		}

		rows := AggregateWeather(obs)

		require.Len(t, rows, 1)
		assert.Equal(t, "A", rows[0].AreaID)
		assert.Equal(t, "2025-01-01", rows[0].Date)
		// Rainfall sums; midpoints (25.0, 24.5) and spreads (10, 11) average.
		assert.Equal(t, 2.0, rows[0].RainfallTotalMM)
		assert.Equal(t, 24.75, rows[0].TempMeanC)
		assert.Equal(t, 10.5, rows[0].TempRangeC)
	})

	t.Run("groups by area and day", func(t *testing.T) {
		obs := []WeatherObservation{
			{Date: "2025-01-02", AreaID: "A", RainfallMM: 1, TempMaxC: 28, TempMinC: 18},
			{Date: "2025-01-01", AreaID: "B", RainfallMM: 3, TempMaxC: 26, TempMinC: 16},
			{Date: "2025-01-01", AreaID: "A", RainfallMM: 5, TempMaxC: 24, TempMinC: 14},
		}

		rows := AggregateWeather(obs)

		require.Len(t, rows, 3)
		assert.Equal(t, AreaDate{"A", "2025-01-01"}, rows[0].Key())
		assert.Equal(t, AreaDate{"A", "2025-01-02"}, rows[1].Key())
		assert.Equal(t, AreaDate{"B", "2025-01-01"}, rows[2].Key())
		assert.Equal(t, 5.0, rows[0].RainfallTotalMM)
		assert.Equal(t, 19.0, rows[0].TempMeanC)
		assert.Equal(t, 10.0, rows[0].TempRangeC)
	})

	t.Run("rounds to three decimals", func(t *testing.T) {
		obs := []WeatherObservation{
			{Date: "2025-01-01", AreaID: "A", RainfallMM: 0.1, TempMaxC: 21.1, TempMinC: 14.9},
			{Date: "2025-01-01", AreaID: "A", RainfallMM: 0.2, TempMaxC: 22.4, TempMinC: 15.2},
			{Date: "2025-01-01", AreaID: "A", RainfallMM: 0.4, TempMaxC: 23.8, TempMinC: 16.1},
		}

		rows := AggregateWeather(obs)

		require.Len(t, rows, 1)
		assert.Equal(t, 0.7, rows[0].RainfallTotalMM)
		assert.Equal(t, 18.917, rows[0].TempMeanC)
		assert.Equal(t, 7.033, rows[0].TempRangeC)
	})

	t.Run("empty input yields empty output", func(t *testing.T) {
		rows := AggregateWeather(nil)
		assert.NotNil(t, rows)
		assert.Empty(t, rows)
	})
}
