package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-backend/internal/analysis"
	"realestate-backend/internal/models"
)

func TestRecordTable(t *testing.T) {
	s := NewExportService()

	rows := s.RecordTable([]models.Record{
		{Area: "Wakad", Year: 2021, Price: 5000000, Demand: 30},
	})
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"area", "year", "price", "demand"}, rows[0])
	assert.Equal(t, []string{"Wakad", "2021", "5000000.00", "30.00"}, rows[1])
}

func TestTrendTableMergesSeriesByYear(t *testing.T) {
	s := NewExportService()

	metrics := analysis.Metrics([]models.Record{
		{Area: "Wakad", Year: 2021, Price: 5000000, Demand: 30},
		{Area: "Wakad", Year: 2022, Price: 5300000, Demand: 35},
	})

	rows := s.TrendTable(metrics)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"year", "avg_price", "avg_demand"}, rows[0])
	assert.Equal(t, []string{"2021", "5000000.00", "30.00"}, rows[1])
	assert.Equal(t, []string{"2022", "5300000.00", "35.00"}, rows[2])
}

func TestTrendTableEmptyMetrics(t *testing.T) {
	s := NewExportService()

	rows := s.TrendTable(analysis.Metrics(nil))
	require.Len(t, rows, 1) // header only
}
