package service

import (
	"fmt"
	"strconv"

	"realestate-backend/internal/models"
)

// ExportService shapes analytics output into tabular rows for the download
// surface. File serialization (CSV writing, content headers) belongs to the
// API layer.
type ExportService struct{}

func NewExportService() *ExportService {
	return &ExportService{}
}

// RecordTable returns the raw records for an area as rows with a header.
func (s *ExportService) RecordTable(records []models.Record) [][]string {
	rows := make([][]string, 0, len(records)+1)
	rows = append(rows, []string{"area", "year", "price", "demand"})
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Area,
			strconv.Itoa(rec.Year),
			formatFloat(rec.Price),
			formatFloat(rec.Demand),
		})
	}
	return rows
}

// TrendTable merges the price and demand series by year into export rows.
func (s *ExportService) TrendTable(metrics models.AreaMetrics) [][]string {
	demandByYear := make(map[int]float64, len(metrics.DemandTrend))
	for _, p := range metrics.DemandTrend {
		demandByYear[p.Year] = p.Value
	}

	rows := make([][]string, 0, len(metrics.PriceTrend)+1)
	rows = append(rows, []string{"year", "avg_price", "avg_demand"})
	for _, p := range metrics.PriceTrend {
		rows = append(rows, []string{
			strconv.Itoa(p.Year),
			formatFloat(p.Value),
			formatFloat(demandByYear[p.Year]),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
