// Package analysis computes per-area metrics and pairwise comparisons over
// dataset records. Every function is pure: same records in, same metrics
// out, no side effects.
package analysis

import (
	"sort"

	"realestate-backend/internal/models"
)

// AveragePrice is the arithmetic mean of the price field.
// Undefined over zero records.
func AveragePrice(records []models.Record) models.Metric {
	if len(records) == 0 {
		return models.UndefinedMetric()
	}
	var total float64
	for _, rec := range records {
		total += rec.Price
	}
	return models.DefinedMetric(total / float64(len(records)))
}

// DemandScore is the arithmetic mean of the demand indicator.
// Undefined over zero records.
func DemandScore(records []models.Record) models.Metric {
	if len(records) == 0 {
		return models.UndefinedMetric()
	}
	var total float64
	for _, rec := range records {
		total += rec.Demand
	}
	return models.DefinedMetric(total / float64(len(records)))
}

// PriceTrend returns one point per year present, years ascending.
// Records sharing a year are averaged.
func PriceTrend(records []models.Record) []models.TrendPoint {
	return yearlyMeans(records, func(r models.Record) float64 { return r.Price })
}

// DemandTrend returns the yearly mean demand series, years ascending.
func DemandTrend(records []models.Record) []models.TrendPoint {
	return yearlyMeans(records, func(r models.Record) float64 { return r.Demand })
}

// GrowthRate is the percentage price change from the earliest to the latest
// year present, computed over yearly mean prices. It requires at least two
// distinct years; otherwise it is undefined, which is distinct from zero
// growth.
func GrowthRate(records []models.Record) models.Metric {
	trend := PriceTrend(records)
	if len(trend) < 2 {
		return models.UndefinedMetric()
	}
	earliest := trend[0].Value
	latest := trend[len(trend)-1].Value
	if earliest == 0 {
		return models.UndefinedMetric()
	}
	return models.DefinedMetric((latest - earliest) / earliest * 100)
}

// Metrics bundles every per-area statistic for a record set.
func Metrics(records []models.Record) models.AreaMetrics {
	m := models.AreaMetrics{
		AveragePrice: AveragePrice(records),
		GrowthRate:   GrowthRate(records),
		DemandScore:  DemandScore(records),
		PriceTrend:   PriceTrend(records),
		DemandTrend:  DemandTrend(records),
		RecordCount:  len(records),
	}

	if len(records) == 0 {
		m.MinPrice = models.UndefinedMetric()
		m.MaxPrice = models.UndefinedMetric()
		m.MinDemand = models.UndefinedMetric()
		m.MaxDemand = models.UndefinedMetric()
		return m
	}

	minPrice, maxPrice := records[0].Price, records[0].Price
	minDemand, maxDemand := records[0].Demand, records[0].Demand
	for _, rec := range records[1:] {
		if rec.Price < minPrice {
			minPrice = rec.Price
		}
		if rec.Price > maxPrice {
			maxPrice = rec.Price
		}
		if rec.Demand < minDemand {
			minDemand = rec.Demand
		}
		if rec.Demand > maxDemand {
			maxDemand = rec.Demand
		}
	}
	m.MinPrice = models.DefinedMetric(minPrice)
	m.MaxPrice = models.DefinedMetric(maxPrice)
	m.MinDemand = models.DefinedMetric(minDemand)
	m.MaxDemand = models.DefinedMetric(maxDemand)

	if trend := m.PriceTrend; len(trend) > 0 {
		m.FirstYear = trend[0].Year
		m.LastYear = trend[len(trend)-1].Year
	}
	return m
}

// Compare derives deltas and per-metric leaders from two independently
// computed AreaMetrics. It never recomputes analytics: comparison numbers
// are exactly the single-area numbers subtracted.
func Compare(areaA string, a models.AreaMetrics, areaB string, b models.AreaMetrics) models.Comparison {
	cmp := models.Comparison{AreaA: areaA, AreaB: areaB}

	cmp.PriceDelta, cmp.PriceLeader = delta(areaA, a.AveragePrice, areaB, b.AveragePrice)
	cmp.GrowthDelta, cmp.GrowthLeader = delta(areaA, a.GrowthRate, areaB, b.GrowthRate)
	cmp.DemandDelta, cmp.DemandLeader = delta(areaA, a.DemandScore, areaB, b.DemandScore)

	return cmp
}

// delta returns a-b and the leading area, undefined/empty when either side
// is undefined.
func delta(areaA string, a models.Metric, areaB string, b models.Metric) (models.Metric, string) {
	if !a.Valid || !b.Valid {
		return models.UndefinedMetric(), ""
	}
	d := a.Value - b.Value
	switch {
	case d > 0:
		return models.DefinedMetric(d), areaA
	case d < 0:
		return models.DefinedMetric(d), areaB
	default:
		return models.DefinedMetric(0), ""
	}
}

func yearlyMeans(records []models.Record, value func(models.Record) float64) []models.TrendPoint {
	if len(records) == 0 {
		return nil
	}

	sums := make(map[int]float64)
	counts := make(map[int]int)
	for _, rec := range records {
		sums[rec.Year] += value(rec)
		counts[rec.Year]++
	}

	years := make([]int, 0, len(sums))
	for year := range sums {
		years = append(years, year)
	}
	sort.Ints(years)

	points := make([]models.TrendPoint, 0, len(years))
	for _, year := range years {
		points = append(points, models.TrendPoint{
			Year:  year,
			Value: sums[year] / float64(counts[year]),
		})
	}
	return points
}
