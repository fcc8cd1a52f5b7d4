package service

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog"

	"realestate-backend/internal/analysis"
	"realestate-backend/internal/dataset"
	"realestate-backend/internal/models"
)

// tableLimit caps the record listing attached to a payload.
const tableLimit = 20

// Orchestrator composes the classifier, dataset accessor, analytics engine
// and summary generator into the end-to-end query path.
type Orchestrator struct {
	store      *dataset.Store
	classifier *Classifier
	summaries  *SummaryGenerator
	logger     zerolog.Logger
}

func NewOrchestrator(store *dataset.Store, classifier *Classifier, summaries *SummaryGenerator, logger zerolog.Logger) *Orchestrator {
	return &Orchestrator{
		store:      store,
		classifier: classifier,
		summaries:  summaries,
		logger:     logger,
	}
}

// Handle processes one raw query start to finish. It fails only when no
// dataset has been ingested; unintelligible input classifies as Unknown and
// still yields a payload. Identical queries against an unchanged dataset
// produce identical payloads. The API layer stamps the query id.
func (o *Orchestrator) Handle(rawQuery string) (*models.SummaryPayload, error) {
	snap, err := o.store.Snapshot()
	if err != nil {
		return nil, err
	}

	intent := o.classifier.Classify(rawQuery, snap)
	o.logger.Debug().
		Str("intent", string(intent.Kind)).
		Strs("areas", intent.Areas).
		Int("year_span", intent.YearSpan).
		Msg("query classified")

	result := models.AnalyticsResult{PerArea: make(map[string]models.AreaMetrics, len(intent.Areas))}
	for _, area := range intent.Areas {
		records := snap.RecordsFor(area, o.yearRange(snap, area, intent))
		result.PerArea[area] = analysis.Metrics(records)
	}

	if intent.Kind == models.IntentCompare && len(intent.Areas) == 2 {
		cmp := analysis.Compare(
			intent.Areas[0], result.PerArea[intent.Areas[0]],
			intent.Areas[1], result.PerArea[intent.Areas[1]],
		)
		result.Comparison = &cmp
	}

	payload := &models.SummaryPayload{
		Intent:  intent.Kind,
		Areas:   intent.Areas,
		Result:  result,
		Chart:   buildChart(intent, result),
		Table:   o.tableRows(snap, intent),
		Summary: o.summaries.Generate(intent, result, snap.Areas()),
		Query:   rawQuery,
	}
	return payload, nil
}

// yearRange translates a requested year span into a range over the area's
// latest available years. Zero span means the full range.
func (o *Orchestrator) yearRange(snap *dataset.Snapshot, area string, intent models.Intent) *models.YearRange {
	if intent.YearSpan <= 0 {
		return nil
	}
	all := snap.RecordsFor(area, nil)
	if len(all) == 0 {
		return nil
	}
	last := all[len(all)-1].Year
	return &models.YearRange{From: last - intent.YearSpan + 1, To: last}
}

// tableRows returns a limited record listing for the first resolved area.
func (o *Orchestrator) tableRows(snap *dataset.Snapshot, intent models.Intent) []models.Record {
	if len(intent.Areas) == 0 {
		return []models.Record{}
	}
	rows := snap.RecordsFor(intent.Areas[0], nil)
	if len(rows) > tableLimit {
		rows = rows[:tableLimit]
	}
	return rows
}

// buildChart assembles the chart-ready series for the intent: the demand
// series for demand queries, the price series otherwise. Unknown queries
// carry no chart.
func buildChart(intent models.Intent, result models.AnalyticsResult) *models.ChartData {
	if intent.Kind == models.IntentUnknown || len(intent.Areas) == 0 {
		return nil
	}

	chartType := "price"
	if intent.Kind == models.IntentDemand {
		chartType = "demand"
	}

	yearSet := make(map[int]bool)
	for _, area := range intent.Areas {
		for _, p := range trendFor(result.PerArea[area], chartType) {
			yearSet[p.Year] = true
		}
	}
	labels := make([]int, 0, len(yearSet))
	for year := range yearSet {
		labels = append(labels, year)
	}
	sort.Ints(labels)

	chart := &models.ChartData{
		Title:  chartTitle(intent, chartType),
		Type:   chartType,
		Labels: labels,
	}
	for _, area := range intent.Areas {
		points := trendFor(result.PerArea[area], chartType)
		byYear := make(map[int]float64, len(points))
		for _, p := range points {
			byYear[p.Year] = p.Value
		}
		data := make([]models.Metric, len(labels))
		for i, year := range labels {
			if v, ok := byYear[year]; ok {
				data[i] = models.DefinedMetric(v)
			} else {
				data[i] = models.UndefinedMetric()
			}
		}
		chart.Datasets = append(chart.Datasets, models.ChartSeries{Label: area, Data: data})
	}
	return chart
}

func trendFor(m models.AreaMetrics, chartType string) []models.TrendPoint {
	if chartType == "demand" {
		return m.DemandTrend
	}
	return m.PriceTrend
}

func chartTitle(intent models.Intent, chartType string) string {
	label := "Price"
	if chartType == "demand" {
		label = "Demand"
	}
	if intent.Kind == models.IntentCompare && len(intent.Areas) == 2 {
		return fmt.Sprintf("%s Comparison: %s vs %s", label, intent.Areas[0], intent.Areas[1])
	}
	return fmt.Sprintf("%s Trend for %s", label, intent.Areas[0])
}
