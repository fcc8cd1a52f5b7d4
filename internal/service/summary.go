package service

import (
	"fmt"
	"strings"

	"realestate-backend/internal/models"
)

// insufficientData is the fixed phrase substituted wherever a template
// references an undefined metric.
const insufficientData = "insufficient data"

// unknownFallback opens the fixed summary for unclassifiable queries.
const unknownFallback = "I couldn't identify any area in your query."

// SummaryGenerator renders a templated natural-language summary from an
// intent and its analytics result. Template selection is keyed purely by
// the intent tag; identical input always produces identical text.
type SummaryGenerator struct{}

func NewSummaryGenerator() *SummaryGenerator {
	return &SummaryGenerator{}
}

// Generate produces the summary text. availableAreas feeds the Unknown
// fallback suggestion list; it is read-only.
func (g *SummaryGenerator) Generate(intent models.Intent, result models.AnalyticsResult, availableAreas []string) string {
	switch intent.Kind {
	case models.IntentCompare:
		return g.compareSummary(intent, result)
	case models.IntentTrend:
		return g.trendSummary(intent, result)
	case models.IntentDemand:
		return g.demandSummary(intent, result)
	case models.IntentAnalyze:
		return g.analyzeSummary(intent, result)
	default:
		return g.unknownSummary(availableAreas)
	}
}

func (g *SummaryGenerator) analyzeSummary(intent models.Intent, result models.AnalyticsResult) string {
	area := intent.Areas[0]
	m := result.PerArea[area]

	var b strings.Builder
	fmt.Fprintf(&b, "Real estate analysis for %s, based on %d records%s.\n",
		area, m.RecordCount, yearSpanSuffix(m))
	fmt.Fprintf(&b, "Average price: %s (range %s - %s).\n",
		formatPrice(m.AveragePrice), formatPrice(m.MinPrice), formatPrice(m.MaxPrice))
	b.WriteString(growthSentence(area, m.GrowthRate))
	b.WriteString(demandSentence(m.DemandScore))
	return b.String()
}

func (g *SummaryGenerator) trendSummary(intent models.Intent, result models.AnalyticsResult) string {
	area := intent.Areas[0]
	m := result.PerArea[area]

	var b strings.Builder
	fmt.Fprintf(&b, "Price trend for %s%s.\n", area, yearSpanSuffix(m))
	if len(m.PriceTrend) == 0 {
		fmt.Fprintf(&b, "Trend: %s.\n", insufficientData)
	} else {
		first := m.PriceTrend[0]
		last := m.PriceTrend[len(m.PriceTrend)-1]
		fmt.Fprintf(&b, "Yearly average moved from %s in %d to %s in %d.\n",
			formatPrice(models.DefinedMetric(first.Value)), first.Year,
			formatPrice(models.DefinedMetric(last.Value)), last.Year)
	}
	b.WriteString(growthSentence(area, m.GrowthRate))
	return b.String()
}

func (g *SummaryGenerator) demandSummary(intent models.Intent, result models.AnalyticsResult) string {
	area := intent.Areas[0]
	m := result.PerArea[area]

	var b strings.Builder
	fmt.Fprintf(&b, "Demand analysis for %s, based on %d records%s.\n",
		area, m.RecordCount, yearSpanSuffix(m))
	b.WriteString(demandSentence(m.DemandScore))
	if m.MinDemand.Valid && m.MaxDemand.Valid {
		fmt.Fprintf(&b, "Demand range: %.2f - %.2f.\n", m.MinDemand.Value, m.MaxDemand.Value)
	} else {
		fmt.Fprintf(&b, "Demand range: %s.\n", insufficientData)
	}
	return b.String()
}

func (g *SummaryGenerator) compareSummary(intent models.Intent, result models.AnalyticsResult) string {
	areaA, areaB := intent.Areas[0], intent.Areas[1]

	var b strings.Builder
	fmt.Fprintf(&b, "Comparison: %s vs %s.\n", areaA, areaB)
	for _, area := range intent.Areas {
		m := result.PerArea[area]
		fmt.Fprintf(&b, "%s: average price %s, growth %s, demand %s.\n",
			area, formatPrice(m.AveragePrice), formatPercent(m.GrowthRate),
			formatScore(m.DemandScore))
	}

	if cmp := result.Comparison; cmp != nil {
		b.WriteString(leaderSentence("price", cmp.PriceLeader, cmp.PriceDelta, formatPrice))
		b.WriteString(leaderSentence("growth", cmp.GrowthLeader, cmp.GrowthDelta, formatPercent))
		b.WriteString(leaderSentence("demand", cmp.DemandLeader, cmp.DemandDelta, formatScore))
	}
	return b.String()
}

func (g *SummaryGenerator) unknownSummary(availableAreas []string) string {
	suggestion := "No areas loaded"
	if len(availableAreas) > 0 {
		limit := 5
		if len(availableAreas) < limit {
			limit = len(availableAreas)
		}
		suggestion = strings.Join(availableAreas[:limit], ", ")
	}
	return fmt.Sprintf("%s Available areas: %s. Try asking about a specific area, for example 'Analyze Wakad'.",
		unknownFallback, suggestion)
}

// ============================================================================
// Sentence helpers
// ============================================================================

func growthSentence(area string, growth models.Metric) string {
	if !growth.Valid {
		return fmt.Sprintf("Growth trend: %s.\n", insufficientData)
	}
	switch {
	case growth.Value > 5:
		return fmt.Sprintf("%s shows strong growth with %.2f%% price appreciation.\n", area, growth.Value)
	case growth.Value > 0:
		return fmt.Sprintf("%s shows steady growth with a %.2f%% price increase.\n", area, growth.Value)
	case growth.Value == 0:
		return fmt.Sprintf("Prices in %s have remained stable.\n", area)
	default:
		return fmt.Sprintf("%s has experienced a price decline of %.2f%%.\n", area, -growth.Value)
	}
}

func demandSentence(demand models.Metric) string {
	if !demand.Valid {
		return fmt.Sprintf("Demand level: %s.\n", insufficientData)
	}
	level := "Low"
	switch {
	case demand.Value > 70:
		level = "High"
	case demand.Value > 40:
		level = "Moderate"
	}
	return fmt.Sprintf("Demand level: %s (index %.2f).\n", level, demand.Value)
}

func leaderSentence(metric, leader string, d models.Metric, format func(models.Metric) string) string {
	if !d.Valid {
		return fmt.Sprintf("Leading on %s: %s.\n", metric, insufficientData)
	}
	if leader == "" {
		return fmt.Sprintf("Both areas are tied on %s.\n", metric)
	}
	delta := d
	if delta.Value < 0 {
		delta = models.DefinedMetric(-delta.Value)
	}
	return fmt.Sprintf("%s leads on %s by %s.\n", leader, metric, format(delta))
}

func yearSpanSuffix(m models.AreaMetrics) string {
	if m.FirstYear == 0 || m.FirstYear == m.LastYear {
		return ""
	}
	return fmt.Sprintf(" (%d-%d)", m.FirstYear, m.LastYear)
}

// ============================================================================
// Value formatting
// ============================================================================

func formatPrice(m models.Metric) string {
	if !m.Valid {
		return insufficientData
	}
	return "Rs " + groupDigits(int64(m.Value + 0.5))
}

func formatPercent(m models.Metric) string {
	if !m.Valid {
		return insufficientData
	}
	return fmt.Sprintf("%.2f%%", m.Value)
}

func formatScore(m models.Metric) string {
	if !m.Valid {
		return insufficientData
	}
	return fmt.Sprintf("%.2f", m.Value)
}

func groupDigits(n int64) string {
	if n < 0 {
		return "-" + groupDigits(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return fmt.Sprintf("%s,%03d", groupDigits(n/1000), n%1000)
}
