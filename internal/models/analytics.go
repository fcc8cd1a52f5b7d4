package models

// TrendPoint is one (year, value) point of a per-area series.
// Multiple records sharing a year are averaged into a single point.
type TrendPoint struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

// AreaMetrics holds the computed statistics for a single area.
type AreaMetrics struct {
	AveragePrice Metric       `json:"avg_price"`
	MinPrice     Metric       `json:"min_price"`
	MaxPrice     Metric       `json:"max_price"`
	GrowthRate   Metric       `json:"growth_pct"`
	DemandScore  Metric       `json:"avg_demand"`
	MinDemand    Metric       `json:"min_demand"`
	MaxDemand    Metric       `json:"max_demand"`
	PriceTrend   []TrendPoint `json:"price_trend"`
	DemandTrend  []TrendPoint `json:"demand_trend"`
	RecordCount  int          `json:"record_count"`
	FirstYear    int          `json:"first_year,omitempty"`
	LastYear     int          `json:"last_year,omitempty"`
}

// Comparison holds the derived deltas between two areas. Deltas are the
// difference of the independently computed per-area metrics (A minus B);
// a delta is undefined whenever either side is undefined.
type Comparison struct {
	AreaA string `json:"area_a"`
	AreaB string `json:"area_b"`

	PriceDelta  Metric `json:"price_delta"`
	GrowthDelta Metric `json:"growth_delta"`
	DemandDelta Metric `json:"demand_delta"`

	// Leaders name the area with the higher value per metric;
	// empty when the metric is undefined on either side or tied.
	PriceLeader  string `json:"price_leader,omitempty"`
	GrowthLeader string `json:"growth_leader,omitempty"`
	DemandLeader string `json:"demand_leader,omitempty"`
}

// AnalyticsResult maps each resolved area to its metrics, plus the pairwise
// comparison when the query compared two areas.
type AnalyticsResult struct {
	PerArea    map[string]AreaMetrics `json:"per_area"`
	Comparison *Comparison            `json:"comparison,omitempty"`
}
