package models

// IntentKind is the classified purpose of a query.
type IntentKind string

const (
	IntentAnalyze IntentKind = "analyze"
	IntentCompare IntentKind = "compare"
	IntentTrend   IntentKind = "trend"
	IntentDemand  IntentKind = "demand"
	IntentUnknown IntentKind = "unknown"
)

// Intent is the structured result of classifying a raw query.
// It is created once per query and never mutated afterwards.
type Intent struct {
	Kind     IntentKind `json:"kind"`
	Areas    []string   `json:"areas"`
	YearSpan int        `json:"year_span,omitempty"` // 0 = full available range
	RawQuery string     `json:"raw_query"`
}
