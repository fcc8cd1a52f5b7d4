package models

// QueryRequest is the body of POST /api/chat/query.
type QueryRequest struct {
	Query string `json:"query"`
}

// ChartSeries is one dataset of a chart. Years the series has no data for
// carry an undefined point, which marshals as null.
type ChartSeries struct {
	Label string   `json:"label"`
	Data  []Metric `json:"data"`
}

// ChartData is the chart-ready payload for the frontend.
// Labels are the union of years across all series, ascending.
type ChartData struct {
	Title    string        `json:"title"`
	Type     string        `json:"type"` // "price" or "demand"
	Labels   []int         `json:"labels"`
	Datasets []ChartSeries `json:"datasets"`
}

// SummaryPayload is the full response to a chat query.
type SummaryPayload struct {
	QueryID string          `json:"query_id,omitempty"`
	Intent  IntentKind      `json:"intent"`
	Areas   []string        `json:"areas"`
	Result  AnalyticsResult `json:"result"`
	Chart   *ChartData      `json:"chart,omitempty"`
	Table   []Record        `json:"table"`
	Summary string          `json:"summary"`
	Query   string          `json:"query"`
}

// UploadResponse is returned after a successful dataset upload.
type UploadResponse struct {
	Message string   `json:"message"`
	Records int      `json:"records"`
	Areas   []string `json:"areas"`
}

// AreasResponse is returned by GET /api/chat/areas.
type AreasResponse struct {
	Areas []string `json:"areas"`
	Count int      `json:"count"`
}

// DownloadRequest is the body of POST /api/chat/download. Format selects
// the export shape: "records" (default) for the raw rows, "trends" for the
// yearly averages.
type DownloadRequest struct {
	Area   string `json:"area"`
	Format string `json:"format,omitempty"`
}

// HealthResponse is returned by GET /api/chat/health.
type HealthResponse struct {
	Status     string `json:"status"`
	DataLoaded bool   `json:"data_loaded"`
	AreasCount int    `json:"areas_count"`
}

// ErrorResponse wraps a transport-level error message.
type ErrorResponse struct {
	Error string `json:"error"`
}
