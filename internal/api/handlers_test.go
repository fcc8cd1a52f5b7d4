package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realestate-backend/internal/dataset"
	"realestate-backend/internal/models"
	"realestate-backend/internal/service"
)

func newTestRouter(records []models.Record) (chi.Router, *dataset.Store) {
	store := dataset.NewStore()
	if records != nil {
		store.Replace(dataset.NewSnapshot(records))
	}
	logger := zerolog.Nop()
	orch := service.NewOrchestrator(store, service.NewClassifier(), service.NewSummaryGenerator(), logger)
	handler := NewHandler(store, orch, service.NewExportService(), logger)

	r := chi.NewRouter()
	handler.RegisterRoutes(r)
	return r, store
}

func apiRecords() []models.Record {
	return []models.Record{
		{Area: "Wakad", Year: 2021, Price: 5000000, Demand: 30},
		{Area: "Wakad", Year: 2022, Price: 5300000, Demand: 35},
		{Area: "Aundh", Year: 2021, Price: 7000000, Demand: 55},
	}
}

func TestQueryEndpoint(t *testing.T) {
	r, _ := newTestRouter(apiRecords())

	body := bytes.NewBufferString(`{"query": "Analyze Wakad"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/query", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload models.SummaryPayload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	assert.Equal(t, models.IntentAnalyze, payload.Intent)
	assert.Equal(t, []string{"Wakad"}, payload.Areas)
	assert.NotEmpty(t, payload.QueryID)
	assert.NotEmpty(t, payload.Summary)
}

func TestQueryWithoutDatasetIs503(t *testing.T) {
	r, _ := newTestRouter(nil)

	body := bytes.NewBufferString(`{"query": "Analyze Wakad"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/query", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestQueryEmptyBodyIs400(t *testing.T) {
	r, _ := newTestRouter(apiRecords())

	body := bytes.NewBufferString(`{"query": "   "}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/query", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestQueryGibberishIs200Unknown(t *testing.T) {
	r, _ := newTestRouter(apiRecords())

	body := bytes.NewBufferString(`{"query": "asdf qwer"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/query", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var payload models.SummaryPayload
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&payload))
	assert.Equal(t, models.IntentUnknown, payload.Intent)
}

func TestAreasEndpoint(t *testing.T) {
	r, _ := newTestRouter(apiRecords())

	req := httptest.NewRequest(http.MethodGet, "/api/chat/areas", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.AreasResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, []string{"Wakad", "Aundh"}, resp.Areas)
	assert.Equal(t, 2, resp.Count)
}

func TestHealthEndpoint(t *testing.T) {
	r, _ := newTestRouter(apiRecords())

	req := httptest.NewRequest(http.MethodGet, "/api/chat/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.True(t, resp.DataLoaded)
	assert.Equal(t, 2, resp.AreasCount)
}

func TestHealthEndpointWithoutDataset(t *testing.T) {
	r, _ := newTestRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/chat/health", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.HealthResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "unhealthy", resp.Status)
	assert.False(t, resp.DataLoaded)
}

func TestUploadReplacesDataset(t *testing.T) {
	r, store := newTestRouter(apiRecords())

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "data.csv")
	require.NoError(t, err)
	part.Write([]byte("Area,Year,Price,Demand\nKharadi,2022,5500000,42\n"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/chat/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.UploadResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 1, resp.Records)
	assert.Equal(t, []string{"Kharadi"}, resp.Areas)

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"Kharadi"}, snap.Areas())
}

func TestUploadRejectsNonCSV(t *testing.T) {
	r, _ := newTestRouter(nil)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "data.xlsx")
	require.NoError(t, err)
	part.Write([]byte("not a csv"))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/chat/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// The default download is the area's raw records.
func TestDownloadRecordsByDefault(t *testing.T) {
	r, _ := newTestRouter(apiRecords())

	body := bytes.NewBufferString(`{"area": "wakad"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/download", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Wakad_data.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "area,year,price,demand", lines[0])
	assert.Equal(t, "Wakad,2021,5000000.00,30.00", lines[1])
	assert.Equal(t, "Wakad,2022,5300000.00,35.00", lines[2])
}

func TestDownloadTrendsFormat(t *testing.T) {
	r, _ := newTestRouter(apiRecords())

	body := bytes.NewBufferString(`{"area": "wakad", "format": "trends"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/download", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "Wakad_trends.csv")

	lines := strings.Split(strings.TrimSpace(rec.Body.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "year,avg_price,avg_demand", lines[0])
	assert.Equal(t, "2021,5000000.00,30.00", lines[1])
}

func TestDownloadUnsupportedFormatIs400(t *testing.T) {
	r, _ := newTestRouter(apiRecords())

	body := bytes.NewBufferString(`{"area": "wakad", "format": "xlsx"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/download", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDownloadUnknownAreaIs404(t *testing.T) {
	r, _ := newTestRouter(apiRecords())

	body := bytes.NewBufferString(`{"area": "Shivajinagar"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/chat/download", body)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
