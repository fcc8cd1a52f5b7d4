package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"realestate-backend/internal/analysis"
	"realestate-backend/internal/dataset"
	"realestate-backend/internal/models"
	"realestate-backend/internal/service"
)

// MaxUploadSize caps dataset uploads.
const MaxUploadSize = 50 * 1024 * 1024 // 50MB

type Handler struct {
	Store        *dataset.Store
	Orchestrator *service.Orchestrator
	Export       *service.ExportService
	Logger       zerolog.Logger
}

func NewHandler(store *dataset.Store, orch *service.Orchestrator, export *service.ExportService, logger zerolog.Logger) *Handler {
	return &Handler{
		Store:        store,
		Orchestrator: orch,
		Export:       export,
		Logger:       logger,
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/api/chat/health", h.HealthCheck)
	r.Post("/api/chat/query", h.Query)
	r.Get("/api/chat/areas", h.ListAreas)
	r.Post("/api/chat/upload", h.Upload)
	r.Post("/api/chat/download", h.Download)
}

// ============================================================================
// Health
// ============================================================================

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{Status: "unhealthy"}
	if snap, err := h.Store.Snapshot(); err == nil {
		resp.Status = "healthy"
		resp.DataLoaded = true
		resp.AreasCount = len(snap.Areas())
	}
	writeJSON(w, http.StatusOK, resp)
}

// ============================================================================
// Query
// ============================================================================

// Query runs one chat query through the orchestrator. Unrecognized input is
// a normal 200 response with an Unknown intent; only a missing dataset is
// an error here.
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	var req models.QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	query := strings.TrimSpace(req.Query)
	if query == "" {
		writeError(w, http.StatusBadRequest, "Query is required")
		return
	}

	payload, err := h.Orchestrator.Handle(query)
	if err != nil {
		if errors.Is(err, dataset.ErrDatasetNotLoaded) {
			writeError(w, http.StatusServiceUnavailable, "No dataset loaded. Upload one first.")
			return
		}
		h.Logger.Error().Err(err).Str("query", query).Msg("query failed")
		writeError(w, http.StatusInternalServerError, "Error processing query")
		return
	}

	payload.QueryID = uuid.NewString()
	writeJSON(w, http.StatusOK, payload)
}

// ============================================================================
// Areas
// ============================================================================

func (h *Handler) ListAreas(w http.ResponseWriter, r *http.Request) {
	snap, err := h.Store.Snapshot()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "No dataset loaded. Upload one first.")
		return
	}
	areas := snap.Areas()
	writeJSON(w, http.StatusOK, models.AreasResponse{Areas: areas, Count: len(areas)})
}

// ============================================================================
// Upload
// ============================================================================

// Upload ingests a CSV dataset and atomically replaces the active snapshot.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(MaxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "File too large")
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file uploaded")
		return
	}
	defer file.Close()

	if !strings.HasSuffix(strings.ToLower(header.Filename), ".csv") {
		writeError(w, http.StatusBadRequest, "Only CSV files are allowed")
		return
	}

	records, err := dataset.ParseCSV(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Failed to parse CSV: %v", err))
		return
	}

	snap := dataset.NewSnapshot(records)
	h.Store.Replace(snap)

	h.Logger.Info().
		Str("filename", header.Filename).
		Int("records", snap.Len()).
		Int("areas", len(snap.Areas())).
		Msg("dataset replaced")

	writeJSON(w, http.StatusOK, models.UploadResponse{
		Message: fmt.Sprintf("File '%s' uploaded successfully", header.Filename),
		Records: snap.Len(),
		Areas:   snap.Areas(),
	})
}

// ============================================================================
// Download
// ============================================================================

// Download exports an area's data as a CSV attachment: the raw records by
// default, or the yearly trend series when format "trends" is requested.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	var req models.DownloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if strings.TrimSpace(req.Area) == "" {
		writeError(w, http.StatusBadRequest, "Area is required")
		return
	}

	snap, err := h.Store.Snapshot()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "No dataset loaded. Upload one first.")
		return
	}

	area, ok := snap.Resolve(req.Area)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("No data found for %s", req.Area))
		return
	}

	records := snap.RecordsFor(area, nil)

	var rows [][]string
	filename := area + "_data.csv"
	switch strings.ToLower(strings.TrimSpace(req.Format)) {
	case "", "records":
		rows = h.Export.RecordTable(records)
	case "trends":
		rows = h.Export.TrendTable(analysis.Metrics(records))
		filename = area + "_trends.csv"
	default:
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported format %q", req.Format))
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))

	writer := csv.NewWriter(w)
	if err := writer.WriteAll(rows); err != nil {
		h.Logger.Error().Err(err).Str("area", area).Msg("csv export failed")
	}
}

// ============================================================================
// Helpers
// ============================================================================

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
