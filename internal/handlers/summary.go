package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vidsum-backend/internal/models"
	"vidsum-backend/internal/repository"
	"vidsum-backend/internal/services"
)

// summaryPipeline is the slice of the orchestrator the handlers need.
type summaryPipeline interface {
	RunURL(ctx context.Context, url string, params models.SummarizeRequest) (*models.SummaryRecord, error)
	RunUpload(ctx context.Context, file io.Reader, filename, declaredMIME string, params models.SummarizeRequest) (*models.SummaryRecord, error)
}

type recordStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.SummaryRecord, error)
	List(ctx context.Context) ([]*models.SummaryRecord, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SummaryHandler struct {
	pipeline    summaryPipeline
	store       recordStore
	maxUploadMB int64
}

func NewSummaryHandler(pipeline summaryPipeline, store recordStore, maxUploadMB int64) *SummaryHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 100
	}
	return &SummaryHandler{
		pipeline:    pipeline,
		store:       store,
		maxUploadMB: maxUploadMB,
	}
}

// Summarize handles POST /summarize for YouTube URLs.
func (h *SummaryHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid request body", r))
		return
	}

	if req.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "URL is required", r))
		return
	}
	if _, err := services.ExtractVideoID(req.URL); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid YouTube URL", r))
		return
	}

	applyParamDefaults(&req)
	if err := services.ValidateSummaryParams(req.Format, req.Length, req.Language); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", err.Error(), r))
		return
	}

	record, err := h.pipeline.RunURL(r.Context(), req.URL, req)
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// SummarizeUpload handles POST /summarize/upload for multipart video files.
func (h *SummaryHandler) SummarizeUpload(w http.ResponseWriter, r *http.Request) {
	maxBytes := h.maxUploadMB * 1024 * 1024
	if r.ContentLength > maxBytes {
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResp("FILE_TOO_LARGE",
			fmt.Sprintf("File size exceeds %dMB limit", h.maxUploadMB), r))
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "No file provided", r))
		return
	}
	defer file.Close()

	if !services.SupportedUploadExt(header.Filename) {
		writeJSON(w, http.StatusBadRequest, errorResp("UNSUPPORTED_FORMAT", "Unsupported file format", r))
		return
	}

	req := models.SummarizeRequest{
		Format:           r.FormValue("format"),
		Length:           r.FormValue("length"),
		Language:         r.FormValue("language"),
		IncludeSentiment: r.FormValue("include_sentiment") == "true",
	}
	applyParamDefaults(&req)
	if err := services.ValidateSummaryParams(req.Format, req.Length, req.Language); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", err.Error(), r))
		return
	}

	declaredMIME := header.Header.Get("Content-Type")
	record, err := h.pipeline.RunUpload(r.Context(), file, header.Filename, declaredMIME, req)
	if err != nil {
		handlePipelineError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, record)
}

// List handles GET /summaries.
func (h *SummaryHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.store.List(r.Context())
	if err != nil {
		log.Printf("failed to list summaries: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch summaries", r))
		return
	}

	writeJSON(w, http.StatusOK, records)
}

// Get handles GET /summaries/{id}.
func (h *SummaryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	record, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Summary not found", r))
			return
		}
		log.Printf("failed to get summary %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch summary", r))
		return
	}

	writeJSON(w, http.StatusOK, record)
}

// Delete handles DELETE /summaries/{id}.
func (h *SummaryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	if err := h.store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Summary not found", r))
			return
		}
		log.Printf("failed to delete summary %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to delete summary", r))
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Download handles GET /download/{id}, serving the summary as a text or
// markdown attachment.
func (h *SummaryHandler) Download(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	record, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Summary not found", r))
			return
		}
		log.Printf("failed to get summary %s: %v", id, err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to fetch summary", r))
		return
	}

	format := r.URL.Query().Get("format")
	contentType := "text/plain; charset=utf-8"
	if format != "md" {
		format = "txt"
	} else {
		contentType = "text/markdown; charset=utf-8"
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("summary_%s.%s", record.ID, format)))
	io.WriteString(w, renderDownload(record))
}

// Health handles GET /health. It touches nothing in the pipeline.
func (h *SummaryHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func renderDownload(rec *models.SummaryRecord) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", rec.Metadata.Title)
	fmt.Fprintf(&b, "Generated: %s\n\n", rec.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(&b, "Summary:\n%s\n\n", rec.Summary)
	fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(rec.Keywords, ", "))
	if rec.Sentiment != nil {
		fmt.Fprintf(&b, "\nSentiment: %s (Score: %.2f)\n", rec.Sentiment.Overall, rec.Sentiment.Compound)
	}
	return b.String()
}

func applyParamDefaults(req *models.SummarizeRequest) {
	if req.Format == "" {
		req.Format = models.FormatBulletPoints
	}
	if req.Length == "" {
		req.Length = models.LengthMedium
	}
	if req.Language == "" {
		req.Language = "english"
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Invalid summary ID", r))
		return uuid.Nil, false
	}
	return id, true
}

func handlePipelineError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, services.ErrConfiguration):
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", err.Error(), r))
	case errors.Is(err, services.ErrAcquisition):
		log.Printf("acquisition error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("ACQUISITION_FAILED", "Could not acquire a transcript for this video", r))
	case errors.Is(err, services.ErrSummarization):
		log.Printf("summarization error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("SUMMARIZATION_FAILED", "Could not generate a summary for this video", r))
	default:
		log.Printf("pipeline error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Request failed", r))
	}
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}
