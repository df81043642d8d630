// Package api exposes the manual ingestion trigger and the question
// endpoint. Responses always carry a success flag; failures add an error
// message but never leak per-item details.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/riskwire/riskwire/internal/answer"
	"github.com/riskwire/riskwire/internal/core/domain"
	apperrors "github.com/riskwire/riskwire/internal/core/errors"
)

// Runner triggers one ingestion run. Satisfied by the pipeline orchestrator.
type Runner interface {
	Run(ctx context.Context) (*domain.BatchRunLog, error)
}

// Answerer answers free-text questions. Satisfied by the answer service.
type Answerer interface {
	Ask(ctx context.Context, question string) (*answer.Result, error)
}

// EngagementRecorder adds reader signals to an article's counters.
type EngagementRecorder interface {
	RecordEngagement(ctx context.Context, articleID string, delta domain.Engagement) error
}

// Handler routes the API surface.
type Handler struct {
	runner     Runner
	answerer   Answerer
	engagement EngagementRecorder
	logger     *zerolog.Logger
	mux        *http.ServeMux
}

func NewHandler(runner Runner, answerer Answerer, engagement EngagementRecorder, logger *zerolog.Logger) *Handler {
	h := &Handler{
		runner:     runner,
		answerer:   answerer,
		engagement: engagement,
		logger:     logger,
		mux:        http.NewServeMux(),
	}

	h.mux.HandleFunc("POST /ingest", h.handleIngest)
	h.mux.HandleFunc("POST /ask", h.handleAsk)
	h.mux.HandleFunc("POST /engagement", h.handleEngagement)

	return h
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

type ingestResponse struct {
	Success   bool   `json:"success"`
	Processed int    `json:"processed"`
	Skipped   int    `json:"skipped"`
	Errors    int    `json:"errors"`
	Status    string `json:"status"`
}

func (h *Handler) handleIngest(w http.ResponseWriter, r *http.Request) {
	run, err := h.runner.Run(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("Manual ingestion trigger failed")
		writeError(w, http.StatusInternalServerError, "ingestion run failed")

		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{
		Success:   true,
		Processed: run.Processed,
		Skipped:   run.Skipped,
		Errors:    run.Errors,
		Status:    run.Status,
	})
}

type askRequest struct {
	Question string `json:"question"`
}

type askResponse struct {
	Success bool     `json:"success"`
	Answer  string   `json:"answer"`
	Sources []string `json:"sources"`
}

func (h *Handler) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")

		return
	}

	result, err := h.answerer.Ask(r.Context(), req.Question)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "question is required")

			return
		}

		h.logger.Error().Err(err).Msg("Question answering failed")
		writeError(w, http.StatusInternalServerError, "failed to answer question")

		return
	}

	writeJSON(w, http.StatusOK, askResponse{
		Success: true,
		Answer:  result.Answer,
		Sources: result.Sources,
	})
}

type engagementRequest struct {
	ArticleID    string  `json:"articleId"`
	Clicks       int     `json:"clicks"`
	Saves        int     `json:"saves"`
	Shares       int     `json:"shares"`
	TimeSpentSec float64 `json:"timeSpentSec"`
}

func (h *Handler) handleEngagement(w http.ResponseWriter, r *http.Request) {
	var req engagementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ArticleID == "" {
		writeError(w, http.StatusBadRequest, "articleId is required")

		return
	}

	err := h.engagement.RecordEngagement(r.Context(), req.ArticleID, domain.Engagement{
		Clicks:       req.Clicks,
		Saves:        req.Saves,
		Shares:       req.Shares,
		TimeSpentSec: req.TimeSpentSec,
	})
	if err != nil {
		h.logger.Error().Err(err).Str("id", req.ArticleID).Msg("Engagement update failed")
		writeError(w, http.StatusInternalServerError, "failed to record engagement")

		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"success": false, "error": message})
}
