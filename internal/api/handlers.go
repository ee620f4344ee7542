package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"strconv"

	"github.com/fuikk/fuikk/core"
	"github.com/fuikk/fuikk/internal/contract"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type handler struct {
	baseCfg *contract.Config
	mgr     contract.CacheManager
}

// errorBody is the JSON shape of every failed request.
type errorBody struct {
	Error string `json:"error"`
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func badRequest(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
}

// respondError maps pipeline errors onto status codes.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, core.ErrCourseNotFound), errors.Is(err, fs.ErrNotExist):
		status = http.StatusNotFound
	case errors.Is(err, core.ErrNoGeneralQuestion):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, core.ErrHistoryDisabled):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		contract.Logger().Error("request failed", zap.String("path", r.URL.Path), zap.Error(err))
	}
	respondJSON(w, status, errorBody{Error: err.Error()})
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) summary(w http.ResponseWriter, r *http.Request) {
	cfg := h.baseCfg.Clone()
	q := r.URL.Query()

	if v := q.Get("min_responses"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			badRequest(w, fmt.Errorf("min_responses must be a non-negative integer (received %q)", v))
			return
		}
		cfg.MinResponses = n
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > contract.MaxResultLimit {
			badRequest(w, fmt.Errorf("limit must be between 1 and %d (received %q)", contract.MaxResultLimit, v))
			return
		}
		cfg.ResultLimit = n
	}
	if v := q.Get("resolved"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			badRequest(w, fmt.Errorf("resolved must be a boolean (received %q)", v))
			return
		}
		cfg.Resolved = b
	}

	rows, err := core.GetSummaryResults(r.Context(), cfg, h.mgr)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

func (h *handler) scores(w http.ResponseWriter, r *http.Request) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateSemester(cfg, r.URL.Query().Get("semester")); err != nil {
		badRequest(w, err)
		return
	}

	result, err := core.GetScoreResults(r.Context(), cfg, h.mgr)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *handler) course(w http.ResponseWriter, r *http.Request) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateCourse(cfg, chi.URLParam(r, "code")); err != nil {
		badRequest(w, err)
		return
	}

	trend, err := core.GetCourseTrend(r.Context(), cfg, h.mgr)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, trend)
}

func (h *handler) courseHistory(w http.ResponseWriter, r *http.Request) {
	cfg := h.baseCfg.Clone()
	if err := contract.RevalidateCourse(cfg, chi.URLParam(r, "code")); err != nil {
		badRequest(w, err)
		return
	}

	records, err := core.GetCourseHistory(r.Context(), cfg, h.mgr)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, records)
}
