package handler

import (
	"log/slog"
	"net/http"

	"github.com/symphogen/mimer-admin/internal/service"
)

// ConsistencyHandler exposes the environment consistency sweep.
type ConsistencyHandler struct {
	logger      *slog.Logger
	consistency *service.ConsistencyService
}

// NewConsistencyHandler creates a ConsistencyHandler.
func NewConsistencyHandler(logger *slog.Logger, consistency *service.ConsistencyService) *ConsistencyHandler {
	return &ConsistencyHandler{logger: logger, consistency: consistency}
}

// Report handles GET /consistency?env=
func (h *ConsistencyHandler) Report(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	report, err := h.consistency.Report(r.Context(), env)
	if err != nil {
		h.logger.Error("consistency sweep failed", "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, report)
}
