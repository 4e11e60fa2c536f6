package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/prefs"
)

// PreferencesHandler reads and writes operator preferences.
type PreferencesHandler struct {
	logger *slog.Logger
	prefs  *prefs.Preferences
}

// NewPreferencesHandler creates a PreferencesHandler.
func NewPreferencesHandler(logger *slog.Logger, p *prefs.Preferences) *PreferencesHandler {
	return &PreferencesHandler{logger: logger, prefs: p}
}

// Get handles GET /preferences
func (h *PreferencesHandler) Get(w http.ResponseWriter, r *http.Request) {
	RespondWithJSON(w, r, http.StatusOK, h.prefs.Snapshot())
}

// Set handles POST /preferences with body {"property": ..., "value": ...}.
// Property names are the dotted names of the settings tree, for example
// "Users.Count" or "Teams.DuplicateSuperUsers".
func (h *PreferencesHandler) Set(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Property string `json:"property"`
		Value    string `json:"value"`
	}
	if err := render.DecodeJSON(r.Body, &body); err != nil || body.Property == "" {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "property and value are required")
		return
	}

	if err := h.prefs.Set(r.Context(), body.Property, body.Value); err != nil {
		h.logger.Error("failed to set preference", "property", body.Property, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, h.prefs.Snapshot())
}
