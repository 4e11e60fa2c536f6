package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/service"
)

// WorkflowConfigurationHandler serves the workflow configuration endpoints.
// Configurations carry no field validators; referential problems surface in
// the consistency report instead.
type WorkflowConfigurationHandler struct {
	logger  *slog.Logger
	configs *service.WorkflowConfigurationService
}

// NewWorkflowConfigurationHandler creates a WorkflowConfigurationHandler.
func NewWorkflowConfigurationHandler(logger *slog.Logger, configs *service.WorkflowConfigurationService) *WorkflowConfigurationHandler {
	return &WorkflowConfigurationHandler{logger: logger, configs: configs}
}

// Get handles GET /workflow-configurations/get?env=
func (h *WorkflowConfigurationHandler) Get(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	configs, err := h.configs.Get(r.Context(), env, nil)
	if err != nil {
		h.logger.Error("failed to get workflow configurations", "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"workflowConfigurations": configs})
}

// Save handles POST /workflow-configurations/save?env=
func (h *WorkflowConfigurationHandler) Save(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var config domain.WorkflowConfiguration
	if err := render.DecodeJSON(r.Body, &config); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "invalid request body")
		return
	}
	if config.ID == "" {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "workflow configuration id is required")
		return
	}
	config.Exists = true

	if err := h.configs.Save(r.Context(), env, &config); err != nil {
		h.logger.Error("failed to save workflow configuration", "id", config.ID, "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"workflowConfiguration": &config})
}

// Delete handles POST /workflow-configurations/delete?env=. Teams that still
// reference the configuration keep their IDs; the delete never cascades.
func (h *WorkflowConfigurationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := render.DecodeJSON(r.Body, &body); err != nil || body.ID == "" {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "workflow configuration id is required")
		return
	}

	if err := h.configs.Delete(r.Context(), env, body.ID); err != nil {
		h.logger.Error("failed to delete workflow configuration", "id", body.ID, "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"status": "deleted"})
}
