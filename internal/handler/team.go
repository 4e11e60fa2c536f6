package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/service"
	"github.com/symphogen/mimer-admin/internal/validation"
)

// TeamHandler serves the team endpoints.
type TeamHandler struct {
	logger  *slog.Logger
	teams   *service.TeamService
	users   *service.UserService
	configs *service.WorkflowConfigurationService
}

// NewTeamHandler creates a TeamHandler.
func NewTeamHandler(logger *slog.Logger, teams *service.TeamService, users *service.UserService, configs *service.WorkflowConfigurationService) *TeamHandler {
	return &TeamHandler{logger: logger, teams: teams, users: users, configs: configs}
}

// Get handles GET /teams/get?env=
func (h *TeamHandler) Get(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	teams, err := h.teams.Get(r.Context(), env, nil)
	if err != nil {
		h.logger.Error("failed to get teams", "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"teams": teams})
}

// Save handles POST /teams/save?env=
func (h *TeamHandler) Save(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var team domain.Team
	if err := render.DecodeJSON(r.Body, &team); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "invalid request body")
		return
	}
	if team.ID == "" {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "team id is required")
		return
	}
	team.Exists = true

	if err := h.teams.Save(r.Context(), env, &team); err != nil {
		h.logger.Error("failed to save team", "id", team.ID, "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"team": &team})
}

// Delete handles POST /teams/delete?env=. Deleting a team never cascades:
// users keep their membership IDs and show up in the consistency report
// until someone cleans them up.
func (h *TeamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := render.DecodeJSON(r.Body, &body); err != nil || body.ID == "" {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "team id is required")
		return
	}

	if err := h.teams.Delete(r.Context(), env, body.ID); err != nil {
		h.logger.Error("failed to delete team", "id", body.ID, "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"status": "deleted"})
}

// Validate handles POST /teams/validate?env=. The team is hydrated against
// the environment's users and workflow configurations before the rules run.
func (h *TeamHandler) Validate(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var team domain.Team
	if err := render.DecodeJSON(r.Body, &team); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "invalid request body")
		return
	}

	users, err := h.users.Get(r.Context(), env, nil)
	if err != nil {
		h.logger.Error("failed to get users for validation", "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	configs, err := h.configs.Get(r.Context(), env, nil)
	if err != nil {
		h.logger.Error("failed to get workflow configurations for validation", "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}

	service.HydrateTeam(&team, service.UsersByID(users), service.ConfigsByID(configs))
	result, err := validation.ValidateTeam(&team)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"valid":    result.Valid(),
		"messages": result.ByField(),
	})
}
