package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/symphogen/mimer-admin/internal/domain"
	"github.com/symphogen/mimer-admin/internal/service"
	"github.com/symphogen/mimer-admin/internal/validation"
)

// UserHandler serves the user endpoints. Validation lives on its own
// endpoint; Save accepts whatever the console sends and review happens
// afterwards.
type UserHandler struct {
	logger *slog.Logger
	users  *service.UserService
	teams  *service.TeamService
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(logger *slog.Logger, users *service.UserService, teams *service.TeamService) *UserHandler {
	return &UserHandler{logger: logger, users: users, teams: teams}
}

// Get handles GET /users/get?env=
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	users, err := h.users.Get(r.Context(), env, nil)
	if err != nil {
		h.logger.Error("failed to get users", "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"users": users})
}

// Save handles POST /users/save?env=
func (h *UserHandler) Save(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var user domain.User
	if err := render.DecodeJSON(r.Body, &user); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "invalid request body")
		return
	}
	if user.ID == "" {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "user id is required")
		return
	}
	user.Exists = true

	if err := h.users.Save(r.Context(), env, &user); err != nil {
		h.logger.Error("failed to save user", "id", user.ID, "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"user": &user})
}

// Delete handles POST /users/delete?env=
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var body struct {
		ID string `json:"id"`
	}
	if err := render.DecodeJSON(r.Body, &body); err != nil || body.ID == "" {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "user id is required")
		return
	}

	if err := h.users.Delete(r.Context(), env, body.ID); err != nil {
		h.logger.Error("failed to delete user", "id", body.ID, "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"status": "deleted"})
}

// Validate handles POST /users/validate?env=. The user is hydrated against
// the environment's teams so membership references can be checked.
func (h *UserHandler) Validate(w http.ResponseWriter, r *http.Request) {
	env, err := environmentParam(r)
	if err != nil {
		HandleError(w, r, err)
		return
	}

	var user domain.User
	if err := render.DecodeJSON(r.Body, &user); err != nil {
		RespondWithError(w, r, http.StatusBadRequest, string(domain.CodeBadRequest), "invalid request body")
		return
	}

	teams, err := h.teams.Get(r.Context(), env, nil)
	if err != nil {
		h.logger.Error("failed to get teams for validation", "environment", env, "error", err)
		HandleError(w, r, err)
		return
	}

	service.HydrateUser(&user, service.TeamsByID(teams))
	result, err := validation.ValidateUser(&user)
	if err != nil {
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{
		"valid":    result.Valid(),
		"messages": result.ByField(),
	})
}
