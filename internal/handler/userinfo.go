package handler

import (
	"log/slog"
	"net/http"

	"github.com/symphogen/mimer-admin/internal/identity"
	"github.com/symphogen/mimer-admin/internal/middleware"
)

// UserInfoHandler resolves the signed-in principal for the console header.
type UserInfoHandler struct {
	logger   *slog.Logger
	identity *identity.Client
}

// NewUserInfoHandler creates a UserInfoHandler.
func NewUserInfoHandler(logger *slog.Logger, client *identity.Client) *UserInfoHandler {
	return &UserInfoHandler{logger: logger, identity: client}
}

// Me handles GET /me
func (h *UserInfoHandler) Me(w http.ResponseWriter, r *http.Request) {
	objectID := middleware.ObjectIDFromContext(r.Context())
	token := middleware.TokenFromContext(r.Context())

	displayName, err := h.identity.DisplayName(r.Context(), objectID, token)
	if err != nil {
		h.logger.Error("failed to resolve display name", "object_id", objectID, "error", err)
		HandleError(w, r, err)
		return
	}
	RespondWithJSON(w, r, http.StatusOK, map[string]interface{}{"displayName": displayName})
}
