package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/render"

	"github.com/symphogen/mimer-admin/internal/domain"
)

// ErrorResponse is the error envelope returned by every endpoint.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries the machine-readable code and a description.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondWithError writes an error response.
func RespondWithError(w http.ResponseWriter, r *http.Request, statusCode int, code, message string) {
	render.Status(r, statusCode)
	render.JSON(w, r, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// HandleError maps domain errors onto HTTP responses.
func HandleError(w http.ResponseWriter, r *http.Request, err error) {
	code := domain.MapErrorToCode(err)
	switch {
	case errors.Is(err, domain.ErrUnknownEnvironment):
		RespondWithError(w, r, http.StatusBadRequest, string(code), err.Error())
	case errors.Is(err, domain.ErrUnknownPreference):
		RespondWithError(w, r, http.StatusBadRequest, string(code), err.Error())
	case errors.Is(err, domain.ErrNotFound):
		RespondWithError(w, r, http.StatusNotFound, string(code), "resource not found")
	case errors.Is(err, domain.ErrUnauthorized), errors.Is(err, domain.ErrInvalidToken):
		RespondWithError(w, r, http.StatusUnauthorized, string(code), "unauthorized")
	case errors.Is(err, domain.ErrConsentRequired):
		RespondWithError(w, r, http.StatusUnauthorized, string(code), "identity consent required")
	case errors.Is(err, domain.ErrForbidden):
		RespondWithError(w, r, http.StatusForbidden, string(code), "forbidden")
	default:
		RespondWithError(w, r, http.StatusInternalServerError, string(domain.CodeInternal), "internal server error")
	}
}

// environmentParam reads and validates the env query parameter.
func environmentParam(r *http.Request) (domain.Environment, error) {
	return domain.ParseEnvironment(r.URL.Query().Get("env"))
}
