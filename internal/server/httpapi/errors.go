package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/loveletters/internal/common"
)

const (
	detailUsernameTaken      = "Username already registered"
	detailInvalidCredentials = "Invalid username or password"
	detailInvalidToken       = "Invalid authentication credentials"
	detailUserNotFound       = "User not found"
	detailNotFound           = "Message not found"
	detailWrongCode          = "Invalid secret code"
	detailInternal           = "Internal server error"
)

// errorStatus maps a service error to its HTTP status and detail text.
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, common.ErrUsernameTaken):
		return http.StatusBadRequest, detailUsernameTaken
	case errors.Is(err, common.ErrWrongCode):
		return http.StatusBadRequest, detailWrongCode
	case errors.Is(err, common.ErrInvalidCredentials):
		return http.StatusUnauthorized, detailInvalidCredentials
	case errors.Is(err, common.ErrUserNotFound):
		return http.StatusUnauthorized, detailUserNotFound
	case errors.Is(err, common.ErrorUnauthorized):
		return http.StatusUnauthorized, detailInvalidToken
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, detailNotFound
	default:
		return http.StatusInternalServerError, detailInternal
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, err error) {
	status, detail := errorStatus(err)
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", common.BearerScheme)
	}
	writeJSON(w, status, errorResponse{Detail: detail})
}
