package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"hackmate-backend/internal/domain"
	"hackmate-backend/internal/logger"
)

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		if err := json.NewEncoder(w).Encode(body); err != nil {
			logger.Error("failed to encode response", "error", err)
		}
	}
}

// writeError maps the engine's error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is an internal error and is not leaked to the client.
func writeError(w http.ResponseWriter, err error) {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		var status int
		switch domainErr.Kind {
		case domain.KindValidation:
			status = http.StatusBadRequest
		case domain.KindAuthorization:
			status = http.StatusForbidden
		case domain.KindNotFound:
			status = http.StatusNotFound
		case domain.KindConflict:
			status = http.StatusConflict
		default:
			status = http.StatusInternalServerError
		}
		writeJSON(w, status, errorResponse{Error: errorBody{Code: domainErr.Code, Message: domainErr.Message}})
		return
	}

	logger.Error("internal error", "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Error: errorBody{Code: "INTERNAL", Message: "internal server error"},
	})
}

func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{
		Error: errorBody{Code: "BAD_REQUEST", Message: message},
	})
}
