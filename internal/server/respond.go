package server

import (
	"encoding/json"
	"net/http"

	"github.com/roknus/conan-ui/pkg/errors"
)

// errorBody is the error envelope used by every non-2xx response.
type errorBody struct {
	Detail string `json:"detail"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encode response", "err", err)
	}
}

// writeError maps an error to its HTTP status and detail string. Coded
// errors carry their own message; anything else is an upstream failure
// reported as a Conan API error. The action names the operation for the
// log line and the fallback detail.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error, action string) {
	status := http.StatusInternalServerError
	var detail string

	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidRemote, errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidPackage, errors.ErrCodeInvalidReference:
		status = http.StatusBadRequest
		detail = errors.UserMessage(err)
	case errors.ErrCodeRemoteNotFound, errors.ErrCodePackageNotFound, errors.ErrCodeBinaryNotFound:
		status = http.StatusNotFound
		detail = errors.UserMessage(err)
	case "":
		detail = "Conan API error: " + err.Error()
	default:
		detail = "Failed to " + action + ": " + errors.UserMessage(err)
	}

	s.logger.Error(action+" failed",
		"id", requestID(r.Context()),
		"status", status,
		"err", err)
	s.writeJSON(w, status, errorBody{Detail: detail})
}
