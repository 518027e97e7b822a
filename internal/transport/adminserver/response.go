package adminserver

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/soltiHQ/gridstore/engine"
	"github.com/soltiHQ/gridstore/internal/transportctx"
)

// errorResponse is an API-safe error envelope (grounded on the teacher's
// response.ErrorResponse).
type errorResponse struct {
	Code      int    `json:"code"`
	Message   string `json:"message,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

func writeJSONError(r *http.Request, w http.ResponseWriter, status int, message string) {
	resp := errorResponse{Code: status, Message: message}
	if rid, ok := transportctx.RequestID(r.Context()); ok {
		resp.RequestID = rid
	}
	writeJSON(w, status, resp)
}

// fromEngineError maps an engine sentinel error onto an HTTP status code and
// writes the response, grounded on the teacher's response.FromError.
// Returns true if it wrote a response.
func fromEngineError(r *http.Request, w http.ResponseWriter, err error) bool {
	if err == nil {
		return false
	}
	switch {
	case errors.Is(err, engine.ErrUnknownEntity):
		writeJSONError(r, w, http.StatusNotFound, "unknown entity")
	case errors.Is(err, engine.ErrNotFound):
		writeJSONError(r, w, http.StatusNotFound, "not found")
	case errors.Is(err, engine.ErrDuplicate):
		writeJSONError(r, w, http.StatusConflict, "already exists")
	case errors.Is(err, engine.ErrBadCursor):
		writeJSONError(r, w, http.StatusBadRequest, "bad cursor")
	case errors.Is(err, engine.ErrMissingField), errors.Is(err, engine.ErrConfigInvalid):
		writeJSONError(r, w, http.StatusBadRequest, err.Error())
	default:
		writeJSONError(r, w, http.StatusInternalServerError, "internal server error")
	}
	return true
}
