package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"doc-editor-shell/internal/domain"
	apperrors "doc-editor-shell/pkg/errors"
)

// ActionReupload tells the client the active document cannot be recovered
// and a fresh upload is the only way forward.
const ActionReupload = "re_upload"

// writeJSON writes a JSON response (helper function)
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes an error response (helper function)
func writeError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// writeServiceError maps service-layer errors onto HTTP responses. Typed
// application errors carry their own status; domain sentinels get explicit
// mappings so clients can react to them.
func writeServiceError(w http.ResponseWriter, logger domain.Logger, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body := map[string]string{
			"error": appErr.Message,
			"code":  string(appErr.Type),
		}
		if appErr.Details != "" {
			body["details"] = appErr.Details
		}
		writeJSON(w, appErr.StatusCode, body)
		return
	}

	switch {
	case errors.Is(err, domain.ErrDocumentUnavailable), errors.Is(err, domain.ErrNoActiveDocument):
		writeJSON(w, http.StatusNotFound, map[string]string{
			"error":  "no recoverable document, please upload the file again",
			"action": ActionReupload,
		})
	case errors.Is(err, domain.ErrStaleSelection):
		writeJSON(w, http.StatusConflict, map[string]string{
			"error": "selection was superseded by a newer one",
		})
	default:
		if logger != nil {
			logger.Error("unhandled service error", err)
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
