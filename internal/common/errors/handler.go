// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
)

// Logger is the minimal logging surface the handler needs.
type Logger interface {
	Error(msg string, fields map[string]interface{})
}

// HTTPHandler renders application errors as JSON responses with a status
// derived from the error code.
type HTTPHandler struct {
	logger Logger
}

func NewHTTPHandler(logger Logger) *HTTPHandler {
	return &HTTPHandler{logger: logger}
}

// WriteError normalizes err, logs it and writes the JSON error body.
func (h *HTTPHandler) WriteError(w http.ResponseWriter, r *http.Request, err error) {
	stdErr := Normalize(err)
	status := StatusCode(stdErr.Code)

	h.logger.Error("request failed", map[string]interface{}{
		"method":    r.Method,
		"path":      r.URL.Path,
		"errorCode": string(stdErr.Code),
		"category":  GetErrorCategory(stdErr.Code),
		"details":   stdErr.Details,
		"status":    status,
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "error",
		"code":    string(stdErr.Code),
		"message": stdErr.Message,
	})
}

// StatusCode maps an error code to its HTTP status.
func StatusCode(code ErrorCode) int {
	switch code {
	case ErrCodeRecordNotFound:
		return http.StatusNotFound
	case ErrCodeInvalidRequest, ErrCodeSnapshotInvalid:
		return http.StatusBadRequest
	case ErrCodeUnauthorized:
		return http.StatusForbidden
	case ErrCodeDatabaseConnectionFailed, ErrCodeNotificationSendFailed:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
