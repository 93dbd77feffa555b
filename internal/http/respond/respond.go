package respond

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/recipes-be/internal/apperr"
)

// MessageBody is the shape of every error response.
type MessageBody struct {
	Message string `json:"message"`
}

var internalErrorBody = []byte(`{"message":"internal server error"}` + "\n")

// JSON writes payload with the given status. The payload is encoded before
// the header goes out, so a payload that cannot be encoded becomes a 500.
func JSON(w http.ResponseWriter, status int, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		status, body = http.StatusInternalServerError, internalErrorBody
	} else {
		body = append(body, '\n')
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// Error writes {"message": message} with the given status.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, MessageBody{Message: message})
}

// FromError reports err to the client. Client-facing *apperr.Error values keep
// their status and message; anything else is logged and hidden behind a 500.
func FromError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		Error(w, appErr.Kind.Status(), appErr.Message)
		return
	}
	logger.Error("request failed", zap.Error(err))
	Error(w, http.StatusInternalServerError, "internal server error")
}
