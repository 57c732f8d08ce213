package chat

import (
	"errors"
	"net/http"

	"github.com/neboloop/think/internal/agent/ai"
	"github.com/neboloop/think/internal/agent/runner"
	"github.com/neboloop/think/internal/agent/session"
	"github.com/neboloop/think/internal/httputil"
	"github.com/neboloop/think/internal/logic/chat"
)

// writeError maps chat failures onto status codes. Anything unrecognised
// is an upstream failure and gets the {"error","details"} body.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, runner.ErrEmptyMessage):
		httputil.ErrorWithCode(w, http.StatusBadRequest, "Message is required")
	case errors.Is(err, chat.ErrMissingFields):
		httputil.ErrorWithCode(w, http.StatusBadRequest, "Missing required fields")
	case errors.Is(err, session.ErrInvalidKey), errors.Is(err, httputil.ErrBodyTooLarge):
		httputil.Error(w, err)
	case errors.Is(err, runner.ErrMessageTooLarge):
		httputil.ErrorWithCode(w, http.StatusRequestEntityTooLarge, err.Error())
	case errors.Is(err, chat.ErrSessionNotFound):
		httputil.NotFound(w, err.Error())
	case errors.Is(err, ai.ErrNoProvider):
		httputil.ServiceUnavailable(w, err.Error())
	default:
		httputil.Failure(w, http.StatusInternalServerError, "Failed to process request", err)
	}
}
