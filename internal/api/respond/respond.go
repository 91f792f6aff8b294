// Package respond writes the uniform JSON response envelope shared by every
// handler and the access-control middleware.
package respond

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/karanns19/task-manager/internal/apperr"
)

// development controls whether internal error detail reaches clients.
// Set once at startup, before any request is served.
var development bool

// SetDevelopment enables development-mode error detail in responses.
func SetDevelopment(enabled bool) {
	development = enabled
}

// Envelope is the uniform JSON response shape.
type Envelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Code    string      `json:"code,omitempty"`
}

func write(w http.ResponseWriter, status int, envelope Envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

// Data writes a success envelope with a payload.
func Data(w http.ResponseWriter, status int, message string, data interface{}) {
	write(w, status, Envelope{Success: true, Message: message, Data: data})
}

// Message writes a success envelope with no payload.
func Message(w http.ResponseWriter, status int, message string) {
	write(w, status, Envelope{Success: true, Message: message})
}

// Error maps an error to its envelope and status code. Unknown errors become
// a 500 whose detail is suppressed outside development mode.
func Error(w http.ResponseWriter, err error) {
	appErr := apperr.From(err)

	message := appErr.Message
	if appErr.Code == apperr.CodeInternal && development && appErr.Cause() != nil {
		message = appErr.Cause().Error()
	}

	envelope := Envelope{Message: message, Code: appErr.Code}
	if len(appErr.Fields) > 0 {
		envelope.Data = map[string]interface{}{"errors": appErr.Fields}
	}
	write(w, appErr.Status, envelope)
}
