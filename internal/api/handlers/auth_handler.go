package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/karanns19/task-manager/internal/api/respond"
	"github.com/karanns19/task-manager/internal/apperr"
	"github.com/karanns19/task-manager/internal/models"
	"github.com/karanns19/task-manager/internal/services"
	"github.com/karanns19/task-manager/internal/validation"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	service services.UserServiceProvider
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(service services.UserServiceProvider) *AuthHandler {
	return &AuthHandler{service: service}
}

type authResponse struct {
	User  models.User `json:"user"`
	Token string      `json:"token"`
}

// Register handles new user registration.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var payload validation.RegisterPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, apperr.Validation(apperr.FieldError{Field: "body", Message: "Invalid request body"}))
		return
	}

	user, token, err := h.service.Register(payload)
	if err != nil {
		if appErr := apperr.From(err); appErr.Code == apperr.CodeInternal {
			log.Error().Err(err).Msg("Failed to register user")
		}
		respond.Error(w, err)
		return
	}

	respond.Data(w, http.StatusCreated, "User registered successfully", authResponse{User: user, Token: token})
}

// Login handles user authentication and token issuance.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var payload validation.LoginPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respond.Error(w, apperr.Validation(apperr.FieldError{Field: "body", Message: "Invalid request body"}))
		return
	}
	if errs := payload.Validate(); len(errs) > 0 {
		respond.Error(w, apperr.Validation(errs...))
		return
	}

	user, token, err := h.service.Login(payload.Email, payload.Password)
	if err != nil {
		if appErr := apperr.From(err); appErr.Code == apperr.CodeInvalidCredentials {
			log.Warn().Str("email", payload.Email).Msg("Failed authentication attempt")
		} else {
			log.Error().Err(err).Msg("Login failed")
		}
		respond.Error(w, err)
		return
	}

	respond.Data(w, http.StatusOK, "Login successful", authResponse{User: user, Token: token})
}
