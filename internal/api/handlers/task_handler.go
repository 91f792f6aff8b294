package handlers

import (
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/karanns19/task-manager/internal/api/respond"
	"github.com/karanns19/task-manager/internal/apperr"
	"github.com/karanns19/task-manager/internal/auth"
	"github.com/karanns19/task-manager/internal/services"
	"github.com/karanns19/task-manager/internal/validation"
)

// TaskHandler handles HTTP requests for the owner-scoped task CRUD.
type TaskHandler struct {
	service services.TaskServiceProvider
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(service services.TaskServiceProvider) *TaskHandler {
	return &TaskHandler{service: service}
}

// ownerID resolves the acting identity attached by the access-control middleware.
func ownerID(r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		return "", false
	}
	return claims.UserID, true
}

// List returns the owner's tasks, optionally filtered by ?status=.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		respond.Error(w, apperr.InvalidToken())
		return
	}

	tasks, err := h.service.ListTasks(owner, r.URL.Query().Get("status"))
	if err != nil {
		log.Error().Err(err).Str("user_id", owner).Msg("Failed to list tasks")
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, "", tasks)
}

// Get returns a single task owned by the caller.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		respond.Error(w, apperr.InvalidToken())
		return
	}

	task, err := h.service.GetTask(owner, chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, "", task)
}

// Create handles the request to create a new task.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		respond.Error(w, apperr.InvalidToken())
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respond.Error(w, apperr.Validation(apperr.FieldError{Field: "body", Message: "Invalid request body"}))
		return
	}

	input, fieldErrs := validation.ParseTaskCreate(body)
	if fieldErrs != nil {
		respond.Error(w, apperr.Validation(fieldErrs...))
		return
	}

	task, err := h.service.CreateTask(owner, input)
	if err != nil {
		log.Error().Err(err).Str("user_id", owner).Msg("Failed to create task")
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusCreated, "Task created successfully", task)
}

// Update applies a partial update to a task owned by the caller.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		respond.Error(w, apperr.InvalidToken())
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		respond.Error(w, apperr.Validation(apperr.FieldError{Field: "body", Message: "Invalid request body"}))
		return
	}

	input, fieldErrs := validation.ParseTaskUpdate(body)
	if fieldErrs != nil {
		respond.Error(w, apperr.Validation(fieldErrs...))
		return
	}

	task, err := h.service.UpdateTask(owner, chi.URLParam(r, "id"), input)
	if err != nil {
		if appErr := apperr.From(err); appErr.Code == apperr.CodeInternal {
			log.Error().Err(err).Str("user_id", owner).Msg("Failed to update task")
		}
		respond.Error(w, err)
		return
	}
	respond.Data(w, http.StatusOK, "Task updated successfully", task)
}

// Delete removes a task owned by the caller.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	owner, ok := ownerID(r)
	if !ok {
		respond.Error(w, apperr.InvalidToken())
		return
	}

	if err := h.service.DeleteTask(owner, chi.URLParam(r, "id")); err != nil {
		respond.Error(w, err)
		return
	}
	respond.Message(w, http.StatusOK, "Task deleted successfully")
}
