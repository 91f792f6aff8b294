package services

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/karanns19/task-manager/internal/apperr"
	"github.com/karanns19/task-manager/internal/models"
	"github.com/karanns19/task-manager/internal/validation"
)

// TaskServiceProvider defines the interface for task services. Every
// operation is scoped to the owning user: a task owned by someone else is
// indistinguishable from a missing one.
type TaskServiceProvider interface {
	ListTasks(ownerID, statusFilter string) ([]models.Task, error)
	GetTask(ownerID, taskID string) (models.Task, error)
	CreateTask(ownerID string, input validation.TaskCreate) (models.Task, error)
	UpdateTask(ownerID, taskID string, input validation.TaskUpdate) (models.Task, error)
	DeleteTask(ownerID, taskID string) error
}

// TaskService provides owner-scoped CRUD over the task store.
type TaskService struct {
	db *sql.DB
}

// NewTaskService creates a new TaskService.
func NewTaskService(db *sql.DB) *TaskService {
	return &TaskService{db: db}
}

const taskColumns = "id, title, description, status, deadline, reminder_time, user_id, created_at, updated_at"

// ListTasks returns the owner's tasks, newest first, optionally filtered to
// one status. Unrecognized filter values are ignored, not rejected.
func (s *TaskService) ListTasks(ownerID, statusFilter string) ([]models.Task, error) {
	query := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ?"
	args := []interface{}{ownerID}
	if models.ValidStatus(statusFilter) {
		query += " AND status = ?"
		args = append(args, statusFilter)
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	defer rows.Close()
	return s.scanTasks(rows)
}

// GetTask retrieves a single task owned by ownerID.
func (s *TaskService) GetTask(ownerID, taskID string) (models.Task, error) {
	row := s.db.QueryRow("SELECT "+taskColumns+" FROM tasks WHERE id = ? AND user_id = ?", taskID, ownerID)
	return s.scanTask(row)
}

// CreateTask inserts a new task for ownerID and returns the stored row.
func (s *TaskService) CreateTask(ownerID string, input validation.TaskCreate) (models.Task, error) {
	now := time.Now().UTC().Truncate(time.Second)
	id := uuid.New().String()

	_, err := s.db.Exec(
		"INSERT INTO tasks (id, title, description, status, deadline, reminder_time, user_id, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)",
		id, input.Title, nullableString(input.Description), input.Status,
		nullableTime(input.Deadline), nullableTime(input.ReminderTime), ownerID, now, now,
	)
	if err != nil {
		return models.Task{}, apperr.Internal(err)
	}
	return s.GetTask(ownerID, id)
}

// UpdateTask applies a partial update to a task owned by ownerID. Only the
// fields marked as set are modified, and updated_at is refreshed. The
// ownership check and the update run as two separate statements.
func (s *TaskService) UpdateTask(ownerID, taskID string, input validation.TaskUpdate) (models.Task, error) {
	if _, err := s.GetTask(ownerID, taskID); err != nil {
		return models.Task{}, err
	}

	set := []string{"updated_at = ?"}
	args := []interface{}{time.Now().UTC().Truncate(time.Second)}

	if input.SetTitle {
		set = append(set, "title = ?")
		args = append(args, input.Title)
	}
	if input.SetDescription {
		set = append(set, "description = ?")
		args = append(args, nullableString(input.Description))
	}
	if input.SetStatus {
		set = append(set, "status = ?")
		args = append(args, input.Status)
	}
	if input.SetDeadline {
		set = append(set, "deadline = ?")
		args = append(args, nullableTime(input.Deadline))
	}
	if input.SetReminder {
		set = append(set, "reminder_time = ?")
		args = append(args, nullableTime(input.ReminderTime))
	}

	args = append(args, taskID, ownerID)
	query := "UPDATE tasks SET " + strings.Join(set, ", ") + " WHERE id = ? AND user_id = ?"
	if _, err := s.db.Exec(query, args...); err != nil {
		return models.Task{}, apperr.Internal(err)
	}
	return s.GetTask(ownerID, taskID)
}

// DeleteTask removes a task owned by ownerID. A second delete of the same
// task reports NotFound.
func (s *TaskService) DeleteTask(ownerID, taskID string) error {
	if _, err := s.GetTask(ownerID, taskID); err != nil {
		return err
	}
	if _, err := s.db.Exec("DELETE FROM tasks WHERE id = ? AND user_id = ?", taskID, ownerID); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// scanTasks is a helper to scan multiple rows into a slice of Tasks.
func (s *TaskService) scanTasks(rows *sql.Rows) ([]models.Task, error) {
	tasks := []models.Task{}
	for rows.Next() {
		task, err := s.scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Internal(err)
	}
	return tasks, nil
}

// scanTask is a helper to scan a single row into a Task.
func (s *TaskService) scanTask(scanner interface{ Scan(...interface{}) error }) (models.Task, error) {
	var task models.Task
	var description sql.NullString
	var deadline, reminderTime sql.NullTime
	err := scanner.Scan(
		&task.ID,
		&task.Title,
		&description,
		&task.Status,
		&deadline,
		&reminderTime,
		&task.UserID,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return models.Task{}, apperr.NotFound("Task not found")
	}
	if err != nil {
		return models.Task{}, apperr.Internal(err)
	}
	if description.Valid {
		task.Description = &description.String
	}
	if deadline.Valid {
		t := deadline.Time.UTC()
		task.Deadline = &t
	}
	if reminderTime.Valid {
		t := reminderTime.Time.UTC()
		task.ReminderTime = &t
	}
	return task, nil
}

func nullableString(s *string) interface{} {
	if s == nil {
		return nil
	}
	return *s
}

func nullableTime(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}
