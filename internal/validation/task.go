package validation

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/karanns19/task-manager/internal/apperr"
	"github.com/karanns19/task-manager/internal/models"
)

const (
	maxTitleLength       = 255
	maxDescriptionLength = 1000
)

// TaskCreate is the validated input for creating a task.
type TaskCreate struct {
	Title        string
	Description  *string
	Status       string
	Deadline     *time.Time
	ReminderTime *time.Time
}

// TaskUpdate is the validated input for a partial task update. The Set flags
// record which fields were explicitly present in the request; a present field
// with a nil value clears the stored one.
type TaskUpdate struct {
	Title        string
	Description  *string
	Status       string
	Deadline     *time.Time
	ReminderTime *time.Time

	SetTitle       bool
	SetDescription bool
	SetStatus      bool
	SetDeadline    bool
	SetReminder    bool
}

// Empty reports whether no recognized task field was supplied.
func (u TaskUpdate) Empty() bool {
	return !u.SetTitle && !u.SetDescription && !u.SetStatus && !u.SetDeadline && !u.SetReminder
}

// ParseTaskCreate validates a task-creation body and returns the parsed
// input, or the full list of field violations.
func ParseTaskCreate(body []byte) (TaskCreate, []apperr.FieldError) {
	fields, errs := parseTaskFields(body)
	if errs != nil {
		return TaskCreate{}, errs
	}

	create := TaskCreate{Status: models.StatusToDo}

	if !fields.has("title") {
		errs = append(errs, apperr.FieldError{Field: "title", Message: "Title is required"})
	} else if title, fieldErr := fields.title(); fieldErr != nil {
		errs = append(errs, *fieldErr)
	} else {
		create.Title = title
	}

	if fields.has("description") {
		description, fieldErr := fields.description()
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
		} else {
			create.Description = description
		}
	}

	if fields.has("status") {
		status, fieldErr := fields.status()
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
		} else {
			create.Status = status
		}
	}

	for _, key := range []string{"deadline", "reminder_time"} {
		if !fields.has(key) {
			continue
		}
		when, fieldErr := fields.timestamp(key)
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
			continue
		}
		if key == "deadline" {
			create.Deadline = when
		} else {
			create.ReminderTime = when
		}
	}

	if errs != nil {
		return TaskCreate{}, errs
	}
	return create, nil
}

// ParseTaskUpdate validates a partial-update body. Only fields present in the
// request are marked for modification; a body with no recognized field keys
// is rejected.
func ParseTaskUpdate(body []byte) (TaskUpdate, []apperr.FieldError) {
	fields, errs := parseTaskFields(body)
	if errs != nil {
		return TaskUpdate{}, errs
	}

	var update TaskUpdate

	if fields.has("title") {
		title, fieldErr := fields.title()
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
		} else {
			update.Title = title
			update.SetTitle = true
		}
	}

	if fields.has("description") {
		description, fieldErr := fields.description()
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
		} else {
			update.Description = description
			update.SetDescription = true
		}
	}

	if fields.has("status") {
		status, fieldErr := fields.status()
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
		} else {
			update.Status = status
			update.SetStatus = true
		}
	}

	if fields.has("deadline") {
		when, fieldErr := fields.timestamp("deadline")
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
		} else {
			update.Deadline = when
			update.SetDeadline = true
		}
	}

	if fields.has("reminder_time") {
		when, fieldErr := fields.timestamp("reminder_time")
		if fieldErr != nil {
			errs = append(errs, *fieldErr)
		} else {
			update.ReminderTime = when
			update.SetReminder = true
		}
	}

	if errs != nil {
		return TaskUpdate{}, errs
	}
	if update.Empty() {
		return TaskUpdate{}, []apperr.FieldError{{Field: "body", Message: "At least one task field must be supplied"}}
	}
	return update, nil
}

// taskFields is the raw key set of a task request body, used to distinguish
// absent fields from fields explicitly set to null.
type taskFields map[string]json.RawMessage

func parseTaskFields(body []byte) (taskFields, []apperr.FieldError) {
	var fields taskFields
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, []apperr.FieldError{{Field: "body", Message: "Invalid request body"}}
	}
	return fields, nil
}

func (f taskFields) has(key string) bool {
	_, ok := f[key]
	return ok
}

func (f taskFields) stringValue(key string) (*string, error) {
	raw := f[key]
	if isJSONNull(raw) {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("%s must be a string", key)
	}
	return &s, nil
}

func (f taskFields) title() (string, *apperr.FieldError) {
	value, err := f.stringValue("title")
	if err != nil {
		return "", &apperr.FieldError{Field: "title", Message: "Title must be a string"}
	}
	if value == nil {
		return "", &apperr.FieldError{Field: "title", Message: "Title cannot be empty"}
	}
	title := strings.TrimSpace(*value)
	if title == "" {
		return "", &apperr.FieldError{Field: "title", Message: "Title cannot be empty"}
	}
	if len(title) > maxTitleLength {
		return "", &apperr.FieldError{Field: "title", Message: "Title must be at most 255 characters"}
	}
	return title, nil
}

func (f taskFields) description() (*string, *apperr.FieldError) {
	value, err := f.stringValue("description")
	if err != nil {
		return nil, &apperr.FieldError{Field: "description", Message: "Description must be a string"}
	}
	if value == nil {
		return nil, nil
	}
	if len(*value) > maxDescriptionLength {
		return nil, &apperr.FieldError{Field: "description", Message: "Description must be at most 1000 characters"}
	}
	return value, nil
}

func (f taskFields) status() (string, *apperr.FieldError) {
	value, err := f.stringValue("status")
	if err != nil || value == nil || !models.ValidStatus(*value) {
		return "", &apperr.FieldError{Field: "status", Message: "Status must be one of 'To Do', 'In Progress' or 'Done'"}
	}
	return *value, nil
}

func (f taskFields) timestamp(key string) (*time.Time, *apperr.FieldError) {
	value, err := f.stringValue(key)
	if err != nil {
		return nil, &apperr.FieldError{Field: key, Message: key + " must be a timestamp string"}
	}
	if value == nil {
		return nil, nil
	}
	when, ok := parseTimestamp(*value)
	if !ok {
		return nil, &apperr.FieldError{Field: key, Message: key + " must be a valid timestamp"}
	}
	return &when, nil
}

func isJSONNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
