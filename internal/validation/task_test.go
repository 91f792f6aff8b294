package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/karanns19/task-manager/internal/models"
)

func TestParseTaskCreate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		body       string
		wantFields []string
		check      func(t *testing.T, create TaskCreate)
	}{
		{
			name: "title only defaults status",
			body: `{"title":"Write spec"}`,
			check: func(t *testing.T, create TaskCreate) {
				if create.Title != "Write spec" {
					t.Errorf("title = %q", create.Title)
				}
				if create.Status != models.StatusToDo {
					t.Errorf("status = %q, want %q", create.Status, models.StatusToDo)
				}
				if create.Description != nil || create.Deadline != nil || create.ReminderTime != nil {
					t.Error("optional fields should be nil")
				}
			},
		},
		{
			name: "full payload",
			body: `{"title":"  Plan  ","description":"details","status":"In Progress","deadline":"2026-09-01T12:00:00Z","reminder_time":"2026-09-01"}`,
			check: func(t *testing.T, create TaskCreate) {
				if create.Title != "Plan" {
					t.Errorf("title not trimmed: %q", create.Title)
				}
				if create.Status != models.StatusInProgress {
					t.Errorf("status = %q", create.Status)
				}
				if create.Description == nil || *create.Description != "details" {
					t.Errorf("description = %v", create.Description)
				}
				want := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
				if create.Deadline == nil || !create.Deadline.Equal(want) {
					t.Errorf("deadline = %v, want %v", create.Deadline, want)
				}
				if create.ReminderTime == nil {
					t.Error("reminder_time not parsed")
				}
			},
		},
		{
			name:       "missing title",
			body:       `{"description":"x"}`,
			wantFields: []string{"title"},
		},
		{
			name:       "blank title",
			body:       `{"title":"   "}`,
			wantFields: []string{"title"},
		},
		{
			name:       "title too long",
			body:       `{"title":"` + strings.Repeat("a", 256) + `"}`,
			wantFields: []string{"title"},
		},
		{
			name:       "description too long",
			body:       `{"title":"ok","description":"` + strings.Repeat("a", 1001) + `"}`,
			wantFields: []string{"description"},
		},
		{
			name:       "invalid status",
			body:       `{"title":"ok","status":"Blocked"}`,
			wantFields: []string{"status"},
		},
		{
			name:       "invalid deadline",
			body:       `{"title":"ok","deadline":"not-a-date"}`,
			wantFields: []string{"deadline"},
		},
		{
			name:       "non-object body",
			body:       `[1,2,3]`,
			wantFields: []string{"body"},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			create, errs := ParseTaskCreate([]byte(test.body))
			if len(test.wantFields) == 0 {
				if errs != nil {
					t.Fatalf("unexpected violations: %v", errs)
				}
				test.check(t, create)
				return
			}
			if len(errs) != len(test.wantFields) {
				t.Fatalf("got %d violations (%v), want %d", len(errs), errs, len(test.wantFields))
			}
			for i, field := range test.wantFields {
				if errs[i].Field != field {
					t.Errorf("violation %d on field %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}

func TestParseTaskUpdate(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name       string
		body       string
		wantFields []string
		check      func(t *testing.T, update TaskUpdate)
	}{
		{
			name: "status only",
			body: `{"status":"Done"}`,
			check: func(t *testing.T, update TaskUpdate) {
				if !update.SetStatus || update.Status != models.StatusDone {
					t.Errorf("status update not captured: %+v", update)
				}
				if update.SetTitle || update.SetDescription || update.SetDeadline || update.SetReminder {
					t.Errorf("unexpected fields marked set: %+v", update)
				}
			},
		},
		{
			name: "clearing reminder with null",
			body: `{"reminder_time":null}`,
			check: func(t *testing.T, update TaskUpdate) {
				if !update.SetReminder || update.ReminderTime != nil {
					t.Errorf("null reminder should mark a clear: %+v", update)
				}
			},
		},
		{
			name:       "empty body rejected",
			body:       `{}`,
			wantFields: []string{"body"},
		},
		{
			name:       "unrecognized keys only rejected",
			body:       `{"priority":"high"}`,
			wantFields: []string{"body"},
		},
		{
			name:       "title cannot become empty",
			body:       `{"title":"  "}`,
			wantFields: []string{"title"},
		},
		{
			name:       "title cannot be null",
			body:       `{"title":null}`,
			wantFields: []string{"title"},
		},
		{
			name:       "invalid status",
			body:       `{"status":"Archived"}`,
			wantFields: []string{"status"},
		},
		{
			name: "multiple fields",
			body: `{"title":"New","description":null,"deadline":"2026-01-01"}`,
			check: func(t *testing.T, update TaskUpdate) {
				if !update.SetTitle || update.Title != "New" {
					t.Errorf("title: %+v", update)
				}
				if !update.SetDescription || update.Description != nil {
					t.Errorf("description should be cleared: %+v", update)
				}
				if !update.SetDeadline || update.Deadline == nil {
					t.Errorf("deadline: %+v", update)
				}
			},
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			update, errs := ParseTaskUpdate([]byte(test.body))
			if len(test.wantFields) == 0 {
				if errs != nil {
					t.Fatalf("unexpected violations: %v", errs)
				}
				test.check(t, update)
				return
			}
			if len(errs) != len(test.wantFields) {
				t.Fatalf("got %d violations (%v), want %d", len(errs), errs, len(test.wantFields))
			}
			for i, field := range test.wantFields {
				if errs[i].Field != field {
					t.Errorf("violation %d on field %q, want %q", i, errs[i].Field, field)
				}
			}
		})
	}
}
