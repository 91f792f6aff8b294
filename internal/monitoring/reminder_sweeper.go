package monitoring

import (
	"database/sql"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/karanns19/task-manager/internal/models"
)

// Sweeper periodically scans for tasks whose reminder time has elapsed and
// reports them. It only reads and logs; there is no delivery and no
// deduplication, so a due task is reported again on every sweep until its
// status becomes Done or its reminder time changes.
type Sweeper struct {
	db       *sql.DB
	schedule cron.Schedule
	done     chan bool
}

// NewSweeper creates a sweeper firing on the given standard cron expression.
func NewSweeper(db *sql.DB, spec string) (*Sweeper, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, err
	}
	return &Sweeper{
		db:       db,
		schedule: schedule,
		done:     make(chan bool),
	}, nil
}

// Run starts the sweep loop. It shares the process-wide connection pool and
// does not coordinate with request handling.
func (s *Sweeper) Run() {
	log.Info().Msg("Starting reminder sweeper...")

	// Run once immediately on start
	s.sweep(time.Now())

	timer := time.NewTimer(time.Until(s.schedule.Next(time.Now())))
	defer timer.Stop()

	for {
		select {
		case <-s.done:
			log.Info().Msg("Stopping reminder sweeper.")
			return
		case now := <-timer.C:
			s.sweep(now)
			timer.Reset(time.Until(s.schedule.Next(now)))
		}
	}
}

// Stop halts the sweeper.
func (s *Sweeper) Stop() {
	s.done <- true
}

type dueReminder struct {
	TaskID       string
	Title        string
	ReminderTime time.Time
	OwnerEmail   string
}

// dueReminders returns every non-Done task whose reminder time has elapsed,
// joined with the owner's email.
func (s *Sweeper) dueReminders(now time.Time) ([]dueReminder, error) {
	rows, err := s.db.Query(`
		SELECT t.id, t.title, t.reminder_time, u.email
		FROM tasks t
		JOIN users u ON u.id = t.user_id
		WHERE t.reminder_time IS NOT NULL AND t.reminder_time <= ? AND t.status != ?`,
		now.UTC(), models.StatusDone)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []dueReminder
	for rows.Next() {
		var reminder dueReminder
		if err := rows.Scan(&reminder.TaskID, &reminder.Title, &reminder.ReminderTime, &reminder.OwnerEmail); err != nil {
			return nil, err
		}
		reminders = append(reminders, reminder)
	}
	return reminders, rows.Err()
}

// sweep runs one pass, logging a line for every due reminder.
func (s *Sweeper) sweep(now time.Time) {
	reminders, err := s.dueReminders(now)
	if err != nil {
		log.Error().Err(err).Msg("Sweeper: Failed to query due reminders")
		return
	}

	for _, reminder := range reminders {
		log.Info().
			Str("task_id", reminder.TaskID).
			Str("title", reminder.Title).
			Time("reminder_time", reminder.ReminderTime).
			Str("owner_email", reminder.OwnerEmail).
			Msg("Task reminder due")
	}
}
