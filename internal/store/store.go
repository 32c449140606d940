package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
	"github.com/alexanderramin/tempo/internal/settings"
)

// ErrTaskNotFound is returned when a task ID does not exist in the store.
var ErrTaskNotFound = errors.New("task not found")

// readingRetention is how long energy readings are kept. Older entries are
// pruned on each insert.
const readingRetention = 30 * 24 * time.Hour

// Store holds the in-memory task and energy collections. All mutations write
// through to the settings bridge fire-and-forget: a failed save is logged at
// debug level and the in-memory state stays authoritative.
type Store struct {
	mu       sync.RWMutex
	tasks    []*domain.TaskSchedule
	readings []domain.EnergyReading

	settings settings.Store
	logger   *slog.Logger
}

// New creates an empty store persisting through the given settings bridge.
// A nil logger discards log output.
func New(s settings.Store, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{settings: s, logger: logger}
}

// AddTask creates an incomplete task and appends it to the store.
func (s *Store) AddTask(ctx context.Context, name string, priority domain.Quadrant, complexity domain.Complexity, energy domain.EnergyLevel, estimatedMin int, deadline *time.Time, now time.Time) (*domain.TaskSchedule, error) {
	task, err := domain.NewTaskSchedule(name, priority, complexity, energy, estimatedMin, deadline, now)
	if err != nil {
		return nil, fmt.Errorf("adding task: %w", err)
	}

	s.mu.Lock()
	s.tasks = append(s.tasks, task)
	s.mu.Unlock()

	s.persistTasks(ctx)
	return task, nil
}

// CompleteTask marks the task complete, optionally backfilling the actual
// duration and a satisfaction rating. Tasks are never deleted.
func (s *Store) CompleteTask(ctx context.Context, id string, now time.Time, actualMin, satisfaction *int) error {
	s.mu.Lock()
	task := s.findLocked(id)
	if task == nil {
		s.mu.Unlock()
		return fmt.Errorf("completing task %q: %w", id, ErrTaskNotFound)
	}
	if err := task.MarkCompleted(now, actualMin, satisfaction); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("completing task %q: %w", id, err)
	}
	s.mu.Unlock()

	s.persistTasks(ctx)
	return nil
}

// Task returns a copy of the task with the given ID.
func (s *Store) Task(id string) (domain.TaskSchedule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	task := s.findLocked(id)
	if task == nil {
		return domain.TaskSchedule{}, ErrTaskNotFound
	}
	return *task, nil
}

// Tasks returns a snapshot of all tasks, completed history included.
func (s *Store) Tasks() []domain.TaskSchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.TaskSchedule, 0, len(s.tasks))
	for _, t := range s.tasks {
		out = append(out, *t)
	}
	return out
}

// Incomplete returns a snapshot of the tasks not yet completed.
func (s *Store) Incomplete() []domain.TaskSchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.TaskSchedule
	for _, t := range s.tasks {
		if !t.Completed {
			out = append(out, *t)
		}
	}
	return out
}

// RecordEnergy appends a reading and prunes entries older than the retention
// window, measured from the new reading's timestamp.
func (s *Store) RecordEnergy(ctx context.Context, reading domain.EnergyReading) {
	cutoff := reading.Timestamp.Add(-readingRetention)

	s.mu.Lock()
	kept := s.readings[:0]
	for _, r := range s.readings {
		if !r.Timestamp.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	s.readings = append(kept, reading)
	s.mu.Unlock()

	s.persistReadings(ctx)
}

// Readings returns a snapshot of the retained energy readings.
func (s *Store) Readings() []domain.EnergyReading {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.EnergyReading, len(s.readings))
	copy(out, s.readings)
	return out
}

// Restore loads both collections from the settings bridge. Missing keys are
// the normal first-run case and leave the store empty.
func (s *Store) Restore(ctx context.Context) error {
	var tasks []*domain.TaskSchedule
	if err := settings.LoadJSON(ctx, s.settings, settings.KeyTasks, &tasks); err != nil && !errors.Is(err, settings.ErrNotFound) {
		return fmt.Errorf("restoring tasks: %w", err)
	}

	var readings []domain.EnergyReading
	if err := settings.LoadJSON(ctx, s.settings, settings.KeyEnergyReadings, &readings); err != nil && !errors.Is(err, settings.ErrNotFound) {
		return fmt.Errorf("restoring energy readings: %w", err)
	}

	s.mu.Lock()
	s.tasks = tasks
	s.readings = readings
	s.mu.Unlock()
	return nil
}

func (s *Store) findLocked(id string) *domain.TaskSchedule {
	for _, t := range s.tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}

func (s *Store) persistTasks(ctx context.Context) {
	if err := settings.SaveJSON(ctx, s.settings, settings.KeyTasks, s.Tasks()); err != nil {
		s.logger.DebugContext(ctx, "persist_failed", "key", settings.KeyTasks, "error", err)
	}
}

func (s *Store) persistReadings(ctx context.Context) {
	if err := settings.SaveJSON(ctx, s.settings, settings.KeyEnergyReadings, s.Readings()); err != nil {
		s.logger.DebugContext(ctx, "persist_failed", "key", settings.KeyEnergyReadings, "error", err)
	}
}
