package tracker

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hochfrequenz/shift-tracker/internal/domain"
	"go.uber.org/zap"
)

// ErrTaskIndex is returned for a task position outside the to-do list
var ErrTaskIndex = errors.New("no task at that position")

// ErrEmptyTask is returned when adding a blank task
var ErrEmptyTask = errors.New("task text is empty")

// AddTask appends a task to the to-do list
func (t *Tracker) AddTask(rec *domain.Record, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyTask
	}
	rec.Tasks = append(rec.Tasks, text)
	t.logger.Debug("task added", zap.String("task", text), zap.Int("open", len(rec.Tasks)))
	return nil
}

// RemoveTask drops the task at index without marking it finished
func (t *Tracker) RemoveTask(rec *domain.Record, index int) (string, error) {
	if index < 0 || index >= len(rec.Tasks) {
		return "", fmt.Errorf("%w: %d", ErrTaskIndex, index)
	}
	text := rec.Tasks[index]
	rec.Tasks = append(rec.Tasks[:index], rec.Tasks[index+1:]...)
	return text, nil
}

// FinishTask moves the task at index into the live block's finished tasks.
// It requires an active shift.
func (t *Tracker) FinishTask(rec *domain.Record, index int) (string, error) {
	if rec.State == domain.StateStopped {
		return "", ErrNotTracking
	}
	last := rec.LastBlock()
	if last == nil {
		return "", domain.ErrNoTimeBlocks
	}

	text, err := t.RemoveTask(rec, index)
	if err != nil {
		return "", err
	}
	last.FinishedTasks = append(last.FinishedTasks, text)
	t.logger.Debug("task finished", zap.String("task", text))
	return text, nil
}
