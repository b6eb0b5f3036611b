package entities

import (
	"testing"
	"time"

	pkgerrors "etherlink/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	end := start.Add(time.Hour)

	tests := []struct {
		name     string
		input    TaskInput
		wantRule string
	}{
		{name: "valid window", input: TaskInput{Title: "Brew", Start: start, End: end}},
		{name: "zero length window", input: TaskInput{Title: "Blink", Start: start, End: start}},
		{name: "missing title", input: TaskInput{Title: "  ", Start: start, End: end}, wantRule: pkgerrors.RuleTitleRequired},
		{name: "missing start", input: TaskInput{Title: "Brew", End: end}, wantRule: pkgerrors.RuleInvalidTimestamp},
		{name: "inverted window", input: TaskInput{Title: "Brew", Start: end, End: start}, wantRule: pkgerrors.RuleTimeRangeInverted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewTask(tt.input, now)
			if tt.wantRule != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantRule, pkgerrors.RuleOf(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusPending, task.Status)
			assert.Equal(t, now, task.CreatedAt)
			assert.False(t, task.ID.IsZero())
		})
	}
}

func TestTaskToggle(t *testing.T) {
	task := Task{Status: StatusPending}

	task.Toggle()
	assert.True(t, task.IsComplete())

	task.Toggle()
	assert.Equal(t, StatusPending, task.Status)
}

func TestTaskDurationMinutes(t *testing.T) {
	start := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 90, Task{Start: start, End: start.Add(90 * time.Minute)}.DurationMinutes())
	assert.Equal(t, 1, Task{Start: start, End: start.Add(40 * time.Second)}.DurationMinutes())
	assert.Equal(t, 0, Task{Start: start, End: start.Add(-time.Hour)}.DurationMinutes())
}
