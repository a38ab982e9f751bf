package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTask_SetCompleted(t *testing.T) {
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	task := &Task{Title: "Buy milk", Priority: PriorityLow}

	task.SetCompleted(true, now)
	require.True(t, task.Completed)
	require.NotNil(t, task.CompletedAt)
	require.Equal(t, now, *task.CompletedAt)

	task.SetCompleted(false, now.Add(time.Hour))
	require.False(t, task.Completed)
	require.Nil(t, task.CompletedAt)
}

func TestPriority_IsValid(t *testing.T) {
	require.True(t, PriorityLow.IsValid())
	require.True(t, PriorityMedium.IsValid())
	require.True(t, PriorityHigh.IsValid())
	require.False(t, Priority("urgent").IsValid())
	require.False(t, Priority("").IsValid())
}

func TestValidationError_SortsFields(t *testing.T) {
	err := &ValidationError{Fields: map[string][]string{
		"title":    {"The title field is required."},
		"priority": {"The selected priority is invalid."},
	}}

	require.Equal(t, "validation failed: priority, title", err.Error())
}
