package jobs

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/require"
)

func TestNewLowStockScanTaskCarriesSchedule(t *testing.T) {
	at := time.Date(2025, 6, 1, 3, 0, 0, 0, time.UTC)
	task, err := NewLowStockScanTask(at)
	require.NoError(t, err)
	require.Equal(t, TaskLowStockScan, task.Type())

	var payload LowStockScanPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	require.True(t, payload.ScheduledFor.Equal(at))
}

func TestHandleSkipsRetryOnMalformedPayload(t *testing.T) {
	job := NewLowStockScanJob(nil, nil, nil)
	task := asynq.NewTask(TaskLowStockScan, []byte("not-json"))

	err := job.Handle(context.Background(), task)
	require.ErrorIs(t, err, asynq.SkipRetry)
}

func TestHandleFailsWithoutPool(t *testing.T) {
	job := NewLowStockScanJob(nil, nil, nil)
	task, err := NewLowStockScanTask(time.Now())
	require.NoError(t, err)

	err = job.Handle(context.Background(), task)
	require.Error(t, err)
	require.NotErrorIs(t, err, asynq.SkipRetry)
}
