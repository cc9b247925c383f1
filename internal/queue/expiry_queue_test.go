package queue

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTransactionExpireTask(t *testing.T) {
	reference := uuid.New()

	task, err := NewTransactionExpireTask(reference)
	require.NoError(t, err)
	assert.Equal(t, TypeTransactionExpire, task.Type())

	var payload ExpirePayload
	require.NoError(t, json.Unmarshal(task.Payload(), &payload))
	assert.Equal(t, reference.String(), payload.Reference)
}

type stubEnqueuer struct {
	calls int
	err   error
}

func (s *stubEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &asynq.TaskInfo{ID: uuid.NewString(), Queue: QueueTransactions}, nil
}

func TestScheduleExpiry(t *testing.T) {
	ctx := context.Background()

	t.Run("enqueues the delayed task", func(t *testing.T) {
		enqueuer := &stubEnqueuer{}
		scheduler := &asynqExpiryScheduler{client: enqueuer}

		require.NoError(t, scheduler.ScheduleExpiry(ctx, uuid.New(), time.Minute))
		assert.Equal(t, 1, enqueuer.calls)
	})

	t.Run("duplicate task id is absorbed as success", func(t *testing.T) {
		enqueuer := &stubEnqueuer{err: asynq.ErrTaskIDConflict}
		scheduler := &asynqExpiryScheduler{client: enqueuer}

		// A second schedule for the same reference conflicts on the task
		// ID; that must read as "already scheduled", not a failure.
		assert.NoError(t, scheduler.ScheduleExpiry(ctx, uuid.New(), time.Minute))
	})

	t.Run("other enqueue failures propagate", func(t *testing.T) {
		enqueuer := &stubEnqueuer{err: errors.New("redis down")}
		scheduler := &asynqExpiryScheduler{client: enqueuer}

		assert.Error(t, scheduler.ScheduleExpiry(ctx, uuid.New(), time.Minute))
	})
}
