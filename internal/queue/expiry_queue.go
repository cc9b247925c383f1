package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

const (
	TypeTransactionExpire = "transaction:expire"
	QueueTransactions     = "transactions"

	// Delivery attempts before the job is archived and alerted on.
	maxExpireRetries = 5
)

type ExpirePayload struct {
	Reference string `json:"reference"`
}

func NewTransactionExpireTask(reference uuid.UUID) (*asynq.Task, error) {
	payload, err := json.Marshal(ExpirePayload{Reference: reference.String()})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeTransactionExpire, payload), nil
}

// ExpiryScheduler hands an expire-if-unpaid check to the background worker,
// to fire once the payment window has elapsed.
type ExpiryScheduler interface {
	ScheduleExpiry(ctx context.Context, reference uuid.UUID, delay time.Duration) error
}

// expiryEnqueuer is the slice of *asynq.Client the scheduler uses.
type expiryEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type asynqExpiryScheduler struct {
	client expiryEnqueuer
}

func NewExpiryScheduler(client *asynq.Client) ExpiryScheduler {
	return &asynqExpiryScheduler{client: client}
}

// ScheduleExpiry enqueues the delayed check keyed by the transaction
// reference. The task ID makes scheduling idempotent: a second enqueue for
// the same reference conflicts and is absorbed as a no-op.
func (s *asynqExpiryScheduler) ScheduleExpiry(ctx context.Context, reference uuid.UUID, delay time.Duration) error {
	task, err := NewTransactionExpireTask(reference)
	if err != nil {
		return err
	}

	info, err := s.client.EnqueueContext(ctx, task,
		asynq.TaskID(reference.String()),
		asynq.ProcessIn(delay),
		asynq.MaxRetry(maxExpireRetries),
		asynq.Queue(QueueTransactions),
	)
	if err != nil {
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			logrus.WithField("reference", reference).Debug("expiry job already scheduled")
			return nil
		}
		return err
	}

	logrus.WithFields(logrus.Fields{
		"reference": reference,
		"task_id":   info.ID,
		"fire_at":   info.NextProcessAt,
	}).Info("expiry job scheduled")
	return nil
}
