package workers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	dbm "tiketku/internal/models/db_models"
	"tiketku/internal/queue"
	"tiketku/internal/repositories"
	"tiketku/pkg/utils"
)

// ExpiryWorker consumes delayed expire-if-unpaid jobs. It re-validates the
// transaction at fire time: if the buyer or organizer acted first the job is
// acknowledged without effect, because the first committed transition wins.
type ExpiryWorker struct {
	transactions repositories.TransactionRepository
}

func NewExpiryWorker(transactions repositories.TransactionRepository) *ExpiryWorker {
	return &ExpiryWorker{transactions: transactions}
}

func (w *ExpiryWorker) Register(mux *asynq.ServeMux) {
	mux.HandleFunc(queue.TypeTransactionExpire, w.HandleTransactionExpire)
}

func (w *ExpiryWorker) HandleTransactionExpire(ctx context.Context, task *asynq.Task) error {
	var payload queue.ExpirePayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("malformed expire payload: %v: %w", err, asynq.SkipRetry)
	}
	reference, err := uuid.Parse(payload.Reference)
	if err != nil {
		return fmt.Errorf("malformed transaction reference %q: %w", payload.Reference, asynq.SkipRetry)
	}

	log := logrus.WithField("reference", reference)

	txn, err := w.transactions.FindByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, utils.ErrTransactionNotFound) {
			// Stale job, nothing to reclaim. Ack and drop.
			log.Warn("expiry job for unknown transaction dropped")
			return nil
		}
		// Transient storage failure: let asynq redeliver with backoff.
		return err
	}

	if txn.Status != dbm.TxnStatusWaitingForPayment {
		log.WithField("status", txn.Status).Debug("transaction already settled, expiry skipped")
		return nil
	}

	expired, err := w.transactions.ExpireAndRestore(ctx, reference)
	if err != nil {
		return err
	}
	if !expired {
		// Someone transitioned the row between our read and the guarded
		// update. Losing that race is expected, not an error.
		log.Debug("expiry lost the race to another transition")
		return nil
	}

	log.Info("transaction expired, stock restored")
	return nil
}

// LogDroppedJobs surfaces jobs that exhausted their retries. A dropped
// expiry job means a reservation's stock is never reclaimed automatically,
// so this is the operational alert hook, not a crash.
func LogDroppedJobs() asynq.ErrorHandlerFunc {
	return func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)

		log := logrus.WithFields(logrus.Fields{
			"type":    task.Type(),
			"payload": string(task.Payload()),
			"retried": retried,
		})
		if retried >= maxRetry {
			log.WithError(err).Error("ALERT: expiry job exhausted retries, stock must be reconciled manually")
			return
		}
		log.WithError(err).Warn("expiry job failed, will retry with backoff")
	}
}
