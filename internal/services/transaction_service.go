package services

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	dbm "tiketku/internal/models/db_models"
	"tiketku/internal/models/request_models"
	"tiketku/internal/models/response_models"
	"tiketku/internal/queue"
	"tiketku/internal/repositories"
	"tiketku/pkg/utils"
)

const DefaultExpiryWindow = 5 * time.Minute

type TransactionServiceInterface interface {
	CreateTransaction(ctx context.Context, userID uuid.UUID, items []request_models.CartItem) (*response_models.CreateTransactionResponse, error)
	UploadPaymentProof(ctx context.Context, reference uuid.UUID, file *multipart.FileHeader, userID uuid.UUID) error
	DecideTransaction(ctx context.Context, reference uuid.UUID, decision string) error
	GetTransaction(ctx context.Context, reference uuid.UUID, userID uuid.UUID) (*response_models.TransactionResponse, error)
	ListMyTransactions(ctx context.Context, userID uuid.UUID, page, pageSize int) (*response_models.TransactionListResponse, error)
}

// TransactionService coordinates the purchase lifecycle: it reserves stock
// atomically with the transaction rows, schedules the delayed expiry check,
// and applies buyer/organizer transitions through guarded updates so that
// three racing actors (buyer, organizer, expiry worker) settle each
// transaction exactly once.
type TransactionService struct {
	transactions repositories.TransactionRepository
	tickets      repositories.TicketRepository
	users        repositories.UserRepository
	scheduler    queue.ExpiryScheduler
	storage      StorageServiceInterface
	mail         MailServiceInterface
	expiryWindow time.Duration
}

func NewTransactionService(
	transactions repositories.TransactionRepository,
	tickets repositories.TicketRepository,
	users repositories.UserRepository,
	scheduler queue.ExpiryScheduler,
	storage StorageServiceInterface,
	mail MailServiceInterface,
	expiryWindow time.Duration,
) TransactionServiceInterface {
	if expiryWindow <= 0 {
		expiryWindow = DefaultExpiryWindow
	}
	return &TransactionService{
		transactions: transactions,
		tickets:      tickets,
		users:        users,
		scheduler:    scheduler,
		storage:      storage,
		mail:         mail,
		expiryWindow: expiryWindow,
	}
}

func (s *TransactionService) CreateTransaction(ctx context.Context, userID uuid.UUID, items []request_models.CartItem) (*response_models.CreateTransactionResponse, error) {
	if len(items) == 0 {
		return nil, utils.ErrEmptyCart
	}

	ticketIDs := make([]uint, 0, len(items))
	for _, item := range items {
		ticketIDs = append(ticketIDs, item.TicketID)
	}

	tickets, err := s.tickets.FindByIDs(ctx, ticketIDs)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	ticketsByID := make(map[uint]dbm.Ticket, len(tickets))
	for _, ticket := range tickets {
		ticketsByID[ticket.ID] = ticket
	}

	// Pre-check for a fast, friendly failure. The authoritative check is
	// the conditional decrement inside CreateWithDetails.
	var amount int64
	details := make([]dbm.TransactionDetail, 0, len(items))
	for _, item := range items {
		ticket, ok := ticketsByID[item.TicketID]
		if !ok {
			return nil, utils.ErrTicketNotFound
		}
		if ticket.Stock < item.Qty {
			return nil, utils.ErrInsufficientStock
		}
		amount += int64(item.Qty) * ticket.PriceMinor
		details = append(details, dbm.TransactionDetail{
			TicketID:   item.TicketID,
			Qty:        item.Qty,
			PriceMinor: ticket.PriceMinor,
		})
	}

	expiresAt := time.Now().Add(s.expiryWindow)
	txn := &dbm.Transaction{
		UserID:      userID,
		Status:      dbm.TxnStatusWaitingForPayment,
		AmountMinor: amount,
		ExpiresAt:   expiresAt.Unix(),
	}

	if err := s.transactions.CreateWithDetails(ctx, txn, details); err != nil {
		if err == utils.ErrInsufficientStock {
			return nil, err
		}
		return nil, utils.ErrDatabaseError
	}

	log := logrus.WithFields(logrus.Fields{
		"reference": txn.Reference,
		"user_id":   userID,
		"amount":    amount,
	})
	log.Info("transaction created, stock reserved")

	// A reservation without its expiry job leaks stock if the buyer walks
	// away, so a scheduling failure is alert-worthy even though the
	// reservation itself stands.
	if err := s.scheduler.ScheduleExpiry(ctx, txn.Reference, s.expiryWindow); err != nil {
		log.WithError(err).Error("ALERT: failed to schedule expiry job, reservation will not auto-expire")
	}

	s.notifyPaymentReminder(ctx, txn, expiresAt)

	return &response_models.CreateTransactionResponse{
		Reference:   txn.Reference.String(),
		Status:      string(txn.Status),
		AmountMinor: amount,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *TransactionService) UploadPaymentProof(ctx context.Context, reference uuid.UUID, file *multipart.FileHeader, userID uuid.UUID) error {
	txn, err := s.transactions.FindByReference(ctx, reference)
	if err != nil {
		return err
	}
	if txn.UserID != userID {
		return utils.ErrForbidden
	}
	if txn.Status != dbm.TxnStatusWaitingForPayment {
		return utils.ErrInvalidState
	}

	proofURL, err := s.storage.UploadPaymentProof(ctx, file, reference.String())
	if err != nil {
		return err
	}

	ok, err := s.transactions.UpdateStatusIf(ctx, reference,
		dbm.TxnStatusWaitingForPayment, dbm.TxnStatusWaitingForConfirmation,
		map[string]interface{}{"payment_proof": proofURL})
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !ok {
		// The expiry worker (or a concurrent submission) moved the
		// transaction between our read and the guarded update.
		return utils.ErrInvalidState
	}

	logrus.WithField("reference", reference).Info("payment proof submitted")
	return nil
}

func (s *TransactionService) DecideTransaction(ctx context.Context, reference uuid.UUID, decision string) error {
	txn, err := s.transactions.FindByReference(ctx, reference)
	if err != nil {
		return err
	}

	var accepted bool
	switch decision {
	case request_models.DecisionAccept:
		accepted = true
		// Stock stays committed: it was taken at reservation time.
		ok, err := s.transactions.UpdateStatusIf(ctx, reference,
			dbm.TxnStatusWaitingForConfirmation, dbm.TxnStatusPaid, nil)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if !ok {
			return utils.ErrInvalidState
		}
	case request_models.DecisionReject:
		won, err := s.transactions.RejectAndRestore(ctx, reference)
		if err != nil {
			return utils.ErrDatabaseError
		}
		if !won {
			return utils.ErrInvalidState
		}
	default:
		return utils.ErrInvalidState
	}

	logrus.WithFields(logrus.Fields{
		"reference": reference,
		"decision":  decision,
	}).Info("organizer decision applied")

	s.notifyDecision(txn, accepted)
	return nil
}

func (s *TransactionService) GetTransaction(ctx context.Context, reference uuid.UUID, userID uuid.UUID) (*response_models.TransactionResponse, error) {
	txn, err := s.transactions.FindByReference(ctx, reference)
	if err != nil {
		return nil, err
	}
	if txn.UserID != userID {
		return nil, utils.ErrForbidden
	}
	resp := toTransactionResponse(txn)
	return &resp, nil
}

func (s *TransactionService) ListMyTransactions(ctx context.Context, userID uuid.UUID, page, pageSize int) (*response_models.TransactionListResponse, error) {
	txns, total, err := s.transactions.List(ctx, repositories.TransactionFilter{
		UserID:   &userID,
		Page:     page,
		PageSize: pageSize,
	})
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	data := make([]response_models.TransactionResponse, 0, len(txns))
	for i := range txns {
		data = append(data, toTransactionResponse(&txns[i]))
	}
	return &response_models.TransactionListResponse{
		Data: data,
		Meta: response_models.PageMeta{Page: page, PageSize: pageSize, Total: total},
	}, nil
}

// Notifications are best-effort: delivery failure never rolls back a
// transaction, it only gets logged.
func (s *TransactionService) notifyPaymentReminder(ctx context.Context, txn *dbm.Transaction, expiresAt time.Time) {
	user, err := s.users.FindByID(ctx, txn.UserID)
	if err != nil || user == nil {
		logrus.WithField("reference", txn.Reference).Warn("buyer lookup failed, payment reminder skipped")
		return
	}
	go func() {
		if err := s.mail.SendPaymentReminder(user.Email, user.Name, txn.Reference.String(), expiresAt); err != nil {
			logrus.WithField("reference", txn.Reference).WithError(err).Warn("payment reminder mail failed")
		}
	}()
}

func (s *TransactionService) notifyDecision(txn *dbm.Transaction, accepted bool) {
	if txn.User.Email == "" {
		return
	}
	go func() {
		if err := s.mail.SendDecisionNotice(txn.User.Email, txn.User.Name, txn.Reference.String(), accepted); err != nil {
			logrus.WithField("reference", txn.Reference).WithError(err).Warn("decision mail failed")
		}
	}()
}

func toTransactionResponse(txn *dbm.Transaction) response_models.TransactionResponse {
	items := make([]response_models.TransactionItemResponse, 0, len(txn.Details))
	for _, detail := range txn.Details {
		items = append(items, response_models.TransactionItemResponse{
			TicketID:   detail.TicketID,
			Qty:        detail.Qty,
			PriceMinor: detail.PriceMinor,
		})
	}
	return response_models.TransactionResponse{
		Reference:    txn.Reference.String(),
		Status:       string(txn.Status),
		AmountMinor:  txn.AmountMinor,
		PaymentProof: txn.PaymentProof,
		ExpiresAt:    time.Unix(txn.ExpiresAt, 0),
		CreatedAt:    time.Unix(txn.CreatedAt, 0),
		Items:        items,
	}
}
