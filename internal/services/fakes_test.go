package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "tiketku/internal/models/db_models"
	"tiketku/internal/repositories"
	"tiketku/pkg/utils"
)

// In-memory doubles implementing the repository and collaborator contracts,
// including their atomicity guarantees, so service behavior can be driven
// through real races without a database.

type fakeTicketRepo struct {
	mu      sync.Mutex
	tickets map[uint]*dbm.Ticket
}

func newFakeTicketRepo(tickets ...dbm.Ticket) *fakeTicketRepo {
	repo := &fakeTicketRepo{tickets: make(map[uint]*dbm.Ticket)}
	for i := range tickets {
		t := tickets[i]
		repo.tickets[t.ID] = &t
	}
	return repo
}

func (r *fakeTicketRepo) Insert(ctx context.Context, ticket *dbm.Ticket) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if ticket.ID == 0 {
		ticket.ID = uint(len(r.tickets) + 1)
	}
	copied := *ticket
	r.tickets[ticket.ID] = &copied
	return nil
}

func (r *fakeTicketRepo) FindByID(ctx context.Context, id uint) (*dbm.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ticket, ok := r.tickets[id]
	if !ok {
		return nil, nil
	}
	copied := *ticket
	return &copied, nil
}

func (r *fakeTicketRepo) FindByIDs(ctx context.Context, ids []uint) ([]dbm.Ticket, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dbm.Ticket
	for _, id := range ids {
		if ticket, ok := r.tickets[id]; ok {
			out = append(out, *ticket)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) ListByEvent(ctx context.Context, eventID uuid.UUID, page, pageSize int) ([]dbm.Ticket, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dbm.Ticket
	for _, ticket := range r.tickets {
		if ticket.EventID == eventID {
			out = append(out, *ticket)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeTicketRepo) ReserveStock(tx *gorm.DB, ticketID uint, qty int) error {
	// Callers hold r.mu via the transaction repo, mirroring how the real
	// implementation serializes on the database row.
	ticket, ok := r.tickets[ticketID]
	if !ok || ticket.Stock < qty {
		return utils.ErrInsufficientStock
	}
	ticket.Stock -= qty
	return nil
}

func (r *fakeTicketRepo) RestoreStock(tx *gorm.DB, ticketID uint, qty int) error {
	if ticket, ok := r.tickets[ticketID]; ok {
		ticket.Stock += qty
	}
	return nil
}

func (r *fakeTicketRepo) stock(id uint) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tickets[id].Stock
}

type fakeTransactionRepo struct {
	mu      sync.Mutex
	tickets *fakeTicketRepo
	nextID  uint
	txns    map[uuid.UUID]*dbm.Transaction
	details map[uint][]dbm.TransactionDetail

	failWith error // when set, every call returns this
}

func newFakeTransactionRepo(tickets *fakeTicketRepo) *fakeTransactionRepo {
	return &fakeTransactionRepo{
		tickets: tickets,
		txns:    make(map[uuid.UUID]*dbm.Transaction),
		details: make(map[uint][]dbm.TransactionDetail),
	}
}

func (r *fakeTransactionRepo) CreateWithDetails(ctx context.Context, txn *dbm.Transaction, details []dbm.TransactionDetail) error {
	if r.failWith != nil {
		return r.failWith
	}
	r.tickets.mu.Lock()
	defer r.tickets.mu.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()

	// Mirror the real store: decrement sequentially, and roll back the
	// decrements already applied when a later one fails. This keeps a cart
	// holding the same ticket twice honest about the combined quantity.
	applied := make([]dbm.TransactionDetail, 0, len(details))
	for _, detail := range details {
		ticket, ok := r.tickets.tickets[detail.TicketID]
		if !ok || ticket.Stock < detail.Qty {
			for _, done := range applied {
				r.tickets.tickets[done.TicketID].Stock += done.Qty
			}
			return utils.ErrInsufficientStock
		}
		ticket.Stock -= detail.Qty
		applied = append(applied, detail)
	}

	r.nextID++
	txn.ID = r.nextID
	if txn.Reference == uuid.Nil {
		txn.Reference = uuid.New()
	}
	txn.CreatedAt = time.Now().Unix()
	for i := range details {
		details[i].TransactionID = txn.ID
	}
	copied := *txn
	r.txns[txn.Reference] = &copied
	r.details[txn.ID] = append([]dbm.TransactionDetail(nil), details...)
	return nil
}

func (r *fakeTransactionRepo) FindByReference(ctx context.Context, reference uuid.UUID) (*dbm.Transaction, error) {
	if r.failWith != nil {
		return nil, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[reference]
	if !ok {
		return nil, utils.ErrTransactionNotFound
	}
	copied := *txn
	copied.Details = append([]dbm.TransactionDetail(nil), r.details[txn.ID]...)
	return &copied, nil
}

func (r *fakeTransactionRepo) List(ctx context.Context, filter repositories.TransactionFilter) ([]dbm.Transaction, int64, error) {
	if r.failWith != nil {
		return nil, 0, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dbm.Transaction
	for _, txn := range r.txns {
		if filter.UserID != nil && txn.UserID != *filter.UserID {
			continue
		}
		if filter.Status != nil && txn.Status != *filter.Status {
			continue
		}
		copied := *txn
		copied.Details = append([]dbm.TransactionDetail(nil), r.details[txn.ID]...)
		out = append(out, copied)
	}
	return out, int64(len(out)), nil
}

func (r *fakeTransactionRepo) UpdateStatusIf(ctx context.Context, reference uuid.UUID, from, to dbm.TransactionStatus, updates map[string]interface{}) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[reference]
	if !ok || txn.Status != from {
		return false, nil
	}
	txn.Status = to
	if proof, ok := updates["payment_proof"].(string); ok {
		txn.PaymentProof = proof
	}
	return true, nil
}

func (r *fakeTransactionRepo) RejectAndRestore(ctx context.Context, reference uuid.UUID) (bool, error) {
	return r.transitionAndRestore(reference, dbm.TxnStatusWaitingForConfirmation, dbm.TxnStatusReject)
}

func (r *fakeTransactionRepo) ExpireAndRestore(ctx context.Context, reference uuid.UUID) (bool, error) {
	return r.transitionAndRestore(reference, dbm.TxnStatusWaitingForPayment, dbm.TxnStatusExpired)
}

func (r *fakeTransactionRepo) transitionAndRestore(reference uuid.UUID, from, to dbm.TransactionStatus) (bool, error) {
	if r.failWith != nil {
		return false, r.failWith
	}
	r.tickets.mu.Lock()
	defer r.tickets.mu.Unlock()
	r.mu.Lock()
	defer r.mu.Unlock()
	txn, ok := r.txns[reference]
	if !ok || txn.Status != from {
		return false, nil
	}
	txn.Status = to
	for _, detail := range r.details[txn.ID] {
		r.tickets.tickets[detail.TicketID].Stock += detail.Qty
	}
	return true, nil
}

func (r *fakeTransactionRepo) status(reference uuid.UUID) dbm.TransactionStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.txns[reference].Status
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[uuid.UUID]*dbm.User

	byEmail    map[string]*dbm.User
	byReferral map[string]*dbm.User
	credits    []dbm.PointBalance
}

func newFakeUserRepo(users ...dbm.User) *fakeUserRepo {
	repo := &fakeUserRepo{
		users:      make(map[uuid.UUID]*dbm.User),
		byEmail:    make(map[string]*dbm.User),
		byReferral: make(map[string]*dbm.User),
	}
	for i := range users {
		u := users[i]
		repo.index(&u)
	}
	return repo
}

func (r *fakeUserRepo) index(u *dbm.User) {
	r.users[u.ID] = u
	r.byEmail[u.Email] = u
	if u.ReferralCode != "" {
		r.byReferral[u.ReferralCode] = u
	}
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*dbm.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byEmail[email]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*dbm.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) FindByReferralCode(ctx context.Context, code string) (*dbm.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.byReferral[code]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeUserRepo) CreateWithReferralCredit(ctx context.Context, user *dbm.User, referrer *dbm.User, credit *dbm.PointBalance) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	copied := *user
	r.index(&copied)
	if referrer != nil && credit != nil {
		credit.UserID = referrer.ID
		r.credits = append(r.credits, *credit)
	}
	return nil
}

func (r *fakeUserRepo) ActivePoints(ctx context.Context, userID uuid.UUID, now int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total int64
	for _, credit := range r.credits {
		if credit.UserID == userID && credit.ExpiresAt > now {
			total += credit.Amount
		}
	}
	return total, nil
}

type fakeScheduler struct {
	mu        sync.Mutex
	scheduled map[uuid.UUID]time.Duration
	calls     int
	err       error
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{scheduled: make(map[uuid.UUID]time.Duration)}
}

func (s *fakeScheduler) ScheduleExpiry(ctx context.Context, reference uuid.UUID, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return s.err
	}
	// Dedup on reference, like asynq task IDs.
	if _, ok := s.scheduled[reference]; !ok {
		s.scheduled[reference] = delay
	}
	return nil
}

func (s *fakeScheduler) jobCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.scheduled)
}

type fakeStorage struct{}

func (fakeStorage) UploadPaymentProof(ctx context.Context, file *multipart.FileHeader, reference string) (string, error) {
	return fmt.Sprintf("https://cdn.example.com/payment-proofs/%s.jpg", reference), nil
}

type fakeMail struct{}

func (fakeMail) SendPaymentReminder(to, name, reference string, expiresAt time.Time) error {
	return nil
}

func (fakeMail) SendDecisionNotice(to, name, reference string, accepted bool) error {
	return nil
}

type fakeCache struct {
	mu   sync.Mutex
	data map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string]string)}
}

func (c *fakeCache) GetValue(ctx context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.data[key]
	return value, ok, nil
}

func (c *fakeCache) SetValue(ctx context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

type fakeEventRepo struct {
	mu     sync.Mutex
	events map[string]*dbm.Event
	finds  int
}

func newFakeEventRepo(events ...dbm.Event) *fakeEventRepo {
	repo := &fakeEventRepo{events: make(map[string]*dbm.Event)}
	for i := range events {
		e := events[i]
		repo.events[e.Slug] = &e
	}
	return repo
}

func (r *fakeEventRepo) Insert(ctx context.Context, event *dbm.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	copied := *event
	r.events[event.Slug] = &copied
	return nil
}

func (r *fakeEventRepo) FindBySlug(ctx context.Context, slug string) (*dbm.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finds++
	if e, ok := r.events[slug]; ok {
		copied := *e
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeEventRepo) List(ctx context.Context, filter repositories.EventFilter) ([]dbm.Event, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []dbm.Event
	for _, e := range r.events {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}
