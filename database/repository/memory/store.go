// Package memory is an in-process storage backend implementing every
// repository interface. Writes made inside a transaction are recorded in an
// undo log and reverted when the unit of work fails.
package memory

import (
	"context"
	"sync"

	"librarium/models"
)

type couponKey struct {
	userID string
	id     string
}

type state struct {
	borrows  map[string]models.BorrowRecord
	coupons  map[couponKey]models.Coupon
	wheels   map[string]models.WheelSettings
	spinData map[string]models.UserSpinData
	spinLogs []models.SpinLogEntry
	ledger   map[string]models.LedgerTransaction
	settings *models.AppSettings
	// insertion order for stable listings
	couponOrder []couponKey
	wheelOrder  []string
}

func newState() *state {
	return &state{
		borrows:  map[string]models.BorrowRecord{},
		coupons:  map[couponKey]models.Coupon{},
		wheels:   map[string]models.WheelSettings{},
		spinData: map[string]models.UserSpinData{},
		ledger:   map[string]models.LedgerTransaction{},
	}
}

// Store is the shared in-memory database.
type Store struct {
	mu   sync.RWMutex
	txMu sync.Mutex
	data *state
}

func NewStore() *Store {
	return &Store{data: newState()}
}

type txKey struct{}

// undoLog holds the inverse of every write made by one transaction.
type undoLog struct {
	undos []func(*state)
}

// WithTransaction serializes units of work and reverts the writes fn made if
// it fails. Writes issued outside the transaction are left alone.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	log := &undoLog{}
	if err := fn(context.WithValue(ctx, txKey{}, log)); err != nil {
		s.mu.Lock()
		for i := len(log.undos) - 1; i >= 0; i-- {
			log.undos[i](s.data)
		}
		s.mu.Unlock()
		return err
	}
	return nil
}

// track registers undo for a write when ctx belongs to a transaction.
// Callers hold s.mu.
func (s *Store) track(ctx context.Context, undo func(*state)) {
	if log, ok := ctx.Value(txKey{}).(*undoLog); ok {
		log.undos = append(log.undos, undo)
	}
}

func (s *Store) Borrows() *BorrowRepo           { return &BorrowRepo{s: s} }
func (s *Store) Coupons() *CouponRepo           { return &CouponRepo{s: s} }
func (s *Store) Wheels() *WheelRepo             { return &WheelRepo{s: s} }
func (s *Store) SpinData() *SpinDataRepo        { return &SpinDataRepo{s: s} }
func (s *Store) SpinLogs() *SpinLogRepo         { return &SpinLogRepo{s: s} }
func (s *Store) Transactions() *TransactionRepo { return &TransactionRepo{s: s} }
func (s *Store) Settings() *SettingsRepo        { return &SettingsRepo{s: s} }

// SpinLogEntries returns a copy of the audit log.
func (s *Store) SpinLogEntries() []models.SpinLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.SpinLogEntry(nil), s.data.spinLogs...)
}

func cloneBorrow(b models.BorrowRecord) models.BorrowRecord {
	if b.Fine != nil {
		f := *b.Fine
		b.Fine = &f
	}
	return b
}

func cloneWheel(w models.WheelSettings) models.WheelSettings {
	w.Rewards = append([]models.Reward(nil), w.Rewards...)
	return w
}
