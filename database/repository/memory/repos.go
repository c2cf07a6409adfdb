package memory

import (
	"context"
	"sort"
	"time"

	"librarium/database"
	borrowRepo "librarium/database/repository/borrow"
	couponRepo "librarium/database/repository/coupon"
	ledgerRepo "librarium/database/repository/ledger"
	settingsRepo "librarium/database/repository/settings"
	spinRepo "librarium/database/repository/spin"
	wheelRepo "librarium/database/repository/wheel"
	"librarium/models"
)

var (
	_ database.Transactor              = (*Store)(nil)
	_ borrowRepo.BorrowRepository      = (*BorrowRepo)(nil)
	_ couponRepo.CouponRepository      = (*CouponRepo)(nil)
	_ wheelRepo.WheelRepository        = (*WheelRepo)(nil)
	_ spinRepo.SpinDataRepository      = (*SpinDataRepo)(nil)
	_ spinRepo.SpinLogRepository       = (*SpinLogRepo)(nil)
	_ ledgerRepo.TransactionRepository = (*TransactionRepo)(nil)
	_ settingsRepo.SettingsRepository  = (*SettingsRepo)(nil)
)

// --- Borrow records ---

type BorrowRepo struct{ s *Store }

func (r *BorrowRepo) GetByID(_ context.Context, id string) (*models.BorrowRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	rec, ok := r.s.data.borrows[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	rec = cloneBorrow(rec)
	return &rec, nil
}

func (r *BorrowRepo) ListByUser(_ context.Context, userID string) ([]models.BorrowRecord, error) {
	return r.filter(func(b models.BorrowRecord) bool { return b.BorrowedBy == userID }), nil
}

func (r *BorrowRepo) ListByFineStatus(_ context.Context, status models.FineStatus) ([]models.BorrowRecord, error) {
	return r.filter(func(b models.BorrowRecord) bool { return status == "" || b.FineStatus == status }), nil
}

func (r *BorrowRepo) filter(keep func(models.BorrowRecord) bool) []models.BorrowRecord {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.BorrowRecord{}
	for _, b := range r.s.data.borrows {
		if keep(b) {
			out = append(out, cloneBorrow(b))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].DueDate.Before(out[j].DueDate)
	})
	return out
}

func (r *BorrowRepo) Save(ctx context.Context, record *models.BorrowRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, had := r.s.data.borrows[record.ID]
	r.s.track(ctx, func(st *state) {
		if had {
			st.borrows[prev.ID] = prev
		} else {
			delete(st.borrows, record.ID)
		}
	})
	r.s.data.borrows[record.ID] = cloneBorrow(*record)
	return nil
}

func (r *BorrowRepo) MarkFinePaid(ctx context.Context, id string, snapshot models.FineSnapshot) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec, ok := r.s.data.borrows[id]
	if !ok || rec.FineStatus == models.FinePaid {
		return database.ErrConflict
	}
	prevStatus, prevFine := rec.FineStatus, rec.Fine
	r.s.track(ctx, func(st *state) {
		if cur, ok := st.borrows[id]; ok {
			cur.FineStatus, cur.Fine = prevStatus, prevFine
			st.borrows[id] = cur
		}
	})
	rec.FineStatus = models.FinePaid
	rec.Fine = &snapshot
	r.s.data.borrows[id] = rec
	return nil
}

func (r *BorrowRepo) RaiseExtensionAllowance(ctx context.Context, userID string, n int) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var modified int64
	for id, rec := range r.s.data.borrows {
		if rec.BorrowedBy != userID || rec.ReturnStatus != models.ReturnBorrowed || rec.MaxExtensions >= n {
			continue
		}
		recID, prevMax := id, rec.MaxExtensions
		r.s.track(ctx, func(st *state) {
			if cur, ok := st.borrows[recID]; ok {
				cur.MaxExtensions = prevMax
				st.borrows[recID] = cur
			}
		})
		rec.MaxExtensions = n
		r.s.data.borrows[id] = rec
		modified++
	}
	return modified, nil
}

// --- Coupons ---

type CouponRepo struct{ s *Store }

func (r *CouponRepo) Create(ctx context.Context, coupon *models.Coupon) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := couponKey{coupon.UserID, coupon.ID}
	if _, exists := r.s.data.coupons[key]; exists {
		return database.ErrConflict
	}
	r.s.track(ctx, func(st *state) {
		delete(st.coupons, key)
		for i := len(st.couponOrder) - 1; i >= 0; i-- {
			if st.couponOrder[i] == key {
				st.couponOrder = append(st.couponOrder[:i], st.couponOrder[i+1:]...)
				break
			}
		}
	})
	r.s.data.coupons[key] = *coupon
	r.s.data.couponOrder = append(r.s.data.couponOrder, key)
	return nil
}

func (r *CouponRepo) Get(_ context.Context, userID, couponID string) (*models.Coupon, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	c, ok := r.s.data.coupons[couponKey{userID, couponID}]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &c, nil
}

func (r *CouponRepo) ListByUser(_ context.Context, userID string) ([]models.Coupon, error) {
	return r.filter(func(c models.Coupon) bool { return c.UserID == userID }), nil
}

func (r *CouponRepo) ListAll(_ context.Context) ([]models.Coupon, error) {
	return r.filter(func(models.Coupon) bool { return true }), nil
}

func (r *CouponRepo) ListAvailable(_ context.Context, userID, category string, now time.Time) ([]models.Coupon, error) {
	return r.filter(func(c models.Coupon) bool {
		return c.UserID == userID && c.IsAvailable(now, category)
	}), nil
}

// filter returns matches newest first; ties keep reverse insertion order.
func (r *CouponRepo) filter(keep func(models.Coupon) bool) []models.Coupon {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := []models.Coupon{}
	for i := len(r.s.data.couponOrder) - 1; i >= 0; i-- {
		c, ok := r.s.data.coupons[r.s.data.couponOrder[i]]
		if ok && keep(c) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (r *CouponRepo) MarkUsed(ctx context.Context, userID, couponID, usageKey string, now time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := couponKey{userID, couponID}
	c, ok := r.s.data.coupons[key]
	if !ok || c.IsUsed || c.IsExpired(now) {
		return database.ErrConflict
	}
	prev := c
	r.s.track(ctx, func(st *state) { st.coupons[key] = prev })
	usedAt := now
	c.IsUsed = true
	c.UsedAt = &usedAt
	c.UsedForPenaltyID = &usageKey
	r.s.data.coupons[key] = c
	return nil
}

// --- Wheels ---

type WheelRepo struct{ s *Store }

func (r *WheelRepo) Get(_ context.Context, id string) (*models.WheelSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	w, ok := r.s.data.wheels[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	w = cloneWheel(w)
	return &w, nil
}

func (r *WheelRepo) List(_ context.Context) ([]models.WheelSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]models.WheelSettings, 0, len(r.s.data.wheelOrder))
	for _, id := range r.s.data.wheelOrder {
		out = append(out, cloneWheel(r.s.data.wheels[id]))
	}
	return out, nil
}

func (r *WheelRepo) Save(ctx context.Context, wheel *models.WheelSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	id := wheel.ID
	prev, exists := r.s.data.wheels[id]
	r.s.track(ctx, func(st *state) {
		if exists {
			st.wheels[id] = prev
			return
		}
		delete(st.wheels, id)
		for i, w := range st.wheelOrder {
			if w == id {
				st.wheelOrder = append(st.wheelOrder[:i], st.wheelOrder[i+1:]...)
				break
			}
		}
	})
	if !exists {
		r.s.data.wheelOrder = append(r.s.data.wheelOrder, wheel.ID)
	}
	r.s.data.wheels[wheel.ID] = cloneWheel(*wheel)
	return nil
}

// --- Spin data and logs ---

type SpinDataRepo struct{ s *Store }

func (r *SpinDataRepo) Get(_ context.Context, userID string) (*models.UserSpinData, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	d, ok := r.s.data.spinData[userID]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &d, nil
}

func (r *SpinDataRepo) Save(ctx context.Context, data *models.UserSpinData) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	userID := data.UserID
	prev, had := r.s.data.spinData[userID]
	r.s.track(ctx, func(st *state) {
		if had {
			st.spinData[userID] = prev
		} else {
			delete(st.spinData, userID)
		}
	})
	r.s.data.spinData[data.UserID] = *data
	return nil
}

type SpinLogRepo struct{ s *Store }

func (r *SpinLogRepo) Append(ctx context.Context, entry *models.SpinLogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	// transactions are serialized, so the slot is still ours when undone
	idx := len(r.s.data.spinLogs)
	r.s.track(ctx, func(st *state) {
		st.spinLogs = append(st.spinLogs[:idx], st.spinLogs[idx+1:]...)
	})
	r.s.data.spinLogs = append(r.s.data.spinLogs, *entry)
	return nil
}

// --- Ledger ---

type TransactionRepo struct{ s *Store }

func (r *TransactionRepo) Record(ctx context.Context, tx *models.LedgerTransaction) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, exists := r.s.data.ledger[tx.ReferenceKey]; exists {
		return false, nil
	}
	ref := tx.ReferenceKey
	r.s.track(ctx, func(st *state) { delete(st.ledger, ref) })
	r.s.data.ledger[ref] = *tx
	return true, nil
}

func (r *TransactionRepo) GetByReference(_ context.Context, referenceKey string) (*models.LedgerTransaction, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	tx, ok := r.s.data.ledger[referenceKey]
	if !ok {
		return nil, database.ErrNotFound
	}
	return &tx, nil
}

// --- Settings ---

type SettingsRepo struct{ s *Store }

func (r *SettingsRepo) Get(_ context.Context) (*models.AppSettings, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if r.s.data.settings == nil {
		return nil, database.ErrNotFound
	}
	cp := *r.s.data.settings
	return &cp, nil
}

func (r *SettingsRepo) Save(ctx context.Context, settings *models.AppSettings) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev := r.s.data.settings
	r.s.track(ctx, func(st *state) { st.settings = prev })
	cp := *settings
	cp.ID = models.AppSettingsID
	r.s.data.settings = &cp
	return nil
}
