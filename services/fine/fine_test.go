package fine

import (
	"context"
	"errors"
	"testing"
	"time"

	"librarium/database/repository/memory"
	"librarium/models"
	"librarium/services/coupon"
	"librarium/services/notification"
	"librarium/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

var payNow = date(2024, 1, 10)

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) RecordIncome(ctx context.Context, tx models.LedgerTransaction) error {
	return m.Called(ctx, tx).Error(0)
}

// failingBorrows fails the snapshot write after everything before it succeeded.
type failingBorrows struct {
	*memory.BorrowRepo
}

func (f failingBorrows) MarkFinePaid(context.Context, string, models.FineSnapshot) error {
	return errors.New("write failed")
}

type fixture struct {
	store    *memory.Store
	coupons  *coupon.DefaultCouponService
	recorder *mockRecorder
	svc      *DefaultFineService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	coupons := coupon.NewDefaultCouponService(store.Coupons(), 30)
	coupons.Now = func() time.Time { return payNow }
	recorder := new(mockRecorder)
	svc := NewDefaultFineService(store.Borrows(), coupons, store, recorder, notification.NewDefaultNotificationService(nil))
	svc.Now = func() time.Time { return payNow }
	return &fixture{store: store, coupons: coupons, recorder: recorder, svc: svc}
}

// scenarioRecord is due 2024-01-01 and returned 2024-01-04.
func (f *fixture) scenarioRecord(t *testing.T) *models.BorrowRecord {
	t.Helper()
	returned := date(2024, 1, 4)
	rec := &models.BorrowRecord{
		ID: "u1_b1", BookID: "b1", BookTitle: "Dune", Category: "D-RMN", BorrowedBy: "u1",
		BorrowedAt: date(2023, 12, 15), DueDate: date(2024, 1, 1), ReturnedAt: &returned,
		ReturnStatus: models.ReturnReturned, FineStatus: models.FinePending,
	}
	require.NoError(t, f.store.Borrows().Save(context.Background(), rec))
	return rec
}

func TestSettle(t *testing.T) {
	returned := date(2024, 1, 4)
	rec := &models.BorrowRecord{DueDate: date(2024, 1, 1), ReturnedAt: &returned}

	snap, err := Settle(rec, 5, nil, payNow)
	require.NoError(t, err)
	assert.Equal(t, 15.0, snap.AmountSnapshot)
	assert.Equal(t, 3, snap.DaysOverdueSnapshot)
	assert.Equal(t, 5.0, snap.RateSnapshot)
	assert.Nil(t, snap.DiscountApplied)
	assert.Nil(t, snap.OriginalFineAmount)

	twenty := 20
	snap, err = Settle(rec, 5, &twenty, payNow)
	require.NoError(t, err)
	assert.Equal(t, 12.0, snap.AmountSnapshot)
	require.NotNil(t, snap.OriginalFineAmount)
	assert.Equal(t, 15.0, *snap.OriginalFineAmount)

	testCases := []struct {
		name     string
		record   *models.BorrowRecord
		rate     float64
		discount *int
		err      error
	}{
		{"negative rate", rec, -1, nil, ErrInvalidRate},
		{"paid", &models.BorrowRecord{DueDate: date(2024, 1, 1), FineStatus: models.FinePaid}, 5, nil, ErrAlreadyPaid},
		{"not overdue", &models.BorrowRecord{DueDate: payNow.Add(time.Hour)}, 5, nil, ErrNotOverdue},
		{"bad discount", rec, 5, models.IntPtr(15), ErrInvalidDiscount},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Settle(tt.record, tt.rate, tt.discount, payNow)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestPayFineScenarioA(t *testing.T) {
	f := newFixture(t)
	f.scenarioRecord(t)
	f.recorder.On("RecordIncome", mock.Anything, mock.MatchedBy(func(tx models.LedgerTransaction) bool {
		return tx.Amount == 15 && tx.ReferenceKey == "fine:u1_b1" && tx.Type == models.TransactionIncome
	})).Return(nil).Once()

	res, err := f.svc.PayFine(context.Background(), PayFineRequest{RecordID: "u1_b1", RatePerDay: 5})
	require.NoError(t, err)
	assert.Equal(t, 15.0, res.Amount)

	stored, err := f.store.Borrows().GetByID(context.Background(), "u1_b1")
	require.NoError(t, err)
	assert.Equal(t, models.FinePaid, stored.FineStatus)
	require.NotNil(t, stored.Fine)
	assert.Equal(t, 15.0, stored.Fine.AmountSnapshot)
	assert.Equal(t, 3, stored.Fine.DaysOverdueSnapshot)
	assert.Equal(t, payNow, stored.Fine.PaymentDate)
	f.recorder.AssertExpectations(t)
}

func TestPayFineScenarioBWithCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.scenarioRecord(t)
	c, err := f.coupons.CreateCoupon(ctx, coupon.CreateCouponInput{
		UserID: "u1", Type: models.CouponPenaltyDiscount, DiscountPercent: 20,
	})
	require.NoError(t, err)
	f.recorder.On("RecordIncome", mock.Anything, mock.Anything).Return(nil)

	res, err := f.svc.PayFine(ctx, PayFineRequest{RecordID: "u1_b1", RatePerDay: 5, CouponID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, 12.0, res.Amount)
	require.NotNil(t, res.Coupon)

	stored, err := f.store.Borrows().GetByID(ctx, "u1_b1")
	require.NoError(t, err)
	require.NotNil(t, stored.Fine.DiscountApplied)
	assert.Equal(t, 20, *stored.Fine.DiscountApplied)
	require.NotNil(t, stored.Fine.OriginalFineAmount)
	assert.Equal(t, 15.0, *stored.Fine.OriginalFineAmount)
	assert.Equal(t, c.ID, stored.Fine.CouponID)

	used, err := f.coupons.Get(ctx, "u1", c.ID)
	require.NoError(t, err)
	assert.True(t, used.IsUsed)
	assert.Equal(t, "u1_b1", *used.UsedForPenaltyID)
}

func TestPayFineRejectsSecondPaymentAndKeepsSnapshot(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.scenarioRecord(t)
	f.recorder.On("RecordIncome", mock.Anything, mock.Anything).Return(nil).Once()

	_, err := f.svc.PayFine(ctx, PayFineRequest{RecordID: "u1_b1", RatePerDay: 5})
	require.NoError(t, err)

	f.svc.Now = func() time.Time { return payNow.AddDate(0, 1, 0) }
	_, err = f.svc.PayFine(ctx, PayFineRequest{RecordID: "u1_b1", RatePerDay: 50})
	assert.ErrorIs(t, err, ErrAlreadyPaid)
	assert.Equal(t, utils.KindPrecondition, utils.KindOf(err))

	view, err := f.svc.Quote(ctx, "u1_b1", 50)
	require.NoError(t, err)
	assert.True(t, view.Paid)
	assert.Equal(t, 15.0, view.Amount)
	assert.Equal(t, 3, view.DaysOverdue)
	f.recorder.AssertNumberOfCalls(t, "RecordIncome", 1)
}

func TestPayFineNotOverdueKeepsCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	require.NoError(t, f.store.Borrows().Save(ctx, &models.BorrowRecord{
		ID: "u1_b2", BookID: "b2", BorrowedBy: "u1", DueDate: payNow.AddDate(0, 0, 3),
		ReturnStatus: models.ReturnBorrowed, FineStatus: models.FinePending,
	}))
	c, err := f.coupons.CreateCoupon(ctx, coupon.CreateCouponInput{UserID: "u1", Type: models.CouponPenaltyDiscount, DiscountPercent: 50})
	require.NoError(t, err)

	_, err = f.svc.PayFine(ctx, PayFineRequest{RecordID: "u1_b2", RatePerDay: 5, CouponID: c.ID})
	assert.ErrorIs(t, err, ErrNotOverdue)

	stored, err := f.coupons.Get(ctx, "u1", c.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsUsed)
	f.recorder.AssertNotCalled(t, "RecordIncome", mock.Anything, mock.Anything)
}

func TestPayFineCouponChecks(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.scenarioRecord(t)

	manga := "MNG"
	wrongCategory, err := f.coupons.CreateCoupon(ctx, coupon.CreateCouponInput{
		UserID: "u1", Type: models.CouponPenaltyDiscount, DiscountPercent: 10, Category: &manga,
	})
	require.NoError(t, err)
	shop, err := f.coupons.CreateCoupon(ctx, coupon.CreateCouponInput{
		UserID: "u1", Type: models.CouponShopDiscount, DiscountPercent: 10,
	})
	require.NoError(t, err)
	foreign, err := f.coupons.CreateCoupon(ctx, coupon.CreateCouponInput{
		UserID: "u2", Type: models.CouponPenaltyDiscount, DiscountPercent: 10,
	})
	require.NoError(t, err)

	testCases := []struct {
		name     string
		couponID string
		err      error
	}{
		{"category mismatch", wrongCategory.ID, coupon.ErrCategoryMismatch},
		{"shop coupon", shop.ID, coupon.ErrCouponTypeMismatch},
		{"someone else's coupon", foreign.ID, coupon.ErrCouponNotFound},
		{"unknown coupon", "nope", coupon.ErrCouponNotFound},
	}
	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.PayFine(ctx, PayFineRequest{RecordID: "u1_b1", RatePerDay: 5, CouponID: tt.couponID})
			assert.ErrorIs(t, err, tt.err)
		})
	}

	stored, err := f.store.Borrows().GetByID(ctx, "u1_b1")
	require.NoError(t, err)
	assert.Equal(t, models.FinePending, stored.FineStatus)
}

func TestPayFineRollsBackCouponWhenSnapshotWriteFails(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.scenarioRecord(t)
	c, err := f.coupons.CreateCoupon(ctx, coupon.CreateCouponInput{UserID: "u1", Type: models.CouponPenaltyDiscount, DiscountPercent: 20})
	require.NoError(t, err)

	f.svc.Borrows = failingBorrows{f.store.Borrows()}
	_, err = f.svc.PayFine(ctx, PayFineRequest{RecordID: "u1_b1", RatePerDay: 5, CouponID: c.ID})
	require.Error(t, err)
	assert.Equal(t, utils.KindStorage, utils.KindOf(err))

	stored, err := f.coupons.Get(ctx, "u1", c.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsUsed, "coupon redemption must roll back with the payment")
}

func TestLedgerFailureDoesNotUndoPayment(t *testing.T) {
	f := newFixture(t)
	f.scenarioRecord(t)
	f.recorder.On("RecordIncome", mock.Anything, mock.Anything).Return(errors.New("queue down"))

	res, err := f.svc.PayFine(context.Background(), PayFineRequest{RecordID: "u1_b1", RatePerDay: 5})
	require.NoError(t, err)
	assert.Equal(t, models.FinePaid, res.Record.FineStatus)
}

func TestPayFineBatchPartialFailure(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.scenarioRecord(t)
	require.NoError(t, f.store.Borrows().Save(ctx, &models.BorrowRecord{
		ID: "u2_b9", BookID: "b9", BorrowedBy: "u2", DueDate: date(2024, 1, 8),
		ReturnStatus: models.ReturnBorrowed, FineStatus: models.FinePending,
	}))
	f.recorder.On("RecordIncome", mock.Anything, mock.Anything).Return(nil)

	results, err := f.svc.PayFineBatch(ctx, []string{"u1_b1", "missing", "u2_b9"}, 5)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, 15.0, results[0].Amount)
	assert.Empty(t, results[0].Error)
	assert.NotEmpty(t, results[1].Error)
	assert.Equal(t, 10.0, results[2].Amount)

	_, err = f.svc.PayFineBatch(ctx, nil, 5)
	assert.ErrorIs(t, err, ErrEmptyBatch)
	_, err = f.svc.PayFineBatch(ctx, []string{"u1_b1"}, -2)
	assert.ErrorIs(t, err, ErrInvalidRate)
}

func TestQuoteMatchesPayment(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	requested := date(2024, 1, 2)
	returned := date(2024, 1, 6)
	require.NoError(t, f.store.Borrows().Save(ctx, &models.BorrowRecord{
		ID: "u1_b3", BookID: "b3", BorrowedBy: "u1", DueDate: date(2024, 1, 1),
		ReturnRequestDate: &requested, ReturnedAt: &returned,
		ReturnStatus: models.ReturnReturned, FineStatus: models.FinePending,
	}))
	f.recorder.On("RecordIncome", mock.Anything, mock.Anything).Return(nil)

	quote, err := f.svc.Quote(ctx, "u1_b3", 5)
	require.NoError(t, err)
	assert.Equal(t, 1, quote.DaysOverdue)
	assert.Equal(t, requested, quote.ReferenceDate)

	res, err := f.svc.PayFine(ctx, PayFineRequest{RecordID: "u1_b3", RatePerDay: 5})
	require.NoError(t, err)
	assert.Equal(t, quote.Amount, res.Amount)
}

func TestSummaries(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.scenarioRecord(t)
	require.NoError(t, f.store.Borrows().Save(ctx, &models.BorrowRecord{
		ID: "u1_b4", BookID: "b4", BorrowedBy: "u1", DueDate: date(2024, 1, 8),
		ReturnStatus: models.ReturnBorrowed, FineStatus: models.FinePending,
	}))
	require.NoError(t, f.store.Borrows().Save(ctx, &models.BorrowRecord{
		ID: "u1_b5", BookID: "b5", BorrowedBy: "u1", DueDate: date(2024, 2, 1),
		ReturnStatus: models.ReturnBorrowed, FineStatus: models.FinePending,
	}))
	f.recorder.On("RecordIncome", mock.Anything, mock.Anything).Return(nil)

	_, err := f.svc.PayFine(ctx, PayFineRequest{RecordID: "u1_b1", RatePerDay: 5})
	require.NoError(t, err)

	summary, err := f.svc.UserSummary(ctx, "u1", 7)
	require.NoError(t, err)
	assert.Len(t, summary.Fines, 2, "records not yet due are left out")
	assert.Equal(t, 15.0, summary.TotalPaid, "paid fines keep the snapshot rate")
	assert.Equal(t, 14.0, summary.TotalUnpaid)
	assert.Equal(t, 1, summary.OutstandingRecs)

	pending, err := f.svc.AdminSummary(ctx, 5, models.FinePending)
	require.NoError(t, err)
	require.Len(t, pending.Fines, 1)
	assert.Equal(t, "u1_b4", pending.Fines[0].Record.ID)

	_, err = f.svc.AdminSummary(ctx, 5, "overdue")
	assert.Equal(t, utils.KindValidation, utils.KindOf(err))
}
