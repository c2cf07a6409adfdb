package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"librarium/database"
	"librarium/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errAbort = errors.New("abort")

func newCoupon(userID, id string) *models.Coupon {
	now := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	return &models.Coupon{
		ID: id, UserID: userID, Type: models.CouponPenaltyDiscount, DiscountPercent: 10,
		CreatedAt: now, ExpiryDate: now.Add(30 * 24 * time.Hour),
	}
}

func TestFailedTransactionKeepsConcurrentWrites(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	inside := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- store.WithTransaction(ctx, func(txCtx context.Context) error {
			assert.NoError(t, store.Coupons().Create(txCtx, newCoupon("u1", "c0")))
			close(inside)
			<-release
			return errAbort
		})
	}()

	<-inside
	require.NoError(t, store.Coupons().Create(ctx, newCoupon("u2", "c1")))
	require.NoError(t, store.Settings().Save(ctx, &models.AppSettings{FinePerDay: 7}))
	_, err := store.Transactions().Record(ctx, &models.LedgerTransaction{ReferenceKey: "fine:r9", Amount: 3})
	require.NoError(t, err)
	close(release)
	require.ErrorIs(t, <-done, errAbort)

	_, err = store.Coupons().Get(ctx, "u2", "c1")
	assert.NoError(t, err, "write outside the transaction survives its rollback")
	settings, err := store.Settings().Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.0, settings.FinePerDay)
	_, err = store.Transactions().GetByReference(ctx, "fine:r9")
	assert.NoError(t, err)

	_, err = store.Coupons().Get(ctx, "u1", "c0")
	assert.ErrorIs(t, err, database.ErrNotFound, "write inside the transaction is reverted")
	all, err := store.Coupons().ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestFailedTransactionRevertsEveryWrite(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	returned := time.Date(2024, 1, 4, 0, 0, 0, 0, time.UTC)
	require.NoError(t, store.Borrows().Save(ctx, &models.BorrowRecord{
		ID: "r1", BorrowedBy: "u1", FineStatus: models.FinePending, ReturnedAt: &returned,
		ReturnStatus: models.ReturnReturned,
	}))
	require.NoError(t, store.Borrows().Save(ctx, &models.BorrowRecord{
		ID: "r2", BorrowedBy: "u1", ReturnStatus: models.ReturnBorrowed, MaxExtensions: 1,
	}))
	require.NoError(t, store.Coupons().Create(ctx, newCoupon("u1", "c1")))
	require.NoError(t, store.Wheels().Save(ctx, &models.WheelSettings{ID: "w1", DailySpinLimit: 1}))
	require.NoError(t, store.SpinData().Save(ctx, &models.UserSpinData{UserID: "u1", SpinCount: 4}))
	require.NoError(t, store.SpinLogs().Append(ctx, &models.SpinLogEntry{ID: "log-1", UserID: "u1"}))

	err := store.WithTransaction(ctx, func(txCtx context.Context) error {
		require.NoError(t, store.Borrows().MarkFinePaid(txCtx, "r1", models.FineSnapshot{AmountSnapshot: 15}))
		_, err := store.Borrows().RaiseExtensionAllowance(txCtx, "u1", 2)
		require.NoError(t, err)
		require.NoError(t, store.Coupons().MarkUsed(txCtx, "u1", "c1", "r1", time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)))
		require.NoError(t, store.Wheels().Save(txCtx, &models.WheelSettings{ID: "w1", DailySpinLimit: 3}))
		require.NoError(t, store.Wheels().Save(txCtx, &models.WheelSettings{ID: "w2"}))
		require.NoError(t, store.SpinData().Save(txCtx, &models.UserSpinData{UserID: "u1", SpinCount: 5}))
		require.NoError(t, store.SpinData().Save(txCtx, &models.UserSpinData{UserID: "u2", SpinCount: 1}))
		require.NoError(t, store.SpinLogs().Append(txCtx, &models.SpinLogEntry{ID: "log-2", UserID: "u1"}))
		return errAbort
	})
	require.ErrorIs(t, err, errAbort)

	r1, err := store.Borrows().GetByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, models.FinePending, r1.FineStatus)
	assert.Nil(t, r1.Fine)
	r2, err := store.Borrows().GetByID(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, 1, r2.MaxExtensions)

	c1, err := store.Coupons().Get(ctx, "u1", "c1")
	require.NoError(t, err)
	assert.False(t, c1.IsUsed)
	assert.Nil(t, c1.UsedAt)

	wheels, err := store.Wheels().List(ctx)
	require.NoError(t, err)
	require.Len(t, wheels, 1)
	assert.Equal(t, 1, wheels[0].DailySpinLimit)

	data, err := store.SpinData().Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 4, data.SpinCount)
	_, err = store.SpinData().Get(ctx, "u2")
	assert.ErrorIs(t, err, database.ErrNotFound)

	logs := store.SpinLogEntries()
	require.Len(t, logs, 1)
	assert.Equal(t, "log-1", logs[0].ID)
}

func TestCommittedTransactionKeepsWrites(t *testing.T) {
	store := NewStore()
	ctx := context.Background()

	err := store.WithTransaction(ctx, func(txCtx context.Context) error {
		return store.Coupons().Create(txCtx, newCoupon("u1", "c1"))
	})
	require.NoError(t, err)

	_, err = store.Coupons().Get(ctx, "u1", "c1")
	assert.NoError(t, err)
}
