package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"librarium/database/repository/memory"
	"librarium/models"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var paidAt = time.Date(2024, 1, 4, 9, 30, 0, 0, time.UTC)

func paidRecord() *models.BorrowRecord {
	discount := 20
	return &models.BorrowRecord{
		ID: "u1_b1", BookID: "b1", BookTitle: "Dune", BorrowedBy: "u1",
		FineStatus: models.FinePaid,
		Fine: &models.FineSnapshot{
			AmountSnapshot: 12, RateSnapshot: 5, DaysOverdueSnapshot: 3,
			DiscountApplied: &discount, PaymentDate: paidAt,
		},
	}
}

func TestFineIncome(t *testing.T) {
	tx := FineIncome(paidRecord(), time.Now())
	assert.Equal(t, models.TransactionIncome, tx.Type)
	assert.Equal(t, 12.0, tx.Amount)
	assert.Equal(t, "fine:u1_b1", tx.ReferenceKey)
	assert.Equal(t, paidAt, tx.Date)
	assert.Contains(t, tx.Description, "Dune")
	assert.Contains(t, tx.Description, "20%")
}

func TestDirectRecorderIsIdempotent(t *testing.T) {
	store := memory.NewStore()
	rec := NewDirectRecorder(store.Transactions())
	ctx := context.Background()

	tx := FineIncome(paidRecord(), time.Now())
	require.NoError(t, rec.RecordIncome(ctx, tx))
	require.NoError(t, rec.RecordIncome(ctx, tx))

	stored, err := store.Transactions().GetByReference(ctx, "fine:u1_b1")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.ID)
	assert.Equal(t, 12.0, stored.Amount)
}

type mockEnqueuer struct {
	mock.Mock
}

func (m *mockEnqueuer) EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	args := m.Called(ctx, task, opts)
	info, _ := args.Get(0).(*asynq.TaskInfo)
	return info, args.Error(1)
}

func TestAsynqRecorderEnqueues(t *testing.T) {
	enq := new(mockEnqueuer)
	enq.On("EnqueueContext", mock.Anything, mock.MatchedBy(func(task *asynq.Task) bool {
		tx, err := ParseIncomeTask(task)
		return err == nil && task.Type() == TypeLedgerIncome && tx.ReferenceKey == "fine:u1_b1"
	}), mock.Anything).Return(&asynq.TaskInfo{ID: "fine:u1_b1"}, nil).Once()

	rec := NewAsynqRecorder(enq)
	require.NoError(t, rec.RecordIncome(context.Background(), FineIncome(paidRecord(), time.Now())))
	enq.AssertExpectations(t)
}

func TestAsynqRecorderTreatsDuplicateAsDone(t *testing.T) {
	enq := new(mockEnqueuer)
	enq.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).Return(nil, asynq.ErrTaskIDConflict)
	rec := NewAsynqRecorder(enq)
	assert.NoError(t, rec.RecordIncome(context.Background(), FineIncome(paidRecord(), time.Now())))

	enq = new(mockEnqueuer)
	enq.On("EnqueueContext", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("redis down"))
	rec = NewAsynqRecorder(enq)
	assert.ErrorContains(t, rec.RecordIncome(context.Background(), FineIncome(paidRecord(), time.Now())), "redis down")
}
