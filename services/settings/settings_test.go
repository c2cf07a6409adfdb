package settings

import (
	"context"
	"math"
	"testing"

	"librarium/database/repository/memory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFineRateDefaultsAndUpdates(t *testing.T) {
	store := memory.NewStore()
	svc := NewDefaultSettingsService(store.Settings(), 5, "spinWheel")
	ctx := context.Background()

	rate, err := svc.GetFineRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rate)

	_, err = svc.SetFineRate(ctx, 7.5)
	require.NoError(t, err)
	rate, err = svc.GetFineRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7.5, rate)

	_, err = svc.SetFineRate(ctx, 0)
	require.NoError(t, err, "a zero rate waives fines")

	for _, bad := range []float64{-1, math.NaN(), math.Inf(1)} {
		_, err = svc.SetFineRate(ctx, bad)
		assert.ErrorIs(t, err, ErrInvalidFineRate)
	}
}

func TestCurrentWheelKeepsFineRate(t *testing.T) {
	store := memory.NewStore()
	svc := NewDefaultSettingsService(store.Settings(), 5, "spinWheel")
	ctx := context.Background()

	id, err := svc.CurrentWheelID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "spinWheel", id)

	require.NoError(t, svc.SetCurrentWheelID(ctx, "wheel-1"))
	id, err = svc.CurrentWheelID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "wheel-1", id)

	rate, err := svc.GetFineRate(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5.0, rate)

	assert.ErrorIs(t, svc.SetCurrentWheelID(ctx, " "), ErrInvalidWheelID)
}
