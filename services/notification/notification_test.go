package notification

import (
	"context"
	"errors"
	"testing"

	"librarium/models"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, m *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, m)
	return "msg-1", nil
}

func TestNotifyFinePaidTargetsUserTopic(t *testing.T) {
	sender := &fakeSender{}
	svc := NewDefaultNotificationService(sender)
	discount := 20
	record := &models.BorrowRecord{
		ID: "u1_b1", BookID: "b1", BookTitle: "Dune", BorrowedBy: "u1",
		Fine: &models.FineSnapshot{AmountSnapshot: 12, DiscountApplied: &discount},
	}

	require.NoError(t, svc.NotifyFinePaid(context.Background(), record))
	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "user-u1", msg.Topic)
	assert.Equal(t, "fine_paid", msg.Data["type"])
	assert.Equal(t, "12.00", msg.Data["amount"])
	assert.Equal(t, "user", msg.Data["role"])
	assert.Contains(t, msg.Notification.Body, "20%")
}

func TestNotifySpinRewardSkipsPass(t *testing.T) {
	sender := &fakeSender{}
	svc := NewDefaultNotificationService(sender)

	err := svc.NotifySpinReward(context.Background(), "u1", &models.SpinResult{
		Reward: models.Reward{ID: "pass", Name: "Pas", Type: models.RewardPass},
	})
	require.NoError(t, err)
	assert.Empty(t, sender.sent)

	category := "MNG"
	err = svc.NotifySpinReward(context.Background(), "u1", &models.SpinResult{
		Reward:   models.Reward{ID: "category", Name: "Kategori Keşfi", Type: models.RewardCategory},
		Category: &category,
	})
	require.NoError(t, err)
	require.Len(t, sender.sent, 1)
	assert.Equal(t, "MNG", sender.sent[0].Data["category"])
}

func TestSendWithoutSenderIsNoop(t *testing.T) {
	svc := NewDefaultNotificationService(nil)
	assert.NoError(t, svc.SendUserPushNotification(context.Background(), "u1", "t", "b", nil))
}

func TestSendWrapsFCMError(t *testing.T) {
	svc := NewDefaultNotificationService(&fakeSender{err: errors.New("unavailable")})
	err := svc.SendUserPushNotification(context.Background(), "u1", "t", "b", nil)
	assert.ErrorContains(t, err, "unavailable")
}
