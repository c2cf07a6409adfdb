package notification

import (
	"context"
	"fmt"
	"strconv"

	"librarium/models"
	"librarium/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends user facing pushes about fines and spins.
type NotificationService interface {
	SendUserPushNotification(ctx context.Context, userID, title, body string, data map[string]string) error
	NotifyFinePaid(ctx context.Context, record *models.BorrowRecord) error
	NotifySpinReward(ctx context.Context, userID string, result *models.SpinResult) error
}

// Sender is satisfied by *messaging.Client.
type Sender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

// DefaultNotificationService pushes to the per-user FCM topic. With no
// sender configured it only logs.
type DefaultNotificationService struct {
	sender Sender
}

func NewDefaultNotificationService(sender Sender) *DefaultNotificationService {
	return &DefaultNotificationService{sender: sender}
}

// UserTopic is the FCM topic every client of userID subscribes to.
func UserTopic(userID string) string {
	return "user-" + userID
}

func (s *DefaultNotificationService) SendUserPushNotification(
	ctx context.Context,
	userID, title, body string,
	data map[string]string,
) error {
	if data == nil {
		data = map[string]string{}
	}
	if _, ok := data["role"]; !ok {
		data["role"] = "user"
	}

	if s.sender == nil {
		utils.GetLogger().Debug("push skipped, FCM disabled",
			zap.String("userID", userID), zap.String("title", title))
		return nil
	}

	msg := &messaging.Message{
		Topic: UserTopic(userID),
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
		},
	}

	id, err := s.sender.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendUserPushNotification: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Debug("push sent", zap.String("userID", userID), zap.String("messageID", id))
	return nil
}

func (s *DefaultNotificationService) NotifyFinePaid(ctx context.Context, record *models.BorrowRecord) error {
	if record.Fine == nil {
		return nil
	}
	amount := strconv.FormatFloat(record.Fine.AmountSnapshot, 'f', 2, 64)
	body := fmt.Sprintf("Your fine of %s for %s has been settled.", amount, bookLabel(record))
	if record.Fine.DiscountApplied != nil {
		body = fmt.Sprintf("Your fine for %s has been settled with a %d%% discount. Paid: %s.",
			bookLabel(record), *record.Fine.DiscountApplied, amount)
	}
	return s.SendUserPushNotification(ctx, record.BorrowedBy, "Fine paid", body, map[string]string{
		"type":     "fine_paid",
		"recordId": record.ID,
		"amount":   amount,
	})
}

func (s *DefaultNotificationService) NotifySpinReward(ctx context.Context, userID string, result *models.SpinResult) error {
	// A pass is not worth a push.
	if result.Reward.Type == models.RewardPass {
		return nil
	}
	data := map[string]string{
		"type":       "spin_reward",
		"rewardId":   result.Reward.ID,
		"rewardType": string(result.Reward.Type),
	}
	body := fmt.Sprintf("You won: %s", result.Reward.Name)
	if result.Category != nil {
		data["category"] = *result.Category
		body = fmt.Sprintf("You won: %s (%s)", result.Reward.Name, *result.Category)
	}
	if result.Coupon != nil {
		data["couponId"] = result.Coupon.ID
	}
	return s.SendUserPushNotification(ctx, userID, "Reward wheel", body, data)
}

func bookLabel(record *models.BorrowRecord) string {
	if record.BookTitle != "" {
		return record.BookTitle
	}
	return record.BookID
}
