package notification

import (
	"context"
	"fmt"

	"advisorly/config"
	"advisorly/models"
	"advisorly/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// NotificationService sends FCM pushes for upcoming consultations. Callers
// never depend on delivery: a failed push is logged, the booking stands.
type NotificationService interface {
	SendBookingReminder(ctx context.Context, booking *models.Booking) error
	SendTopicPush(ctx context.Context, title, body string, data map[string]string) error
}

// DefaultNotificationService publishes to the configured reminder topic.
type DefaultNotificationService struct{}

func NewDefaultNotificationService() *DefaultNotificationService {
	return &DefaultNotificationService{}
}

// SendBookingReminder pushes the "your consultation is coming up" message.
func (s *DefaultNotificationService) SendBookingReminder(ctx context.Context, booking *models.Booking) error {
	title := "Upcoming advisor consultation"
	body := fmt.Sprintf("Your consultation is at %s on %s. Booking code %s.",
		models.SlotLabel(booking.Start, booking.End), booking.Date, booking.Code)

	return s.SendTopicPush(ctx, title, body, map[string]string{
		"type":         "booking_reminder",
		"booking_code": booking.Code,
		"date":         booking.Date,
	})
}

func (s *DefaultNotificationService) SendTopicPush(ctx context.Context, title, body string, data map[string]string) error {
	if utils.FCMClient == nil {
		utils.GetLogger().Debug("fcm client not configured, skipping push",
			zap.String("title", title))
		return nil
	}

	msg := &messaging.Message{
		Topic: config.AppConfig.FCMReminderTopic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: "reminders",
				Sound:     "default",
			},
		},
	}

	response, err := utils.FCMClient.Send(ctx, msg)
	if err != nil {
		return fmt.Errorf("SendTopicPush: failed to send FCM message: %w", err)
	}
	utils.GetLogger().Info("push sent", zap.String("response", response))
	return nil
}
