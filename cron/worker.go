package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"advisorly/config"
	"advisorly/models"
	bookingSvc "advisorly/services/booking"
	"advisorly/services/notification"
	"advisorly/utils"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

const TypeReminderSend = "reminder:send"

func redisClientOpt() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// InitReminderWorker runs the async reminder worker in the background.
func InitReminderWorker(notifSvc notification.NotificationService, ledger bookingSvc.LedgerService) {
	srv := asynq.NewServer(
		redisClientOpt(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask(notifSvc, ledger))

	go monitorRedisConnection()

	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)
				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second)
			} else {
				break
			}
		}
	}()
}

// NewReminderClient returns the enqueue-side asynq client.
func NewReminderClient() *asynq.Client {
	return asynq.NewClient(redisClientOpt())
}

// EnqueueReminder schedules a push ahead of the booking's start time, using
// the configured lead. Reminders in the past are dropped silently.
func EnqueueReminder(client *asynq.Client, booking *models.Booking) error {
	startOfDay, err := time.ParseInLocation(utils.DateLayout, booking.Date, time.Local)
	if err != nil {
		return fmt.Errorf("EnqueueReminder: bad booking date %q: %w", booking.Date, err)
	}
	lead := time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute
	fireAt := startOfDay.Add(time.Duration(booking.Start) * time.Minute).Add(-lead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload, err := json.Marshal(models.ReminderPayload{
		BookingCode: booking.Code,
		Date:        booking.Date,
		Start:       booking.Start,
		End:         booking.End,
		Topic:       booking.Topic,
	})
	if err != nil {
		return fmt.Errorf("EnqueueReminder: marshal payload: %w", err)
	}

	task := asynq.NewTask(TypeReminderSend, payload)
	if _, err := client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("EnqueueReminder: enqueue: %w", err)
	}
	return nil
}

func handleReminderTask(notifSvc notification.NotificationService, ledger bookingSvc.LedgerService) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		// The booking may have moved or been cancelled since the reminder was
		// scheduled; re-check before pushing.
		booking, err := ledger.GetBooking(ctx, p.BookingCode)
		if err != nil {
			log.Printf("[ReminderHandler] booking %s no longer exists, dropping reminder", p.BookingCode)
			return nil
		}
		if booking.Status == models.BookingStatusCancelled || booking.Date != p.Date || booking.Start != p.Start {
			log.Printf("[ReminderHandler] booking %s changed since scheduling, dropping reminder", p.BookingCode)
			return nil
		}

		if err := notifSvc.SendBookingReminder(ctx, booking); err != nil {
			log.Printf("[ReminderHandler] failed to send reminder for %s: %v", p.BookingCode, err)
			return err
		}
		return nil
	}
}

// monitorRedisConnection pings Redis periodically to detect failures at runtime.
func monitorRedisConnection() {
	client := redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})

	ctx := context.Background()

	for {
		if err := client.Ping(ctx).Err(); err != nil {
			log.Printf("[ReminderWorker] redis connection lost: %v", err)
		}
		time.Sleep(10 * time.Second)
	}
}
