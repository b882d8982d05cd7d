// Package cron runs the background reminder queue. Confirmed bookings get
// a reminder task scheduled ahead of their start time; the worker picks the
// task up when it comes due.
package cron

import (
	"context"
	"encoding/json"
	"time"

	"venuebook/config"
	"venuebook/models"
	"venuebook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

const TypeReminderSend = "booking:reminder"

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}
}

// ReminderScheduler enqueues reminder tasks. It satisfies
// booking.ReminderScheduler.
type ReminderScheduler struct {
	client *asynq.Client
}

// NewReminderScheduler creates a scheduler backed by the reminder queue.
func NewReminderScheduler() *ReminderScheduler {
	return &ReminderScheduler{client: asynq.NewClient(redisOpts())}
}

// ScheduleReminder enqueues a reminder to fire at processAt.
func (s *ReminderScheduler) ScheduleReminder(_ context.Context, payload models.ReminderPayload, processAt time.Time) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	task := asynq.NewTask(TypeReminderSend, data)
	_, err = s.client.Enqueue(task, asynq.ProcessAt(processAt), asynq.MaxRetry(3))
	return err
}

// Close releases the underlying queue connection.
func (s *ReminderScheduler) Close() error {
	return s.client.Close()
}

// InitReminderWorker runs the async worker in the background.
func InitReminderWorker() {
	logger := utils.GetLogger()

	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeReminderSend, handleReminderTask)

	go func() {
		logger.Info("Starting reminder worker")
		const maxAttempts = 5
		for attempts := 1; attempts <= maxAttempts; attempts++ {
			err := srv.Run(mux)
			if err == nil {
				return
			}
			logger.Error("Reminder worker failed to start",
				zap.Int("attempt", attempts), zap.Int("maxAttempts", maxAttempts), zap.Error(err))
			if attempts == maxAttempts {
				logger.Fatal("Reminder worker exhausted start attempts")
			}
			time.Sleep(time.Duration(attempts*2) * time.Second)
		}
	}()
}

func handleReminderTask(_ context.Context, task *asynq.Task) error {
	logger := utils.GetLogger()

	var p models.ReminderPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		logger.Error("Invalid reminder payload", zap.Error(err))
		return err
	}

	// Delivery transport (mail, push) is an external collaborator; the
	// queue's job ends at handing the reminder off.
	logger.Info("Booking reminder due",
		zap.String("bookingId", p.BookingID),
		zap.String("venueId", p.VenueID),
		zap.String("customerEmail", p.CustomerEmail),
		zap.String("startTime", p.StartTime))
	return nil
}
