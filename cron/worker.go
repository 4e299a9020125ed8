package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"

	"dentaldesk/config"
	appointmentRepo "dentaldesk/database/repository/appointment"
	catalogRepo "dentaldesk/database/repository/catalog"
	"dentaldesk/models"
	"dentaldesk/services/reminder"
	"dentaldesk/utils"

	"firebase.google.com/go/v4/messaging"
)

// InitReminderWorker runs the async reminder worker in background.
func InitReminderWorker(appts appointmentRepo.AppointmentRepository, catalog catalogRepo.CatalogRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(reminder.TaskTypeReminderSend, handleReminderTask(appts, catalog))

	// Start Redis health monitor
	go monitorRedisConnection()

	// Start async worker with retry logic
	go func() {
		log.Println("[ReminderWorker] starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[ReminderWorker] attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[ReminderWorker] max retry attempts reached, exiting")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handleReminderTask(appts appointmentRepo.AppointmentRepository, catalog catalogRepo.CatalogRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p models.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[ReminderHandler] invalid payload: %v", err)
			return err
		}

		// Re-check the appointment at fire time; a cancellation or a move
		// since enqueue means the reminder is stale and must be dropped.
		appt, err := appts.GetByID(ctx, p.AppointmentID)
		if err != nil {
			log.Printf("[ReminderHandler] appointment %s not found, dropping reminder", p.AppointmentID)
			return nil
		}
		if !appt.Occupies() || appt.Date != p.Date || appt.Start != p.Start {
			log.Printf("[ReminderHandler] appointment %s changed since enqueue, dropping reminder", p.AppointmentID)
			return nil
		}

		if utils.FCMClient == nil {
			log.Printf("[ReminderHandler] FCM not configured, skipping push for %s", p.AppointmentID)
			return nil
		}

		patient, err := catalog.GetPatient(ctx, p.PatientID)
		if err != nil {
			log.Printf("[ReminderHandler] patient %s lookup failed: %v", p.PatientID, err)
			return err
		}
		if patient.FCMToken == "" {
			log.Printf("[ReminderHandler] patient %s has no FCM token, skipping", p.PatientID)
			return nil
		}

		msg := &messaging.Message{
			Token: patient.FCMToken,
			Notification: &messaging.Notification{
				Title: p.Title,
				Body:  p.Body,
			},
			Data: map[string]string{
				"appointmentId": p.AppointmentID,
				"date":          p.Date,
				"start":         p.Start,
			},
		}

		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			log.Printf("[ReminderHandler] failed to send notification: %v", err)
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
