package reminder

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	"dentaldesk/config"
	"dentaldesk/models"
	"dentaldesk/utils"
)

// AsynqReminderService enqueues reminder tasks on the Redis-backed queue,
// timed to fire a configured lead before the appointment start.
type AsynqReminderService struct {
	Client *asynq.Client
	Lead   time.Duration
}

func NewAsynqReminderService() *AsynqReminderService {
	client := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	return &AsynqReminderService{
		Client: client,
		Lead:   time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}
}

func (s *AsynqReminderService) ScheduleAppointmentReminder(ctx context.Context, appt models.Appointment) error {
	logger := utils.GetLogger()

	if appt.PatientID == "" {
		// Non-patient blocks (internal meetings) get no reminder.
		return nil
	}

	startAt, err := time.ParseInLocation("2006-01-02 15:04", appt.Date+" "+appt.Start, time.Local)
	if err != nil {
		return fmt.Errorf("reminder: cannot parse appointment time: %w", err)
	}
	fireAt := startAt.Add(-s.Lead)
	if fireAt.Before(time.Now()) {
		logger.Debug("reminder lead already passed, skipping",
			zap.String("appointmentId", appt.ID))
		return nil
	}

	payload, err := json.Marshal(models.ReminderPayload{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		Date:          appt.Date,
		Start:         appt.Start,
		Room:          appt.Room,
		Title:         "Appointment reminder",
		Body:          fmt.Sprintf("Your appointment is at %s in room %d.", appt.Start, appt.Room),
	})
	if err != nil {
		return fmt.Errorf("reminder: cannot marshal payload: %w", err)
	}

	task := asynq.NewTask(TaskTypeReminderSend, payload)
	info, err := s.Client.EnqueueContext(ctx, task,
		asynq.ProcessAt(fireAt),
		asynq.TaskID("reminder:"+appt.ID),
		asynq.MaxRetry(3),
	)
	if err != nil {
		// A reschedule re-enqueues under the same task ID; drop the old one
		// first and try again.
		if inspErr := s.dropExisting(appt.ID); inspErr == nil {
			info, err = s.Client.EnqueueContext(ctx, task,
				asynq.ProcessAt(fireAt),
				asynq.TaskID("reminder:"+appt.ID),
				asynq.MaxRetry(3),
			)
		}
	}
	if err != nil {
		return fmt.Errorf("reminder: enqueue failed: %w", err)
	}

	logger.Info("reminder scheduled",
		zap.String("appointmentId", appt.ID),
		zap.String("taskId", info.ID),
		zap.Time("fireAt", fireAt))
	return nil
}

func (s *AsynqReminderService) dropExisting(appointmentID string) error {
	inspector := asynq.NewInspector(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderQueueDB,
	})
	defer inspector.Close()
	return inspector.DeleteTask("default", "reminder:"+appointmentID)
}
