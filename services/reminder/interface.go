package reminder

import (
	"context"

	"dentaldesk/models"
)

// TaskTypeReminderSend is the asynq task type for appointment reminders.
const TaskTypeReminderSend = "reminder:send"

// ReminderService schedules patient reminders for booked appointments.
// Delivery happens in the cron worker; cancellation needs no compensating
// action because the worker re-checks the appointment status at fire time.
type ReminderService interface {
	ScheduleAppointmentReminder(ctx context.Context, appt models.Appointment) error
}
