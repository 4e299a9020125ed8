package schedule

import (
	"context"

	appointmentRepo "dentaldesk/database/repository/appointment"
	"dentaldesk/models"
	"dentaldesk/services/reminder"

	"github.com/go-redis/redis/v8"
)

// ScheduleService is the agenda surface exposed to the HTTP layer: the
// renderable day grid, the duration bound for the booking form, and the
// appointment write path with its authoritative conflict handling.
type ScheduleService interface {
	DayAgenda(ctx context.Context, date string) (*models.DayGrid, error)
	DurationBound(ctx context.Context, cand Candidate, chosenMinutes int) (*models.DurationBound, error)
	GetAppointment(ctx context.Context, id string) (*models.Appointment, error)
	CreateAppointment(ctx context.Context, actor string, in models.AppointmentInput) (*models.Appointment, error)
	UpdateAppointment(ctx context.Context, actor, id string, in models.AppointmentInput) (*models.Appointment, error)
	CancelAppointment(ctx context.Context, actor, id string) error
}

// DefaultScheduleService implements ScheduleService.
type DefaultScheduleService struct {
	Repo      appointmentRepo.AppointmentRepository
	Cache     *redis.Client
	Reminders reminder.ReminderService
	Policy    GridPolicy
}
