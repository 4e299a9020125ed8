package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	appointmentRepo "dentaldesk/database/repository/appointment"
	"dentaldesk/models"
	"dentaldesk/utils"
)

// DayAgenda returns the renderable grid for one date, serving from the
// Redis cache when possible. Writes invalidate the cached day eagerly, so
// a hit is at worst one TTL stale for out-of-band edits.
func (s *DefaultScheduleService) DayAgenda(ctx context.Context, date string) (*models.DayGrid, error) {
	logger := utils.GetLogger()

	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInput, date)
	}

	cacheKey := utils.AgendaCachePrefix + date
	if s.Cache != nil {
		if data, err := s.Cache.Get(ctx, cacheKey).Result(); err == nil {
			var grid models.DayGrid
			if err := json.Unmarshal([]byte(data), &grid); err == nil {
				return &grid, nil
			}
			logger.Warn("corrupt cached agenda, rebuilding", zap.String("date", date))
		}
	}

	appts, err := s.Repo.ListByDate(ctx, date)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for %s: %w", date, err)
	}

	grid := BuildDayGrid(date, appts, s.Policy.TimeSlots(), s.Policy.Rooms, s.Policy.StepMinutes)

	if s.Cache != nil {
		if data, err := json.Marshal(grid); err == nil {
			if err := s.Cache.Set(ctx, cacheKey, data, utils.AgendaCacheTTL).Err(); err != nil {
				logger.Warn("failed to cache day agenda", zap.String("date", date), zap.Error(err))
			}
		}
	}
	return &grid, nil
}

// DurationBound loads the candidate day's appointments and runs the
// resolver, re-validating the chosen duration against the fresh ceiling.
// Callers re-invoke this on every date/time/room/duration change; results
// are never cached across fetches.
func (s *DefaultScheduleService) DurationBound(ctx context.Context, cand Candidate, chosenMinutes int) (*models.DurationBound, error) {
	if _, err := time.Parse("2006-01-02", cand.Date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInput, cand.Date)
	}

	appts, err := s.Repo.ListByDate(ctx, cand.Date)
	if err != nil {
		return nil, fmt.Errorf("failed to load appointments for %s: %w", cand.Date, err)
	}

	bound, err := ComputeMaxDuration(cand, cand.Date, appts, s.Policy)
	if err != nil {
		return nil, err
	}
	if chosenMinutes > 0 {
		bound = ClampDuration(bound, chosenMinutes)
	}
	return &bound, nil
}

func (s *DefaultScheduleService) GetAppointment(ctx context.Context, id string) (*models.Appointment, error) {
	appt, err := s.Repo.GetByID(ctx, id)
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return nil, ErrNotFound
	}
	return appt, err
}

func (s *DefaultScheduleService) CreateAppointment(ctx context.Context, actor string, in models.AppointmentInput) (*models.Appointment, error) {
	appt, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	appt.CreatedBy = actor

	if err := s.Repo.Create(ctx, appt); err != nil {
		return nil, s.mapWriteError(err)
	}

	s.invalidateAgenda(ctx, appt.Date)
	s.scheduleReminder(ctx, *appt)
	return appt, nil
}

func (s *DefaultScheduleService) UpdateAppointment(ctx context.Context, actor, id string, in models.AppointmentInput) (*models.Appointment, error) {
	existing, err := s.GetAppointment(ctx, id)
	if err != nil {
		return nil, err
	}

	appt, err := s.fromInput(in)
	if err != nil {
		return nil, err
	}
	appt.ID = existing.ID
	appt.CreatedBy = existing.CreatedBy
	appt.CreatedAt = existing.CreatedAt
	appt.UpdatedBy = actor

	if err := s.Repo.Update(ctx, appt); err != nil {
		return nil, s.mapWriteError(err)
	}

	s.invalidateAgenda(ctx, appt.Date)
	if existing.Date != appt.Date {
		// Moved across days: both agendas changed.
		s.invalidateAgenda(ctx, existing.Date)
	}
	s.scheduleReminder(ctx, *appt)
	return appt, nil
}

func (s *DefaultScheduleService) CancelAppointment(ctx context.Context, actor, id string) error {
	existing, err := s.GetAppointment(ctx, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Cancel(ctx, id, actor); err != nil {
		return s.mapWriteError(err)
	}
	s.invalidateAgenda(ctx, existing.Date)
	return nil
}

// fromInput validates the payload against the grid policy and builds the
// appointment record, including the denormalized minute range the store
// uses for its overlap check.
func (s *DefaultScheduleService) fromInput(in models.AppointmentInput) (*models.Appointment, error) {
	if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrInvalidInput, in.Date)
	}
	startMin, err := ClockToMinutes(in.Start)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start time %q", ErrInvalidInput, in.Start)
	}
	if !AlignedToStep(in.Start, s.Policy.StepMinutes) {
		return nil, fmt.Errorf("%w: start %q not aligned to the %d-minute grid", ErrInvalidInput, in.Start, s.Policy.StepMinutes)
	}
	if in.DurationMinutes < s.Policy.StepMinutes || in.DurationMinutes%s.Policy.StepMinutes != 0 {
		return nil, fmt.Errorf("%w: duration %d must be a positive multiple of %d", ErrInvalidInput, in.DurationMinutes, s.Policy.StepMinutes)
	}
	roomOK := false
	for _, r := range s.Policy.Rooms {
		if r == in.Room {
			roomOK = true
			break
		}
	}
	if !roomOK {
		return nil, fmt.Errorf("%w: unknown room %d", ErrInvalidInput, in.Room)
	}

	status := in.Status
	if status == "" {
		status = models.AppointmentScheduled
	}
	switch status {
	case models.AppointmentScheduled, models.AppointmentConfirmed, models.AppointmentCompleted:
	default:
		return nil, fmt.Errorf("%w: status %q", ErrInvalidInput, status)
	}

	return &models.Appointment{
		Date:            in.Date,
		Start:           MinutesToClock(startMin),
		DurationMinutes: in.DurationMinutes,
		Room:            in.Room,
		StartMin:        startMin,
		EndMin:          startMin + in.DurationMinutes,
		Status:          status,
		PatientID:       in.PatientID,
		PatientName:     in.PatientName,
		DoctorID:        in.DoctorID,
		DoctorName:      in.DoctorName,
		Reason:          in.Reason,
	}, nil
}

func (s *DefaultScheduleService) mapWriteError(err error) error {
	if errors.Is(err, appointmentRepo.ErrOverlap) {
		return ErrSlotTaken
	}
	if errors.Is(err, appointmentRepo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (s *DefaultScheduleService) invalidateAgenda(ctx context.Context, date string) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(ctx, utils.AgendaCachePrefix+date).Err(); err != nil && err != redis.Nil {
		utils.GetLogger().Warn("failed to invalidate agenda cache",
			zap.String("date", date), zap.Error(err))
	}
}

func (s *DefaultScheduleService) scheduleReminder(ctx context.Context, appt models.Appointment) {
	if s.Reminders == nil {
		return
	}
	if err := s.Reminders.ScheduleAppointmentReminder(ctx, appt); err != nil {
		// Reminder delivery is best-effort; the booking itself stands.
		utils.GetLogger().Warn("failed to schedule reminder",
			zap.String("appointmentId", appt.ID), zap.Error(err))
	}
}
