package schedule

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appointmentRepo "dentaldesk/database/repository/appointment"
	"dentaldesk/models"
)

// memoryAppointmentRepo mimics the store, including its authoritative
// write-time overlap rejection.
type memoryAppointmentRepo struct {
	appts map[string]*models.Appointment
	next  int
}

func newMemoryRepo() *memoryAppointmentRepo {
	return &memoryAppointmentRepo{appts: make(map[string]*models.Appointment)}
}

func (r *memoryAppointmentRepo) assertFree(appt *models.Appointment, excludeID string) error {
	for _, existing := range r.appts {
		if existing.ID == excludeID || existing.Date != appt.Date || existing.Room != appt.Room {
			continue
		}
		if existing.Status == models.AppointmentCancelled {
			continue
		}
		if existing.StartMin < appt.EndMin && existing.EndMin > appt.StartMin {
			return appointmentRepo.ErrOverlap
		}
	}
	return nil
}

func (r *memoryAppointmentRepo) ListByDate(_ context.Context, date string) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.Date == date {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memoryAppointmentRepo) ListByDateAndRoom(_ context.Context, date string, room int) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, a := range r.appts {
		if a.Date == date && a.Room == room {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *memoryAppointmentRepo) GetByID(_ context.Context, id string) (*models.Appointment, error) {
	a, ok := r.appts[id]
	if !ok {
		return nil, appointmentRepo.ErrNotFound
	}
	copied := *a
	return &copied, nil
}

func (r *memoryAppointmentRepo) Create(_ context.Context, appt *models.Appointment) error {
	if err := r.assertFree(appt, ""); err != nil {
		return err
	}
	if appt.ID == "" {
		r.next++
		appt.ID = fmt.Sprintf("appt-%d", r.next)
	}
	copied := *appt
	r.appts[appt.ID] = &copied
	return nil
}

func (r *memoryAppointmentRepo) Update(_ context.Context, appt *models.Appointment) error {
	if _, ok := r.appts[appt.ID]; !ok {
		return appointmentRepo.ErrNotFound
	}
	if err := r.assertFree(appt, appt.ID); err != nil {
		return err
	}
	copied := *appt
	r.appts[appt.ID] = &copied
	return nil
}

func (r *memoryAppointmentRepo) Cancel(_ context.Context, id, actor string) error {
	a, ok := r.appts[id]
	if !ok {
		return appointmentRepo.ErrNotFound
	}
	a.Status = models.AppointmentCancelled
	a.UpdatedBy = actor
	return nil
}

func newTestService(repo *memoryAppointmentRepo) *DefaultScheduleService {
	return &DefaultScheduleService{Repo: repo, Policy: testPolicy}
}

func validInput() models.AppointmentInput {
	return models.AppointmentInput{
		Date:            "2026-09-01",
		Start:           "09:00",
		DurationMinutes: 60,
		Room:            1,
		PatientID:       "p1",
		PatientName:     "Ana Solis",
	}
}

func TestCreateAppointmentHappyPath(t *testing.T) {
	svc := newTestService(newMemoryRepo())

	appt, err := svc.CreateAppointment(context.Background(), "staff-1", validInput())
	require.NoError(t, err)
	assert.NotEmpty(t, appt.ID)
	assert.Equal(t, "staff-1", appt.CreatedBy)
	assert.Equal(t, models.AppointmentScheduled, appt.Status)
	assert.Equal(t, 540, appt.StartMin)
	assert.Equal(t, 600, appt.EndMin)
}

func TestCreateAppointmentValidation(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*models.AppointmentInput)
	}{
		{"bad date", func(in *models.AppointmentInput) { in.Date = "01/09/2026" }},
		{"bad start", func(in *models.AppointmentInput) { in.Start = "late" }},
		{"misaligned start", func(in *models.AppointmentInput) { in.Start = "09:10" }},
		{"duration below step", func(in *models.AppointmentInput) { in.DurationMinutes = 15 }},
		{"duration off step", func(in *models.AppointmentInput) { in.DurationMinutes = 70 }},
		{"unknown room", func(in *models.AppointmentInput) { in.Room = 12 }},
		{"bad status", func(in *models.AppointmentInput) { in.Status = "missed" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			_, err := svc.CreateAppointment(ctx, "staff-1", in)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestCreateAppointmentSlotTaken(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, "staff-1", validInput())
	require.NoError(t, err)

	// Same room, overlapping range: the store rejects at write time even
	// though the client may have believed the slot free.
	in := validInput()
	in.Start = "09:30"
	_, err = svc.CreateAppointment(ctx, "staff-2", in)
	assert.ErrorIs(t, err, ErrSlotTaken)

	// Another room is fine.
	in = validInput()
	in.Room = 2
	_, err = svc.CreateAppointment(ctx, "staff-2", in)
	assert.NoError(t, err)
}

func TestUpdateAppointmentDoesNotCollideWithItself(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	appt, err := svc.CreateAppointment(ctx, "staff-1", validInput())
	require.NoError(t, err)

	in := validInput()
	in.DurationMinutes = 90
	updated, err := svc.UpdateAppointment(ctx, "staff-2", appt.ID, in)
	require.NoError(t, err)
	assert.Equal(t, 90, updated.DurationMinutes)
	assert.Equal(t, "staff-2", updated.UpdatedBy)
	assert.Equal(t, "staff-1", updated.CreatedBy, "creator survives edits")
}

func TestUpdateAppointmentNotFound(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.UpdateAppointment(context.Background(), "staff-1", "missing", validInput())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCancelFreesTheSlot(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	appt, err := svc.CreateAppointment(ctx, "staff-1", validInput())
	require.NoError(t, err)
	require.NoError(t, svc.CancelAppointment(ctx, "staff-2", appt.ID))

	// The range is bookable again.
	_, err = svc.CreateAppointment(ctx, "staff-2", validInput())
	assert.NoError(t, err)

	// And the cancelled appointment no longer occupies the grid.
	grid, err := svc.DayAgenda(ctx, "2026-09-01")
	require.NoError(t, err)
	row, _ := SlotIndex(grid.TimeSlots, "09:00")
	assert.Equal(t, models.CellPrimary, grid.Cells[row][0].Kind)
	assert.Equal(t, 2, grid.Cells[row][0].SpanSteps)
}

func TestDayAgendaFromStore(t *testing.T) {
	repo := newMemoryRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, err := svc.CreateAppointment(ctx, "staff-1", validInput())
	require.NoError(t, err)

	grid, err := svc.DayAgenda(ctx, "2026-09-01")
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", grid.Date)
	assert.Len(t, grid.TimeSlots, 26)
	assert.Len(t, grid.Rooms, 5)

	row, _ := SlotIndex(grid.TimeSlots, "09:00")
	assert.Equal(t, models.CellPrimary, grid.Cells[row][0].Kind)
}

func TestDayAgendaRejectsBadDate(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	_, err := svc.DayAgenda(context.Background(), "tomorrow")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestDurationBoundRevalidatesChosenValue(t *testing.T) {
	svc := newTestService(newMemoryRepo())
	ctx := context.Background()

	in := validInput()
	in.Start = "10:00"
	in.DurationMinutes = 30
	_, err := svc.CreateAppointment(ctx, "staff-1", in)
	require.NoError(t, err)

	cand := Candidate{Date: "2026-09-01", Start: "09:00", Room: 1}
	bound, err := svc.DurationBound(ctx, cand, 90)
	require.NoError(t, err)
	assert.Equal(t, 60, bound.MaxDuration)
	assert.Equal(t, "10:00", bound.NextConflict)
	assert.Equal(t, 60, bound.ClampedDuration)
	assert.Contains(t, bound.Warning, "10:00")
}
