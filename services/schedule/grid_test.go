package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dentaldesk/models"
)

var testRooms = []int{1, 2, 3, 4, 5}

func testSlots() []string {
	return GenerateTimeSlots("08:00", "20:30", 30)
}

func appt(id, start string, duration, room int, status string) models.Appointment {
	return models.Appointment{
		ID:              id,
		Date:            "2026-09-01",
		Start:           start,
		DurationMinutes: duration,
		Room:            room,
		Status:          status,
	}
}

func TestBuildDayGridMultiSlotSpan(t *testing.T) {
	// 90 minutes at 08:00 in room 3: one primary plus two continuations,
	// 09:30 stays empty.
	appts := []models.Appointment{
		appt("a1", "08:00", 90, 3, models.AppointmentScheduled),
	}
	grid := BuildDayGrid("2026-09-01", appts, testSlots(), testRooms, 30)

	col := 2 // room 3
	require.Equal(t, models.CellPrimary, grid.Cells[0][col].Kind)
	require.NotNil(t, grid.Cells[0][col].Appointment)
	assert.Equal(t, "a1", grid.Cells[0][col].Appointment.ID)
	assert.Equal(t, 3, grid.Cells[0][col].SpanSteps)
	assert.Equal(t, models.CellContinuation, grid.Cells[1][col].Kind)
	assert.Equal(t, models.CellContinuation, grid.Cells[2][col].Kind)
	assert.Equal(t, models.CellEmpty, grid.Cells[3][col].Kind)
}

func TestBuildDayGridCancelledExcluded(t *testing.T) {
	appts := []models.Appointment{
		appt("a1", "09:00", 60, 1, models.AppointmentCancelled),
	}
	grid := BuildDayGrid("2026-09-01", appts, testSlots(), testRooms, 30)

	for i := range grid.Cells {
		for j := range grid.Cells[i] {
			assert.Equal(t, models.CellEmpty, grid.Cells[i][j].Kind)
		}
	}
	assert.Empty(t, grid.Ungridded)
}

func TestBuildDayGridNoOverlapProperty(t *testing.T) {
	// Back-to-back and multi-room bookings: no cell may be claimed twice.
	appts := []models.Appointment{
		appt("a1", "08:00", 90, 1, models.AppointmentScheduled),
		appt("a2", "09:30", 60, 1, models.AppointmentConfirmed),
		appt("a3", "08:30", 30, 2, models.AppointmentScheduled),
	}
	grid := BuildDayGrid("2026-09-01", appts, testSlots(), testRooms, 30)

	claimed := 0
	for i := range grid.Cells {
		for j := range grid.Cells[i] {
			if grid.Cells[i][j].Kind != models.CellEmpty {
				claimed++
			}
		}
	}
	// a1: 3 cells, a2: 2 cells, a3: 1 cell.
	assert.Equal(t, 6, claimed)
	assert.Empty(t, grid.Conflicts)
}

func TestBuildDayGridMisalignedStartSkipped(t *testing.T) {
	appts := []models.Appointment{
		appt("odd", "09:15", 30, 1, models.AppointmentScheduled),
	}
	grid := BuildDayGrid("2026-09-01", appts, testSlots(), testRooms, 30)

	for i := range grid.Cells {
		assert.Equal(t, models.CellEmpty, grid.Cells[i][0].Kind)
	}
	require.Len(t, grid.Ungridded, 1)
	assert.Equal(t, "odd", grid.Ungridded[0].ID)
}

func TestBuildDayGridUnknownRoomSkipped(t *testing.T) {
	appts := []models.Appointment{
		appt("ghost", "09:00", 30, 9, models.AppointmentScheduled),
	}
	grid := BuildDayGrid("2026-09-01", appts, testSlots(), testRooms, 30)

	require.Len(t, grid.Ungridded, 1)
	assert.Equal(t, "ghost", grid.Ungridded[0].ID)
}

func TestBuildDayGridPrimaryCellConflictLaterWins(t *testing.T) {
	// Stale input: two live appointments on one primary cell. The later one
	// in iteration order wins and the clash is reported, not merged.
	appts := []models.Appointment{
		appt("first", "10:00", 90, 2, models.AppointmentScheduled),
		appt("second", "10:00", 30, 2, models.AppointmentScheduled),
	}
	grid := BuildDayGrid("2026-09-01", appts, testSlots(), testRooms, 30)

	row, _ := SlotIndex(testSlots(), "10:00")
	col := 1 // room 2
	require.Equal(t, models.CellPrimary, grid.Cells[row][col].Kind)
	assert.Equal(t, "second", grid.Cells[row][col].Appointment.ID)
	// The displaced 90-minute block's continuations are cleared.
	assert.Equal(t, models.CellEmpty, grid.Cells[row+1][col].Kind)
	assert.Equal(t, models.CellEmpty, grid.Cells[row+2][col].Kind)

	require.Len(t, grid.Conflicts, 1)
	assert.Equal(t, "second", grid.Conflicts[0].KeptID)
	assert.Equal(t, "first", grid.Conflicts[0].DroppedID)
	assert.Equal(t, "10:00", grid.Conflicts[0].Slot)
	assert.Equal(t, 2, grid.Conflicts[0].Room)
}

func TestBuildDayGridSpanTruncatedAtWindowEnd(t *testing.T) {
	// 120 minutes starting one slot before the window's end: rendering
	// truncates at the last slot, the stored duration is untouched.
	appts := []models.Appointment{
		appt("late", "20:00", 120, 1, models.AppointmentScheduled),
	}
	slots := testSlots()
	grid := BuildDayGrid("2026-09-01", appts, slots, testRooms, 30)

	last := len(slots) - 1
	require.Equal(t, models.CellPrimary, grid.Cells[last-1][0].Kind)
	assert.Equal(t, 4, grid.Cells[last-1][0].SpanSteps)
	assert.Equal(t, models.CellContinuation, grid.Cells[last][0].Kind)
	assert.Equal(t, 120, grid.Cells[last-1][0].Appointment.DurationMinutes)
}

func TestBuildDayGridIdempotent(t *testing.T) {
	appts := []models.Appointment{
		appt("a1", "08:00", 90, 1, models.AppointmentScheduled),
		appt("a2", "12:00", 30, 4, models.AppointmentConfirmed),
		appt("a3", "09:15", 30, 2, models.AppointmentScheduled),
	}
	first := BuildDayGrid("2026-09-01", appts, testSlots(), testRooms, 30)
	second := BuildDayGrid("2026-09-01", appts, testSlots(), testRooms, 30)
	assert.Equal(t, first, second)
}

func TestBuildDayGridNonPatientBlockOccupies(t *testing.T) {
	// A block without a patient (internal meeting) occupies the grid the
	// same way a patient appointment does.
	block := appt("meet", "13:00", 60, 5, models.AppointmentScheduled)
	grid := BuildDayGrid("2026-09-01", []models.Appointment{block}, testSlots(), testRooms, 30)

	row, _ := SlotIndex(testSlots(), "13:00")
	require.Equal(t, models.CellPrimary, grid.Cells[row][4].Kind)
	assert.Equal(t, models.CellContinuation, grid.Cells[row+1][4].Kind)
}
