package schedule

import (
	"dentaldesk/models"
	"dentaldesk/utils"

	"go.uber.org/zap"
)

// BuildDayGrid lays out a day's appointments on the (time slot × room)
// matrix. Cancelled appointments never occupy cells. Each surviving
// appointment claims one primary cell at its start slot and marks the
// following spanSteps-1 cells in the same room as continuations, so a
// renderer can draw rowspan blocks without corrupting the grid.
//
// Appointments that cannot be placed are never dropped silently: a start
// time that does not match any slot label lands in Ungridded, and two
// appointments claiming the same primary cell are reported in Conflicts
// (the later one in iteration order wins).
func BuildDayGrid(date string, appointments []models.Appointment, timeSlots []string, rooms []int, stepMinutes int) models.DayGrid {
	logger := utils.GetLogger()

	grid := models.DayGrid{
		Date:      date,
		TimeSlots: timeSlots,
		Rooms:     rooms,
		Cells:     make([][]models.GridCell, len(timeSlots)),
	}
	for i := range grid.Cells {
		grid.Cells[i] = make([]models.GridCell, len(rooms))
		for j := range grid.Cells[i] {
			grid.Cells[i][j] = models.GridCell{Kind: models.CellEmpty}
		}
	}

	roomCol := make(map[int]int, len(rooms))
	for j, r := range rooms {
		roomCol[r] = j
	}

	for idx := range appointments {
		appt := appointments[idx]
		if !appt.Occupies() {
			continue
		}

		col, ok := roomCol[appt.Room]
		if !ok {
			logger.Warn("appointment in unknown room, skipping from grid",
				zap.String("id", appt.ID), zap.Int("room", appt.Room))
			grid.Ungridded = append(grid.Ungridded, appt)
			continue
		}

		row, ok := SlotIndex(timeSlots, appt.Start)
		if !ok {
			// Possible data-quality problem: start time off the 30-minute
			// grid. Surfaced to the caller instead of hidden.
			logger.Warn("appointment start not aligned to slot grid, skipping from grid",
				zap.String("id", appt.ID), zap.String("start", appt.Start))
			grid.Ungridded = append(grid.Ungridded, appt)
			continue
		}

		span := SpanSteps(appt.DurationMinutes, stepMinutes)

		if prev := grid.Cells[row][col]; prev.Kind == models.CellPrimary && prev.Appointment != nil {
			// Stale input: two live appointments on one primary cell.
			// Later one wins; the collision is reportable, not a merge.
			logger.Warn("primary cell conflict, keeping later appointment",
				zap.String("slot", timeSlots[row]), zap.Int("room", appt.Room),
				zap.String("kept", appt.ID), zap.String("dropped", prev.Appointment.ID))
			grid.Conflicts = append(grid.Conflicts, models.GridConflict{
				Slot:      timeSlots[row],
				Room:      appt.Room,
				KeptID:    appt.ID,
				DroppedID: prev.Appointment.ID,
			})
			clearSpan(&grid, row, col, prev.SpanSteps)
		}

		a := appt
		grid.Cells[row][col] = models.GridCell{
			Kind:        models.CellPrimary,
			Appointment: &a,
			SpanSteps:   span,
		}
		// Continuation cells, truncated at the window's end. Display-only:
		// the stored duration is untouched.
		for k := 1; k < span && row+k < len(timeSlots); k++ {
			grid.Cells[row+k][col] = models.GridCell{Kind: models.CellContinuation}
		}
	}

	return grid
}

// clearSpan resets a displaced appointment's primary and continuation cells
// back to empty before the winning appointment claims the range.
func clearSpan(grid *models.DayGrid, row, col, span int) {
	for k := 0; k < span && row+k < len(grid.TimeSlots); k++ {
		grid.Cells[row+k][col] = models.GridCell{Kind: models.CellEmpty}
	}
}
