package models

// Grid cell kinds for the day agenda matrix.
const (
	CellEmpty        = "empty"
	CellPrimary      = "primary"
	CellContinuation = "continuation"
)

// GridCell is one (time slot, room) position in the day grid.
// Primary cells carry the appointment and its span; continuation cells are
// covered by a multi-slot appointment above them and render nothing.
type GridCell struct {
	Kind        string       `json:"kind"`
	Appointment *Appointment `json:"appointment,omitempty"`
	SpanSteps   int          `json:"spanSteps,omitempty"`
}

// GridConflict records two non-cancelled appointments claiming the same
// primary cell. Stale input can produce this; it is reported, not merged.
type GridConflict struct {
	Slot      string `json:"slot"`
	Room      int    `json:"room"`
	KeptID    string `json:"keptId"`
	DroppedID string `json:"droppedId"`
}

// DayGrid is the renderable agenda for one date: rows follow TimeSlots,
// columns follow Rooms. Cells[i][j] belongs to (TimeSlots[i], Rooms[j]).
type DayGrid struct {
	Date      string         `json:"date"`
	TimeSlots []string       `json:"timeSlots"`
	Rooms     []int          `json:"rooms"`
	Cells     [][]GridCell   `json:"cells"`
	Ungridded []Appointment  `json:"ungridded,omitempty"` // start times not aligned to the slot grid
	Conflicts []GridConflict `json:"conflicts,omitempty"`
}

// DurationBound is the resolver output bound to the duration input:
// the ceiling, the colliding start time (empty when open-ended), and a
// warning set when the previously chosen duration had to be clamped.
type DurationBound struct {
	MaxDuration     int    `json:"maxDuration"`
	NextConflict    string `json:"nextConflictTime,omitempty"`
	ClampedDuration int    `json:"clampedDuration,omitempty"`
	Warning         string `json:"warning,omitempty"`
}
