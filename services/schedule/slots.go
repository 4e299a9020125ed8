package schedule

import (
	"fmt"
	"strconv"
	"strings"

	"dentaldesk/config"
)

// GridPolicy holds the slot-quantization rules shared by the grid builder
// and the duration resolver. Both must read time through this one layer.
type GridPolicy struct {
	WindowStart        string
	WindowEnd          string
	StepMinutes        int
	Rooms              []int
	CrossDayCeilingMin int
	OpenEndCeilingMin  int
}

// PolicyFromConfig builds the grid policy from the loaded app configuration.
func PolicyFromConfig() GridPolicy {
	return GridPolicy{
		WindowStart:        config.AppConfig.SchedWindowStart,
		WindowEnd:          config.AppConfig.SchedWindowEnd,
		StepMinutes:        config.AppConfig.SchedStepMinutes,
		Rooms:              config.AppConfig.SchedRooms,
		CrossDayCeilingMin: config.AppConfig.SchedCrossDayCeilingMin,
		OpenEndCeilingMin:  config.AppConfig.SchedOpenEndCeilingMin,
	}
}

// TimeSlots generates the ordered slot labels for the operating window,
// inclusive of both ends.
func (p GridPolicy) TimeSlots() []string {
	return GenerateTimeSlots(p.WindowStart, p.WindowEnd, p.StepMinutes)
}

// GenerateTimeSlots returns "HH:MM" labels from start to end inclusive,
// stepped by step minutes. Returns nil when the window is inverted or the
// step is not positive.
func GenerateTimeSlots(start, end string, step int) []string {
	startMin, err := ClockToMinutes(start)
	if err != nil {
		return nil
	}
	endMin, err := ClockToMinutes(end)
	if err != nil {
		return nil
	}
	if step <= 0 || endMin < startMin {
		return nil
	}

	slots := make([]string, 0, (endMin-startMin)/step+1)
	for m := startMin; m <= endMin; m += step {
		slots = append(slots, MinutesToClock(m))
	}
	return slots
}

// ClockToMinutes parses a wall-clock time into minutes from midnight.
// Only the first five characters ("HH:MM") are significant, so values
// carrying seconds ("09:00:00") are accepted.
func ClockToMinutes(clock string) (int, error) {
	if len(clock) > 5 {
		clock = clock[:5]
	}
	parts := strings.Split(clock, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock time %q out of range", clock)
	}
	return hours*60 + minutes, nil
}

// MinutesToClock formats minutes from midnight as "HH:MM".
func MinutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// MinutesBetween returns to minus from in minutes. Negative when to is
// earlier than from.
func MinutesBetween(from, to string) (int, error) {
	fromMin, err := ClockToMinutes(from)
	if err != nil {
		return 0, err
	}
	toMin, err := ClockToMinutes(to)
	if err != nil {
		return 0, err
	}
	return toMin - fromMin, nil
}

// SpanSteps returns how many grid cells a duration covers: ceil(duration/step),
// never fewer than one.
func SpanSteps(durationMinutes, stepMinutes int) int {
	if stepMinutes <= 0 || durationMinutes <= stepMinutes {
		return 1
	}
	return (durationMinutes + stepMinutes - 1) / stepMinutes
}

// SlotIndex locates a clock time in the slot label sequence by exact
// hour:minute equality. Appointments whose start is not a known slot are
// not renderable in the grid.
func SlotIndex(slots []string, clock string) (int, bool) {
	if len(clock) > 5 {
		clock = clock[:5]
	}
	for i, s := range slots {
		if s == clock {
			return i, true
		}
	}
	return -1, false
}

// AlignedToStep reports whether a clock time lands on the quantization grid.
func AlignedToStep(clock string, step int) bool {
	m, err := ClockToMinutes(clock)
	if err != nil || step <= 0 {
		return false
	}
	return m%step == 0
}
