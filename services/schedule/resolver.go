package schedule

import (
	"fmt"
	"sort"

	"dentaldesk/models"
)

// Candidate is an appointment being authored in the create/edit form.
// ExcludeID carries the appointment's own ID during an edit so it does not
// collide with itself.
type Candidate struct {
	Date      string
	Start     string
	Room      int
	ExcludeID string
}

// ComputeMaxDuration returns the largest duration the candidate may take
// without overlapping the next non-cancelled appointment in the same room
// that day.
//
// fetchedDate is the date the dayAppointments list was loaded for. When the
// candidate's date differs, the resolver has no collision data and falls
// back to the cross-day ceiling with no conflict boundary; this is a
// deliberate fallback, not an error. When no later appointment exists in
// the room, the open-ended ceiling applies.
//
// The result is a best-effort client-side guard only: the appointment store
// remains the final arbiter at write time and may still reject the slot.
func ComputeMaxDuration(cand Candidate, fetchedDate string, dayAppointments []models.Appointment, policy GridPolicy) (models.DurationBound, error) {
	if cand.Date != fetchedDate {
		return models.DurationBound{MaxDuration: policy.CrossDayCeilingMin}, nil
	}

	candStart, err := ClockToMinutes(cand.Start)
	if err != nil {
		return models.DurationBound{}, fmt.Errorf("%w: bad candidate start time %q", ErrInvalidInput, cand.Start)
	}

	type later struct {
		start int
		clock string
	}
	var candidates []later
	for _, appt := range dayAppointments {
		if appt.Room != cand.Room || !appt.Occupies() || appt.ID == cand.ExcludeID {
			continue
		}
		start, err := ClockToMinutes(appt.Start)
		if err != nil {
			// Malformed start times are excluded from collision math.
			continue
		}
		candidates = append(candidates, later{start: start, clock: MinutesToClock(start)})
	}
	sort.Slice(candidates, func(i, j int) bool { return candidates[i].start < candidates[j].start })

	for _, c := range candidates {
		if c.start <= candStart {
			continue
		}
		gap := c.start - candStart
		if gap <= 0 {
			// Guarded against even though slot quantization should make it
			// impossible: never emit a zero or negative ceiling.
			return models.DurationBound{}, ErrNoSafeDuration
		}
		return models.DurationBound{MaxDuration: gap, NextConflict: c.clock}, nil
	}

	return models.DurationBound{MaxDuration: policy.OpenEndCeilingMin}, nil
}

// ClampDuration re-validates a previously chosen duration against the bound.
// When the chosen value exceeds the ceiling, the result carries the reduced
// duration and a warning naming the colliding start time; the caller must
// adopt the clamped value before submitting.
func ClampDuration(bound models.DurationBound, chosenMinutes int) models.DurationBound {
	if chosenMinutes <= bound.MaxDuration {
		return bound
	}
	bound.ClampedDuration = bound.MaxDuration
	if bound.NextConflict != "" {
		bound.Warning = fmt.Sprintf(
			"Duration reduced to %d minutes: the next appointment in this room starts at %s.",
			bound.MaxDuration, bound.NextConflict)
	} else {
		bound.Warning = fmt.Sprintf("Duration reduced to the %d-minute maximum.", bound.MaxDuration)
	}
	return bound
}
