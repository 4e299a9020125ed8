package models

import "time"

// Appointment statuses. Cancelled appointments never occupy a slot.
const (
	AppointmentScheduled = "scheduled"
	AppointmentConfirmed = "confirmed"
	AppointmentCancelled = "cancelled"
	AppointmentCompleted = "completed"
)

// Appointment is a single agenda booking for one room on one day.
type Appointment struct {
	ID              string    `bson:"id" json:"id"`                             // Unique appointment identifier (UUID)
	Date            string    `bson:"date" json:"date"`                         // Calendar date in "YYYY-MM-DD" format (local wall clock)
	Start           string    `bson:"start" json:"start"`                       // Start time "HH:MM", quantized to the grid step
	DurationMinutes int       `bson:"duration_minutes" json:"durationMinutes"`  // Positive multiple of the grid step
	Room            int       `bson:"room" json:"room"`                         // Consultorio number from the configured room set
	StartMin        int       `bson:"start_min" json:"-"`                       // Denormalized minutes-from-midnight, set by the store for overlap queries
	EndMin          int       `bson:"end_min" json:"-"`
	Status          string    `bson:"status" json:"status"`                     // scheduled | confirmed | cancelled | completed
	PatientID       string    `bson:"patient_id,omitempty" json:"patientId,omitempty"` // Empty for non-patient blocks (internal meetings etc.)
	PatientName     string    `bson:"patient_name,omitempty" json:"patientName,omitempty"`
	DoctorID        string    `bson:"doctor_id,omitempty" json:"doctorId,omitempty"`
	DoctorName      string    `bson:"doctor_name,omitempty" json:"doctorName,omitempty"`
	Reason          string    `bson:"reason,omitempty" json:"reason,omitempty"`
	CreatedBy       string    `bson:"created_by,omitempty" json:"createdBy,omitempty"` // Actor identity, injected by the caller
	UpdatedBy       string    `bson:"updated_by,omitempty" json:"updatedBy,omitempty"`
	CreatedAt       time.Time `bson:"created_at" json:"createdAt"`
	UpdatedAt       time.Time `bson:"updated_at,omitempty" json:"updatedAt,omitempty"`
}

// Occupies reports whether the appointment takes up grid cells.
func (a Appointment) Occupies() bool {
	return a.Status != AppointmentCancelled
}

// AppointmentInput is the create/update payload accepted over HTTP.
// The duration is the final (possibly clamped) value chosen in the form;
// the store still performs the authoritative collision check at write time.
type AppointmentInput struct {
	Date            string `json:"date" binding:"required"`
	Start           string `json:"start" binding:"required"`
	DurationMinutes int    `json:"durationMinutes" binding:"required"`
	Room            int    `json:"room" binding:"required"`
	Status          string `json:"status"`
	PatientID       string `json:"patientId"`
	PatientName     string `json:"patientName"`
	DoctorID        string `json:"doctorId"`
	DoctorName      string `json:"doctorName"`
	Reason          string `json:"reason"`
}
