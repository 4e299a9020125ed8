package models

// ReminderPayload is the asynq task body for an appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
	Date          string `json:"date"`
	Start         string `json:"start"`
	Room          int    `json:"room"`
	Title         string `json:"title"`
	Body          string `json:"body"`
}
