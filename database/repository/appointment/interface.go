// File: database/repository/appointment/interface.go
package appointmentRepo

import (
	"context"

	"dentaldesk/database"
	"dentaldesk/models"
	"dentaldesk/utils"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

// AppointmentRepository is the authoritative appointment store. Create and
// Update perform the write-time overlap check and fail with ErrOverlap when
// another appointment already occupies part of the requested range.
type AppointmentRepository interface {
	ListByDate(ctx context.Context, date string) ([]models.Appointment, error)
	ListByDateAndRoom(ctx context.Context, date string, room int) ([]models.Appointment, error)
	GetByID(ctx context.Context, id string) (*models.Appointment, error)
	Create(ctx context.Context, appt *models.Appointment) error
	Update(ctx context.Context, appt *models.Appointment) error
	Cancel(ctx context.Context, id, actor string) error
}

type mongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new MongoDB AppointmentRepository.
func NewMongoAppointmentRepo() AppointmentRepository {
	repo := &mongoAppointmentRepo{
		coll: database.DB().Collection("appointments"),
	}
	if err := repo.EnsureIndexes(); err != nil {
		utils.GetLogger().Warn("failed to ensure appointment indexes", zap.Error(err))
	}
	return repo
}
