// File: database/repository/catalog/interface.go
package catalogRepo

import (
	"context"

	"dentaldesk/database"
	"dentaldesk/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// CatalogRepository reads the display fields the agenda needs from the
// patient/doctor/assistant collections owned by the external CRUD modules.
// The agenda never writes to these collections.
type CatalogRepository interface {
	GetPatient(ctx context.Context, id string) (*models.PatientRef, error)
	GetDoctor(ctx context.Context, id string) (*models.DoctorRef, error)
	ListDoctors(ctx context.Context) ([]models.DoctorRef, error)
	ListAssistants(ctx context.Context) ([]models.AssistantRef, error)
}

type mongoCatalogRepo struct {
	patients   *mongo.Collection
	doctors    *mongo.Collection
	assistants *mongo.Collection
}

// NewMongoCatalogRepo constructs a new MongoDB CatalogRepository.
func NewMongoCatalogRepo() CatalogRepository {
	db := database.DB()
	return &mongoCatalogRepo{
		patients:   db.Collection("patients"),
		doctors:    db.Collection("doctors"),
		assistants: db.Collection("assistants"),
	}
}
