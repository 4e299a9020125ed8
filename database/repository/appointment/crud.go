// File: database/repository/appointment/crud.go
package appointmentRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"dentaldesk/models"
)

// ErrOverlap is the authoritative write-time rejection: part of the
// requested range is already occupied by a non-cancelled appointment in the
// same room. Clients treat their resolver ceiling as best-effort and retry
// with a refreshed day list.
var ErrOverlap = errors.New("appointment overlaps an existing booking")

// ErrNotFound is returned when the appointment does not exist.
var ErrNotFound = errors.New("appointment not found")

func (r *mongoAppointmentRepo) Create(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if appt.ID == "" {
		appt.ID = uuid.New().String()
	}
	appt.CreatedAt = time.Now()

	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := r.assertFree(sc, appt, ""); err != nil {
			return nil, err
		}
		if _, err := r.coll.InsertOne(sc, appt); err != nil {
			return nil, fmt.Errorf("failed to insert appointment: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *mongoAppointmentRepo) Update(ctx context.Context, appt *models.Appointment) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	appt.UpdatedAt = time.Now()

	session, err := r.coll.Database().Client().StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		// The appointment being edited must not collide with itself.
		if err := r.assertFree(sc, appt, appt.ID); err != nil {
			return nil, err
		}
		res, err := r.coll.ReplaceOne(sc, bson.M{"id": appt.ID}, appt)
		if err != nil {
			return nil, fmt.Errorf("failed to update appointment: %w", err)
		}
		if res.MatchedCount == 0 {
			return nil, ErrNotFound
		}
		return nil, nil
	})
	return err
}

// Cancel flips the status instead of deleting; cancelled appointments stop
// occupying slots but stay on record.
func (r *mongoAppointmentRepo) Cancel(ctx context.Context, id, actor string) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"status":     models.AppointmentCancelled,
		"updated_by": actor,
		"updated_at": time.Now(),
	}}
	res, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// assertFree fails with ErrOverlap when a non-cancelled appointment in the
// same room and date intersects [StartMin, EndMin). excludeID skips the
// appointment currently being edited.
func (r *mongoAppointmentRepo) assertFree(ctx context.Context, appt *models.Appointment, excludeID string) error {
	filter := bson.M{
		"date":      appt.Date,
		"room":      appt.Room,
		"status":    bson.M{"$ne": models.AppointmentCancelled},
		"start_min": bson.M{"$lt": appt.EndMin},
		"end_min":   bson.M{"$gt": appt.StartMin},
	}
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}

	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return fmt.Errorf("overlap check failed: %w", err)
	}
	if count > 0 {
		return ErrOverlap
	}
	return nil
}
