package schedulerRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetWorkingHours returns the professional's slots for one weekday.
// A missing document means a day off and yields an empty list, not an error.
func (repo *MongoSchedulerRepo) GetWorkingHours(ctx context.Context, professionalID string, weekday time.Weekday) ([]models.TimeSlot, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var wh models.WorkingHours
	err := repo.hoursColl.FindOne(ctxWithTimeout, bson.M{
		"professional_id": professionalID,
		"weekday":         int(weekday),
	}).Decode(&wh)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("error fetching working hours for %s: %w", professionalID, err)
	}
	return wh.Slots, nil
}

// SetWorkingHours replaces the professional's slots for one weekday.
// Slots must already satisfy the sorted/disjoint invariant.
func (repo *MongoSchedulerRepo) SetWorkingHours(ctx context.Context, professionalID string, weekday time.Weekday, slots []models.TimeSlot) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"professional_id": professionalID, "weekday": int(weekday)}
	update := bson.M{"$set": bson.M{"slots": slots}}
	opts := options.Update().SetUpsert(true)
	if _, err := repo.hoursColl.UpdateOne(ctxWithTimeout, filter, update, opts); err != nil {
		return fmt.Errorf("error setting working hours for %s: %w", professionalID, err)
	}
	return nil
}
