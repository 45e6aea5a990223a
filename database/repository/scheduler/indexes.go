package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// EnsureIndexes creates the indexes backing the scheduler's query patterns
// and the uniqueness guarantees of the transactional booking path.
func (repo *MongoSchedulerRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	apptIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		// Primary conflict/availability query pattern.
		{
			Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "start_time", Value: 1}, {Key: "end_time", Value: 1}},
			Options: options.Index().SetName("professional_window_idx"),
		},
		{
			Keys:    bson.D{{Key: "client_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("client_window_idx"),
		},
		{
			Keys:    bson.D{{Key: "service_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("service_window_idx"),
		},
	}
	if _, err := repo.apptColl.Indexes().CreateMany(ctx, apptIndexes); err != nil {
		return fmt.Errorf("failed to create appointment indexes: %w", err)
	}

	// One guard document per professional-day; concurrent upserts must
	// converge on the same document for the write-conflict serialization
	// in transaction.go to hold.
	guardIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_professional_date"),
	}
	if _, err := repo.guardColl.Indexes().CreateOne(ctx, guardIndex); err != nil {
		return fmt.Errorf("failed to create schedule guard index: %w", err)
	}

	hoursIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "professional_id", Value: 1}, {Key: "weekday", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("unique_professional_weekday"),
	}
	if _, err := repo.hoursColl.Indexes().CreateOne(ctx, hoursIndex); err != nil {
		return fmt.Errorf("failed to create working hours index: %w", err)
	}

	return nil
}
