package schedulerRepo

import (
	"context"
	"fmt"
	"time"

	"agendly/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// rangeFilter builds the half-open interval intersection filter:
// an appointment intersects [start, end) iff start_time < end AND end_time > start.
func rangeFilter(key, id string, start, end time.Time, statuses []models.AppointmentStatus) bson.M {
	filter := bson.M{
		key:          id,
		"start_time": bson.M{"$lt": end},
		"end_time":   bson.M{"$gt": start},
	}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	return filter
}

func (repo *MongoSchedulerRepo) queryByRange(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "start_time", Value: 1}})
	cursor, err := repo.apptColl.Find(ctxWithTimeout, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("error querying appointments: %w", err)
	}
	defer cursor.Close(ctxWithTimeout)

	var appts []models.Appointment
	if err := cursor.All(ctxWithTimeout, &appts); err != nil {
		return nil, fmt.Errorf("error decoding appointments: %w", err)
	}
	return appts, nil
}

// QueryByProfessionalAndRange returns a professional's appointments intersecting [start, end).
func (repo *MongoSchedulerRepo) QueryByProfessionalAndRange(ctx context.Context, professionalID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	return repo.queryByRange(ctx, rangeFilter("professional_id", professionalID, start, end, statuses))
}

// QueryByClientAndRange returns a client's appointments intersecting [start, end),
// across all professionals.
func (repo *MongoSchedulerRepo) QueryByClientAndRange(ctx context.Context, clientID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	return repo.queryByRange(ctx, rangeFilter("client_id", clientID, start, end, statuses))
}

// QueryByServiceAndRange returns a service's appointments intersecting [start, end);
// used for exclusive-resource services.
func (repo *MongoSchedulerRepo) QueryByServiceAndRange(ctx context.Context, serviceID string, start, end time.Time, statuses []models.AppointmentStatus) ([]models.Appointment, error) {
	return repo.queryByRange(ctx, rangeFilter("service_id", serviceID, start, end, statuses))
}
