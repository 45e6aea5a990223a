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

// The conflict check and the insert span a read and a write, so two
// concurrent bookings for the same window could both pass a naive check.
// Every booking transaction first bumps a guard document keyed by
// (professional_id, date). Two transactions on the same professional-day then
// write the same document: one loses the write conflict, is retried by the
// driver against a snapshot that includes the winner's booking, and the
// re-check reports ErrSlotTaken. The unique index on the guard collection
// keeps concurrent upserts from creating duplicate guards.

// guardDates lists every date (in the appointment's own zone) touched by [start, end).
func guardDates(start, end time.Time) []string {
	var dates []string
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
	for day.Before(end) {
		dates = append(dates, day.Format("2006-01-02"))
		day = day.AddDate(0, 0, 1)
	}
	return dates
}

func (repo *MongoSchedulerRepo) bumpGuards(sc mongo.SessionContext, professionalID string, start, end time.Time) error {
	opts := options.Update().SetUpsert(true)
	for _, date := range guardDates(start, end) {
		filter := bson.M{"professional_id": professionalID, "date": date}
		update := bson.M{"$inc": bson.M{"version": 1}}
		if _, err := repo.guardColl.UpdateOne(sc, filter, update, opts); err != nil {
			return fmt.Errorf("failed to bump schedule guard %s/%s: %w", professionalID, date, err)
		}
	}
	return nil
}

func (repo *MongoSchedulerRepo) hasLiveOverlap(sc mongo.SessionContext, professionalID string, start, end time.Time, excludeID string) (bool, error) {
	filter := rangeFilter("professional_id", professionalID, start, end, models.LiveStatuses)
	if excludeID != "" {
		filter["id"] = bson.M{"$ne": excludeID}
	}
	count, err := repo.apptColl.CountDocuments(sc, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("overlap re-check failed: %w", err)
	}
	return count > 0, nil
}

// CreateAppointmentTransactionally inserts the appointment after re-checking
// the professional's window inside a multi-document transaction.
func (repo *MongoSchedulerRepo) CreateAppointmentTransactionally(ctx context.Context, appt *models.Appointment) error {
	client := repo.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		if err := repo.bumpGuards(sc, appt.ProfessionalID, appt.StartTime, appt.EndTime); err != nil {
			return nil, err
		}
		taken, err := repo.hasLiveOverlap(sc, appt.ProfessionalID, appt.StartTime, appt.EndTime, "")
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlotTaken
		}
		if _, err := repo.apptColl.InsertOne(sc, appt); err != nil {
			return nil, fmt.Errorf("insert appointment failed: %w", err)
		}
		return nil, nil
	})
	if errors.Is(err, ErrSlotTaken) {
		return ErrSlotTaken
	}
	if err != nil {
		return fmt.Errorf("booking transaction failed: %w", err)
	}
	return nil
}

// RescheduleAppointmentTransactionally moves an appointment to a new window
// under the same guard, ignoring its own interval during the re-check.
func (repo *MongoSchedulerRepo) RescheduleAppointmentTransactionally(ctx context.Context, id string, start, end time.Time, fields bson.M) (*models.Appointment, error) {
	client := repo.apptColl.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return nil, fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	result, err := sess.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		var current models.Appointment
		if err := repo.apptColl.FindOne(sc, bson.M{"id": id}).Decode(&current); err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("fetch appointment failed: %w", err)
		}

		// Guard both the window being vacated and the one being claimed.
		if err := repo.bumpGuards(sc, current.ProfessionalID, current.StartTime, current.EndTime); err != nil {
			return nil, err
		}
		if err := repo.bumpGuards(sc, current.ProfessionalID, start, end); err != nil {
			return nil, err
		}

		taken, err := repo.hasLiveOverlap(sc, current.ProfessionalID, start, end, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, ErrSlotTaken
		}

		fields["start_time"] = start
		fields["end_time"] = end
		fields["updated_at"] = time.Now()
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		var updated models.Appointment
		if err := repo.apptColl.FindOneAndUpdate(sc, bson.M{"id": id}, bson.M{"$set": fields}, opts).Decode(&updated); err != nil {
			return nil, fmt.Errorf("reschedule update failed: %w", err)
		}
		return &updated, nil
	})
	if errors.Is(err, ErrSlotTaken) || errors.Is(err, ErrNotFound) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("reschedule transaction failed: %w", err)
	}
	return result.(*models.Appointment), nil
}
