package schedulerRepo

import (
	"agendly/database"

	"go.mongodb.org/mongo-driver/mongo"
)

// MongoSchedulerRepo implements SchedulerRepository on MongoDB.
type MongoSchedulerRepo struct {
	apptColl    *mongo.Collection
	hoursColl   *mongo.Collection
	serviceColl *mongo.Collection
	guardColl   *mongo.Collection // per-(professional, date) serialization documents
}

// NewMongoSchedulerRepo creates a scheduler repository backed by the global Mongo client.
func NewMongoSchedulerRepo() *MongoSchedulerRepo {
	db := database.GetClient().Database("agendly")
	return &MongoSchedulerRepo{
		apptColl:    db.Collection("appointments"),
		hoursColl:   db.Collection("working_hours"),
		serviceColl: db.Collection("services"),
		guardColl:   db.Collection("schedule_guards"),
	}
}
