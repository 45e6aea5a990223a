package schedulerRepo

import (
	"testing"
	"time"

	"agendly/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson"
)

func TestGuardDates(t *testing.T) {
	t.Run("single day", func(t *testing.T) {
		start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
		end := time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC)
		assert.Equal(t, []string{"2026-09-14"}, guardDates(start, end))
	})

	t.Run("crossing midnight claims both dates", func(t *testing.T) {
		start := time.Date(2026, 9, 14, 23, 0, 0, 0, time.UTC)
		end := time.Date(2026, 9, 15, 1, 0, 0, 0, time.UTC)
		assert.Equal(t, []string{"2026-09-14", "2026-09-15"}, guardDates(start, end))
	})

	t.Run("ending exactly at midnight stays on one date", func(t *testing.T) {
		start := time.Date(2026, 9, 14, 23, 0, 0, 0, time.UTC)
		end := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
		assert.Equal(t, []string{"2026-09-14"}, guardDates(start, end))
	})
}

func TestRangeFilter(t *testing.T) {
	start := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 14, 11, 0, 0, 0, time.UTC)

	t.Run("half-open interval predicate", func(t *testing.T) {
		filter := rangeFilter("professional_id", "pro-1", start, end, models.LiveStatuses)
		assert.Equal(t, "pro-1", filter["professional_id"])
		assert.Equal(t, bson.M{"$lt": end}, filter["start_time"])
		assert.Equal(t, bson.M{"$gt": start}, filter["end_time"])

		statusFilter, ok := filter["status"].(bson.M)
		require.True(t, ok)
		assert.Equal(t, bson.M{"$in": models.LiveStatuses}, statusFilter)
	})

	t.Run("no status clause when unfiltered", func(t *testing.T) {
		filter := rangeFilter("client_id", "cl-1", start, end, nil)
		_, hasStatus := filter["status"]
		assert.False(t, hasStatus)
	})
}
