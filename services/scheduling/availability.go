package scheduling

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	schedulerRepo "agendly/database/repository/scheduler"
	"agendly/models"
	"agendly/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// AvailabilityCalculator computes a professional's free and busy slots for a
// date by subtracting live bookings from the working-hour windows. All
// arithmetic is at minute granularity.
type AvailabilityCalculator struct {
	Repo     schedulerRepo.SchedulerRepository
	Location *time.Location
	// Cache is optional. Results are cached briefly per (professional, date);
	// staleness is acceptable because the conflict check at booking time is
	// authoritative.
	Cache    *redis.Client
	CacheTTL time.Duration
}

func availabilityCacheKey(professionalID, date string) string {
	return fmt.Sprintf("availability:%s:%s", professionalID, date)
}

// Availability returns the free/busy partition of the working window on date
// (YYYY-MM-DD). A day off yields empty slot lists.
func (c *AvailabilityCalculator) Availability(ctx context.Context, professionalID, date string) (*models.AvailabilityResult, error) {
	logger := utils.GetLogger()

	day, err := time.ParseInLocation("2006-01-02", date, c.location())
	if err != nil {
		return nil, NewValidationError("invalid date %q, want YYYY-MM-DD", date)
	}

	if cached := c.readCache(ctx, professionalID, date); cached != nil {
		return cached, nil
	}

	result := &models.AvailabilityResult{
		ProfessionalID: professionalID,
		Date:           date,
		AvailableSlots: []models.TimeSlot{},
		BusySlots:      []models.TimeSlot{},
	}

	working, err := c.Repo.GetWorkingHours(ctx, professionalID, day.Weekday())
	if err != nil {
		return nil, &InfrastructureError{Op: "fetch working hours", Err: err}
	}
	if len(working) == 0 {
		// Day off.
		return result, nil
	}

	dayStart := day
	dayEnd := day.AddDate(0, 0, 1)
	appts, err := c.Repo.QueryByProfessionalAndRange(ctx, professionalID, dayStart, dayEnd, models.LiveStatuses)
	if err != nil {
		return nil, &InfrastructureError{Op: "fetch appointments", Err: err}
	}

	booked := clipToDay(appts, dayStart)
	merged := mergeSlots(booked)

	result.BusySlots = intersectSlots(merged, working)
	for _, w := range working {
		result.AvailableSlots = append(result.AvailableSlots, subtractSlots(w, merged)...)
	}

	c.writeCache(ctx, professionalID, date, result)
	logger.Debug("computed availability",
		zap.String("professionalID", professionalID),
		zap.String("date", date),
		zap.Int("free", len(result.AvailableSlots)),
		zap.Int("busy", len(result.BusySlots)))
	return result, nil
}

// Invalidate drops cached availability for each date touched by the given instants.
func (c *AvailabilityCalculator) Invalidate(ctx context.Context, professionalID string, instants ...time.Time) {
	if c.Cache == nil {
		return
	}
	seen := make(map[string]struct{})
	for _, t := range instants {
		date := t.In(c.location()).Format("2006-01-02")
		if _, ok := seen[date]; ok {
			continue
		}
		seen[date] = struct{}{}
		if err := c.Cache.Del(ctx, availabilityCacheKey(professionalID, date)).Err(); err != nil {
			utils.GetLogger().Warn("failed to invalidate availability cache",
				zap.String("professionalID", professionalID), zap.String("date", date), zap.Error(err))
		}
	}
}

func (c *AvailabilityCalculator) location() *time.Location {
	if c.Location != nil {
		return c.Location
	}
	return time.UTC
}

func (c *AvailabilityCalculator) readCache(ctx context.Context, professionalID, date string) *models.AvailabilityResult {
	if c.Cache == nil {
		return nil
	}
	data, err := c.Cache.Get(ctx, availabilityCacheKey(professionalID, date)).Result()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		utils.GetLogger().Warn("availability cache read failed", zap.Error(err))
		return nil
	}
	var result models.AvailabilityResult
	if err := json.Unmarshal([]byte(data), &result); err != nil {
		return nil
	}
	return &result
}

func (c *AvailabilityCalculator) writeCache(ctx context.Context, professionalID, date string, result *models.AvailabilityResult) {
	if c.Cache == nil {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	ttl := c.CacheTTL
	if ttl == 0 {
		ttl = 30 * time.Second
	}
	if err := c.Cache.Set(ctx, availabilityCacheKey(professionalID, date), data, ttl).Err(); err != nil {
		utils.GetLogger().Warn("availability cache write failed", zap.Error(err))
	}
}

// clipToDay converts appointments to minute intervals within the day,
// clipping ones that start before or end after it.
func clipToDay(appts []models.Appointment, dayStart time.Time) []models.TimeSlot {
	var slots []models.TimeSlot
	for _, a := range appts {
		start := int(a.StartTime.Sub(dayStart).Minutes())
		end := int(a.EndTime.Sub(dayStart).Minutes())
		if start < 0 {
			start = 0
		}
		if end > models.MinutesPerDay {
			end = models.MinutesPerDay
		}
		if end <= start {
			continue
		}
		slots = append(slots, models.TimeSlot{Start: start, End: end})
	}
	return slots
}

// mergeSlots sorts and coalesces overlapping or touching intervals.
func mergeSlots(slots []models.TimeSlot) []models.TimeSlot {
	if len(slots) == 0 {
		return nil
	}
	sorted := make([]models.TimeSlot, len(slots))
	copy(sorted, slots)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	merged := []models.TimeSlot{sorted[0]}
	for _, s := range sorted[1:] {
		last := &merged[len(merged)-1]
		if s.Start <= last.End {
			if s.End > last.End {
				last.End = s.End
			}
			continue
		}
		merged = append(merged, s)
	}
	return merged
}

// subtractSlots removes every busy interval from the slot, yielding zero, one
// or more remainders. A fully covered slot yields none; a busy interval
// strictly inside the slot splits it in two. Zero-length fragments are dropped.
func subtractSlots(slot models.TimeSlot, busy []models.TimeSlot) []models.TimeSlot {
	remaining := []models.TimeSlot{slot}
	for _, b := range busy {
		var next []models.TimeSlot
		for _, r := range remaining {
			if b.End <= r.Start || b.Start >= r.End {
				next = append(next, r)
				continue
			}
			if b.Start > r.Start {
				next = append(next, models.TimeSlot{Start: r.Start, End: b.Start})
			}
			if b.End < r.End {
				next = append(next, models.TimeSlot{Start: b.End, End: r.End})
			}
		}
		remaining = next
	}
	return remaining
}

// intersectSlots clips the merged busy intervals to the working windows.
func intersectSlots(busy, windows []models.TimeSlot) []models.TimeSlot {
	result := []models.TimeSlot{}
	for _, b := range busy {
		for _, w := range windows {
			start := b.Start
			if w.Start > start {
				start = w.Start
			}
			end := b.End
			if w.End < end {
				end = w.End
			}
			if end > start {
				result = append(result, models.TimeSlot{Start: start, End: end})
			}
		}
	}
	if merged := mergeSlots(result); merged != nil {
		return merged
	}
	return []models.TimeSlot{}
}
