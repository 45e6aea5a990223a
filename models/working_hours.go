package models

import (
	"fmt"
	"time"
)

// TimeSlot is a wall-clock interval within a single day, expressed in minutes
// from midnight (e.g., 540 for 9:00 AM). End is exclusive; End > Start.
type TimeSlot struct {
	Start int `bson:"start" json:"start"`
	End   int `bson:"end" json:"end"`
}

// MinutesPerDay bounds every TimeSlot.
const MinutesPerDay = 24 * 60

// Validate checks the single-slot invariant.
func (ts TimeSlot) Validate() error {
	if ts.Start < 0 || ts.End > MinutesPerDay {
		return fmt.Errorf("slot [%d, %d) outside the day", ts.Start, ts.End)
	}
	if ts.End <= ts.Start {
		return fmt.Errorf("slot end %d must be after start %d", ts.End, ts.Start)
	}
	return nil
}

// Duration returns the slot length in minutes.
func (ts TimeSlot) Duration() int {
	return ts.End - ts.Start
}

// Clock renders the slot as "HH:MM-HH:MM" for logs and messages.
func (ts TimeSlot) Clock() string {
	return fmt.Sprintf("%02d:%02d-%02d:%02d", ts.Start/60, ts.Start%60, ts.End/60, ts.End%60)
}

// WorkingHours is a professional's bookable window for one weekday.
// Slots are sorted ascending and disjoint; an empty list means a day off.
type WorkingHours struct {
	ProfessionalID string       `bson:"professional_id" json:"professional_id"`
	Weekday        time.Weekday `bson:"weekday" json:"weekday"`
	Slots          []TimeSlot   `bson:"slots" json:"slots"`
}

// ValidateSlots enforces the sorted/disjoint invariant over a day's slots.
func ValidateSlots(slots []TimeSlot) error {
	for i, s := range slots {
		if err := s.Validate(); err != nil {
			return err
		}
		if i > 0 && s.Start < slots[i-1].End {
			return fmt.Errorf("slot %s overlaps or precedes %s", s.Clock(), slots[i-1].Clock())
		}
	}
	return nil
}

// SetWorkingHoursRequest defines the payload for configuring one weekday.
type SetWorkingHoursRequest struct {
	Weekday int        `json:"weekday" binding:"min=0,max=6"`
	Slots   []TimeSlot `json:"slots"`
}
