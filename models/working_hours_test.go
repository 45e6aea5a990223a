package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeSlotValidate(t *testing.T) {
	tests := []struct {
		name    string
		slot    TimeSlot
		wantErr bool
	}{
		{name: "morning block", slot: TimeSlot{Start: 540, End: 720}},
		{name: "full day", slot: TimeSlot{Start: 0, End: MinutesPerDay}},
		{name: "one minute", slot: TimeSlot{Start: 0, End: 1}},
		{name: "negative start", slot: TimeSlot{Start: -10, End: 60}, wantErr: true},
		{name: "end past midnight", slot: TimeSlot{Start: 1380, End: MinutesPerDay + 1}, wantErr: true},
		{name: "zero length", slot: TimeSlot{Start: 600, End: 600}, wantErr: true},
		{name: "inverted", slot: TimeSlot{Start: 720, End: 540}, wantErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.slot.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSlots(t *testing.T) {
	t.Run("sorted and disjoint", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{{Start: 540, End: 720}, {Start: 780, End: 1020}})
		require.NoError(t, err)
	})

	t.Run("touching slots are allowed", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{{Start: 540, End: 720}, {Start: 720, End: 1020}})
		require.NoError(t, err)
	})

	t.Run("empty means day off", func(t *testing.T) {
		require.NoError(t, ValidateSlots(nil))
	})

	t.Run("overlapping slots rejected", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{{Start: 540, End: 720}, {Start: 700, End: 1020}})
		require.Error(t, err)
	})

	t.Run("out of order rejected", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{{Start: 780, End: 1020}, {Start: 540, End: 720}})
		require.Error(t, err)
	})

	t.Run("invalid member rejected", func(t *testing.T) {
		err := ValidateSlots([]TimeSlot{{Start: 720, End: 540}})
		require.Error(t, err)
	})
}

func TestTimeSlotClock(t *testing.T) {
	assert.Equal(t, "09:00-17:00", TimeSlot{Start: 540, End: 1020}.Clock())
	assert.Equal(t, "00:05-23:59", TimeSlot{Start: 5, End: 1439}.Clock())
}

func TestTimeSlotDuration(t *testing.T) {
	assert.Equal(t, 480, TimeSlot{Start: 540, End: 1020}.Duration())
}
