package calendar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAvailableSpots(t *testing.T) {
	assert.Equal(t, 2, Slot{Capacity: 5, BookedCount: 3}.AvailableSpots())
	assert.Equal(t, 0, Slot{Capacity: 2, BookedCount: 2}.AvailableSpots())
}

func TestGroupAvailableOrdersByDateThenTime(t *testing.T) {
	slots := []Slot{
		{ID: "a", Date: "2025-02-01", Time: "10:00", Capacity: 3},
		{ID: "b", Date: "2025-01-15", Time: "09:00", Capacity: 3},
		{ID: "c", Date: "2025-01-15", Time: "08:00", Capacity: 3},
	}

	groups := GroupAvailable(slots)
	require.Len(t, groups, 2)

	assert.Equal(t, "2025-01-15", groups[0].Date)
	require.Len(t, groups[0].Slots, 2)
	assert.Equal(t, "08:00", groups[0].Slots[0].Time)
	assert.Equal(t, "09:00", groups[0].Slots[1].Time)

	assert.Equal(t, "2025-02-01", groups[1].Date)
	require.Len(t, groups[1].Slots, 1)
	assert.Equal(t, "10:00", groups[1].Slots[0].Time)
}

func TestGroupAvailableNeverReturnsFullSlots(t *testing.T) {
	tests := []struct {
		name  string
		slots []Slot
		want  int // total slots across groups
	}{
		{
			name: "full slot dropped",
			slots: []Slot{
				{ID: "a", Date: "2025-01-15", Time: "08:00", Capacity: 2, BookedCount: 2},
				{ID: "b", Date: "2025-01-15", Time: "09:00", Capacity: 2, BookedCount: 1},
			},
			want: 1,
		},
		{
			name: "overbooked slot dropped",
			slots: []Slot{
				{ID: "a", Date: "2025-01-15", Time: "08:00", Capacity: 2, BookedCount: 3},
			},
			want: 0,
		},
		{
			name:  "no slots at all",
			slots: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			groups := GroupAvailable(tt.slots)
			total := 0
			for _, g := range groups {
				for _, s := range g.Slots {
					assert.Greater(t, s.AvailableSpots(), 0)
					total++
				}
			}
			assert.Equal(t, tt.want, total)
		})
	}
}

func TestGroupAvailableEmptyIsValid(t *testing.T) {
	groups := GroupAvailable([]Slot{})
	assert.Empty(t, groups)
	assert.NotNil(t, groups)
}
