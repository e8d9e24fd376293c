package calendar

import "sort"

// Slot is one bookable date+time unit with a fixed capacity.
// Invariant: 0 <= bookedCount <= capacity. The booked counter only ever
// goes up; there is no cancellation flow that would decrement it.
type Slot struct {
	ID          string `json:"id" bson:"id"`
	Date        string `json:"date" bson:"date"` // YYYY-MM-DD
	Time        string `json:"time" bson:"time"` // HH:MM
	Capacity    int    `json:"capacity" bson:"capacity"`
	BookedCount int    `json:"bookedCount" bson:"bookedCount"`
	CreatedAt   int64  `json:"createdAt" bson:"createdAt"`
}

// AvailableSpots is how many more bookings the slot can take.
func (s Slot) AvailableSpots() int {
	return s.Capacity - s.BookedCount
}

// DateGroup is one calendar day with its open slots, as the booking form
// renders it.
type DateGroup struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// GroupAvailable drops slots with no remaining capacity and groups the rest
// by date. Groups are ordered by date, slots within a group by time; both
// are plain string comparisons on the YYYY-MM-DD / HH:MM forms.
func GroupAvailable(slots []Slot) []DateGroup {
	byDate := make(map[string][]Slot)
	for _, s := range slots {
		if s.AvailableSpots() <= 0 {
			continue
		}
		byDate[s.Date] = append(byDate[s.Date], s)
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	groups := make([]DateGroup, 0, len(dates))
	for _, d := range dates {
		daySlots := byDate[d]
		sort.Slice(daySlots, func(i, j int) bool {
			return daySlots[i].Time < daySlots[j].Time
		})
		groups = append(groups, DateGroup{Date: d, Slots: daySlots})
	}
	return groups
}
