package sessions

import (
	"fmt"
	"time"
)

// Session is a named live event owning its own nested dates and slots,
// separate from the flat slot calendar.
//
// Nested slots carry a `booked` counter that nothing in the dashboard
// increments yet; the live-session booking flow was never wired up. It is
// stored as-is so existing documents round-trip unchanged.
type Session struct {
	ID        string        `json:"id" bson:"id"`
	Name      string        `json:"name" bson:"name"`
	Dates     []SessionDate `json:"dates" bson:"dates"`
	CreatedAt int64         `json:"createdAt" bson:"createdAt"`
}

type SessionDate struct {
	Date  string        `json:"date" bson:"date"` // YYYY-MM-DD
	Slots []SessionSlot `json:"slots" bson:"slots"`
}

type SessionSlot struct {
	Time     string `json:"time" bson:"time"`
	Capacity int    `json:"capacity" bson:"capacity"`
	Booked   int    `json:"booked" bson:"booked"`
}

// EarliestDate returns the smallest date string across the session's dates,
// or "" when there are none.
func (s Session) EarliestDate() string {
	earliest := ""
	for _, d := range s.Dates {
		if earliest == "" || d.Date < earliest {
			earliest = d.Date
		}
	}
	return earliest
}

// GenerateID derives the human-readable session id from the earliest date:
// "LV" + DDMMYYYY, with the first free "-1", "-2", ... suffix when the base
// id is already taken. The existing set comes from a full collection scan,
// so two concurrent creates with the same first date can still collide.
func GenerateID(earliestDate string, existing map[string]bool) (string, error) {
	t, err := time.Parse("2006-01-02", earliestDate)
	if err != nil {
		return "", fmt.Errorf("invalid session date %q: %w", earliestDate, err)
	}

	base := "LV" + t.Format("02012006")
	if !existing[base] {
		return base, nil
	}
	for i := 1; ; i++ {
		candidate := fmt.Sprintf("%s-%d", base, i)
		if !existing[candidate] {
			return candidate, nil
		}
	}
}
