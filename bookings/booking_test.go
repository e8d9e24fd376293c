package bookings

import (
	"context"
	"encoding/json"
	"errors"
	"momfirst/calendar"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSlotStore is an in-memory calendar.Store.
type fakeSlotStore struct {
	mu    sync.Mutex
	slots map[string]calendar.Slot
	// barrier, when set, makes Get wait until every racing caller has read
	// its slot before any increment happens
	barrier *sync.WaitGroup
	incErr  error
}

func newFakeSlotStore(slots ...calendar.Slot) *fakeSlotStore {
	m := make(map[string]calendar.Slot)
	for _, s := range slots {
		m[s.ID] = s
	}
	return &fakeSlotStore{slots: m}
}

func (f *fakeSlotStore) Get(_ context.Context, id string) (calendar.Slot, error) {
	f.mu.Lock()
	s, ok := f.slots[id]
	f.mu.Unlock()
	if !ok {
		return calendar.Slot{}, calendar.ErrSlotNotFound
	}
	if f.barrier != nil {
		f.barrier.Done()
		f.barrier.Wait()
	}
	return s, nil
}

func (f *fakeSlotStore) IncrementBooked(_ context.Context, id string) error {
	if f.incErr != nil {
		return f.incErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.slots[id]
	if !ok {
		return calendar.ErrSlotNotFound
	}
	s.BookedCount++
	f.slots[id] = s
	return nil
}

func (f *fakeSlotStore) FindFromDate(context.Context, string) ([]calendar.Slot, error) {
	return nil, nil
}
func (f *fakeSlotStore) All(context.Context) ([]calendar.Slot, error) { return nil, nil }
func (f *fakeSlotStore) Insert(_ context.Context, s calendar.Slot) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.slots[s.ID] = s
	return nil
}
func (f *fakeSlotStore) Delete(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.slots, id)
	return nil
}

// fakeBookingStore is an in-memory booking ledger.
type fakeBookingStore struct {
	mu        sync.Mutex
	bookings  []Booking
	insertErr error
}

func (f *fakeBookingStore) Insert(_ context.Context, b Booking) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bookings = append(f.bookings, b)
	return nil
}

func (f *fakeBookingStore) Get(_ context.Context, id string) (Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == id {
			return b, nil
		}
	}
	return Booking{}, ErrBookingNotFound
}

func (f *fakeBookingStore) Find(context.Context, string, string, int64, int64) ([]Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Booking{}, f.bookings...), nil
}

func validCustomer() Customer {
	return Customer{
		FirstName: "Ana",
		LastName:  "Lim",
		Email:     "ana@example.com",
		Mobile:    "012-345 6789",
	}
}

func TestValidateCustomer(t *testing.T) {
	svc := NewService(newFakeSlotStore(), &fakeBookingStore{})

	tests := []struct {
		name     string
		mutate   func(*Customer)
		badField string
	}{
		{"valid", func(c *Customer) {}, ""},
		{"missing first name", func(c *Customer) { c.FirstName = "" }, "FirstName"},
		{"missing last name", func(c *Customer) { c.LastName = "" }, "LastName"},
		{"bad email", func(c *Customer) { c.Email = "not-an-email" }, "Email"},
		{"mobile too short", func(c *Customer) { c.Mobile = "12345" }, "Mobile"},
		{"mobile too long", func(c *Customer) { c.Mobile = "01234567890" }, "Mobile"},
		{"mobile with punctuation still ten digits", func(c *Customer) { c.Mobile = "(012) 345-6789" }, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCustomer()
			tt.mutate(&c)

			err := svc.ValidateCustomer(c)
			if tt.badField == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.badField)
		})
	}
}

func TestConfirmSuccess(t *testing.T) {
	slots := newFakeSlotStore(calendar.Slot{
		ID: "s1", Date: "2025-03-01", Time: "10:00", Capacity: 2, BookedCount: 1,
	})
	ledger := &fakeBookingStore{}
	svc := NewService(slots, ledger)

	b, err := svc.Confirm(context.Background(), validCustomer(), "s1")
	require.NoError(t, err)
	require.NotNil(t, b)

	assert.Equal(t, "confirmed", b.Status)
	assert.Equal(t, "s1", b.SlotID)
	assert.Equal(t, "2025-03-01", b.Date)
	assert.Equal(t, "0123456789", b.Mobile)

	require.Len(t, ledger.bookings, 1)
	slot, _ := slots.Get(context.Background(), "s1")
	assert.Equal(t, 2, slot.BookedCount)
	assert.GreaterOrEqual(t, slot.BookedCount, 0)
	assert.LessOrEqual(t, slot.BookedCount, slot.Capacity)
}

func TestConfirmFullSlotRejected(t *testing.T) {
	slots := newFakeSlotStore(calendar.Slot{
		ID: "s1", Date: "2025-03-01", Time: "10:00", Capacity: 2, BookedCount: 2,
	})
	ledger := &fakeBookingStore{}
	svc := NewService(slots, ledger)

	b, err := svc.Confirm(context.Background(), validCustomer(), "s1")
	assert.Nil(t, b)
	assert.ErrorIs(t, err, ErrCapacityExceeded)

	// no booking record and no counter change
	assert.Empty(t, ledger.bookings)
	slot, _ := slots.Get(context.Background(), "s1")
	assert.Equal(t, 2, slot.BookedCount)
}

func TestConfirmUnknownSlot(t *testing.T) {
	svc := NewService(newFakeSlotStore(), &fakeBookingStore{})
	_, err := svc.Confirm(context.Background(), validCustomer(), "missing")
	assert.ErrorIs(t, err, calendar.ErrSlotNotFound)
}

func TestConfirmInsertFailureLeavesCounterUntouched(t *testing.T) {
	slots := newFakeSlotStore(calendar.Slot{
		ID: "s1", Date: "2025-03-01", Time: "10:00", Capacity: 2, BookedCount: 0,
	})
	ledger := &fakeBookingStore{insertErr: errors.New("write failed")}
	svc := NewService(slots, ledger)

	b, err := svc.Confirm(context.Background(), validCustomer(), "s1")
	assert.Nil(t, b)

	var perr *PersistenceError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, "booking insert", perr.Op)

	slot, _ := slots.Get(context.Background(), "s1")
	assert.Equal(t, 0, slot.BookedCount)
}

// A failed counter update after the booking insert must surface as an
// error response; the booking stays in the ledger (no rollback) but the
// caller is never told the save fully succeeded.
func TestCreateBookingIncrementFailureSurfacesError(t *testing.T) {
	slots := newFakeSlotStore(calendar.Slot{
		ID: "s1", Date: "2025-03-01", Time: "10:00", Capacity: 2, BookedCount: 0,
	})
	slots.incErr = errors.New("update failed")
	ledger := &fakeBookingStore{}
	h := NewHandler(NewService(slots, ledger), ledger, nil)

	body := `{"slotId":"s1","firstName":"Ana","lastName":"Lim","email":"ana@example.com","mobile":"0123456789"}`
	r := httptest.NewRequest("POST", "/api/bookings", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.CreateBooking(w, r, nil)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp struct {
		OK        bool   `json:"ok"`
		Error     string `json:"error"`
		BookingID string `json:"bookingId"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.OK)
	assert.Equal(t, "persistence", resp.Error)

	// the orphan booking is kept and its ref reported
	require.Len(t, ledger.bookings, 1)
	assert.Equal(t, ledger.bookings[0].ID, resp.BookingID)
}

func TestListBookingsEmptyEncodesAsArray(t *testing.T) {
	ledger := &fakeBookingStore{}
	h := NewHandler(NewService(newFakeSlotStore(), ledger), ledger, nil)

	r := httptest.NewRequest("GET", "/api/bookings", nil)
	w := httptest.NewRecorder()
	h.ListBookings(w, r, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"bookings":[]`)
}

// TestConfirmRaceCanOverbookLastSpot demonstrates the known check-then-act
// race: two callers both read the slot before either increments, both pass
// the capacity check, and the slot ends up past capacity. The dashboard has
// no transaction or lock preventing this; the test pins the behavior down
// so a future fix is a deliberate change, not an accident.
func TestConfirmRaceCanOverbookLastSpot(t *testing.T) {
	slots := newFakeSlotStore(calendar.Slot{
		ID: "s1", Date: "2025-03-01", Time: "10:00", Capacity: 2, BookedCount: 1,
	})
	var barrier sync.WaitGroup
	barrier.Add(2)
	slots.barrier = &barrier

	ledger := &fakeBookingStore{}
	svc := NewService(slots, ledger)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Confirm(context.Background(), validCustomer(), "s1")
		}(i)
	}
	wg.Wait()

	// both confirmations succeed even though only one spot was left
	assert.NoError(t, results[0])
	assert.NoError(t, results[1])
	assert.Len(t, ledger.bookings, 2)

	slots.barrier = nil
	slot, _ := slots.Get(context.Background(), "s1")
	assert.Equal(t, 3, slot.BookedCount, "bookedCount exceeds capacity under the race")
	assert.Greater(t, slot.BookedCount, slot.Capacity)
}
