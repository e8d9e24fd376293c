package bookings

import (
	"context"
	"errors"
	"fmt"
	"momfirst/calendar"
	"momfirst/utils"
	"time"

	"github.com/go-playground/validator/v10"
)

// Booking is one confirmed reservation against a slot.
type Booking struct {
	ID        string `json:"id" bson:"id"`
	SlotID    string `json:"slotId" bson:"slotId"`
	Date      string `json:"date" bson:"date"`
	Time      string `json:"time" bson:"time"`
	FirstName string `json:"firstName" bson:"firstName"`
	LastName  string `json:"lastName" bson:"lastName"`
	Email     string `json:"email" bson:"email"`
	Mobile    string `json:"mobile" bson:"mobile"`
	Status    string `json:"status" bson:"status"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"`
}

// Customer is the booking form payload.
type Customer struct {
	FirstName string `json:"firstName" validate:"required"`
	LastName  string `json:"lastName" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Mobile    string `json:"mobile" validate:"required,mobile10"`
}

// ErrCapacityExceeded means the slot filled up between listing and
// confirmation. The caller should refresh the slot listing.
var ErrCapacityExceeded = errors.New("slot has no remaining capacity")

// PersistenceError wraps a failed store read/write. There is no rollback:
// a failure after the booking insert leaves the slot counter behind by one.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failure during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ValidationError carries the per-field messages shown inline on the form.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid booking form: %d field(s)", len(e.Fields))
}

func newValidator() *validator.Validate {
	v := validator.New()
	// mobile numbers must reduce to exactly 10 digits
	_ = v.RegisterValidation("mobile10", func(fl validator.FieldLevel) bool {
		return len(utils.DigitsOnly(fl.Field().String())) == 10
	})
	return v
}

var fieldMessages = map[string]string{
	"FirstName": "First name is required",
	"LastName":  "Last name is required",
	"Email":     "A valid email address is required",
	"Mobile":    "Mobile must be a 10 digit number",
}

// ValidateCustomer checks the form fields and returns a ValidationError
// listing every failed field.
func (s *Service) ValidateCustomer(c Customer) error {
	err := s.validate.Struct(c)
	if err == nil {
		return nil
	}

	fields := make(map[string]string)
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			msg, ok := fieldMessages[fe.Field()]
			if !ok {
				msg = "Invalid value"
			}
			fields[fe.Field()] = msg
		}
	} else {
		fields["form"] = "Invalid form data"
	}
	return &ValidationError{Fields: fields}
}

// Service confirms bookings against the slot calendar.
type Service struct {
	slots    calendar.Store
	bookings Store
	validate *validator.Validate
}

func NewService(slots calendar.Store, bookings Store) *Service {
	return &Service{
		slots:    slots,
		bookings: bookings,
		validate: newValidator(),
	}
}

// Confirm validates the customer, re-checks the slot's remaining capacity,
// inserts the booking and then increments the slot's booked counter.
//
// The capacity check and the two writes are not atomic: two callers racing
// for the last spot can both pass the check, and a crash between the insert
// and the increment leaves an orphan booking.
func (s *Service) Confirm(ctx context.Context, c Customer, slotID string) (*Booking, error) {
	if err := s.ValidateCustomer(c); err != nil {
		return nil, err
	}

	slot, err := s.slots.Get(ctx, slotID)
	if err != nil {
		if err == calendar.ErrSlotNotFound {
			return nil, err
		}
		return nil, &PersistenceError{Op: "slot lookup", Err: err}
	}

	if slot.AvailableSpots() <= 0 {
		return nil, ErrCapacityExceeded
	}

	b := &Booking{
		ID:        utils.GenerateRandomDigitString(16),
		SlotID:    slot.ID,
		Date:      slot.Date,
		Time:      slot.Time,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Mobile:    utils.DigitsOnly(c.Mobile),
		Status:    "confirmed",
		CreatedAt: time.Now().Unix(),
	}

	if err := s.bookings.Insert(ctx, *b); err != nil {
		return nil, &PersistenceError{Op: "booking insert", Err: err}
	}

	if err := s.slots.IncrementBooked(ctx, slot.ID); err != nil {
		// booking already written; the counter is now behind by one
		return b, &PersistenceError{Op: "slot increment", Err: err}
	}

	return b, nil
}
