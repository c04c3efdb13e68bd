package booking

import (
	"errors"
	"strings"
	"time"
)

// Booking statuses
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
)

// ValidStatuses contains all valid booking statuses in workflow order.
var ValidStatuses = []string{StatusPending, StatusConfirmed, StatusInProgress, StatusCompleted, StatusCancelled}

// Domain errors
var (
	ErrEmptyCustomer = errors.New("customer name is required")
	ErrEmptyContact  = errors.New("a phone number or email is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrInvalidStatus = errors.New("booking status must be one of: pending, confirmed, in_progress, completed, cancelled")
)

// Booking is a request to have a service performed.
type Booking struct {
	ID             string
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	ServiceID      string
	ServiceType    string // service name at the time of booking
	VehicleDetails string
	BookingDate    time.Time // preferred date, zero when flexible
	Notes          string
	Status         string
	CreatedAt      time.Time
}

// Validate checks the Booking has valid data.
// PRE: Booking struct is populated
// POST: Returns nil if valid, error otherwise
func (b *Booking) Validate() error {
	if strings.TrimSpace(b.CustomerName) == "" {
		return ErrEmptyCustomer
	}
	if strings.TrimSpace(b.CustomerPhone) == "" && strings.TrimSpace(b.CustomerEmail) == "" {
		return ErrEmptyContact
	}
	if b.CustomerEmail != "" && !strings.Contains(b.CustomerEmail, "@") {
		return ErrInvalidEmail
	}
	if !IsValidStatus(b.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// SetStatus moves the booking to status.
// PRE: status is one of ValidStatuses
// POST: Status updated; on error unchanged
func (b *Booking) SetStatus(status string) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	b.Status = status
	return nil
}

// ScheduledFor returns the preferred date, or the request time when none was given.
func (b *Booking) ScheduledFor() time.Time {
	if !b.BookingDate.IsZero() {
		return b.BookingDate
	}
	return b.CreatedAt
}

// IsValidStatus reports whether s is a known booking status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}
