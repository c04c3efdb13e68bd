package enquiry

import (
	"errors"
	"strings"
	"time"
)

// Enquiry statuses
const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusUrgent    = "urgent"
	StatusResolved  = "resolved"
	StatusClosed    = "closed"
)

// ValidStatuses contains all valid enquiry statuses in workflow order.
var ValidStatuses = []string{StatusNew, StatusContacted, StatusUrgent, StatusResolved, StatusClosed}

// Subjects offered on the contact form.
var Subjects = []string{"PPF", "Ceramic Coating", "Detailing", "Wraps", "Restoration", "Other"}

// Max length constants for user-editable fields.
const (
	MaxNameLength    = 100
	MaxMessageLength = 5000
)

// Domain errors
var (
	ErrEmptyName      = errors.New("name is required")
	ErrEmptyPhone     = errors.New("phone is required")
	ErrInvalidEmail   = errors.New("email must contain '@'")
	ErrMessageTooLong = errors.New("message cannot exceed 5000 characters")
	ErrInvalidStatus  = errors.New("enquiry status must be one of: new, contacted, urgent, resolved, closed")
	ErrInvalidSubject = errors.New("subject must be one of the listed options")
	ErrNameTooLong    = errors.New("name cannot exceed 100 characters")
)

// Enquiry is a contact-form submission.
type Enquiry struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	City      string
	Subject   string
	Message   string
	Status    string
	CreatedAt time.Time
}

// Validate checks the Enquiry has valid data.
// PRE: Enquiry struct is populated
// POST: Returns nil if valid, error otherwise
func (e *Enquiry) Validate() error {
	if strings.TrimSpace(e.Name) == "" {
		return ErrEmptyName
	}
	if len(e.Name) > MaxNameLength {
		return ErrNameTooLong
	}
	if strings.TrimSpace(e.Phone) == "" {
		return ErrEmptyPhone
	}
	if e.Email != "" && !strings.Contains(e.Email, "@") {
		return ErrInvalidEmail
	}
	if len(e.Message) > MaxMessageLength {
		return ErrMessageTooLong
	}
	if e.Subject != "" && !isValidSubject(e.Subject) {
		return ErrInvalidSubject
	}
	if !IsValidStatus(e.Status) {
		return ErrInvalidStatus
	}
	return nil
}

// SetStatus moves the enquiry to status.
// PRE: status is one of ValidStatuses
// POST: Status updated; on error unchanged
func (e *Enquiry) SetStatus(status string) error {
	if !IsValidStatus(status) {
		return ErrInvalidStatus
	}
	e.Status = status
	return nil
}

// IsValidStatus reports whether s is a known enquiry status.
func IsValidStatus(s string) bool {
	for _, v := range ValidStatuses {
		if s == v {
			return true
		}
	}
	return false
}

func isValidSubject(s string) bool {
	for _, v := range Subjects {
		if s == v {
			return true
		}
	}
	return false
}
