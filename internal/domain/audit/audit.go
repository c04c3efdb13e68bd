// Package audit models the back-office activity log.
package audit

import (
	"errors"
	"time"
)

// Action represents what the operator did.
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionStatusChange Action = "status_change"
	ActionLogin        Action = "login"
	ActionLogout       Action = "logout"
	ActionUpload       Action = "upload"
	ActionPasswordSet  Action = "password_reset"
)

// ErrEmptyAction is returned for entries with no action.
var ErrEmptyAction = errors.New("activity action is required")

// Entry is one line of the activity log.
type Entry struct {
	ID         string
	UserID     string
	UserName   string // resolved from users on read; empty when the user is gone
	Action     Action
	EntityType string
	EntityID   string
	Details    string
	CreatedAt  time.Time
}

// NewEntry creates an entry for userID doing action at now.
// PRE: action is non-empty
// POST: Returns an Entry with CreatedAt set
func NewEntry(userID string, action Action, now time.Time) Entry {
	return Entry{
		UserID:    userID,
		Action:    action,
		CreatedAt: now,
	}
}

// WithEntity sets what the action touched.
// POST: EntityType and EntityID are set
func (e Entry) WithEntity(entityType, entityID string) Entry {
	e.EntityType = entityType
	e.EntityID = entityID
	return e
}

// WithDetails sets a free-text description.
func (e Entry) WithDetails(details string) Entry {
	e.Details = details
	return e
}

// Validate checks the entry can be stored.
func (e *Entry) Validate() error {
	if e.Action == "" {
		return ErrEmptyAction
	}
	if e.CreatedAt.IsZero() {
		return errors.New("created_at must be set")
	}
	return nil
}

// Actor returns the display name for the log table.
func (e Entry) Actor() string {
	if e.UserName != "" {
		return e.UserName
	}
	if e.UserID == "" {
		return "System"
	}
	return "Unknown"
}
