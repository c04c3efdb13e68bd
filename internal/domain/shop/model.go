// Package shop models the business's physical store locations.
package shop

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrEmptyName    = errors.New("store name cannot be empty")
	ErrEmptyCity    = errors.New("store city cannot be empty")
	ErrInvalidEmail = errors.New("email must contain '@'")
	ErrInvalidMap   = errors.New("map link must be an http(s) URL")
)

// Store is one studio location.
type Store struct {
	ID            string
	Name          string
	Address       string
	City          string
	State         string
	Pincode       string
	Phone         string
	Email         string
	GoogleMapLink string
	IsActive      bool
	CreatedAt     time.Time
}

// Validate checks the Store has valid data.
// PRE: Store struct is populated
// POST: Returns nil if valid, error otherwise
func (s *Store) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(s.City) == "" {
		return ErrEmptyCity
	}
	if s.Email != "" && !strings.Contains(s.Email, "@") {
		return ErrInvalidEmail
	}
	if s.GoogleMapLink != "" && !strings.HasPrefix(s.GoogleMapLink, "https://") && !strings.HasPrefix(s.GoogleMapLink, "http://") {
		return ErrInvalidMap
	}
	return nil
}
