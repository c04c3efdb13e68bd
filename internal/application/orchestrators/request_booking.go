package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	emailAdapter "flotenn/internal/adapters/email"
	"flotenn/internal/domain/booking"
	"flotenn/internal/domain/service"
)

// ServiceLookup finds the published service a booking is for.
type ServiceLookup interface {
	GetBySlug(ctx context.Context, slug string, publishedOnly bool) (service.Service, error)
}

// BookingStoreForRequest defines the store interface needed by RequestBooking.
type BookingStoreForRequest interface {
	Create(ctx context.Context, b booking.Booking) (booking.Booking, error)
}

// RequestBookingInput carries the booking form on a service page.
type RequestBookingInput struct {
	ServiceSlug    string
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	VehicleDetails string
	BookingDate    time.Time // zero when the customer is flexible
	Notes          string
}

// RequestBookingDeps holds dependencies for RequestBooking.
type RequestBookingDeps struct {
	ServiceStore ServiceLookup
	BookingStore BookingStoreForRequest
	Notify       NotifyDeps
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteRequestBooking creates a pending booking for a published service.
// PRE: ServiceSlug names a published service
// POST: Booking stored as pending with the service name captured
func ExecuteRequestBooking(ctx context.Context, input RequestBookingInput, deps RequestBookingDeps) (booking.Booking, error) {
	svc, err := deps.ServiceStore.GetBySlug(ctx, input.ServiceSlug, true)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("find service: %w", err)
	}

	b := booking.Booking{
		ID:             deps.GenerateID(),
		CustomerName:   strings.TrimSpace(input.CustomerName),
		CustomerPhone:  strings.TrimSpace(input.CustomerPhone),
		CustomerEmail:  strings.TrimSpace(input.CustomerEmail),
		ServiceID:      svc.ID,
		ServiceType:    svc.Name,
		VehicleDetails: strings.TrimSpace(input.VehicleDetails),
		BookingDate:    input.BookingDate,
		Notes:          strings.TrimSpace(input.Notes),
		Status:         booking.StatusPending,
		CreatedAt:      deps.Now(),
	}
	if err := b.Validate(); err != nil {
		return booking.Booking{}, err
	}
	saved, err := deps.BookingStore.Create(ctx, b)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("create booking: %w", err)
	}
	slog.Info("lead_event", "event", "booking_requested", "booking_id", saved.ID, "service", svc.Slug)

	if deps.Notify.NotifyTo != "" {
		notifyBooking(ctx, saved, deps.Notify)
	}
	return saved, nil
}

func notifyBooking(ctx context.Context, b booking.Booking, deps NotifyDeps) {
	date := "Flexible"
	if !b.BookingDate.IsZero() {
		date = b.BookingDate.Format("Mon 2 Jan 2006")
	}
	body, err := renderMail(bookingMail, map[string]any{
		"ServiceType": b.ServiceType, "CustomerName": b.CustomerName,
		"CustomerPhone": b.CustomerPhone, "CustomerEmail": b.CustomerEmail,
		"VehicleDetails": b.VehicleDetails, "Date": date, "Notes": b.Notes,
		"AdminURL": strings.TrimRight(deps.BaseURL, "/") + "/admin/bookings",
	})
	if err != nil {
		slog.Error("lead_event", "event", "booking_notify_failed", "booking_id", b.ID, "error", err)
		return
	}
	if _, err := ExecuteSendEmail(ctx, emailAdapter.Message{
		To:      []string{deps.NotifyTo},
		Subject: "New booking request: " + b.ServiceType,
		HTML:    body,
		ReplyTo: b.CustomerEmail,
	}, deps.Email); err != nil {
		slog.Error("lead_event", "event", "booking_notify_failed", "booking_id", b.ID, "error", err)
	}
}
