package orchestrators

import (
	"context"
	"fmt"
	"log/slog"

	"flotenn/internal/domain/audit"
	"flotenn/internal/domain/booking"
	"flotenn/internal/domain/enquiry"
)

// EnquiryStoreForStatus defines the store interface needed by UpdateEnquiryStatus.
type EnquiryStoreForStatus interface {
	Get(ctx context.Context, key string) (enquiry.Enquiry, error)
	Update(ctx context.Context, key string, e enquiry.Enquiry) (enquiry.Enquiry, error)
}

// BookingStoreForStatus defines the store interface needed by UpdateBookingStatus.
type BookingStoreForStatus interface {
	Get(ctx context.Context, key string) (booking.Booking, error)
	Update(ctx context.Context, key string, b booking.Booking) (booking.Booking, error)
}

// UpdateStatusInput moves one lead to a new status.
type UpdateStatusInput struct {
	ID      string
	Status  string
	ActorID string
}

// UpdateEnquiryStatusDeps holds dependencies for UpdateEnquiryStatus.
type UpdateEnquiryStatusDeps struct {
	EnquiryStore EnquiryStoreForStatus
	Activity     RecordActivityDeps
}

// ExecuteUpdateEnquiryStatus changes an enquiry's status.
// PRE: Status is one of enquiry.ValidStatuses
// POST: Status stored; the change is in the activity log
func ExecuteUpdateEnquiryStatus(ctx context.Context, input UpdateStatusInput, deps UpdateEnquiryStatusDeps) (enquiry.Enquiry, error) {
	e, err := deps.EnquiryStore.Get(ctx, input.ID)
	if err != nil {
		return enquiry.Enquiry{}, fmt.Errorf("load enquiry: %w", err)
	}
	from := e.Status
	if err := e.SetStatus(input.Status); err != nil {
		return enquiry.Enquiry{}, err
	}
	saved, err := deps.EnquiryStore.Update(ctx, e.ID, e)
	if err != nil {
		return enquiry.Enquiry{}, fmt.Errorf("update enquiry: %w", err)
	}
	slog.Info("lead_event", "event", "enquiry_status_changed", "enquiry_id", e.ID, "from", from, "to", saved.Status)
	logActivity(ctx, RecordActivityInput{
		UserID: input.ActorID, Action: audit.ActionStatusChange,
		EntityType: "enquiry", EntityID: e.ID, Details: from + " -> " + saved.Status,
	}, deps.Activity)
	return saved, nil
}

// UpdateBookingStatusDeps holds dependencies for UpdateBookingStatus.
type UpdateBookingStatusDeps struct {
	BookingStore BookingStoreForStatus
	Activity     RecordActivityDeps
}

// ExecuteUpdateBookingStatus changes a booking's status.
// PRE: Status is one of booking.ValidStatuses
// POST: Status stored; the change is in the activity log
func ExecuteUpdateBookingStatus(ctx context.Context, input UpdateStatusInput, deps UpdateBookingStatusDeps) (booking.Booking, error) {
	b, err := deps.BookingStore.Get(ctx, input.ID)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("load booking: %w", err)
	}
	from := b.Status
	if err := b.SetStatus(input.Status); err != nil {
		return booking.Booking{}, err
	}
	saved, err := deps.BookingStore.Update(ctx, b.ID, b)
	if err != nil {
		return booking.Booking{}, fmt.Errorf("update booking: %w", err)
	}
	slog.Info("lead_event", "event", "booking_status_changed", "booking_id", b.ID, "from", from, "to", saved.Status)
	logActivity(ctx, RecordActivityInput{
		UserID: input.ActorID, Action: audit.ActionStatusChange,
		EntityType: "booking", EntityID: b.ID, Details: from + " -> " + saved.Status,
	}, deps.Activity)
	return saved, nil
}
