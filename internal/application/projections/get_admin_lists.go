package projections

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"flotenn/internal/adapters/storage"
	"flotenn/internal/domain/audit"
	"flotenn/internal/domain/booking"
	"flotenn/internal/domain/enquiry"
	"flotenn/internal/domain/service"
)

// Admin list sizes.
const (
	EnquiryPageSize = 20
	ActivityLimit   = 100
)

// GetEnquiriesQuery carries input for the enquiry list.
type GetEnquiriesQuery struct {
	Status string // empty lists every status
	Page   int    // 1-based; values below 1 mean 1
}

// EnquiriesResult is one page of enquiries.
type EnquiriesResult struct {
	Enquiries  []enquiry.Enquiry
	Status     string
	Page       int
	TotalPages int
	Total      int
}

// HasPrev and HasNext drive the pager links.
func (r EnquiriesResult) HasPrev() bool { return r.Page > 1 }
func (r EnquiriesResult) HasNext() bool { return r.Page < r.TotalPages }

// QueryGetEnquiries lists enquiries newest first, optionally by status.
// PRE: query.Status is empty or a valid status
// POST: Page is clamped to [1, TotalPages]
func QueryGetEnquiries(ctx context.Context, query GetEnquiriesQuery, store ListCounter[enquiry.Enquiry]) (EnquiriesResult, error) {
	opts := storage.ListOptions{}
	if query.Status != "" {
		if !enquiry.IsValidStatus(query.Status) {
			return EnquiriesResult{}, enquiry.ErrInvalidStatus
		}
		opts.Filters = []storage.Filter{{Column: "status", Value: query.Status}}
	}

	total, err := store.Count(ctx, opts)
	if err != nil {
		return EnquiriesResult{}, fmt.Errorf("count enquiries: %w", err)
	}
	pages := (total + EnquiryPageSize - 1) / EnquiryPageSize
	if pages < 1 {
		pages = 1
	}
	page := query.Page
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	opts.Limit = EnquiryPageSize
	opts.Offset = (page - 1) * EnquiryPageSize
	items, err := store.List(ctx, opts)
	if err != nil {
		return EnquiriesResult{}, fmt.Errorf("list enquiries: %w", err)
	}
	return EnquiriesResult{Enquiries: items, Status: query.Status, Page: page, TotalPages: pages, Total: total}, nil
}

// BookingRow is a booking with the current name of its service.
type BookingRow struct {
	booking.Booking
	ServiceName string
}

// GetBookingsDeps holds dependencies for the booking list.
type GetBookingsDeps struct {
	BookingStore Lister[booking.Booking]
	ServiceStore Lister[service.Service]
}

// QueryGetBookings lists bookings newest first with service names resolved.
// POST: ServiceName falls back to the name captured at booking time
func QueryGetBookings(ctx context.Context, deps GetBookingsDeps) ([]BookingRow, error) {
	var bookings []booking.Booking
	var services []service.Service
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		bookings, err = deps.BookingStore.List(gctx, storage.ListOptions{})
		return err
	})
	g.Go(func() error {
		var err error
		services, err = deps.ServiceStore.List(gctx, storage.ListOptions{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	names := make(map[string]string, len(services))
	for _, s := range services {
		names[s.ID] = s.Name
	}
	rows := make([]BookingRow, 0, len(bookings))
	for _, b := range bookings {
		name, ok := names[b.ServiceID]
		if !ok {
			name = b.ServiceType
		}
		rows = append(rows, BookingRow{Booking: b, ServiceName: name})
	}
	return rows, nil
}

// QueryGetActivity returns the latest activity log entries with user names.
func QueryGetActivity(ctx context.Context, store ActivityLister) ([]audit.Entry, error) {
	entries, err := store.ListRecent(ctx, ActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("list activity: %w", err)
	}
	return entries, nil
}
