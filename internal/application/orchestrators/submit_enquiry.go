package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	emailAdapter "flotenn/internal/adapters/email"
	"flotenn/internal/domain/enquiry"
)

// EnquiryStoreForSubmit defines the store interface needed by SubmitEnquiry.
type EnquiryStoreForSubmit interface {
	Create(ctx context.Context, e enquiry.Enquiry) (enquiry.Enquiry, error)
}

// SubmitEnquiryInput carries the contact form.
type SubmitEnquiryInput struct {
	Name    string
	Phone   string
	Email   string
	City    string
	Subject string
	Message string
}

// NotifyDeps says where new-lead notifications go.
type NotifyDeps struct {
	Email    SendEmailDeps
	NotifyTo string // business inbox; empty disables notification
	BaseURL  string
}

// SubmitEnquiryDeps holds dependencies for SubmitEnquiry.
type SubmitEnquiryDeps struct {
	EnquiryStore EnquiryStoreForSubmit
	Notify       NotifyDeps
	GenerateID   func() string
	Now          func() time.Time
}

// ExecuteSubmitEnquiry stores a contact form submission as a new enquiry and
// notifies the business.
// PRE: Name and phone provided
// POST: Enquiry stored with status new; a notification is sent or queued
// INVARIANT: A notification failure never loses the enquiry
func ExecuteSubmitEnquiry(ctx context.Context, input SubmitEnquiryInput, deps SubmitEnquiryDeps) (enquiry.Enquiry, error) {
	e := enquiry.Enquiry{
		ID:        deps.GenerateID(),
		Name:      strings.TrimSpace(input.Name),
		Phone:     strings.TrimSpace(input.Phone),
		Email:     strings.TrimSpace(input.Email),
		City:      strings.TrimSpace(input.City),
		Subject:   strings.TrimSpace(input.Subject),
		Message:   strings.TrimSpace(input.Message),
		Status:    enquiry.StatusNew,
		CreatedAt: deps.Now(),
	}
	if err := e.Validate(); err != nil {
		return enquiry.Enquiry{}, err
	}
	saved, err := deps.EnquiryStore.Create(ctx, e)
	if err != nil {
		return enquiry.Enquiry{}, fmt.Errorf("create enquiry: %w", err)
	}
	slog.Info("lead_event", "event", "enquiry_submitted", "enquiry_id", saved.ID, "subject", saved.Subject)

	if deps.Notify.NotifyTo != "" {
		notifyEnquiry(ctx, saved, deps.Notify)
	}
	return saved, nil
}

func notifyEnquiry(ctx context.Context, e enquiry.Enquiry, deps NotifyDeps) {
	body, err := renderMail(enquiryMail, map[string]any{
		"Name": e.Name, "Phone": e.Phone, "Email": e.Email, "City": e.City,
		"Subject": e.Subject, "Message": e.Message,
		"AdminURL": strings.TrimRight(deps.BaseURL, "/") + "/admin/enquiries",
	})
	if err != nil {
		slog.Error("lead_event", "event", "enquiry_notify_failed", "enquiry_id", e.ID, "error", err)
		return
	}
	subject := "New enquiry from " + e.Name
	if e.Subject != "" {
		subject += " (" + e.Subject + ")"
	}
	if _, err := ExecuteSendEmail(ctx, emailAdapter.Message{
		To:      []string{deps.NotifyTo},
		Subject: subject,
		HTML:    body,
		ReplyTo: e.Email,
	}, deps.Email); err != nil {
		slog.Error("lead_event", "event", "enquiry_notify_failed", "enquiry_id", e.ID, "error", err)
	}
}
