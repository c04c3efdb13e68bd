package web

import (
	"errors"
	"net/http"

	"flotenn/internal/adapters/storage"
	"flotenn/internal/application/orchestrators"
	"flotenn/internal/domain/outbox"
)

// outboxListLimit caps the failed email list.
const outboxListLimit = 50

// outboxRow is a failed email with its decoded recipients and subject.
type outboxRow struct {
	outbox.Entry
	To      string
	Subject string
}

func outboxProcessor() *orchestrators.OutboxProcessor {
	return orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outbox.ActionTypeEmail: &orchestrators.EmailExecutor{Sender: emailSender},
	})
}

// handleAdminOutbox handles GET /admin/outbox: notification emails that
// exhausted their retries.
func handleAdminOutbox(w http.ResponseWriter, r *http.Request) {
	renderOutbox(w, r, http.StatusOK, "")
}

func renderOutbox(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	var rows []outboxRow
	if stores.OutboxStore != nil {
		entries, err := stores.OutboxStore.ListFailed(r.Context(), outboxListLimit)
		if err != nil {
			internalError(w, err)
			return
		}
		for _, e := range entries {
			row := outboxRow{Entry: e}
			if p, err := orchestrators.DecodeEmailPayload(e.Payload); err == nil {
				row.To = p.Recipients()
				row.Subject = p.Subject
			}
			rows = append(rows, row)
		}
	}
	renderTemplateStatus(w, r, status, "admin_outbox.html", map[string]any{
		"Entries":  rows,
		"Error":    errMsg,
		"Notice":   r.URL.Query().Get("done"),
		"CanWrite": currentSession(r).CanWrite(),
	})
}

// handleOutboxResend handles POST /admin/outbox/{id}/resend.
func handleOutboxResend(w http.ResponseWriter, r *http.Request) {
	if stores.OutboxStore == nil {
		handleNotFound(w, r)
		return
	}
	entry, err := outboxProcessor().Resend(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			handleNotFound(w, r)
			return
		}
		renderOutbox(w, r, http.StatusUnprocessableEntity, formFailure(err, "email"))
		return
	}
	if entry.Status != outbox.StatusDone {
		redirectTo(w, r, "/admin/outbox?done=queued")
		return
	}
	redirectTo(w, r, "/admin/outbox?done=sent")
}

// handleOutboxAbandon handles POST /admin/outbox/{id}/abandon.
func handleOutboxAbandon(w http.ResponseWriter, r *http.Request) {
	if stores.OutboxStore == nil {
		handleNotFound(w, r)
		return
	}
	if err := outboxProcessor().Abandon(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			handleNotFound(w, r)
			return
		}
		renderOutbox(w, r, http.StatusUnprocessableEntity, formFailure(err, "email"))
		return
	}
	redirectTo(w, r, "/admin/outbox?done=abandoned")
}
