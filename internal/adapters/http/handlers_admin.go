package web

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"flotenn/internal/adapters/storage"
	"flotenn/internal/application/orchestrators"
	"flotenn/internal/application/projections"
	"flotenn/internal/domain/account"
	"flotenn/internal/domain/booking"
	"flotenn/internal/domain/enquiry"
	"flotenn/internal/domain/media"
	"flotenn/internal/domain/setting"
)

// handleAdminRoot sends /admin to the dashboard.
func handleAdminRoot(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, dashboardPath, http.StatusFound)
}

// handleDashboard handles GET /admin/dashboard.
func handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := currentSession(r)
	deps := projections.GetDashboardDeps{
		EnquiryStore: stores.EnquiryStore,
		ServiceStore: stores.ServiceStore,
		PostStore:    stores.PostStore,
		Perf:         perfCollector,
	}
	if stores.OutboxStore != nil {
		deps.OutboxStore = stores.OutboxStore
	}
	res, err := projections.QueryGetDashboard(r.Context(), projections.GetDashboardQuery{
		IncludeOps: account.IsAuthorized(sess.Role, account.Admins),
		Now:        timeNow(),
	}, deps)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin_dashboard.html", map[string]any{
		"Dashboard": res,
	})
}

// --- Enquiries ---

func handleEnquiries(w http.ResponseWriter, r *http.Request) {
	renderEnquiries(w, r, http.StatusOK, "")
}

func renderEnquiries(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	page, _ := queryInt(r, "page")
	filter := r.URL.Query().Get("status")
	if filter != "" && !enquiry.IsValidStatus(filter) {
		filter = ""
	}
	res, err := projections.QueryGetEnquiries(r.Context(), projections.GetEnquiriesQuery{
		Status: filter,
		Page:   page,
	}, stores.EnquiryStore)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplateStatus(w, r, status, "admin_enquiries.html", map[string]any{
		"Result":   res,
		"Statuses": enquiry.ValidStatuses,
		"Error":    errMsg,
		"CanWrite": currentSession(r).CanWrite(),
	})
}

// handleEnquiryStatus handles POST /admin/enquiries/{id}/status.
func handleEnquiryStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := orchestrators.ExecuteUpdateEnquiryStatus(r.Context(), orchestrators.UpdateStatusInput{
		ID:      r.PathValue("id"),
		Status:  formText(r, "status"),
		ActorID: currentSession(r).AccountID,
	}, orchestrators.UpdateEnquiryStatusDeps{
		EnquiryStore: stores.EnquiryStore,
		Activity:     activityDeps(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			handleNotFound(w, r)
			return
		}
		renderEnquiries(w, r, http.StatusUnprocessableEntity, formFailure(err, "enquiry"))
		return
	}
	redirectTo(w, r, returnPath(r, "/admin/enquiries"))
}

// handleEnquiryDelete handles POST /admin/enquiries/{id}/delete.
func handleEnquiryDelete(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteContent(r.Context(), r.PathValue("id"), currentSession(r).AccountID,
		orchestrators.ContentDeps[enquiry.Enquiry]{
			Store:    stores.EnquiryStore,
			Kind:     orchestrators.EnquiryKind,
			Activity: activityDeps(),
		})
	if err != nil {
		renderEnquiries(w, r, http.StatusUnprocessableEntity, formFailure(err, "enquiry"))
		return
	}
	redirectTo(w, r, returnPath(r, "/admin/enquiries"))
}

// returnPath keeps the list filter across a status change. Only local admin
// paths are honoured.
func returnPath(r *http.Request, fallback string) string {
	back := r.FormValue("return")
	if strings.HasPrefix(back, fallback) && !strings.HasPrefix(back, "//") {
		return back
	}
	return fallback
}

// --- Bookings ---

func handleBookings(w http.ResponseWriter, r *http.Request) {
	renderBookings(w, r, http.StatusOK, "")
}

func renderBookings(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	rows, err := projections.QueryGetBookings(r.Context(), projections.GetBookingsDeps{
		BookingStore: stores.BookingStore,
		ServiceStore: stores.ServiceStore,
	})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplateStatus(w, r, status, "admin_bookings.html", map[string]any{
		"Bookings": rows,
		"Statuses": booking.ValidStatuses,
		"Error":    errMsg,
		"CanWrite": currentSession(r).CanWrite(),
	})
}

// handleBookingStatus handles POST /admin/bookings/{id}/status.
func handleBookingStatus(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	_, err := orchestrators.ExecuteUpdateBookingStatus(r.Context(), orchestrators.UpdateStatusInput{
		ID:      r.PathValue("id"),
		Status:  formText(r, "status"),
		ActorID: currentSession(r).AccountID,
	}, orchestrators.UpdateBookingStatusDeps{
		BookingStore: stores.BookingStore,
		Activity:     activityDeps(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			handleNotFound(w, r)
			return
		}
		renderBookings(w, r, http.StatusUnprocessableEntity, formFailure(err, "booking"))
		return
	}
	redirectTo(w, r, "/admin/bookings")
}

// handleBookingDelete handles POST /admin/bookings/{id}/delete.
func handleBookingDelete(w http.ResponseWriter, r *http.Request) {
	err := orchestrators.ExecuteDeleteContent(r.Context(), r.PathValue("id"), currentSession(r).AccountID,
		orchestrators.ContentDeps[booking.Booking]{
			Store:    stores.BookingStore,
			Kind:     orchestrators.BookingKind,
			Activity: activityDeps(),
		})
	if err != nil {
		renderBookings(w, r, http.StatusUnprocessableEntity, formFailure(err, "booking"))
		return
	}
	redirectTo(w, r, "/admin/bookings")
}

// --- SEO settings ---

// settingField is one row of the SEO form.
type settingField struct {
	Key       string
	Value     string
	Multiline bool
}

func renderSEO(w http.ResponseWriter, r *http.Request, status int, values setting.Settings, errMsg string) {
	fields := make([]settingField, 0, len(setting.Keys))
	for _, k := range setting.Keys {
		fields = append(fields, settingField{
			Key:       k,
			Value:     values.Get(k),
			Multiline: k == setting.KeyRobotsTxt || k == setting.KeySiteDescription,
		})
	}
	renderTemplateStatus(w, r, status, "admin_seo.html", map[string]any{
		"Fields":   fields,
		"Error":    errMsg,
		"Saved":    r.URL.Query().Get("saved") == "1",
		"CanWrite": currentSession(r).CanWrite(),
	})
}

// handleSEO handles GET /admin/seo.
func handleSEO(w http.ResponseWriter, r *http.Request) {
	renderSEO(w, r, http.StatusOK, projections.QueryGetSettings(r.Context(), stores.SettingStore), "")
}

// handleSEOSave handles POST /admin/seo.
func handleSEOSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	values := make(map[string]string, len(setting.Keys))
	for _, k := range setting.Keys {
		if _, ok := r.PostForm[k]; ok {
			values[k] = r.PostForm.Get(k)
		}
	}
	err := orchestrators.ExecuteSaveSettings(r.Context(), values, currentSession(r).AccountID, orchestrators.SaveSettingsDeps{
		SettingStore: stores.SettingStore,
		Activity:     activityDeps(),
	})
	if err != nil {
		renderSEO(w, r, http.StatusUnprocessableEntity, setting.Settings(values), formFailure(err, "settings"))
		return
	}
	redirectTo(w, r, "/admin/seo?saved=1")
}

// --- Activity log ---

// handleLogs handles GET /admin/logs.
func handleLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := projections.QueryGetActivity(r.Context(), stores.ActivityStore)
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplate(w, r, "admin_logs.html", map[string]any{
		"Entries": entries,
	})
}

// --- Users ---

func accountDeps() orchestrators.AccountDeps {
	return orchestrators.AccountDeps{
		AccountStore: stores.AccountStore,
		Activity:     activityDeps(),
		GenerateID:   generateID,
		Now:          timeNow,
	}
}

// assignableRoles lists the roles the operator may grant.
func assignableRoles(actor account.Role) []account.Role {
	if actor == account.RoleSuperAdmin {
		return account.ValidRoles
	}
	var out []account.Role
	for _, r := range account.ValidRoles {
		if r != account.RoleSuperAdmin {
			out = append(out, r)
		}
	}
	return out
}

func handleUsers(w http.ResponseWriter, r *http.Request) {
	renderUsers(w, r, http.StatusOK, "")
}

func renderUsers(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	users, err := stores.AccountStore.List(r.Context(), storage.ListOptions{})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplateStatus(w, r, status, "admin_users.html", map[string]any{
		"Users":    users,
		"Error":    errMsg,
		"Saved":    r.URL.Query().Get("saved") == "1",
		"Self":     currentSession(r).AccountID,
		"CanWrite": currentSession(r).CanWrite(),
	})
}

// userForm carries the user form fields back into the template.
type userForm struct {
	ID    string
	Name  string
	Email string
	Role  account.Role
}

func renderUserForm(w http.ResponseWriter, r *http.Request, status int, form userForm, errMsg string) {
	title := "New User"
	action := "/admin/users"
	if form.ID != "" {
		title = "Edit User"
		action = "/admin/users/" + form.ID
	}
	renderTemplateStatus(w, r, status, "admin_user_form.html", map[string]any{
		"Title":  title,
		"Action": action,
		"Form":   form,
		"Roles":  assignableRoles(currentSession(r).Role),
		"Error":  errMsg,
	})
}

// handleUserNew handles GET /admin/users/new.
func handleUserNew(w http.ResponseWriter, r *http.Request) {
	renderUserForm(w, r, http.StatusOK, userForm{Role: account.RoleEditor}, "")
}

// handleUserEdit handles GET /admin/users/{id}.
func handleUserEdit(w http.ResponseWriter, r *http.Request) {
	acct, err := stores.AccountStore.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		lookupFailed(w, r, err)
		return
	}
	renderUserForm(w, r, http.StatusOK, userForm{ID: acct.ID, Name: acct.Name, Email: acct.Email, Role: acct.Role}, "")
}

// handleUserSave handles POST /admin/users and POST /admin/users/{id}. A
// blank password on edit keeps the current one.
func handleUserSave(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	sess := currentSession(r)
	form := userForm{
		ID:    r.PathValue("id"),
		Name:  formText(r, "name"),
		Email: formText(r, "email"),
		Role:  account.Role(formText(r, "role")),
	}
	saved, err := orchestrators.ExecuteSaveAccount(r.Context(), orchestrators.SaveAccountInput{
		ID:        form.ID,
		Name:      form.Name,
		Email:     form.Email,
		Password:  r.FormValue("password"),
		Role:      form.Role,
		ActorID:   sess.AccountID,
		ActorRole: sess.Role,
	}, accountDeps())
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			handleNotFound(w, r)
			return
		}
		renderUserForm(w, r, http.StatusUnprocessableEntity, form, formFailure(err, "user"))
		return
	}
	sessions.Refresh(saved)
	redirectTo(w, r, "/admin/users?saved=1")
}

// handleUserDelete handles POST /admin/users/{id}/delete.
func handleUserDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := orchestrators.ExecuteDeleteAccount(r.Context(), id, currentSession(r).AccountID, accountDeps()); err != nil {
		renderUsers(w, r, http.StatusUnprocessableEntity, formFailure(err, "user"))
		return
	}
	if n := sessions.DeleteForAccount(id); n > 0 {
		slog.Info("auth_event", "event", "sessions_revoked", "account_id", id, "count", n)
	}
	redirectTo(w, r, "/admin/users")
}

// --- Media ---

// mediaFormOverhead allows for multipart boundaries and headers.
const mediaFormOverhead = 1 << 20

func renderMedia(w http.ResponseWriter, r *http.Request, status int, errMsg string) {
	items, err := stores.MediaStore.List(r.Context(), storage.ListOptions{})
	if err != nil {
		internalError(w, err)
		return
	}
	renderTemplateStatus(w, r, status, "admin_media.html", map[string]any{
		"Files":    items,
		"Error":    errMsg,
		"CanWrite": currentSession(r).CanWrite(),
	})
}

// handleMedia handles GET /admin/media.
func handleMedia(w http.ResponseWriter, r *http.Request) {
	renderMedia(w, r, http.StatusOK, "")
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// handleMediaUpload handles POST /admin/media. Editors upload from the
// library page or from an image field; the latter asks for JSON.
func handleMediaUpload(w http.ResponseWriter, r *http.Request) {
	fail := func(status int, msg string) {
		if wantsJSON(r) {
			writeJSON(w, status, map[string]string{"error": msg})
			return
		}
		renderMedia(w, r, status, msg)
	}
	if files == nil {
		fail(http.StatusServiceUnavailable, "Uploads are not configured.")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, media.MaxSize+mediaFormOverhead)
	file, header, err := r.FormFile("file")
	if err != nil {
		var tooBig *http.MaxBytesError
		if errors.As(err, &tooBig) {
			fail(http.StatusRequestEntityTooLarge, media.ErrTooLarge.Error())
			return
		}
		fail(http.StatusBadRequest, "Choose a file to upload.")
		return
	}
	defer file.Close()

	saved, err := orchestrators.ExecuteUploadMedia(r.Context(), orchestrators.UploadMediaInput{
		OriginalName: header.Filename,
		MimeType:     header.Header.Get("Content-Type"),
		Size:         header.Size,
		Body:         file,
		ActorID:      currentSession(r).AccountID,
	}, orchestrators.UploadMediaDeps{
		Files:      files,
		MediaStore: stores.MediaStore,
		Activity:   activityDeps(),
		GenerateID: generateID,
		Now:        timeNow,
	})
	if err != nil {
		fail(http.StatusUnprocessableEntity, formFailure(err, "upload"))
		return
	}
	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, map[string]string{"url": saved.Path})
		return
	}
	redirectTo(w, r, "/admin/media")
}

// handleMediaDelete handles POST /admin/media/{id}/delete.
func handleMediaDelete(w http.ResponseWriter, r *http.Request) {
	if files == nil {
		renderMedia(w, r, http.StatusServiceUnavailable, "Uploads are not configured.")
		return
	}
	err := orchestrators.ExecuteDeleteMedia(r.Context(), r.PathValue("id"), currentSession(r).AccountID, orchestrators.DeleteMediaDeps{
		Files:      files,
		MediaStore: stores.MediaStore,
		Activity:   activityDeps(),
	})
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			handleNotFound(w, r)
			return
		}
		renderMedia(w, r, http.StatusUnprocessableEntity, formFailure(err, "media"))
		return
	}
	redirectTo(w, r, "/admin/media")
}
