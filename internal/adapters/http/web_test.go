package web

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"flotenn/internal/adapters/http/middleware"
	"flotenn/internal/adapters/storage"
	accountStore "flotenn/internal/adapters/storage/account"
	auditStore "flotenn/internal/adapters/storage/audit"
	bookingStore "flotenn/internal/adapters/storage/booking"
	enquiryStore "flotenn/internal/adapters/storage/enquiry"
	faqStore "flotenn/internal/adapters/storage/faq"
	galleryStore "flotenn/internal/adapters/storage/gallery"
	heroslideStore "flotenn/internal/adapters/storage/heroslide"
	mediaStore "flotenn/internal/adapters/storage/media"
	outboxStore "flotenn/internal/adapters/storage/outbox"
	pageStore "flotenn/internal/adapters/storage/page"
	postStore "flotenn/internal/adapters/storage/post"
	serviceStore "flotenn/internal/adapters/storage/service"
	settingStore "flotenn/internal/adapters/storage/setting"
	shopStore "flotenn/internal/adapters/storage/shop"
	testimonialStore "flotenn/internal/adapters/storage/testimonial"
	"flotenn/internal/domain/account"
	"flotenn/internal/domain/carousel"
)

// testSite is the router over a fresh in-memory database.
type testSite struct {
	mux    *http.ServeMux
	stores *Stores
	clock  *carousel.FakeClock
}

func newTestSite(t *testing.T, tweaks ...func(*Options)) *testSite {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	s := &Stores{
		AccountStore:     accountStore.NewSQLiteStore(db),
		ActivityStore:    auditStore.NewSQLiteStore(db),
		BookingStore:     bookingStore.NewSQLiteStore(db),
		EnquiryStore:     enquiryStore.NewSQLiteStore(db),
		FAQStore:         faqStore.NewSQLiteStore(db),
		GalleryStore:     galleryStore.NewSQLiteStore(db),
		SlideStore:       heroslideStore.NewSQLiteStore(db),
		MediaStore:       mediaStore.NewSQLiteStore(db),
		OutboxStore:      outboxStore.NewSQLiteStore(db),
		PageStore:        pageStore.NewSQLiteStore(db),
		PostStore:        postStore.NewSQLiteStore(db),
		ServiceStore:     serviceStore.NewSQLiteStore(db),
		SettingStore:     settingStore.NewSQLiteStore(db),
		ShopStore:        shopStore.NewSQLiteStore(db),
		TestimonialStore: testimonialStore.NewSQLiteStore(db),
	}
	clock := carousel.NewFakeClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	opts := Options{Stores: s, Clock: clock}
	for _, tweak := range tweaks {
		tweak(&opts)
	}
	mux := configure(opts)
	return &testSite{mux: mux, stores: s, clock: clock}
}

// get serves a GET for target.
func (ts *testSite) get(target string) *httptest.ResponseRecorder {
	return ts.serve(httptest.NewRequest(http.MethodGet, target, nil))
}

// post serves a form POST for target.
func (ts *testSite) post(target string, form url.Values) *httptest.ResponseRecorder {
	return ts.serve(formPost(target, form))
}

func (ts *testSite) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	ts.mux.ServeHTTP(rec, req)
	return rec
}

// as signs req in with role.
func as(req *http.Request, role account.Role) *http.Request {
	sess := middleware.Session{
		AccountID: "acct-" + string(role),
		Name:      "Test " + role.Label(),
		Email:     string(role) + "@flotenn.in",
		Role:      role,
		CreatedAt: time.Now(),
	}
	return req.WithContext(middleware.ContextWithSession(req.Context(), sess))
}

func formPost(target string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func assertStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body:\n%s", rec.Code, want, rec.Body.String())
	}
}

func assertContains(t *testing.T, body, want string) {
	t.Helper()
	if !strings.Contains(body, want) {
		t.Errorf("body does not contain %q", want)
	}
}

func assertNotContains(t *testing.T, body, unwanted string) {
	t.Helper()
	if strings.Contains(body, unwanted) {
		t.Errorf("body unexpectedly contains %q", unwanted)
	}
}

func TestStaticAssets(t *testing.T) {
	ts := newTestSite(t)
	for _, path := range []string{"/static/css/site.css", "/static/js/site.js", "/static/js/admin.js"} {
		rec := ts.get(path)
		assertStatus(t, rec, http.StatusOK)
	}
}

func TestNotFound(t *testing.T) {
	ts := newTestSite(t)
	for _, path := range []string{"/no-such-page", "/service/nope", "/blog/nope", "/a/b/c"} {
		t.Run(path, func(t *testing.T) {
			assertStatus(t, ts.get(path), http.StatusNotFound)
		})
	}
}

func TestNewMux_SetsSecurityHeaders(t *testing.T) {
	ts := newTestSite(t)
	h := NewMux(Options{Stores: ts.stores, Clock: ts.clock, CSRFKey: []byte("0123456789abcdef0123456789abcdef")})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/faq", nil))
	assertStatus(t, rec, http.StatusOK)
	if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Errorf("missing nosniff header: %v", rec.Header())
	}
}

func TestNewMux_RejectsPostWithoutCSRFToken(t *testing.T) {
	ts := newTestSite(t)
	h := NewMux(Options{Stores: ts.stores, Clock: ts.clock, CSRFKey: []byte("0123456789abcdef0123456789abcdef")})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, formPost("/contact", url.Values{"name": {"Asha"}, "phone": {"98450 00000"}}))
	assertStatus(t, rec, http.StatusForbidden)

	n, err := ts.stores.EnquiryStore.Count(context.Background(), storage.ListOptions{})
	if err != nil || n != 0 {
		t.Errorf("enquiries = %d, err = %v", n, err)
	}
}
