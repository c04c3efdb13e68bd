package browser_test

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"flotenn/internal/adapters/filestore"
	web "flotenn/internal/adapters/http"
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
	"flotenn/internal/application/orchestrators"
)

const (
	adminEmail    = "admin@test.flotenn.in"
	adminPassword = "TestPass123!-long"
)

// testApp holds the running test server and Playwright handles.
type testApp struct {
	BaseURL string
	DB      *sql.DB
	Server  *http.Server
	PW      *playwright.Playwright
	Browser playwright.Browser
	Stores  *web.Stores
}

// newTestApp creates a fully wired site with a temp SQLite DB and starts an
// HTTP server and a headless browser.
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping browser test in short mode")
	}

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.MigrateDB(db); err != nil {
		t.Fatalf("failed to migrate test DB: %v", err)
	}

	stores := &web.Stores{
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

	newID := func() string { return uuid.New().String() }
	err = orchestrators.ExecuteSeedAdmin(context.Background(), orchestrators.AccountDeps{
		AccountStore: stores.AccountStore,
		Activity:     orchestrators.RecordActivityDeps{ActivityStore: stores.ActivityStore, GenerateID: newID, Now: time.Now},
		GenerateID:   newID,
		Now:          time.Now,
	}, adminEmail, adminPassword)
	if err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	files, err := filestore.NewLocal(filepath.Join(tmpDir, "uploads"), "/uploads")
	if err != nil {
		t.Fatalf("failed to create upload dir: %v", err)
	}

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port

	srv := &http.Server{
		Handler: web.NewMux(web.Options{
			Stores:  stores,
			Files:   files,
			CSRFKey: []byte("browser-test-csrf-key-32-bytes!!"),
			TrustedOrigins: []string{
				fmt.Sprintf("127.0.0.1:%d", port),
				fmt.Sprintf("localhost:%d", port),
			},
			RateLimit: 1000,
		}),
	}
	go func() {
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			log.Printf("test server error: %v", err)
		}
	}()
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)

	pw, err := playwright.Run()
	if err != nil {
		t.Skipf("playwright driver not installed: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		pw.Stop()
		t.Skipf("chromium not available: %v", err)
	}

	app := &testApp{
		BaseURL: baseURL,
		DB:      db,
		Server:  srv,
		PW:      pw,
		Browser: browser,
		Stores:  stores,
	}
	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})
	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// gotoPath opens path and fails the test on a non-2xx response.
func (a *testApp) gotoPath(t *testing.T, page playwright.Page, path string) {
	t.Helper()
	resp, err := page.Goto(a.BaseURL + path)
	if err != nil {
		t.Fatalf("failed to navigate to %s: %v", path, err)
	}
	if resp.Status() >= 300 {
		t.Fatalf("%s returned %d", path, resp.Status())
	}
}

// login signs in as the seeded super admin.
func (a *testApp) login(t *testing.T, page playwright.Page) {
	t.Helper()
	a.gotoPath(t, page, "/admin/login")
	if err := page.Locator("input[name=email]").Fill(adminEmail); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=password]").Fill(adminPassword); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click sign in: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/admin/dashboard", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("sign in did not reach the dashboard: %v", err)
	}
}
