package web

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"flotenn/internal/adapters/email"
	"flotenn/internal/adapters/filestore"
	"flotenn/internal/adapters/http/middleware"
	"flotenn/internal/adapters/http/perf"
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
	"flotenn/internal/domain/audit"
	"flotenn/internal/domain/carousel"
)

// Stores holds all store interfaces needed by handlers.
type Stores struct {
	AccountStore     accountStore.Store
	ActivityStore    auditStore.Store
	BookingStore     bookingStore.Store
	EnquiryStore     enquiryStore.Store
	FAQStore         faqStore.Store
	GalleryStore     galleryStore.Store
	SlideStore       heroslideStore.Store
	MediaStore       mediaStore.Store
	OutboxStore      outboxStore.Store
	PageStore        pageStore.Store
	PostStore        postStore.Store
	ServiceStore     serviceStore.Store
	SettingStore     settingStore.Store
	ShopStore        shopStore.Store
	TestimonialStore testimonialStore.Store
}

// Options configures NewMux.
type Options struct {
	Stores    *Stores
	Collector *perf.Collector
	Sender    email.Sender
	Files     *filestore.Local

	CSRFKey        []byte
	Secure         bool
	TrustedOrigins []string
	RateLimit      int // requests per second per client
	SlowRequest    time.Duration

	BaseURL     string // absolute site URL used in emailed links
	NotifyEmail string // business inbox for enquiries and bookings

	// Clock drives the live carousel streams; nil means wall time.
	Clock carousel.Clock
}

// Global stores instance (set by configure)
var stores *Stores

// Global session store. Lives for the whole process.
var sessions *middleware.SessionStore

// Global perf collector (set by configure)
var perfCollector *perf.Collector

// Global email sender and addressing (set by configure)
var (
	emailSender   email.Sender
	notifyAddress string
	siteBaseURL   string
)

// Global upload storage (set by configure)
var files *filestore.Local

// streamClock ticks the live carousel streams.
var streamClock carousel.Clock = carousel.RealClock{}

// configure sets the package globals and returns the bare router.
func configure(opts Options) *http.ServeMux {
	stores = opts.Stores
	perfCollector = opts.Collector
	emailSender = opts.Sender
	if emailSender == nil {
		emailSender = email.NewNoopSender()
	}
	notifyAddress = opts.NotifyEmail
	siteBaseURL = opts.BaseURL
	files = opts.Files
	streamClock = opts.Clock
	if streamClock == nil {
		streamClock = carousel.RealClock{}
	}
	sessions = middleware.NewSessionStore()
	sessions.Subscribe(logSessionEvent)
	middleware.SecureCookies = opts.Secure

	mux := http.NewServeMux()
	registerRoutes(mux)
	return mux
}

// NewMux wires HTTP handlers for the app.
func NewMux(opts Options) http.Handler {
	mux := configure(opts)

	rate := opts.RateLimit
	if rate <= 0 {
		rate = RateLimitPerSecond
	}
	limiter := middleware.NewRateLimiter(rate, time.Second)

	slow := opts.SlowRequest
	if slow <= 0 {
		slow = middleware.DefaultSlowRequest
	}

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(opts.CSRFKey, opts.Secure, opts.TrustedOrigins),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(opts.Collector, slow),
	)
}

// RateLimitPerSecond is the default per-client request budget.
const RateLimitPerSecond = 10

// logSessionEvent writes sign-ins and sign-outs to the activity log.
func logSessionEvent(ev middleware.SessionEvent) {
	var action audit.Action
	switch ev.Kind {
	case middleware.SessionSignedIn:
		action = audit.ActionLogin
	case middleware.SessionSignedOut:
		action = audit.ActionLogout
	default:
		return
	}
	slog.Info("auth_event", "event", string(ev.Kind), "account_id", ev.Session.AccountID)
	if stores == nil || stores.ActivityStore == nil {
		return
	}
	err := orchestrators.ExecuteRecordActivity(context.Background(), orchestrators.RecordActivityInput{
		UserID:     ev.Session.AccountID,
		Action:     action,
		EntityType: "user",
		EntityID:   ev.Session.AccountID,
		Details:    ev.Session.Email,
	}, activityDeps())
	if err != nil {
		slog.Error("activity_log_failed", "action", string(action), "error", err)
	}
}

func activityDeps() orchestrators.RecordActivityDeps {
	var store orchestrators.ActivityStore
	if stores != nil && stores.ActivityStore != nil {
		store = stores.ActivityStore
	}
	return orchestrators.RecordActivityDeps{
		ActivityStore: store,
		GenerateID:    generateID,
		Now:           timeNow,
	}
}

func sendEmailDeps() orchestrators.SendEmailDeps {
	var outbox orchestrators.OutboxStoreForEnqueue
	if stores.OutboxStore != nil {
		outbox = stores.OutboxStore
	}
	return orchestrators.SendEmailDeps{
		Sender:      emailSender,
		OutboxStore: outbox,
		GenerateID:  generateID,
		Now:         timeNow,
	}
}

func notifyDeps() orchestrators.NotifyDeps {
	return orchestrators.NotifyDeps{
		Email:    sendEmailDeps(),
		NotifyTo: notifyAddress,
		BaseURL:  siteBaseURL,
	}
}
