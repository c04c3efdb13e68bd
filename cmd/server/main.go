package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	emailPkg "flotenn/internal/adapters/email"
	"flotenn/internal/adapters/filestore"
	web "flotenn/internal/adapters/http"
	"flotenn/internal/adapters/http/perf"
	"flotenn/internal/adapters/storage"
	accountStore "flotenn/internal/adapters/storage/account"
	auditStore "flotenn/internal/adapters/storage/audit"
	bookingStore "flotenn/internal/adapters/storage/booking"
	enquiryStore "flotenn/internal/adapters/storage/enquiry"
	faqStore "flotenn/internal/adapters/storage/faq"
	galleryStore "flotenn/internal/adapters/storage/gallery"
	heroslideStore "flotenn/internal/adapters/storage/heroslide"
	mediaStore "flotenn/internal/adapters/storage/media"
	outboxStorePkg "flotenn/internal/adapters/storage/outbox"
	pageStore "flotenn/internal/adapters/storage/page"
	postStore "flotenn/internal/adapters/storage/post"
	serviceStore "flotenn/internal/adapters/storage/service"
	settingStore "flotenn/internal/adapters/storage/setting"
	shopStore "flotenn/internal/adapters/storage/shop"
	testimonialStore "flotenn/internal/adapters/storage/testimonial"
	"flotenn/internal/application/orchestrators"
	"flotenn/internal/config"
	"flotenn/internal/domain/outbox"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("config_invalid", "error", err)
		os.Exit(1)
	}

	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}
	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Production() {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))

	if err := run(cfg); err != nil {
		slog.Error("server_failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config) error {
	// WAL mode, foreign keys and a busy timeout
	dsn := cfg.DBPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return err
	}
	defer db.Close()
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		return err
	}
	if err := storage.MigrateDB(db); err != nil {
		return err
	}

	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector, cfg.SlowQuery)

	stores := &web.Stores{
		AccountStore:     accountStore.NewSQLiteStore(timedDB),
		ActivityStore:    auditStore.NewSQLiteStore(timedDB),
		BookingStore:     bookingStore.NewSQLiteStore(timedDB),
		EnquiryStore:     enquiryStore.NewSQLiteStore(timedDB),
		FAQStore:         faqStore.NewSQLiteStore(timedDB),
		GalleryStore:     galleryStore.NewSQLiteStore(timedDB),
		SlideStore:       heroslideStore.NewSQLiteStore(timedDB),
		MediaStore:       mediaStore.NewSQLiteStore(timedDB),
		OutboxStore:      outboxStorePkg.NewSQLiteStore(timedDB),
		PageStore:        pageStore.NewSQLiteStore(timedDB),
		PostStore:        postStore.NewSQLiteStore(timedDB),
		ServiceStore:     serviceStore.NewSQLiteStore(timedDB),
		SettingStore:     settingStore.NewSQLiteStore(timedDB),
		ShopStore:        shopStore.NewSQLiteStore(timedDB),
		TestimonialStore: testimonialStore.NewSQLiteStore(timedDB),
	}

	newID := func() string { return uuid.New().String() }
	seedDeps := orchestrators.AccountDeps{
		AccountStore: stores.AccountStore,
		Activity: orchestrators.RecordActivityDeps{
			ActivityStore: stores.ActivityStore,
			GenerateID:    newID,
			Now:           time.Now,
		},
		GenerateID: newID,
		Now:        time.Now,
	}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return err
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.MailFrom)
		slog.Info("email_sender_configured", "provider", "resend")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.Production() {
			slog.Warn("email_sender_configured", "provider", "noop", "reason", "FLOTENN_RESEND_KEY is not set; email delivery is disabled")
		} else {
			slog.Info("email_sender_configured", "provider", "noop")
		}
	}

	files, err := filestore.NewLocal(cfg.UploadsDir, "/uploads")
	if err != nil {
		return err
	}

	csrfKey, generated, err := cfg.CSRFSecret()
	if err != nil {
		return err
	}
	if generated {
		slog.Warn("csrf_key_generated", "reason", "FLOTENN_CSRF_KEY is not set; forms break across restarts")
	}

	// Failed notification emails are retried in the background.
	outboxStop := make(chan struct{})
	processor := orchestrators.NewOutboxProcessor(stores.OutboxStore, map[string]orchestrators.ActionExecutor{
		outbox.ActionTypeEmail: &orchestrators.EmailExecutor{Sender: sender},
	})
	outboxDone := orchestrators.StartBackgroundWorker(processor, cfg.OutboxInterval, outboxStop)

	srv := &http.Server{
		Addr: cfg.Addr,
		Handler: web.NewMux(web.Options{
			Stores:         stores,
			Collector:      collector,
			Sender:         sender,
			Files:          files,
			CSRFKey:        csrfKey,
			Secure:         cfg.Production(),
			TrustedOrigins: cfg.TrustedOrigins,
			RateLimit:      cfg.RateLimit,
			SlowRequest:    cfg.SlowRequest,
			BaseURL:        cfg.BaseURL,
			NotifyEmail:    cfg.NotifyEmail,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	// Shutdown cancels open carousel streams.
	streams, cancelStreams := context.WithCancel(context.Background())
	defer cancelStreams()
	srv.BaseContext = func(net.Listener) context.Context { return streams }
	srv.RegisterOnShutdown(cancelStreams)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("server_started", "addr", cfg.Addr, "version", version, "env", cfg.Env, "schema", storage.LatestSchemaVersion())
		serveErr <- srv.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		close(outboxStop)
		<-outboxDone
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	slog.Info("server_shutting_down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server_shutdown_failed", "error", err)
	}
	close(outboxStop)
	<-outboxDone
	return nil
}
