package web

import (
	"net/http"

	"flotenn/internal/adapters/http/middleware"
)

// registerRoutes mounts every page, stream and back-office route.
func registerRoutes(mux *http.ServeMux) {
	mux.Handle("GET /static/", staticFiles())
	if files != nil {
		mux.Handle("GET /uploads/", http.StripPrefix("/uploads/", http.FileServer(http.Dir(files.Dir()))))
	}

	// Public site
	mux.HandleFunc("GET /{$}", handleHome)
	mux.HandleFunc("GET /about", handleAbout)
	mux.HandleFunc("GET /services", handleServices)
	mux.HandleFunc("GET /service/{slug}", handleServiceDetail)
	mux.HandleFunc("POST /service/{slug}", handleBookService)
	mux.HandleFunc("GET /blog", handleBlog)
	mux.HandleFunc("GET /blog/{slug}", handlePost)
	mux.HandleFunc("GET /gallery", handleGallery)
	mux.HandleFunc("GET /faq", handleFAQ)
	mux.HandleFunc("GET /contact", handleContact)
	mux.HandleFunc("POST /contact", handleContactSubmit)
	mux.HandleFunc("GET /robots.txt", handleRobots)
	mux.HandleFunc("GET /page/{slug}", handlePage)
	mux.HandleFunc("GET /{slug}", handlePage)
	mux.HandleFunc("/", handleNotFound)

	// Live carousels
	mux.HandleFunc("GET /stream/hero", handleHeroStream)
	mux.HandleFunc("GET /stream/testimonials", handleTestimonialStream)

	// Auth
	mux.HandleFunc("/admin/login", handleLogin)
	mux.HandleFunc("/admin/forgot-password", handleForgotPassword)
	mux.HandleFunc("/admin/reset-password", handleResetPassword)
	mux.Handle("/admin/logout", middleware.RequireAuth(http.HandlerFunc(handleLogout)))

	// Back office
	mux.HandleFunc("GET /admin", handleAdminRoot)
	mux.HandleFunc("GET /admin/{$}", handleAdminRoot)
	admin := func(pattern, path string, h http.HandlerFunc) {
		mux.Handle(pattern, middleware.RequireRole(sectionRoles(path))(h))
	}
	admin("GET /admin/dashboard", "/admin/dashboard", handleDashboard)

	admin("GET /admin/enquiries", "/admin/enquiries", handleEnquiries)
	admin("POST /admin/enquiries/{id}/status", "/admin/enquiries", handleEnquiryStatus)
	admin("POST /admin/enquiries/{id}/delete", "/admin/enquiries", handleEnquiryDelete)

	admin("GET /admin/bookings", "/admin/bookings", handleBookings)
	admin("POST /admin/bookings/{id}/status", "/admin/bookings", handleBookingStatus)
	admin("POST /admin/bookings/{id}/delete", "/admin/bookings", handleBookingDelete)

	admin("GET /admin/seo", "/admin/seo", handleSEO)
	admin("POST /admin/seo", "/admin/seo", handleSEOSave)

	admin("GET /admin/logs", "/admin/logs", handleLogs)

	admin("GET /admin/users", "/admin/users", handleUsers)
	admin("GET /admin/users/new", "/admin/users", handleUserNew)
	admin("GET /admin/users/{id}", "/admin/users", handleUserEdit)
	admin("POST /admin/users", "/admin/users", handleUserSave)
	admin("POST /admin/users/{id}", "/admin/users", handleUserSave)
	admin("POST /admin/users/{id}/delete", "/admin/users", handleUserDelete)

	admin("GET /admin/media", "/admin/media", handleMedia)
	admin("POST /admin/media", "/admin/media", handleMediaUpload)
	admin("POST /admin/media/{id}/delete", "/admin/media", handleMediaDelete)

	admin("GET /admin/outbox", "/admin/outbox", handleAdminOutbox)
	admin("POST /admin/outbox/{id}/resend", "/admin/outbox", handleOutboxResend)
	admin("POST /admin/outbox/{id}/abandon", "/admin/outbox", handleOutboxAbandon)

	for _, s := range contentSections() {
		s.register(mux)
	}
}
