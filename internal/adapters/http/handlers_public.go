package web

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"flotenn/internal/application/orchestrators"
	"flotenn/internal/application/projections"
	"flotenn/internal/domain/carousel"
	"flotenn/internal/domain/enquiry"
	"flotenn/internal/domain/faq"
	"flotenn/internal/domain/gallery"
	"flotenn/internal/domain/heroslide"
	"flotenn/internal/domain/setting"
	"flotenn/internal/domain/testimonial"
)

// Posts shown under a blog post.
const relatedPostLimit = 3

// formFailure returns the banner text for a failed submission. Bare errors are
// input problems and are shown as-is; wrapped errors are logged and reported
// generically.
func formFailure(err error, what string) string {
	if errors.Unwrap(err) == nil {
		return err.Error()
	}
	slog.Error("form_submit_failed", "form", what, "error", err)
	return "Could not save " + what + ". Please try again."
}

func homeDeps() projections.GetHomeDeps {
	return projections.GetHomeDeps{
		SlideStore:       stores.SlideStore,
		ServiceStore:     stores.ServiceStore,
		TestimonialStore: stores.TestimonialStore,
		PostStore:        stores.PostStore,
	}
}

// heroSlide is one rendered hero slide.
type heroSlide struct {
	heroslide.Slide
	Lines  []carousel.Line
	Index  int
	Active bool
}

// heroView is the hero slider at one state.
type heroView struct {
	Slides     []heroSlide
	Active     int
	Prev       int
	Next       int
	IntervalMs int64
}

// newHeroView renders slides with the slide named by param active. A missing
// or out-of-range param shows the first slide.
func newHeroView(slides []heroslide.Slide, param string) heroView {
	c := carousel.New(len(slides))
	if param != "" {
		if err := goToParam(c, param); err != nil {
			slog.Debug("hero_slide_ignored", "slide", param, "error", err)
		}
	}
	v := heroView{
		Active:     c.Active(),
		Prev:       c.PeekPrev(),
		Next:       c.PeekNext(),
		IntervalMs: carousel.HeroInterval.Milliseconds(),
	}
	for i, s := range slides {
		v.Slides = append(v.Slides, heroSlide{
			Slide:  s,
			Lines:  carousel.ParseTitle(s.Title),
			Index:  i,
			Active: i == c.Active(),
		})
	}
	return v
}

func goToParam(c *carousel.Carousel, param string) error {
	n, err := strconv.Atoi(param)
	if err != nil {
		return err
	}
	return c.GoTo(n)
}

// stripView is the testimonial strip at one state.
type stripView struct {
	Items       []testimonial.Testimonial
	PerView     int
	Offset      int
	Translation float64
	Auto        bool
	IntervalMs  int64
}

// newStripView lays out testimonials for a viewport width. No testimonials
// yields no items and the section is left out.
func newStripView(items []testimonial.Testimonial, width int, cardWidth float64) stripView {
	display := carousel.Duplicate(items)
	s := carousel.NewStrip(len(display), width, cardWidth)
	return stripView{
		Items:       display,
		PerView:     s.PerView(),
		Offset:      s.Offset(),
		Translation: s.Translation(),
		Auto:        s.Running(),
		IntervalMs:  carousel.StripInterval.Milliseconds(),
	}
}

// handleHome renders the landing page.
func handleHome(w http.ResponseWriter, r *http.Request) {
	home := projections.QueryGetHome(r.Context(), homeDeps())
	renderTemplate(w, r, "home.html", map[string]any{
		"Hero":         newHeroView(home.Slides, r.URL.Query().Get("slide")),
		"HeroFallback": home.HeroFallback,
		"Services":     home.Services,
		"Strip":        newStripView(home.Testimonials, carousel.WideViewport, carousel.DefaultCardWidth),
		"Posts":        home.Posts,
	})
}

// handleAbout renders the about page.
func handleAbout(w http.ResponseWriter, r *http.Request) {
	testimonials := projections.QueryGetTestimonials(r.Context(), stores.TestimonialStore)
	renderTemplate(w, r, "about.html", map[string]any{
		"Strip": newStripView(testimonials, carousel.WideViewport, carousel.DefaultCardWidth),
	})
}

// handleServices lists published services.
func handleServices(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "services.html", map[string]any{
		"Services": projections.QueryGetServices(r.Context(), stores.ServiceStore),
	})
}

// bookingForm holds a booking form for re-rendering.
type bookingForm struct {
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  string
	VehicleDetails string
	BookingDate    string
	Notes          string
}

// handleServiceDetail renders one published service with its booking form.
func handleServiceDetail(w http.ResponseWriter, r *http.Request) {
	renderServiceDetail(w, r, http.StatusOK, bookingForm{}, "")
}

func renderServiceDetail(w http.ResponseWriter, r *http.Request, status int, form bookingForm, formErr string) {
	svc, err := projections.QueryGetPublished(r.Context(), stores.ServiceStore, r.PathValue("slug"))
	if err != nil {
		lookupFailed(w, r, err)
		return
	}
	renderTemplateStatus(w, r, status, "service_detail.html", map[string]any{
		"Service": svc,
		"Form":    form,
		"Error":   formErr,
		"Booked":  r.URL.Query().Get("booked") == "1",
	})
}

// handleBookService takes a booking request for a service.
func handleBookService(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	slug := r.PathValue("slug")
	form := bookingForm{
		CustomerName:   formText(r, "customer_name"),
		CustomerPhone:  formText(r, "customer_phone"),
		CustomerEmail:  formText(r, "customer_email"),
		VehicleDetails: formText(r, "vehicle_details"),
		BookingDate:    formText(r, "booking_date"),
		Notes:          formText(r, "notes"),
	}
	_, err := orchestrators.ExecuteRequestBooking(r.Context(), orchestrators.RequestBookingInput{
		ServiceSlug:    slug,
		CustomerName:   form.CustomerName,
		CustomerPhone:  form.CustomerPhone,
		CustomerEmail:  form.CustomerEmail,
		VehicleDetails: form.VehicleDetails,
		BookingDate:    formDate(r, "booking_date"),
		Notes:          form.Notes,
	}, orchestrators.RequestBookingDeps{
		ServiceStore: stores.ServiceStore,
		BookingStore: stores.BookingStore,
		Notify:       notifyDeps(),
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		renderServiceDetail(w, r, http.StatusUnprocessableEntity, form, formFailure(err, "your booking"))
		return
	}
	redirectTo(w, r, "/service/"+slug+"?booked=1")
}

// handleBlog lists published posts.
func handleBlog(w http.ResponseWriter, r *http.Request) {
	renderTemplate(w, r, "blog.html", map[string]any{
		"Posts": projections.QueryGetBlog(r.Context(), stores.PostStore),
	})
}

// handlePost renders one published post.
func handlePost(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	p, err := projections.QueryGetPublished(ctx, stores.PostStore, r.PathValue("slug"))
	if err != nil {
		lookupFailed(w, r, err)
		return
	}
	renderTemplate(w, r, "post.html", map[string]any{
		"Post":    p,
		"Related": projections.QueryGetRelatedPosts(ctx, stores.PostStore, p.ID, relatedPostLimit),
	})
}

// lightboxView is the gallery lightbox at one state.
type lightboxView struct {
	Open         bool
	Active       int
	Prev         int
	Next         int
	Item         gallery.Image
	ScrollLocked bool
	KeysBound    bool
}

// handleGallery renders the gallery grid. ?view=i opens the lightbox on item
// i; ?key= replays one key press against it.
func handleGallery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res := projections.QueryGetGallery(r.Context(), stores.GalleryStore)
	images := res.Images
	category := q.Get("category")
	if category != "" {
		images = filterGallery(images, category)
	}

	doc := carousel.NewPageDocument()
	lb := carousel.NewLightbox(doc, len(images))
	defer lb.Unmount()

	if i, ok := queryInt(r, "view"); ok {
		if err := lb.Open(i); err != nil {
			slog.Debug("gallery_view_ignored", "view", i, "error", err)
		} else if key := q.Get("key"); key != "" {
			doc.DispatchKey(key)
		}
	}

	view := lightboxView{
		Open:         lb.IsOpen(),
		Active:       lb.Active(),
		Prev:         lb.PeekChange(-1),
		Next:         lb.PeekChange(1),
		ScrollLocked: doc.ScrollLocked(),
		KeysBound:    doc.Listeners() > 0,
	}
	if view.Open {
		view.Item = images[view.Active]
	}
	renderTemplate(w, r, "gallery.html", map[string]any{
		"Images":     images,
		"Categories": res.Categories,
		"Category":   category,
		"Lightbox":   view,
	})
}

func filterGallery(images []gallery.Image, category string) []gallery.Image {
	var out []gallery.Image
	for _, img := range images {
		if strings.EqualFold(img.Category, category) {
			out = append(out, img)
		}
	}
	return out
}

// faqItem is one accordion entry. Href toggles it.
type faqItem struct {
	faq.FAQ
	Index int
	Open  bool
	Href  string
}

type faqGroupView struct {
	Category string
	Items    []faqItem
}

// handleFAQ renders the FAQ accordion. At most one answer is open, named by
// its position in ?open=.
func handleFAQ(w http.ResponseWriter, r *http.Request) {
	groups := projections.QueryGetFAQs(r.Context(), stores.FAQStore)
	active := faq.NoneOpen
	if i, ok := queryInt(r, "open"); ok && i >= 0 {
		active = i
	}

	views := make([]faqGroupView, 0, len(groups))
	i := 0
	for _, g := range groups {
		gv := faqGroupView{Category: g.Category}
		for _, f := range g.Items {
			href := "/faq"
			if next := faq.Toggle(active, i); next != faq.NoneOpen {
				href = "/faq?open=" + strconv.Itoa(next) + "#faq-" + strconv.Itoa(next)
			}
			gv.Items = append(gv.Items, faqItem{FAQ: f, Index: i, Open: i == active, Href: href})
			i++
		}
		views = append(views, gv)
	}
	renderTemplate(w, r, "faq.html", map[string]any{"Groups": views})
}

// contactForm holds the contact form for re-rendering.
type contactForm struct {
	Name    string
	Phone   string
	Email   string
	City    string
	Subject string
	Message string
}

// handleContact renders the contact page.
func handleContact(w http.ResponseWriter, r *http.Request) {
	renderContact(w, r, http.StatusOK, contactForm{}, "")
}

func renderContact(w http.ResponseWriter, r *http.Request, status int, form contactForm, formErr string) {
	renderTemplateStatus(w, r, status, "contact.html", map[string]any{
		"Form":     form,
		"Error":    formErr,
		"Sent":     r.URL.Query().Get("sent") == "1",
		"Subjects": enquiry.Subjects,
		"Stores":   projections.QueryGetStores(r.Context(), stores.ShopStore),
	})
}

// handleContactSubmit stores a contact enquiry.
func handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form submission", http.StatusBadRequest)
		return
	}
	form := contactForm{
		Name:    formText(r, "name"),
		Phone:   formText(r, "phone"),
		Email:   formText(r, "email"),
		City:    formText(r, "city"),
		Subject: formText(r, "subject"),
		Message: formText(r, "message"),
	}
	_, err := orchestrators.ExecuteSubmitEnquiry(r.Context(), orchestrators.SubmitEnquiryInput(form), orchestrators.SubmitEnquiryDeps{
		EnquiryStore: stores.EnquiryStore,
		Notify:       notifyDeps(),
		GenerateID:   generateID,
		Now:          timeNow,
	})
	if err != nil {
		renderContact(w, r, http.StatusUnprocessableEntity, form, formFailure(err, "your enquiry"))
		return
	}
	redirectTo(w, r, "/contact?sent=1")
}

// handlePage renders a published CMS page by slug.
func handlePage(w http.ResponseWriter, r *http.Request) {
	p, err := projections.QueryGetPublished(r.Context(), stores.PageStore, r.PathValue("slug"))
	if err != nil {
		lookupFailed(w, r, err)
		return
	}
	renderTemplate(w, r, "page.html", map[string]any{"Page": p})
}

// handleRobots serves robots.txt from settings.
func handleRobots(w http.ResponseWriter, r *http.Request) {
	site := projections.QueryGetSettings(r.Context(), stores.SettingStore)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age="+strconv.Itoa(int(time.Hour.Seconds())))
	if _, err := io.WriteString(w, site.Get(setting.KeyRobotsTxt)); err != nil {
		slog.Warn("robots_write_failed", "error", err)
	}
}
