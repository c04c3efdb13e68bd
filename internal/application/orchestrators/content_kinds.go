package orchestrators

import (
	"time"

	"flotenn/internal/domain/booking"
	"flotenn/internal/domain/enquiry"
	"flotenn/internal/domain/faq"
	"flotenn/internal/domain/gallery"
	"flotenn/internal/domain/heroslide"
	"flotenn/internal/domain/page"
	"flotenn/internal/domain/post"
	"flotenn/internal/domain/service"
	"flotenn/internal/domain/shop"
	"flotenn/internal/domain/slug"
	"flotenn/internal/domain/testimonial"
)

// createdAt keeps the original creation time on edit.
func createdAt[T any](existing *T, get func(T) time.Time, now time.Time) time.Time {
	if existing != nil {
		return get(*existing)
	}
	return now
}

// ServiceKind handles services. A blank slug is derived from the name.
var ServiceKind = ContentKind[service.Service]{
	EntityType: "service",
	Prepare: func(s *service.Service, existing *service.Service, id string, now time.Time) error {
		s.ID = id
		s.CreatedAt = createdAt(existing, func(e service.Service) time.Time { return e.CreatedAt }, now)
		s.Slug = slug.OrMake(s.Slug, s.Name)
		return s.Validate()
	},
	Label: func(s service.Service) string { return s.Name },
}

// PostKind handles blog posts. Publishing stamps PublishedAt once; later
// edits keep the original date.
var PostKind = ContentKind[post.Post]{
	EntityType: "post",
	Prepare: func(p *post.Post, existing *post.Post, id string, now time.Time) error {
		p.ID = id
		p.CreatedAt = createdAt(existing, func(e post.Post) time.Time { return e.CreatedAt }, now)
		if existing != nil {
			p.PublishedAt = existing.PublishedAt
		}
		if p.Status == "" {
			p.Status = post.StatusDraft
		}
		if p.Status == post.StatusPublished {
			p.Publish(now)
		}
		p.Slug = slug.OrMake(p.Slug, p.Title)
		return p.Validate()
	},
	Label: func(p post.Post) string { return p.Title },
}

// PageKind handles CMS pages.
var PageKind = ContentKind[page.Page]{
	EntityType: "page",
	Prepare: func(p *page.Page, existing *page.Page, id string, now time.Time) error {
		p.ID = id
		p.CreatedAt = createdAt(existing, func(e page.Page) time.Time { return e.CreatedAt }, now)
		p.Slug = slug.OrMake(p.Slug, p.Title)
		return p.Validate()
	},
	Label: func(p page.Page) string { return p.Title },
}

// FAQKind handles FAQs.
var FAQKind = ContentKind[faq.FAQ]{
	EntityType: "faq",
	Prepare: func(f *faq.FAQ, existing *faq.FAQ, id string, now time.Time) error {
		f.ID = id
		f.CreatedAt = createdAt(existing, func(e faq.FAQ) time.Time { return e.CreatedAt }, now)
		return f.Validate()
	},
	Label: func(f faq.FAQ) string { return f.Question },
}

// GalleryKind handles gallery images.
var GalleryKind = ContentKind[gallery.Image]{
	EntityType: "gallery",
	Prepare: func(g *gallery.Image, existing *gallery.Image, id string, now time.Time) error {
		g.ID = id
		g.CreatedAt = createdAt(existing, func(e gallery.Image) time.Time { return e.CreatedAt }, now)
		return g.Validate()
	},
	Label: func(g gallery.Image) string { return g.Title },
}

// HeroSlideKind handles hero slides.
var HeroSlideKind = ContentKind[heroslide.Slide]{
	EntityType: "hero_slide",
	Prepare: func(s *heroslide.Slide, existing *heroslide.Slide, id string, now time.Time) error {
		s.ID = id
		s.CreatedAt = createdAt(existing, func(e heroslide.Slide) time.Time { return e.CreatedAt }, now)
		return s.Validate()
	},
	Label: func(s heroslide.Slide) string { return s.Title },
}

// TestimonialKind handles testimonials.
var TestimonialKind = ContentKind[testimonial.Testimonial]{
	EntityType: "testimonial",
	Prepare: func(t *testimonial.Testimonial, existing *testimonial.Testimonial, id string, now time.Time) error {
		t.ID = id
		t.CreatedAt = createdAt(existing, func(e testimonial.Testimonial) time.Time { return e.CreatedAt }, now)
		return t.Validate()
	},
	Label: func(t testimonial.Testimonial) string { return t.Name },
}

// StoreKind handles shop locations.
var StoreKind = ContentKind[shop.Store]{
	EntityType: "store",
	Prepare: func(s *shop.Store, existing *shop.Store, id string, now time.Time) error {
		s.ID = id
		s.CreatedAt = createdAt(existing, func(e shop.Store) time.Time { return e.CreatedAt }, now)
		return s.Validate()
	},
	Label: func(s shop.Store) string { return s.Name + ", " + s.City },
}

// EnquiryKind is used to delete enquiries; they are edited only through
// their status.
var EnquiryKind = ContentKind[enquiry.Enquiry]{
	EntityType: "enquiry",
	Prepare: func(e *enquiry.Enquiry, _ *enquiry.Enquiry, id string, _ time.Time) error {
		e.ID = id
		return e.Validate()
	},
	Label: func(e enquiry.Enquiry) string { return e.Name },
}

// BookingKind is used to delete bookings.
var BookingKind = ContentKind[booking.Booking]{
	EntityType: "booking",
	Prepare: func(b *booking.Booking, _ *booking.Booking, id string, _ time.Time) error {
		b.ID = id
		return b.Validate()
	},
	Label: func(b booking.Booking) string { return b.CustomerName + " (" + b.ServiceType + ")" },
}
