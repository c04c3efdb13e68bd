package projections

import (
	"context"
	"log/slog"
	"sync"

	"flotenn/internal/adapters/storage"
	"flotenn/internal/domain/heroslide"
	"flotenn/internal/domain/post"
	"flotenn/internal/domain/service"
	"flotenn/internal/domain/testimonial"
)

// Home page limits.
const (
	HomeServiceLimit = 6
	HomePostLimit    = 3
)

// GetHomeDeps holds dependencies for the home page projection.
type GetHomeDeps struct {
	SlideStore       Lister[heroslide.Slide]
	ServiceStore     Lister[service.Service]
	TestimonialStore Lister[testimonial.Testimonial]
	PostStore        Lister[post.Post]
}

// HomeResult is everything the home page renders.
type HomeResult struct {
	Slides       []heroslide.Slide
	HeroFallback bool // true when Slides is the built-in default
	Services     []service.Service
	Testimonials []testimonial.Testimonial
	Posts        []post.Post
}

// QueryGetHome loads the home page sections in parallel.
// PRE: deps stores are non-nil
// POST: Never fails; hero and services fall back to built-ins, other
// sections are empty when their load fails
func QueryGetHome(ctx context.Context, deps GetHomeDeps) HomeResult {
	var res HomeResult
	var wg sync.WaitGroup

	wg.Go(func() {
		res.Slides, res.HeroFallback = QueryGetHeroSlides(ctx, deps.SlideStore)
	})
	wg.Go(func() {
		services, err := deps.ServiceStore.List(ctx, storage.ListOptions{PublishedOnly: true, Limit: HomeServiceLimit})
		if err != nil {
			slog.Error("home_section_failed", "section", "services", "error", err)
		}
		if len(services) == 0 {
			services = service.Fallback
		}
		res.Services = services
	})
	wg.Go(func() {
		items, err := deps.TestimonialStore.List(ctx, published)
		if err != nil {
			slog.Error("home_section_failed", "section", "testimonials", "error", err)
		}
		res.Testimonials = items
	})
	wg.Go(func() {
		posts, err := deps.PostStore.List(ctx, storage.ListOptions{PublishedOnly: true, Limit: HomePostLimit})
		if err != nil {
			slog.Error("home_section_failed", "section", "posts", "error", err)
		}
		res.Posts = posts
	})

	wg.Wait()
	return res
}

// QueryGetHeroSlides lists the active hero slides in display order.
// POST: Never empty; a failed or empty load yields heroslide.Fallback and
// fallback reports it
func QueryGetHeroSlides(ctx context.Context, store Lister[heroslide.Slide]) (slides []heroslide.Slide, fallback bool) {
	loaded, err := store.List(ctx, published)
	if err != nil {
		slog.Error("home_section_failed", "section", "hero", "error", err)
	}
	return heroslide.OrFallback(loaded), len(loaded) == 0
}
