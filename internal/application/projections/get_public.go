package projections

import (
	"context"
	"log/slog"

	"flotenn/internal/adapters/storage"
	"flotenn/internal/domain/faq"
	"flotenn/internal/domain/gallery"
	"flotenn/internal/domain/post"
	"flotenn/internal/domain/service"
	"flotenn/internal/domain/setting"
	"flotenn/internal/domain/shop"
	"flotenn/internal/domain/testimonial"
)

// GalleryResult is the public gallery.
type GalleryResult struct {
	Images     []gallery.Image
	Categories []string
}

// QueryGetGallery lists published gallery images in display order.
// POST: Empty result on load failure; the error is logged
func QueryGetGallery(ctx context.Context, store Lister[gallery.Image]) GalleryResult {
	images, err := store.List(ctx, published)
	if err != nil {
		slog.Error("public_list_failed", "section", "gallery", "error", err)
		return GalleryResult{}
	}
	return GalleryResult{Images: images, Categories: gallery.Categories(images)}
}

// QueryGetFAQs returns published FAQs grouped by category.
// POST: Empty result on load failure; the error is logged
func QueryGetFAQs(ctx context.Context, store Lister[faq.FAQ]) []faq.Group {
	faqs, err := store.List(ctx, published)
	if err != nil {
		slog.Error("public_list_failed", "section", "faq", "error", err)
		return nil
	}
	return faq.GroupByCategory(faqs)
}

// QueryGetBlog lists published posts, newest first.
// POST: Empty result on load failure; the error is logged
func QueryGetBlog(ctx context.Context, store Lister[post.Post]) []post.Post {
	posts, err := store.List(ctx, published)
	if err != nil {
		slog.Error("public_list_failed", "section", "blog", "error", err)
		return nil
	}
	return posts
}

// QueryGetServices lists published services.
// POST: Empty result on load failure; the error is logged
func QueryGetServices(ctx context.Context, store Lister[service.Service]) []service.Service {
	services, err := store.List(ctx, published)
	if err != nil {
		slog.Error("public_list_failed", "section", "services", "error", err)
		return nil
	}
	return services
}

// QueryGetStores lists active shop locations for the contact page.
// POST: Empty result on load failure; the error is logged
func QueryGetStores(ctx context.Context, store Lister[shop.Store]) []shop.Store {
	stores, err := store.List(ctx, published)
	if err != nil {
		slog.Error("public_list_failed", "section", "stores", "error", err)
		return nil
	}
	return stores
}

// QueryGetTestimonials lists published testimonials, newest first.
// POST: Empty result on load failure; the error is logged
func QueryGetTestimonials(ctx context.Context, store Lister[testimonial.Testimonial]) []testimonial.Testimonial {
	items, err := store.List(ctx, published)
	if err != nil {
		slog.Error("public_list_failed", "section", "testimonials", "error", err)
		return nil
	}
	return items
}

// QueryGetPublished returns the published record with slug.
// POST: storage.ErrNotFound for unknown or unpublished slugs
func QueryGetPublished[T any](ctx context.Context, store SlugGetter[T], slug string) (T, error) {
	return store.GetBySlug(ctx, slug, true)
}

// QueryGetSettings returns site settings with defaults applied.
// POST: Defaults only on load failure; the error is logged
func QueryGetSettings(ctx context.Context, store SettingReader) setting.Settings {
	stored, err := store.All(ctx)
	if err != nil {
		slog.Error("settings_load_failed", "error", err)
	}
	return setting.Resolve(stored)
}

// QueryGetRelatedPosts returns up to limit other published posts.
func QueryGetRelatedPosts(ctx context.Context, store Lister[post.Post], exclude string, limit int) []post.Post {
	posts, err := store.List(ctx, storage.ListOptions{PublishedOnly: true, Limit: limit + 1})
	if err != nil {
		slog.Error("public_list_failed", "section", "related_posts", "error", err)
		return nil
	}
	out := make([]post.Post, 0, limit)
	for _, p := range posts {
		if p.ID != exclude && len(out) < limit {
			out = append(out, p)
		}
	}
	return out
}
