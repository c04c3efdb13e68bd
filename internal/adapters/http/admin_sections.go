package web

import (
	"strconv"

	"flotenn/internal/application/orchestrators"
	"flotenn/internal/domain/carousel"
	"flotenn/internal/domain/faq"
	"flotenn/internal/domain/gallery"
	"flotenn/internal/domain/heroslide"
	"flotenn/internal/domain/page"
	"flotenn/internal/domain/post"
	"flotenn/internal/domain/service"
	"flotenn/internal/domain/shop"
	"flotenn/internal/domain/testimonial"
)

func boolString(b bool) string { return strconv.FormatBool(b) }

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func formatFloat(f float64) string {
	if f == 0 {
		return ""
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}

// contentSections builds the back-office content sections over the current
// stores.
func contentSections() []sectionRegistrar {
	return []sectionRegistrar{
		servicesSection(),
		postsSection(),
		pagesSection(),
		faqsSection(),
		gallerySection(),
		heroSection(),
		testimonialsSection(),
		storesSection(),
	}
}

func servicesSection() *resource[service.Service] {
	return &resource[service.Service]{
		Path: "/admin/services", Singular: "Service", Plural: "Services",
		Store: stores.ServiceStore, Kind: orchestrators.ServiceKind,
		Key: func(s service.Service) string { return s.ID },
		Columns: []column[service.Service]{
			{"Image", func(s service.Service) cell { return imageCell(s.ImageURL) }},
			{"Name", func(s service.Service) cell { return textCell(s.Name) }},
			{"Price From", func(s service.Service) cell {
				if s.PriceFrom == 0 {
					return textCell("")
				}
				return textCell(formatPrice(s.PriceFrom))
			}},
			{"Status", func(s service.Service) cell { return flagCell(s.IsPublished, "Published", "Draft") }},
		},
		Fields: []field[service.Service]{
			{Name: "name", Label: "Name", Type: inputText, Required: true,
				Get: func(s service.Service) string { return s.Name }, Set: func(s *service.Service, v string) { s.Name = v }},
			{Name: "slug", Label: "Slug", Type: inputText, Help: "Leave blank to derive it from the name.",
				Get: func(s service.Service) string { return s.Slug }, Set: func(s *service.Service, v string) { s.Slug = v }},
			{Name: "price_from", Label: "Price from (₹)", Type: inputNumber,
				Get: func(s service.Service) string { return formatFloat(s.PriceFrom) }, Set: func(s *service.Service, v string) { s.PriceFrom = parseFloat(v) }},
			{Name: "image_url", Label: "Image", Type: inputImage,
				Get: func(s service.Service) string { return s.ImageURL }, Set: func(s *service.Service, v string) { s.ImageURL = v }},
			{Name: "short_description", Label: "Short description", Type: inputTextarea,
				Get: func(s service.Service) string { return s.ShortDescription }, Set: func(s *service.Service, v string) { s.ShortDescription = v }},
			{Name: "description", Label: "Description", Type: inputContent,
				Get: func(s service.Service) string { return s.Description }, Set: func(s *service.Service, v string) { s.Description = v }},
			{Name: "meta_title", Label: "Meta title", Type: inputText,
				Get: func(s service.Service) string { return s.MetaTitle }, Set: func(s *service.Service, v string) { s.MetaTitle = v }},
			{Name: "meta_description", Label: "Meta description", Type: inputTextarea,
				Get: func(s service.Service) string { return s.MetaDescription }, Set: func(s *service.Service, v string) { s.MetaDescription = v }},
			{Name: "meta_keywords", Label: "Meta keywords", Type: inputText,
				Get: func(s service.Service) string { return s.MetaKeywords }, Set: func(s *service.Service, v string) { s.MetaKeywords = v }},
			{Name: "is_published", Label: "Published", Type: inputCheckbox,
				Get: func(s service.Service) string { return boolString(s.IsPublished) }, Set: func(s *service.Service, v string) { s.IsPublished = v == "true" }},
		},
		PublicURL: func(s service.Service) string { return "/service/" + s.Slug },
	}
}

func postsSection() *resource[post.Post] {
	return &resource[post.Post]{
		Path: "/admin/posts", Singular: "Post", Plural: "Blog Posts",
		Store: stores.PostStore, Kind: orchestrators.PostKind,
		Key: func(p post.Post) string { return p.ID },
		Columns: []column[post.Post]{
			{"Title", func(p post.Post) cell { return textCell(p.Title) }},
			{"Author", func(p post.Post) cell { return textCell(p.Author) }},
			{"Date", func(p post.Post) cell { return textCell(formatDate(p.DisplayDate())) }},
			{"Status", func(p post.Post) cell {
				return cell{Text: p.Status, Class: statusBadge(p.Status)}
			}},
		},
		Fields: []field[post.Post]{
			{Name: "title", Label: "Title", Type: inputText, Required: true,
				Get: func(p post.Post) string { return p.Title }, Set: func(p *post.Post, v string) { p.Title = v }},
			{Name: "slug", Label: "Slug", Type: inputText, Help: "Leave blank to derive it from the title.",
				Get: func(p post.Post) string { return p.Slug }, Set: func(p *post.Post, v string) { p.Slug = v }},
			{Name: "excerpt", Label: "Excerpt", Type: inputTextarea,
				Get: func(p post.Post) string { return p.Excerpt }, Set: func(p *post.Post, v string) { p.Excerpt = v }},
			{Name: "content", Label: "Content", Type: inputContent,
				Get: func(p post.Post) string { return p.Content }, Set: func(p *post.Post, v string) { p.Content = v }},
			{Name: "featured_image", Label: "Featured image", Type: inputImage,
				Get: func(p post.Post) string { return p.FeaturedImage }, Set: func(p *post.Post, v string) { p.FeaturedImage = v }},
			{Name: "author", Label: "Author", Type: inputText,
				Get: func(p post.Post) string { return p.Author }, Set: func(p *post.Post, v string) { p.Author = v }},
			{Name: "status", Label: "Status", Type: inputSelect, Options: post.ValidStatuses,
				Get: func(p post.Post) string { return p.Status }, Set: func(p *post.Post, v string) { p.Status = v }},
			{Name: "meta_title", Label: "Meta title", Type: inputText,
				Get: func(p post.Post) string { return p.MetaTitle }, Set: func(p *post.Post, v string) { p.MetaTitle = v }},
			{Name: "meta_description", Label: "Meta description", Type: inputTextarea,
				Get: func(p post.Post) string { return p.MetaDescription }, Set: func(p *post.Post, v string) { p.MetaDescription = v }},
		},
		PublicURL: func(p post.Post) string { return "/blog/" + p.Slug },
	}
}

func pagesSection() *resource[page.Page] {
	return &resource[page.Page]{
		Path: "/admin/pages", Singular: "Page", Plural: "Pages",
		Store: stores.PageStore, Kind: orchestrators.PageKind,
		Key: func(p page.Page) string { return p.ID },
		Columns: []column[page.Page]{
			{"Title", func(p page.Page) cell { return textCell(p.Title) }},
			{"Slug", func(p page.Page) cell { return textCell("/" + p.Slug) }},
			{"Status", func(p page.Page) cell { return flagCell(p.IsPublished, "Published", "Draft") }},
		},
		Fields: []field[page.Page]{
			{Name: "title", Label: "Title", Type: inputText, Required: true,
				Get: func(p page.Page) string { return p.Title }, Set: func(p *page.Page, v string) { p.Title = v }},
			{Name: "slug", Label: "Slug", Type: inputText, Help: "Served at /slug. Leave blank to derive it from the title.",
				Get: func(p page.Page) string { return p.Slug }, Set: func(p *page.Page, v string) { p.Slug = v }},
			{Name: "content", Label: "Content", Type: inputContent,
				Get: func(p page.Page) string { return p.Content }, Set: func(p *page.Page, v string) { p.Content = v }},
			{Name: "meta_title", Label: "Meta title", Type: inputText,
				Get: func(p page.Page) string { return p.MetaTitle }, Set: func(p *page.Page, v string) { p.MetaTitle = v }},
			{Name: "meta_description", Label: "Meta description", Type: inputTextarea,
				Get: func(p page.Page) string { return p.MetaDescription }, Set: func(p *page.Page, v string) { p.MetaDescription = v }},
			{Name: "is_published", Label: "Published", Type: inputCheckbox,
				Get: func(p page.Page) string { return boolString(p.IsPublished) }, Set: func(p *page.Page, v string) { p.IsPublished = v == "true" }},
		},
		PublicURL: func(p page.Page) string { return "/" + p.Slug },
	}
}

func faqsSection() *resource[faq.FAQ] {
	return &resource[faq.FAQ]{
		Path: "/admin/faqs", Singular: "FAQ", Plural: "FAQs",
		Store: stores.FAQStore, Kind: orchestrators.FAQKind,
		Key: func(f faq.FAQ) string { return f.ID },
		Columns: []column[faq.FAQ]{
			{"Question", func(f faq.FAQ) cell { return textCell(f.Question) }},
			{"Category", func(f faq.FAQ) cell { return textCell(f.Category) }},
			{"Order", func(f faq.FAQ) cell { return textCell(strconv.Itoa(f.SortOrder)) }},
			{"Status", func(f faq.FAQ) cell { return flagCell(f.IsPublished, "Published", "Draft") }},
		},
		Fields: []field[faq.FAQ]{
			{Name: "question", Label: "Question", Type: inputText, Required: true,
				Get: func(f faq.FAQ) string { return f.Question }, Set: func(f *faq.FAQ, v string) { f.Question = v }},
			{Name: "answer", Label: "Answer", Type: inputTextarea, Required: true,
				Get: func(f faq.FAQ) string { return f.Answer }, Set: func(f *faq.FAQ, v string) { f.Answer = v }},
			{Name: "category", Label: "Category", Type: inputText, Help: "Defaults to " + faq.DefaultCategory + ".",
				Get: func(f faq.FAQ) string { return f.Category }, Set: func(f *faq.FAQ, v string) { f.Category = v }},
			{Name: "sort_order", Label: "Sort order", Type: inputNumber,
				Get: func(f faq.FAQ) string { return strconv.Itoa(f.SortOrder) }, Set: func(f *faq.FAQ, v string) { f.SortOrder = atoiOr(v, 0) }},
			{Name: "is_published", Label: "Published", Type: inputCheckbox,
				Get: func(f faq.FAQ) string { return boolString(f.IsPublished) }, Set: func(f *faq.FAQ, v string) { f.IsPublished = v == "true" }},
		},
	}
}

func gallerySection() *resource[gallery.Image] {
	return &resource[gallery.Image]{
		Path: "/admin/gallery", Singular: "Image", Plural: "Gallery",
		Store: stores.GalleryStore, Kind: orchestrators.GalleryKind,
		Key: func(g gallery.Image) string { return g.ID },
		Columns: []column[gallery.Image]{
			{"Image", func(g gallery.Image) cell { return imageCell(g.ImagePath) }},
			{"Title", func(g gallery.Image) cell { return textCell(g.Title) }},
			{"Category", func(g gallery.Image) cell { return textCell(g.Category) }},
			{"Status", func(g gallery.Image) cell { return flagCell(g.IsPublished, "Visible", "Hidden") }},
		},
		Fields: []field[gallery.Image]{
			{Name: "title", Label: "Title", Type: inputText, Required: true,
				Get: func(g gallery.Image) string { return g.Title }, Set: func(g *gallery.Image, v string) { g.Title = v }},
			{Name: "image_path", Label: "Image", Type: inputImage, Required: true,
				Get: func(g gallery.Image) string { return g.ImagePath }, Set: func(g *gallery.Image, v string) { g.ImagePath = v }},
			{Name: "category", Label: "Category", Type: inputText,
				Get: func(g gallery.Image) string { return g.Category }, Set: func(g *gallery.Image, v string) { g.Category = v }},
			{Name: "description", Label: "Description", Type: inputTextarea,
				Get: func(g gallery.Image) string { return g.Description }, Set: func(g *gallery.Image, v string) { g.Description = v }},
			{Name: "sort_order", Label: "Sort order", Type: inputNumber,
				Get: func(g gallery.Image) string { return strconv.Itoa(g.SortOrder) }, Set: func(g *gallery.Image, v string) { g.SortOrder = atoiOr(v, 0) }},
			{Name: "is_published", Label: "Visible", Type: inputCheckbox,
				Get: func(g gallery.Image) string { return boolString(g.IsPublished) }, Set: func(g *gallery.Image, v string) { g.IsPublished = v == "true" }},
		},
	}
}

func heroSection() *resource[heroslide.Slide] {
	return &resource[heroslide.Slide]{
		Path: "/admin/hero", Singular: "Slide", Plural: "Hero Slides",
		Store: stores.SlideStore, Kind: orchestrators.HeroSlideKind,
		Key: func(s heroslide.Slide) string { return s.ID },
		Columns: []column[heroslide.Slide]{
			{"Image", func(s heroslide.Slide) cell { return imageCell(s.ImageURL) }},
			{"Title", func(s heroslide.Slide) cell { return textCell(carousel.PlainTitle(s.Title)) }},
			{"Order", func(s heroslide.Slide) cell { return textCell(strconv.Itoa(s.SortOrder)) }},
			{"Status", func(s heroslide.Slide) cell { return flagCell(s.IsActive, "Active", "Hidden") }},
		},
		Fields: []field[heroslide.Slide]{
			{Name: "title", Label: "Title", Type: inputTextarea, Required: true,
				Help: "One line per row. Wrap words in *asterisks* to highlight them.",
				Get:  func(s heroslide.Slide) string { return s.Title }, Set: func(s *heroslide.Slide, v string) { s.Title = v }},
			{Name: "subtitle", Label: "Subtitle", Type: inputText,
				Get: func(s heroslide.Slide) string { return s.Subtitle }, Set: func(s *heroslide.Slide, v string) { s.Subtitle = v }},
			{Name: "description", Label: "Description", Type: inputTextarea,
				Get: func(s heroslide.Slide) string { return s.Description }, Set: func(s *heroslide.Slide, v string) { s.Description = v }},
			{Name: "image_url", Label: "Image", Type: inputImage, Required: true,
				Get: func(s heroslide.Slide) string { return s.ImageURL }, Set: func(s *heroslide.Slide, v string) { s.ImageURL = v }},
			{Name: "button_text", Label: "Button text", Type: inputText,
				Get: func(s heroslide.Slide) string { return s.ButtonText }, Set: func(s *heroslide.Slide, v string) { s.ButtonText = v }},
			{Name: "button_link", Label: "Button link", Type: inputText,
				Get: func(s heroslide.Slide) string { return s.ButtonLink }, Set: func(s *heroslide.Slide, v string) { s.ButtonLink = v }},
			{Name: "sort_order", Label: "Sort order", Type: inputNumber,
				Get: func(s heroslide.Slide) string { return strconv.Itoa(s.SortOrder) }, Set: func(s *heroslide.Slide, v string) { s.SortOrder = atoiOr(v, 0) }},
			{Name: "is_active", Label: "Active", Type: inputCheckbox,
				Get: func(s heroslide.Slide) string { return boolString(s.IsActive) }, Set: func(s *heroslide.Slide, v string) { s.IsActive = v == "true" }},
		},
	}
}

func testimonialsSection() *resource[testimonial.Testimonial] {
	return &resource[testimonial.Testimonial]{
		Path: "/admin/testimonials", Singular: "Testimonial", Plural: "Testimonials",
		Store: stores.TestimonialStore, Kind: orchestrators.TestimonialKind,
		Key: func(t testimonial.Testimonial) string { return t.ID },
		Columns: []column[testimonial.Testimonial]{
			{"Name", func(t testimonial.Testimonial) cell { return textCell(t.Name) }},
			{"Vehicle", func(t testimonial.Testimonial) cell { return textCell(t.VehicleModel) }},
			{"Rating", func(t testimonial.Testimonial) cell { return textCell(strconv.Itoa(t.Rating) + "/5") }},
			{"Status", func(t testimonial.Testimonial) cell { return flagCell(t.IsPublished, "Published", "Hidden") }},
		},
		Fields: []field[testimonial.Testimonial]{
			{Name: "name", Label: "Customer name", Type: inputText, Required: true,
				Get: func(t testimonial.Testimonial) string { return t.Name }, Set: func(t *testimonial.Testimonial, v string) { t.Name = v }},
			{Name: "vehicle_model", Label: "Vehicle", Type: inputText,
				Get: func(t testimonial.Testimonial) string { return t.VehicleModel }, Set: func(t *testimonial.Testimonial, v string) { t.VehicleModel = v }},
			{Name: "content", Label: "Testimonial", Type: inputTextarea, Required: true,
				Get: func(t testimonial.Testimonial) string { return t.Content }, Set: func(t *testimonial.Testimonial, v string) { t.Content = v }},
			{Name: "rating", Label: "Rating", Type: inputSelect, Options: []string{"5", "4", "3", "2", "1"},
				Get: func(t testimonial.Testimonial) string { return strconv.Itoa(t.Rating) }, Set: func(t *testimonial.Testimonial, v string) { t.Rating = atoiOr(v, 0) }},
			{Name: "is_published", Label: "Published", Type: inputCheckbox,
				Get: func(t testimonial.Testimonial) string { return boolString(t.IsPublished) }, Set: func(t *testimonial.Testimonial, v string) { t.IsPublished = v == "true" }},
		},
	}
}

func storesSection() *resource[shop.Store] {
	return &resource[shop.Store]{
		Path: "/admin/stores", Singular: "Store", Plural: "Stores",
		Store: stores.ShopStore, Kind: orchestrators.StoreKind,
		Key: func(s shop.Store) string { return s.ID },
		Columns: []column[shop.Store]{
			{"Name", func(s shop.Store) cell { return textCell(s.Name) }},
			{"City", func(s shop.Store) cell { return textCell(s.City) }},
			{"Phone", func(s shop.Store) cell { return textCell(s.Phone) }},
			{"Status", func(s shop.Store) cell { return flagCell(s.IsActive, "Active", "Inactive") }},
		},
		Fields: []field[shop.Store]{
			{Name: "name", Label: "Name", Type: inputText, Required: true,
				Get: func(s shop.Store) string { return s.Name }, Set: func(s *shop.Store, v string) { s.Name = v }},
			{Name: "address", Label: "Address", Type: inputTextarea,
				Get: func(s shop.Store) string { return s.Address }, Set: func(s *shop.Store, v string) { s.Address = v }},
			{Name: "city", Label: "City", Type: inputText, Required: true,
				Get: func(s shop.Store) string { return s.City }, Set: func(s *shop.Store, v string) { s.City = v }},
			{Name: "state", Label: "State", Type: inputText,
				Get: func(s shop.Store) string { return s.State }, Set: func(s *shop.Store, v string) { s.State = v }},
			{Name: "pincode", Label: "Pincode", Type: inputText,
				Get: func(s shop.Store) string { return s.Pincode }, Set: func(s *shop.Store, v string) { s.Pincode = v }},
			{Name: "phone", Label: "Phone", Type: inputText,
				Get: func(s shop.Store) string { return s.Phone }, Set: func(s *shop.Store, v string) { s.Phone = v }},
			{Name: "email", Label: "Email", Type: inputText,
				Get: func(s shop.Store) string { return s.Email }, Set: func(s *shop.Store, v string) { s.Email = v }},
			{Name: "google_map_link", Label: "Google Maps link", Type: inputText,
				Get: func(s shop.Store) string { return s.GoogleMapLink }, Set: func(s *shop.Store, v string) { s.GoogleMapLink = v }},
			{Name: "is_active", Label: "Active", Type: inputCheckbox,
				Get: func(s shop.Store) string { return boolString(s.IsActive) }, Set: func(s *shop.Store, v string) { s.IsActive = v == "true" }},
		},
	}
}
