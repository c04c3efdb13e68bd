package web

import (
	"strings"

	"flotenn/internal/domain/account"
)

// navEntry is one back-office section.
type navEntry struct {
	Path  string
	Label string
	Icon  string
	Title string // top bar title
	Roles account.RoleSet
}

// adminSections lists the back-office sections in sidebar order. The same
// role sets gate the routes.
var adminSections = []navEntry{
	{"/admin/dashboard", "Dashboard", "fa-home", "Admin Dashboard", account.Everyone},
	{"/admin/enquiries", "Enquiries", "fa-envelope", "Enquiries", account.Everyone},
	{"/admin/pages", "Pages (Privacy/Terms)", "fa-file-alt", "Pages", account.Editors},
	{"/admin/services", "Services", "fa-tools", "Services", account.Editors},
	{"/admin/hero", "Hero Slider", "fa-images", "Hero Slider", account.Editors},
	{"/admin/posts", "Blog Posts", "fa-newspaper", "Blog Posts", account.Everyone},
	{"/admin/users", "Users", "fa-users", "Users", account.Admins},
	{"/admin/logs", "Activity Logs", "fa-history", "Activity Logs", account.Admins},
	{"/admin/testimonials", "Testimonials", "fa-quote-left", "Testimonials", account.Editors},
	{"/admin/gallery", "Gallery", "fa-images", "Gallery", account.Editors},
	{"/admin/faqs", "FAQs", "fa-question-circle", "FAQs", account.Everyone},
	{"/admin/seo", "SEO Settings", "fa-search-location", "SEO Settings", account.Editors},
	{"/admin/bookings", "Bookings", "fa-calendar-check", "Bookings", account.Admins},
	{"/admin/stores", "Stores", "fa-store", "Stores", account.Admins},
}

// pageTitles and pageRoles cover paths that have no sidebar entry.
var (
	pageTitles = map[string]string{
		"/admin/media":  "Media",
		"/admin/outbox": "Email Outbox",
	}
	pageRoles = map[string]account.RoleSet{
		"/admin/media":  account.Editors,
		"/admin/outbox": account.Admins,
	}
)

// NavItem is a rendered sidebar link.
type NavItem struct {
	Path   string
	Label  string
	Icon   string
	Active bool
}

// navFor returns the sidebar entries role may see, marking the one that
// contains path.
// POST: every returned entry passes account.IsAuthorized for role
func navFor(role account.Role, path string) []NavItem {
	items := make([]NavItem, 0, len(adminSections))
	for _, s := range adminSections {
		if !account.IsAuthorized(role, s.Roles) {
			continue
		}
		items = append(items, NavItem{
			Path:   s.Path,
			Label:  s.Label,
			Icon:   s.Icon,
			Active: strings.HasPrefix(path, s.Path),
		})
	}
	return items
}

// pageTitle returns the top bar title for an admin path.
func pageTitle(path string) string {
	for _, s := range adminSections {
		if strings.HasPrefix(path, s.Path) {
			return s.Title
		}
	}
	for prefix, title := range pageTitles {
		if strings.HasPrefix(path, prefix) {
			return title
		}
	}
	return "Dashboard"
}

// sectionRoles returns the role set guarding the section at path.
func sectionRoles(path string) account.RoleSet {
	for _, s := range adminSections {
		if s.Path == path {
			return s.Roles
		}
	}
	if roles, ok := pageRoles[path]; ok {
		return roles
	}
	return account.Admins
}

// statusBadge maps a workflow status to its badge class.
func statusBadge(status string) string {
	switch status {
	case "confirmed", "completed", "contacted", "resolved", "published":
		return "status-success"
	case "cancelled", "urgent", "closed":
		return "status-danger"
	default:
		return "status-warning"
	}
}
