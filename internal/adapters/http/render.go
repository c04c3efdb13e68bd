package web

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/gorilla/csrf"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldhtml "github.com/yuin/goldmark/renderer/html"

	"flotenn/internal/adapters/http/middleware"
	"flotenn/internal/application/projections"
	"flotenn/internal/domain/carousel"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// staticFiles serves the embedded assets at /static/.
func staticFiles() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServerFS(sub))
}

const (
	publicLayout = "layout.html"
	adminLayout  = "admin_layout.html"
	authLayout   = "auth_layout.html"
	partials     = "partials.html"
)

// Content bodies are Markdown that may embed HTML. Rendered output is
// sanitised before it reaches a page.
var (
	markdown = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(goldhtml.WithUnsafe()),
	)
	contentPolicy = bluemonday.UGCPolicy()
	textPolicy    = bluemonday.StrictPolicy()
)

// renderMarkdown converts a content body to safe HTML.
func renderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		slog.Warn("markdown_render_failed", "error", err)
		return template.HTML(contentPolicy.Sanitize(src))
	}
	return template.HTML(contentPolicy.Sanitize(buf.String()))
}

// plainText strips all markup from s.
func plainText(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// truncate shortens s to n runes, adding an ellipsis when cut.
func truncate(n int, s string) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return strings.TrimSpace(string(r[:n])) + "..."
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02 Jan 2006, 15:04")
}

// formatPrice renders rupees with Indian digit grouping, e.g. ₹1,25,000.
func formatPrice(v float64) string {
	s := strconv.FormatInt(int64(v+0.5), 10)
	if len(s) <= 3 {
		return "₹" + s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return "₹" + strings.Join(groups, ",") + "," + tail
}

var baseFuncs = template.FuncMap{
	// Replaced per request.
	"csrfField": func() template.HTML { return "" },
	"csrfToken": func() string { return "" },

	"markdown":       renderMarkdown,
	"plain":          plainText,
	"excerpt":        func(n int, s string) string { return truncate(n, plainText(s)) },
	"truncate":       truncate,
	"formatDate":     formatDate,
	"formatDateTime": formatDateTime,
	"price":          formatPrice,
	"statusBadge":    statusBadge,
	"titleLines":     carousel.ParseTitle,
	"plainTitle":     carousel.PlainTitle,
	"add":            func(a, b int) int { return a + b },
	"label": func(s string) string {
		s = strings.ReplaceAll(s, "_", " ")
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

var (
	templatesOnce sync.Once
	templates     map[string]*template.Template
	templatesErr  error
)

// layoutFor picks the layout a page renders into.
func layoutFor(name string) string {
	switch {
	case strings.HasPrefix(name, "admin_"):
		return adminLayout
	case strings.HasPrefix(name, "auth_"):
		return authLayout
	default:
		return publicLayout
	}
}

// loadTemplates parses every page with its layout and the shared partials.
func loadTemplates() (map[string]*template.Template, error) {
	templatesOnce.Do(func() {
		names, err := fs.Glob(templateFS, "templates/*.html")
		if err != nil {
			templatesErr = err
			return
		}
		set := make(map[string]*template.Template, len(names))
		for _, p := range names {
			name := path.Base(p)
			if name == publicLayout || name == adminLayout || name == authLayout || name == partials {
				continue
			}
			layout := layoutFor(name)
			tpl, err := template.New(layout).Funcs(baseFuncs).ParseFS(templateFS,
				"templates/"+layout, "templates/"+partials, p)
			if err != nil {
				templatesErr = fmt.Errorf("parse %s: %w", name, err)
				return
			}
			set[name] = tpl
		}
		templates = set
	})
	return templates, templatesErr
}

// renderTemplate renders a page with status 200.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data map[string]any) {
	renderTemplateStatus(w, r, http.StatusOK, name, data)
}

// renderTemplateStatus renders page name inside its layout. Session, nav and
// site settings are added to data.
func renderTemplateStatus(w http.ResponseWriter, r *http.Request, status int, name string, data map[string]any) {
	set, err := loadTemplates()
	if err != nil {
		internalError(w, err)
		return
	}
	base, ok := set[name]
	if !ok {
		internalError(w, fmt.Errorf("unknown template %q", name))
		return
	}
	tpl, err := base.Clone()
	if err != nil {
		internalError(w, err)
		return
	}
	tpl.Funcs(template.FuncMap{
		"csrfField": func() template.HTML { return csrf.TemplateField(r) },
		"csrfToken": func() string { return csrf.Token(r) },
	})

	if data == nil {
		data = map[string]any{}
	}
	data["Path"] = r.URL.Path
	data["Year"] = timeNow().Year()
	if sess, ok := middleware.GetSessionFromContext(r.Context()); ok {
		data["Session"] = sess
		if layoutFor(name) == adminLayout {
			data["Nav"] = navFor(sess.Role, r.URL.Path)
			data["PageTitle"] = pageTitle(r.URL.Path)
			data["Today"] = formatDate(timeNow())
		}
	}
	if _, ok := data["Site"]; !ok && layoutFor(name) == publicLayout {
		data["Site"] = projections.QueryGetSettings(r.Context(), stores.SettingStore)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, layoutFor(name), data); err != nil {
		internalError(w, fmt.Errorf("render %s: %w", name, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
