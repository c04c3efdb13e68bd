// Package setting holds site-wide key/value configuration edited from the
// SEO screen.
package setting

import "errors"

// Known keys.
const (
	KeySiteTitle         = "site_title"
	KeySiteDescription   = "site_description"
	KeySiteKeywords      = "site_keywords"
	KeyOGImage           = "og_image"
	KeyGoogleAnalyticsID = "google_analytics_id"
	KeyRobotsTxt         = "robots_txt"
)

// Keys lists every editable key in form order.
var Keys = []string{KeySiteTitle, KeySiteDescription, KeySiteKeywords, KeyOGImage, KeyGoogleAnalyticsID, KeyRobotsTxt}

// ErrUnknownKey is returned for keys the site does not understand.
var ErrUnknownKey = errors.New("unknown setting key")

// Defaults are used for keys that have never been saved.
var Defaults = map[string]string{
	KeySiteTitle:       "Flotenn | Paint Protection, Detailing & Custom Paint",
	KeySiteDescription: "Premium paint protection film, ceramic coating, detailing and custom paint under one roof.",
	KeySiteKeywords:    "ppf, ceramic coating, car detailing, custom paint, car wrap",
	KeyRobotsTxt:       "User-agent: *\nAllow: /\nDisallow: /admin/\n",
}

// Settings is a resolved view of all keys with defaults applied.
type Settings map[string]string

// Resolve overlays stored values on Defaults.
func Resolve(stored map[string]string) Settings {
	out := make(Settings, len(Keys))
	for k, v := range Defaults {
		out[k] = v
	}
	for k, v := range stored {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// IsKnown reports whether key is editable.
func IsKnown(key string) bool {
	for _, k := range Keys {
		if k == key {
			return true
		}
	}
	return false
}

// Get returns the value for key, or "".
func (s Settings) Get(key string) string { return s[key] }
