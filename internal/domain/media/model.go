package media

import (
	"errors"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MaxSize is the largest accepted upload in bytes.
const MaxSize = 10 << 20

// Domain errors
var (
	ErrEmptyFile       = errors.New("file is empty")
	ErrTooLarge        = errors.New("file exceeds 10 MB")
	ErrUnsupportedType = errors.New("only JPEG, PNG, WebP, GIF and SVG images are accepted")
)

// AllowedTypes maps accepted MIME types to file extensions.
var AllowedTypes = map[string]string{
	"image/jpeg":    ".jpg",
	"image/png":     ".png",
	"image/webp":    ".webp",
	"image/gif":     ".gif",
	"image/svg+xml": ".svg",
}

// File is an uploaded asset.
type File struct {
	ID           string
	Filename     string // stored name
	OriginalName string
	MimeType     string
	Size         int64
	Path         string // public URL
	CreatedAt    time.Time
}

// Validate checks the upload metadata.
// PRE: File struct is populated
// POST: Returns nil if valid, error otherwise
func (f *File) Validate() error {
	if f.Size <= 0 {
		return ErrEmptyFile
	}
	if f.Size > MaxSize {
		return ErrTooLarge
	}
	if _, ok := AllowedTypes[f.MimeType]; !ok {
		return ErrUnsupportedType
	}
	return nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// StoredName builds the on-disk name "<unix-ms>_<sanitised original>".
func StoredName(original string, now time.Time) string {
	base := filepath.Base(strings.ReplaceAll(original, "\\", "/"))
	base = unsafeName.ReplaceAllString(base, "_")
	base = strings.Trim(base, "._")
	if base == "" {
		base = "upload"
	}
	return strconv.FormatInt(now.UnixMilli(), 10) + "_" + base
}
