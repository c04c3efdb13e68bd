package orchestrators

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"flotenn/internal/domain/audit"
	"flotenn/internal/domain/media"
)

// FileStorage stores uploaded bytes and returns their public reference.
type FileStorage interface {
	Upload(ctx context.Context, name string, r io.Reader) (string, error)
	Remove(ctx context.Context, name string) error
}

// MediaStoreForUpload defines the store interface needed by UploadMedia.
type MediaStoreForUpload interface {
	Create(ctx context.Context, f media.File) (media.File, error)
}

// UploadMediaInput carries one uploaded file.
type UploadMediaInput struct {
	OriginalName string
	MimeType     string // as declared by the browser
	Size         int64
	Body         io.Reader
	ActorID      string
}

// UploadMediaDeps holds dependencies for UploadMedia.
type UploadMediaDeps struct {
	Files      FileStorage
	MediaStore MediaStoreForUpload
	Activity   RecordActivityDeps
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteUploadMedia stores an image and records it in the media library.
// PRE: Body yields Size bytes
// POST: File stored and a media record points at its public URL
// INVARIANT: A failed record insert removes the stored file
func ExecuteUploadMedia(ctx context.Context, input UploadMediaInput, deps UploadMediaDeps) (media.File, error) {
	now := deps.Now()
	f := media.File{
		ID:           deps.GenerateID(),
		Filename:     media.StoredName(input.OriginalName, now),
		OriginalName: input.OriginalName,
		MimeType:     input.MimeType,
		Size:         input.Size,
		CreatedAt:    now,
	}
	if err := f.Validate(); err != nil {
		return media.File{}, err
	}

	body := bufio.NewReader(io.LimitReader(input.Body, media.MaxSize+1))
	if err := checkSniffedType(body, f.MimeType); err != nil {
		return media.File{}, err
	}
	f.Filename = withExtension(f.Filename, media.AllowedTypes[f.MimeType])

	ref, err := deps.Files.Upload(ctx, f.Filename, body)
	if err != nil {
		return media.File{}, fmt.Errorf("store upload: %w", err)
	}
	f.Path = ref

	saved, err := deps.MediaStore.Create(ctx, f)
	if err != nil {
		if rmErr := deps.Files.Remove(ctx, f.Filename); rmErr != nil {
			slog.Error("media_cleanup_failed", "filename", f.Filename, "error", rmErr)
		}
		return media.File{}, fmt.Errorf("record upload: %w", err)
	}

	slog.Info("media_uploaded", "media_id", saved.ID, "filename", saved.Filename, "size", saved.Size)
	logActivity(ctx, RecordActivityInput{
		UserID: input.ActorID, Action: audit.ActionUpload,
		EntityType: "media", EntityID: saved.ID, Details: saved.OriginalName,
	}, deps.Activity)
	return saved, nil
}

// checkSniffedType rejects raster uploads whose leading bytes disagree with
// the declared type. SVG is text and sniffs as XML or plain text.
func checkSniffedType(r *bufio.Reader, declared string) error {
	head, err := r.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, bufio.ErrBufferFull) {
		return fmt.Errorf("read upload: %w", err)
	}
	if len(head) == 0 {
		return media.ErrEmptyFile
	}
	if declared == "image/svg+xml" {
		return nil
	}
	if sniffed := http.DetectContentType(head); sniffed != declared {
		return media.ErrUnsupportedType
	}
	return nil
}

func withExtension(name, ext string) string {
	for i := len(name) - 1; i >= 0 && name[i] != '_'; i-- {
		if name[i] == '.' {
			return name[:i] + ext
		}
	}
	return name + ext
}

// MediaStoreForDelete defines the store interface needed by DeleteMedia.
type MediaStoreForDelete interface {
	Get(ctx context.Context, key string) (media.File, error)
	Delete(ctx context.Context, key string) error
}

// DeleteMediaDeps holds dependencies for DeleteMedia.
type DeleteMediaDeps struct {
	Files      FileStorage
	MediaStore MediaStoreForDelete
	Activity   RecordActivityDeps
}

// ExecuteDeleteMedia removes a media record and its stored file.
// PRE: id names an existing media record
// POST: Record removed; a file that cannot be removed is logged, not returned
func ExecuteDeleteMedia(ctx context.Context, id, actorID string, deps DeleteMediaDeps) error {
	f, err := deps.MediaStore.Get(ctx, id)
	if err != nil {
		return fmt.Errorf("load media: %w", err)
	}
	if err := deps.MediaStore.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	if err := deps.Files.Remove(ctx, f.Filename); err != nil {
		slog.Error("media_cleanup_failed", "filename", f.Filename, "error", err)
	}

	slog.Info("media_deleted", "media_id", id, "filename", f.Filename)
	logActivity(ctx, RecordActivityInput{
		UserID: actorID, Action: audit.ActionDelete,
		EntityType: "media", EntityID: id, Details: f.OriginalName,
	}, deps.Activity)
	return nil
}
