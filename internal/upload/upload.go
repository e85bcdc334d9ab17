// Package upload stores a single submitted file on disk and resolves whether
// it is an image or a video by sniffing its bytes.
package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"recurate/internal/models"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Kind is the resolved media kind of an upload.
type Kind string

const (
	KindImage Kind = "image"
	KindVideo Kind = "video"
)

var imageMIMEs = map[string]struct{}{
	"image/jpeg": {},
	"image/png":  {},
	"image/gif":  {},
	"image/webp": {},
}

var videoMIMEs = map[string]struct{}{
	"video/mp4":       {},
	"video/webm":      {},
	"video/quicktime": {},
}

// Stored describes a persisted upload: its web path and resolved kind.
type Stored struct {
	Path string
	Kind Kind
}

// Store writes uploads under a local directory and serves them at /uploads.
type Store struct {
	dir      string
	maxBytes int64
}

// NewStore creates the upload directory if needed.
func NewStore(dir string, maxSizeMB int) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %s: %w", dir, err)
	}
	return &Store{dir: dir, maxBytes: int64(maxSizeMB) * 1024 * 1024}, nil
}

// Dir returns the on-disk directory uploads are written to.
func (s *Store) Dir() string {
	return s.dir
}

// Save persists the file and resolves its kind. The client-supplied
// Content-Type header is ignored; only sniffed bytes decide.
func (s *Store) Save(fh *multipart.FileHeader) (*Stored, error) {
	return s.save(fh, true)
}

// SaveImage persists the file but accepts images only. Used for profile photos.
func (s *Store) SaveImage(fh *multipart.FileHeader) (*Stored, error) {
	return s.save(fh, false)
}

func (s *Store) save(fh *multipart.FileHeader, allowVideo bool) (*Stored, error) {
	if fh.Size > s.maxBytes {
		return nil, models.NewValidationError(fmt.Sprintf("file exceeds the %d MB upload limit", s.maxBytes/(1024*1024)))
	}

	src, err := fh.Open()
	if err != nil {
		return nil, models.NewValidationError("unable to read uploaded file")
	}
	defer func() { _ = src.Close() }()

	content, err := io.ReadAll(src)
	if err != nil {
		return nil, models.NewValidationError("unable to read uploaded file")
	}

	mtype := mimetype.Detect(content)
	kind, ok := resolveKind(mtype.String())
	if !ok || (kind == KindVideo && !allowVideo) {
		return nil, models.NewValidationError("unsupported file type")
	}

	name := uuid.New().String() + mtype.Extension()
	if err := os.WriteFile(filepath.Join(s.dir, name), content, 0o644); err != nil {
		return nil, models.NewInternalError(fmt.Errorf("write upload: %w", err))
	}

	return &Stored{Path: "/uploads/" + name, Kind: kind}, nil
}

func resolveKind(mime string) (Kind, bool) {
	if _, ok := imageMIMEs[mime]; ok {
		return KindImage, true
	}
	if _, ok := videoMIMEs[mime]; ok {
		return KindVideo, true
	}
	return "", false
}
