package media

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"
	"unicode"

	"github.com/Domenick1991/airport/config"
	"github.com/google/uuid"
)

var (
	ErrTooLarge        = errors.New("file is too large")
	ErrUnsupportedType = errors.New("unsupported file type")
	ErrEmptyFile       = errors.New("file is empty")
)

var extensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// Store keeps uploaded files on local disk and serves them under URLPrefix.
type Store struct {
	dir          string
	urlPrefix    string
	maxSize      int64
	allowedTypes []string
}

func NewStore(cfg config.MediaConfig) *Store {
	return &Store{
		dir:          cfg.Dir,
		urlPrefix:    strings.TrimSuffix(cfg.URLPrefix, "/"),
		maxSize:      cfg.MaxSizeBytes,
		allowedTypes: cfg.AllowedTypes,
	}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) URLPrefix() string {
	return s.urlPrefix
}

// Save writes the upload as <folder>/<slug(name)>-<uuid><ext> and returns its
// public URL.
func (s *Store) Save(fh *multipart.FileHeader, folder, name string) (string, error) {
	if fh.Size > s.maxSize {
		return "", fmt.Errorf("%w: maximum is %d bytes", ErrTooLarge, s.maxSize)
	}

	src, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		if errors.Is(err, io.EOF) {
			return "", ErrEmptyFile
		}
		return "", err
	}
	mimeType := http.DetectContentType(head[:n])
	if !slices.Contains(s.allowedTypes, mimeType) {
		return "", fmt.Errorf("%w %s, allowed: %s", ErrUnsupportedType, mimeType, strings.Join(s.allowedTypes, ", "))
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		return "", err
	}

	ext, ok := extensions[mimeType]
	if !ok {
		ext = strings.ToLower(filepath.Ext(fh.Filename))
	}
	filename := fmt.Sprintf("%s-%s%s", Slugify(name), uuid.NewString(), ext)

	target := filepath.Join(s.dir, folder)
	if err := os.MkdirAll(target, 0o755); err != nil {
		return "", err
	}
	dst, err := os.Create(filepath.Join(target, filename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, io.LimitReader(src, s.maxSize)); err != nil {
		return "", err
	}
	return path.Join(s.urlPrefix, folder, filename), nil
}

// Delete removes a file previously returned by Save. Unknown URLs and files
// already gone are ignored.
func (s *Store) Delete(url string) error {
	rel, ok := strings.CutPrefix(url, s.urlPrefix+"/")
	if !ok || rel == "" || strings.Contains(rel, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, filepath.FromSlash(rel)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	slug := strings.TrimSuffix(b.String(), "-")
	if slug == "" {
		return "file"
	}
	return slug
}
