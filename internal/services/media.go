package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const MaxPhotoSize = 5 << 20

var (
	ErrPhotoTooLarge  = errors.New("photo exceeds 5 MiB")
	ErrPhotoBadFormat = errors.New("photo must be a JPEG, PNG, GIF or WebP image")
)

var allowedPhotoTypes = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// MediaStore keeps uploaded photos on the local disk, bucketed by upload date.
type MediaStore struct {
	Root string
	now  func() time.Time
}

func NewMediaStore(root string) *MediaStore {
	return &MediaStore{Root: root, now: time.Now}
}

// SavePhoto stores the upload as photos/YYYY/MM/DD/<uuid><ext> and returns
// that slash-separated path relative to Root.
func (m *MediaStore) SavePhoto(header *multipart.FileHeader) (string, error) {
	if header.Size > MaxPhotoSize {
		return "", ErrPhotoTooLarge
	}
	ext := strings.ToLower(filepath.Ext(header.Filename))
	want, ok := allowedPhotoTypes[ext]
	if !ok {
		return "", ErrPhotoBadFormat
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	head := make([]byte, 512)
	n, err := io.ReadFull(src, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) {
		return "", ErrPhotoBadFormat
	}
	if http.DetectContentType(head[:n]) != want {
		return "", ErrPhotoBadFormat
	}

	rel := path.Join("photos", m.now().Format("2006/01/02"), uuid.NewString()+ext)
	dst := filepath.Join(m.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create media dir: %w", err)
	}

	body := io.MultiReader(bytes.NewReader(head[:n]), io.LimitReader(src, MaxPhotoSize))
	if err := writeFile(dst, body); err != nil {
		return "", err
	}
	return rel, nil
}

// writeFile copies r into a new file at dst. On any failure the partial
// file is removed.
func writeFile(dst string, r io.Reader) error {
	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create photo: %w", err)
	}
	_, err = io.Copy(out, r)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(dst)
		return fmt.Errorf("write photo: %w", err)
	}
	return nil
}

// Remove deletes a stored photo. Missing files are not an error.
func (m *MediaStore) Remove(rel string) error {
	if rel == "" {
		return nil
	}
	clean := path.Clean("/" + rel)[1:]
	err := os.Remove(filepath.Join(m.Root, filepath.FromSlash(clean)))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}
