package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/oklog/ulid/v2"

	"seraphina/pkg/utils"
)

type Kind string

const (
	KindImage    Kind = "image"
	KindDocument Kind = "document"
)

var imageExts = map[string]bool{
	".jpeg": true, ".jpg": true, ".png": true, ".gif": true,
	".webp": true, ".bmp": true, ".tiff": true,
}

var documentExts = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".txt": true,
}

// FileStore persists uploaded files and returns the stored name.
type FileStore interface {
	Save(file *multipart.FileHeader, kind Kind) (string, error)
}

type LocalFileStore struct {
	root     string
	maxBytes int64
}

func NewLocalFileStore(root string, maxBytes int64) (*LocalFileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &LocalFileStore{root: root, maxBytes: maxBytes}, nil
}

func (s *LocalFileStore) Root() string { return s.root }

func allowed(ext string, kind Kind) bool {
	if imageExts[ext] {
		return true
	}
	return kind == KindDocument && documentExts[ext]
}

func (s *LocalFileStore) Save(file *multipart.FileHeader, kind Kind) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowed(ext, kind) {
		return "", utils.WithDetails(utils.ErrInvalidUpload, file.Filename)
	}
	if s.maxBytes > 0 && file.Size > s.maxBytes {
		return "", utils.WithDetails(utils.ErrUploadTooLarge, file.Filename)
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := strings.ToLower(ulid.Make().String()) + ext
	if err := s.write(name, src); err != nil {
		return "", err
	}
	return name, nil
}

// write leaves nothing behind on disk when the copy or the close fails.
func (s *LocalFileStore) write(name string, src io.Reader) (err error) {
	path := filepath.Join(s.root, name)
	dst, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create upload: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return fmt.Errorf("write upload: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close upload: %w", err)
	}
	return nil
}
