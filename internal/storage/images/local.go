package images

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/magabrotheeeer/foodgram/internal/lib/base64image"
)

// LocalStore хранит изображения в каталоге root и раздаёт их по адресу baseURL.
type LocalStore struct {
	root    string
	baseURL string
}

// NewLocalStore создаёт LocalStore. baseURL задаёт адрес, по которому смонтирован каталог,
// например http://localhost:8080/media/.
func NewLocalStore(root, baseURL string) (*LocalStore, error) {
	const op = "images.NewLocalStore"
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &LocalStore{root: root, baseURL: strings.TrimSuffix(baseURL, "/") + "/"}, nil
}

// Root возвращает каталог с файлами.
func (s *LocalStore) Root() string {
	return s.root
}

// Save записывает изображение в файл.
func (s *LocalStore) Save(_ context.Context, dir string, img *base64image.Image) (string, error) {
	const op = "images.LocalStore.Save"
	key := newKey(dir, img.Ext)
	full := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if err := os.WriteFile(full, img.Data, 0o644); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return key, nil
}

// Delete удаляет файл.
func (s *LocalStore) Delete(_ context.Context, key string) error {
	const op = "images.LocalStore.Delete"
	if key == "" || strings.Contains(key, "..") {
		return nil
	}
	err := os.Remove(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// URL возвращает ссылку на файл.
func (s *LocalStore) URL(key string) string {
	if key == "" {
		return ""
	}
	return s.baseURL + key
}
