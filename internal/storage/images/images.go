// Package images хранит загруженные изображения рецептов и аватаров
// в локальном каталоге или в S3-совместимом бакете.
package images

import (
	"context"
	"path"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/foodgram/internal/lib/base64image"
)

// Каталоги, в которые раскладываются изображения.
const (
	DirRecipes = "recipes"
	DirAvatars = "avatars"
)

// Store сохраняет изображения и выдаёт публичные ссылки на них.
type Store interface {
	// Save сохраняет изображение в каталоге dir и возвращает его ключ.
	Save(ctx context.Context, dir string, img *base64image.Image) (string, error)
	// Delete удаляет изображение по ключу. Отсутствие объекта не считается ошибкой.
	Delete(ctx context.Context, key string) error
	// URL возвращает абсолютную ссылку на изображение.
	URL(key string) string
}

func newKey(dir, ext string) string {
	return path.Join(dir, uuid.NewString()+"."+ext)
}
