// Package base64image разбирает изображения, переданные в JSON как data URI
// вида "data:image/png;base64,<данные>".
package base64image

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// MaxSize максимальный размер декодированного изображения в байтах.
const MaxSize = 10 << 20

var (
	// ErrInvalidFormat возвращается, если строка не является base64 data URI.
	ErrInvalidFormat = errors.New("invalid data uri")
	// ErrNotImage возвращается, если содержимое не распознано как изображение.
	ErrNotImage = errors.New("content is not an image")
	// ErrTooLarge возвращается, если изображение превышает MaxSize.
	ErrTooLarge = errors.New("image is too large")
)

var extensions = map[string]string{
	"image/png":  "png",
	"image/jpeg": "jpg",
	"image/gif":  "gif",
	"image/webp": "webp",
	"image/bmp":  "bmp",
}

// Image декодированное изображение.
type Image struct {
	Data        []byte
	Ext         string
	ContentType string
}

// Decode декодирует data URI. Тип содержимого определяется по самим данным,
// заявленный в заголовке тип должен начинаться с "image/".
func Decode(dataURI string) (*Image, error) {
	const op = "base64image.Decode"

	header, payload, ok := strings.Cut(strings.TrimSpace(dataURI), ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidFormat)
	}
	declared := strings.TrimSuffix(strings.TrimPrefix(header, "data:"), ";base64")
	if !strings.HasPrefix(declared, "image/") {
		return nil, fmt.Errorf("%s: %w", op, ErrNotImage)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxSize {
		return nil, fmt.Errorf("%s: %w", op, ErrTooLarge)
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", op, ErrInvalidFormat, err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidFormat)
	}

	contentType := http.DetectContentType(data)
	ext, ok := extensions[contentType]
	if !ok {
		return nil, fmt.Errorf("%s: %w", op, ErrNotImage)
	}
	return &Image{Data: data, Ext: ext, ContentType: contentType}, nil
}
