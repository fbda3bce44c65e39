// Package media opens the images a seller attaches to a listing. A reference
// is either a local path (optionally file://) or an s3://bucket/key object.
package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/devmarket/internal/client/models"
)

// MaxImageSize caps how much of one image is read into memory.
const MaxImageSize = 10 << 20

var (
	ErrUnsupportedScheme = errors.New("unsupported image reference")
	ErrImageTooLarge     = errors.New("image is too large")
	ErrEmptyImage        = errors.New("image is empty")
)

// Source resolves a reference to an image ready for upload.
type Source interface {
	Open(ctx context.Context, ref string) (models.Image, error)
}

// Router picks a Source by the reference's scheme. S3 may be nil, in which
// case s3:// references are rejected.
type Router struct {
	File Source
	S3   Source
}

func (r *Router) Open(ctx context.Context, ref string) (models.Image, error) {
	scheme, rest, found := strings.Cut(ref, "://")
	if !found {
		return r.File.Open(ctx, ref)
	}

	switch strings.ToLower(scheme) {
	case "file":
		return r.File.Open(ctx, rest)
	case "s3":
		if r.S3 == nil {
			return models.Image{}, fmt.Errorf("%w: %s (s3 is not configured)", ErrUnsupportedScheme, ref)
		}
		return r.S3.Open(ctx, ref)
	}
	return models.Image{}, fmt.Errorf("%w: %s", ErrUnsupportedScheme, ref)
}

// readImage loads at most MaxImageSize bytes from rd. contentType is used when
// it says more than application/octet-stream; otherwise the type is sniffed.
func readImage(name, contentType string, rd io.Reader) (models.Image, error) {
	data, err := io.ReadAll(io.LimitReader(rd, MaxImageSize+1))
	if err != nil {
		return models.Image{}, fmt.Errorf("read %s: %w", name, err)
	}
	if len(data) == 0 {
		return models.Image{}, fmt.Errorf("%w: %s", ErrEmptyImage, name)
	}
	if len(data) > MaxImageSize {
		return models.Image{}, fmt.Errorf("%w: %s", ErrImageTooLarge, name)
	}

	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	return models.Image{Filename: name, ContentType: contentType, Body: bytes.NewReader(data)}, nil
}
