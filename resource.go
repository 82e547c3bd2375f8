// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package sketch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register GIF decoder
	_ "image/jpeg" // register JPEG decoder
	_ "image/png"  // register PNG decoder
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/h2non/filetype"
	_ "golang.org/x/image/bmp"  // register BMP decoder
	_ "golang.org/x/image/tiff" // register TIFF decoder
	_ "golang.org/x/image/webp" // register WebP decoder
)

// Resource errors.
var (
	// ErrEmptyResource is returned when image data is empty.
	ErrEmptyResource = errors.New("sketch: empty image resource")

	// ErrUnsupportedResource is returned when data is not a recognized image.
	ErrUnsupportedResource = errors.New("sketch: unsupported image resource")

	// ErrDecode is returned when image data cannot be decoded.
	ErrDecode = errors.New("sketch: image decode failed")

	// ErrReleased is returned when decoding a released resource.
	ErrReleased = errors.New("sketch: image resource released")
)

// ImageSource is a read-only, shareable image that can be decoded on
// demand. Placement decodes it once; every export decodes it again.
// Implementations must be safe for concurrent Decode calls.
type ImageSource interface {
	Decode(ctx context.Context) (image.Image, error)
}

// placedSource is implemented by sources that track how many placed images
// refer to them. The stack retains a source when an image is placed and
// drops it when the image's layer is removed.
type placedSource interface {
	retain()
	drop()
}

// pinnable is implemented by sources whose later release must not affect a
// snapshot taken before it. pin returns a source that stays decodable.
type pinnable interface {
	pin() ImageSource
}

// Resource is an ImageSource backed by encoded image bytes.
//
// The bytes are detected as an image before the Resource is created, so a
// non-image file never reaches placement. Release drops the bytes; later
// decodes fail with ErrReleased. The stack releases a Resource when the last
// layer holding one of its placed images is removed. Exports already
// snapshotted keep decoding the bytes they captured.
type Resource struct {
	mu   sync.RWMutex
	data []byte
	mime string
	refs atomic.Int64
}

var (
	_ ImageSource  = (*Resource)(nil)
	_ placedSource = (*Resource)(nil)
	_ pinnable     = (*Resource)(nil)
)

// NewResource creates a Resource from encoded image bytes.
// The data is copied. Non-image content is rejected with
// ErrUnsupportedResource.
func NewResource(data []byte) (*Resource, error) {
	if len(data) == 0 {
		return nil, ErrEmptyResource
	}
	kind, err := filetype.Image(data)
	if err != nil || kind == filetype.Unknown {
		logFor(logResource).Warn("sketch: rejected non-image resource", "bytes", len(data))
		return nil, ErrUnsupportedResource
	}
	owned := make([]byte, len(data))
	copy(owned, data)
	return &Resource{data: owned, mime: kind.MIME.Value}, nil
}

// ReadResource reads all of r and creates a Resource from it.
func ReadResource(r io.Reader) (*Resource, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("sketch: read resource: %w", err)
	}
	return NewResource(data)
}

// LoadResource reads an image file and creates a Resource from it.
func LoadResource(path string) (*Resource, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("sketch: open resource: %w", err)
	}
	return NewResource(data)
}

// MIME returns the detected media type, e.g. "image/png".
func (r *Resource) MIME() string {
	return r.mime
}

// Decode decodes the stored bytes.
func (r *Resource) Decode(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	data := r.data
	r.mu.RUnlock()
	if data == nil {
		return nil, ErrReleased
	}
	return decodeBytes(data, r.mime)
}

func decodeBytes(data []byte, mime string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrDecode, mime, err)
	}
	return img, nil
}

// Placements returns the number of placed images currently referring to r.
func (r *Resource) Placements() int {
	return int(r.refs.Load())
}

func (r *Resource) retain() { r.refs.Add(1) }

func (r *Resource) drop() {
	if r.refs.Add(-1) <= 0 {
		r.refs.Store(0)
		r.Release()
	}
}

// pin captures the current bytes. The bytes are never mutated, so the
// pinned source stays valid after Release.
func (r *Resource) pin() ImageSource {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.data == nil {
		return r
	}
	return pinnedBytes{data: r.data, mime: r.mime}
}

// pinnedBytes decodes bytes captured from a Resource.
type pinnedBytes struct {
	data []byte
	mime string
}

func (p pinnedBytes) Decode(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return decodeBytes(p.data, p.mime)
}

// Release drops the encoded bytes. It is called when the layer owning the
// placed image is removed. Release is idempotent.
func (r *Resource) Release() {
	r.mu.Lock()
	r.data = nil
	r.mu.Unlock()
}

// Released reports whether Release has been called.
func (r *Resource) Released() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.data == nil
}

// staticSource is an ImageSource over an already decoded image.
type staticSource struct {
	img image.Image
}

// StaticImage wraps an already decoded image as an ImageSource.
func StaticImage(img image.Image) ImageSource {
	return staticSource{img: img}
}

func (s staticSource) Decode(ctx context.Context) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.img == nil {
		return nil, ErrDecode
	}
	return s.img, nil
}
