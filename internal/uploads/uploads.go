// Package uploads keeps user-supplied template images in memory.
//
// Every upload is held until it is released explicitly (replaced by a newer
// upload or deleted by the client) or until the sweeper finds it unused for
// longer than the store's TTL.
package uploads

import (
	"bytes"
	"context"
	"image"
	"net/http"
	"sync"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
	"github.com/cristianadrielbraun/memezzz/internal/catalog"
)

const (
	DefaultTTL      = 30 * time.Minute
	DefaultMaxBytes = 10 << 20

	// MaxSide and MaxPixels bound the decoded size; exports multiply both
	// sides by the render scale.
	MaxSide   = 4096
	MaxPixels = 16_000_000
)

var (
	ErrNotFound = apperr.New(apperr.CodeNotFound, "Upload not found")
	ErrTooLarge = apperr.New(apperr.CodeInvalidInput, "Image is too large")
)

// Upload is one decoded user image.
type Upload struct {
	ID      string
	Name    string
	Mime    string
	Data    []byte
	Image   image.Image
	Created time.Time

	lastUsed time.Time
}

// Template returns a custom template sized to the upload with a top and a
// bottom caption slot.
func (u *Upload) Template() *catalog.Template {
	b := u.Image.Bounds()
	w, h := float64(b.Dx()), float64(b.Dy())
	boxW, boxH := w*0.9, h*0.2
	return &catalog.Template{
		ID:     "upload-" + u.ID,
		Name:   u.Name,
		Path:   "/api/uploads/" + u.ID,
		Width:  b.Dx(),
		Height: b.Dy(),
		TextAreas: []catalog.TextSlot{
			{ID: "top", X: w / 2, Y: h * 0.12, Width: boxW, Height: boxH, Align: catalog.AlignCenter, DefaultText: "Top text"},
			{ID: "bottom", X: w / 2, Y: h * 0.88, Width: boxW, Height: boxH, Align: catalog.AlignCenter, DefaultText: "Bottom text"},
		},
		MaxCharacters: catalog.DefaultMaxCharacters,
	}
}

// Store is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	items    map[string]*Upload
	ttl      time.Duration
	maxBytes int
	now      func() time.Time
}

func NewStore(ttl time.Duration, maxBytes int) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &Store{
		items:    make(map[string]*Upload),
		ttl:      ttl,
		maxBytes: maxBytes,
		now:      time.Now,
	}
}

// Put decodes data and stores it under a fresh id.
func (s *Store) Put(name string, data []byte) (*Upload, error) {
	if len(data) > s.maxBytes {
		return nil, ErrTooLarge
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, err, "Unsupported image format")
	}
	if cfg.Width > MaxSide || cfg.Height > MaxSide || cfg.Width*cfg.Height > MaxPixels {
		return nil, ErrTooLarge
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeInvalidInput, err, "Unsupported image format")
	}
	if name == "" {
		name = "Custom image"
	}
	now := s.now()
	u := &Upload{
		ID:       uuid.NewString(),
		Name:     name,
		Mime:     http.DetectContentType(data),
		Data:     data,
		Image:    img,
		Created:  now,
		lastUsed: now,
	}
	s.mu.Lock()
	s.items[u.ID] = u
	s.mu.Unlock()
	return u, nil
}

// Get returns the upload and marks it as used.
func (s *Store) Get(id string) (*Upload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.items[id]
	if ok {
		u.lastUsed = s.now()
	}
	return u, ok
}

// Release drops an upload. It reports whether the id was held.
func (s *Store) Release(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return false
	}
	delete(s.items, id)
	return true
}

// Replace stores a new upload and releases old, which may be empty.
func (s *Store) Replace(old, name string, data []byte) (*Upload, error) {
	u, err := s.Put(name, data)
	if err != nil {
		return nil, err
	}
	if old != "" {
		s.Release(old)
	}
	return u, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// Sweep releases uploads unused for longer than the TTL and returns how many
// were dropped.
func (s *Store) Sweep() int {
	cutoff := s.now().Add(-s.ttl)
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for id, u := range s.items {
		if u.lastUsed.Before(cutoff) {
			delete(s.items, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}
