package compositor

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/disintegration/imaging"

	"github.com/cristianadrielbraun/memezzz/internal/apperr"
)

// NoticeDuration is how long the "saved" notice stays visible.
const NoticeDuration = 3 * time.Second

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonWordChar   = regexp.MustCompile(`[^\w-]`)
)

// untitledName replaces names with nothing left after sanitizing.
const untitledName = "untitled"

// SanitizeName lower-cases name, turns whitespace runs into hyphens and drops
// everything that is not a word character or hyphen.
func SanitizeName(name string) string {
	s := strings.ToLower(name)
	s = whitespaceRun.ReplaceAllString(s, "-")
	s = nonWordChar.ReplaceAllString(s, "")
	if s == "" {
		return untitledName
	}
	return s
}

// Filename is "meme-<sanitized name>-<unix millis>.png".
func Filename(name string, now time.Time) string {
	return fmt.Sprintf("meme-%s-%d.png", SanitizeName(name), now.UnixMilli())
}

// SavedMessage is the confirmation shown after a download.
func SavedMessage(filename string) string {
	return fmt.Sprintf("Meme saved as %q", filename)
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DataURL wraps PNG bytes in a data: URL.
func DataURL(pngData []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngData)
}

// Export is a finished export.
type Export struct {
	Filename string
	PNG      []byte
	Message  string
}

// Exporter serializes exports per editor: while one export for a key is in
// flight, another for the same key fails with apperr.CodeBusy.
type Exporter struct {
	mu       sync.Mutex
	inflight map[string]struct{}
	now      func() time.Time
}

func NewExporter() *Exporter {
	return &Exporter{inflight: make(map[string]struct{}), now: time.Now}
}

// Export renders, encodes and names the result. name is usually the template
// name.
func (x *Exporter) Export(ctx context.Context, key, name string, render func(context.Context) (image.Image, error)) (*Export, error) {
	if !x.acquire(key) {
		return nil, apperr.New(apperr.CodeBusy, "An export is already in progress")
	}
	defer x.release(key)

	img, err := render(ctx)
	if err != nil {
		return nil, err
	}
	data, err := EncodePNG(img)
	if err != nil {
		return nil, apperr.Wrap(apperr.CodeRender, err, "Failed to encode image")
	}
	fn := Filename(name, x.now())
	return &Export{Filename: fn, PNG: data, Message: SavedMessage(fn)}, nil
}

// Busy reports whether an export for key is running.
func (x *Exporter) Busy(key string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	_, ok := x.inflight[key]
	return ok
}

func (x *Exporter) acquire(key string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()
	if _, ok := x.inflight[key]; ok {
		return false
	}
	x.inflight[key] = struct{}{}
	return true
}

func (x *Exporter) release(key string) {
	x.mu.Lock()
	delete(x.inflight, key)
	x.mu.Unlock()
}
