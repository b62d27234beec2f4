package compositor

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
)

// ImageLoader resolves a template path to a decoded image.
type ImageLoader interface {
	Load(ctx context.Context, path string) (image.Image, error)
}

// AssetLoader reads template images from a directory, or over HTTP when the
// path is an absolute http(s) URL.
type AssetLoader struct {
	Dir    string
	Client *http.Client
}

// maxRemoteImage caps remote template downloads.
const maxRemoteImage = 20 << 20

func (l AssetLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return l.fetch(ctx, path)
	}
	// Clean against a rooted path so "../" cannot escape Dir.
	full := filepath.Join(l.Dir, filepath.FromSlash(filepath.Clean("/"+path)))
	img, err := imaging.Open(full)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return img, nil
}

func (l AssetLoader) fetch(ctx context.Context, url string) (image.Image, error) {
	client := l.Client
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: status %d", url, resp.StatusCode)
	}
	img, err := imaging.Decode(io.LimitReader(resp.Body, maxRemoteImage))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", url, err)
	}
	return img, nil
}

// ImageMap is an in-memory loader keyed by path.
type ImageMap map[string]image.Image

func (m ImageMap) Load(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, ok := m[path]
	if !ok {
		return nil, fmt.Errorf("image %q not found", path)
	}
	return img, nil
}

// MemoLoader keeps every successfully loaded image, so remote templates are
// downloaded once per process. Paths come from the catalog, which bounds it.
type MemoLoader struct {
	Next ImageLoader

	mu     sync.Mutex
	images map[string]image.Image
}

func NewMemoLoader(next ImageLoader) *MemoLoader {
	return &MemoLoader{Next: next, images: make(map[string]image.Image)}
}

func (m *MemoLoader) Load(ctx context.Context, path string) (image.Image, error) {
	m.mu.Lock()
	img, ok := m.images[path]
	m.mu.Unlock()
	if ok {
		return img, nil
	}
	img, err := m.Next.Load(ctx, path)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	m.images[path] = img
	m.mu.Unlock()
	return img, nil
}
