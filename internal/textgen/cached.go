package textgen

import (
	"context"
	"encoding/json"
	"time"

	"github.com/cristianadrielbraun/memezzz/internal/cache"
	"github.com/cristianadrielbraun/memezzz/internal/compositor"
	"github.com/cristianadrielbraun/memezzz/internal/logging"
)

// CacheTTL bounds how long a generation is reused for an identical request.
const CacheTTL = 10 * time.Minute

// Cached wraps a Generator and reuses results for identical requests.
// Failures are never cached.
type Cached struct {
	Next  Generator
	Cache cache.Cache
	TTL   time.Duration
}

func NewCached(next Generator, c cache.Cache) *Cached {
	return &Cached{Next: next, Cache: c, TTL: CacheTTL}
}

func (g *Cached) Generate(ctx context.Context, req Request) (compositor.Captions, error) {
	raw, err := json.Marshal(req)
	if err != nil {
		return g.Next.Generate(ctx, req)
	}
	key := cache.Key("textgen", raw)

	if data, ok, err := g.Cache.Get(ctx, key); err == nil && ok {
		var c compositor.Captions
		if json.Unmarshal(data, &c) == nil {
			return c, nil
		}
	} else if err != nil {
		logging.FromContext(ctx).Warn("caption cache read failed", "err", err)
	}

	c, err := g.Next.Generate(ctx, req)
	if err != nil {
		return c, err
	}
	if data, err := json.Marshal(c); err == nil {
		if err := g.Cache.Set(ctx, key, data, g.TTL); err != nil {
			logging.FromContext(ctx).Warn("caption cache write failed", "err", err)
		}
	}
	return c, nil
}
