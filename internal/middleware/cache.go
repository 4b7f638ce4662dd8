package middleware

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/yatube-lab/backend/internal/common"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/pagecache"
	"github.com/yatube-lab/backend/pkg/paginator"
	"github.com/yatube-lab/backend/pkg/render"
	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

// CacheGuard serves a listing from the page cache. Only the fragment of the
// page is cached, the layout is still rendered for the current viewer.
type CacheGuard struct {
	cache    pagecache.Cache
	renderer *render.Renderer
	prefix   string
}

func NewCacheGuard(cache pagecache.Cache, renderer *render.Renderer, prefix string) *CacheGuard {
	return &CacheGuard{
		cache:    cache,
		renderer: renderer,
		prefix:   prefix,
	}
}

// numberedPage is a listing which knows the page number it served.
type numberedPage interface {
	PageNumber() int
}

func requestedPage(ctx context.Context) int {
	page := paginator.ParseNumber(xcontext.HTTPRequest(ctx).URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	return page
}

// Key returns the cache key of the requested page. Page numbers below one and
// invalid numbers share the key of the first page.
func (g *CacheGuard) Key(ctx context.Context) string {
	return fmt.Sprintf("%s:%d", g.prefix, requestedPage(ctx))
}

// Lookup answers the request with the cached fragment if there is one. Cache
// failures are logged and the page is computed as usual.
func (g *CacheGuard) Lookup() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		b, ok, err := g.cache.Get(ctx, g.Key(ctx))
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot get page cache: %v", err)
			return nil, nil
		}

		if !ok {
			common.PromCounters[common.PageCacheRequestTotal].WithLabelValues("miss").Inc()
			return nil, nil
		}

		common.PromCounters[common.PageCacheRequestTotal].WithLabelValues("hit").Inc()
		var fragment render.Fragment
		if err := json.Unmarshal(b, &fragment); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot decode page cache: %v", err)
			return nil, nil
		}

		return xcontext.WithResponse(ctx, &fragment), nil
	}
}

// Store renders the fragment of a fresh page and keeps it for the configured
// TTL. It must run after the handler. Requests past the last page are served
// the clamped page but are not stored, so they cannot add keys.
func (g *CacheGuard) Store() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		page, ok := xcontext.Response(ctx).(PageResponse)
		if !ok {
			return nil, nil
		}

		fragment, err := g.renderer.Fragment(page.TemplateName(), page)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot render %s: %v", page.TemplateName(), err)
			return nil, errorx.Unknown
		}

		b, err := json.Marshal(fragment)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot encode page cache: %v", err)
			return nil, errorx.Unknown
		}

		if numbered, ok := page.(numberedPage); ok && numbered.PageNumber() != requestedPage(ctx) {
			return xcontext.WithResponse(ctx, fragment), nil
		}

		ttl := xcontext.Configs(ctx).Cache.IndexTTL
		if err := g.cache.Set(ctx, g.Key(ctx), b, ttl); err != nil {
			xcontext.Logger(ctx).Warnf("Cannot set page cache: %v", err)
		}

		return xcontext.WithResponse(ctx, fragment), nil
	}
}
