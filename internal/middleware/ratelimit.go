package middleware

import (
	"context"

	"github.com/questx-lab/questboard/internal/common"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/ratelimit"
	"github.com/questx-lab/questboard/pkg/router"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

// RateLimit rejects requests of a client ip whose bucket in store is empty.
func RateLimit(store *ratelimit.Store) router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if store.Allow(xcontext.ClientIP(ctx)) {
			return ctx, nil
		}

		path := ""
		if req := xcontext.HTTPRequest(ctx); req != nil {
			path = req.URL.Path
		}

		common.PromCounters[common.RateLimitedTotal].WithLabelValues(path).Inc()
		return ctx, errorx.New(errorx.TooManyRequests, "Too many requests")
	}
}
