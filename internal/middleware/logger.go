package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/router"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

// Logger writes one line per request: method, path, client ip and latency,
// followed by the error code when the handler failed.
func Logger() router.CloserFunc {
	return func(ctx context.Context) {
		req := xcontext.HTTPRequest(ctx)
		line := fmt.Sprintf("%s | %s | %s", req.Method, req.URL.Path, xcontext.ClientIP(ctx))
		if start := xcontext.StartTime(ctx); !start.IsZero() {
			line = fmt.Sprintf("%s | %s", line, time.Since(start).Round(time.Microsecond))
		}

		err := xcontext.Error(ctx)
		if err == nil {
			xcontext.Logger(ctx).Infof("%s", line)
			return
		}

		var errx errorx.Error
		if errors.As(err, &errx) {
			xcontext.Logger(ctx).Warnf("%s | %d", line, errx.Code)
		} else {
			xcontext.Logger(ctx).Errorf("%s | %v", line, err)
		}
	}
}
