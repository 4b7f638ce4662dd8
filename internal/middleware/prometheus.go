package middleware

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gorilla/mux"
	"github.com/yatube-lab/backend/internal/common"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

func WithStartTime() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		return xcontext.WithStartTime(ctx, time.Now()), nil
	}
}

// Prometheus records every request by its route pattern, so that post ids and
// usernames do not create new series.
func Prometheus() router.CloserFunc {
	return func(ctx context.Context) {
		startTime := xcontext.StartTime(ctx)
		req := xcontext.HTTPRequest(ctx)

		code := 0
		if err := xcontext.Error(ctx); err != nil {
			var errx errorx.Error
			if errors.As(err, &errx) {
				code = int(errx.Code)
			} else {
				code = -1
			}
		}

		route := "unmatched"
		if current := mux.CurrentRoute(req); current != nil {
			if tmpl, err := current.GetPathTemplate(); err == nil {
				route = tmpl
			}
		}

		common.PromCounters[common.HTTPRequestTotal].
			WithLabelValues(req.Method, route, fmt.Sprint(code)).Inc()

		if !startTime.IsZero() {
			common.PromHistograms[common.HTTPRequestDurationSeconds].
				WithLabelValues(req.Method, route, fmt.Sprint(code)).
				Observe(time.Since(startTime).Seconds())
		}
	}
}
