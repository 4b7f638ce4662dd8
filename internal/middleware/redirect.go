package middleware

import (
	"context"
	"net/http"

	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type RedirectResponse interface {
	RedirectInfo() (int, string)
}

func HandleRedirect() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		redirectResp, ok := xcontext.Response(ctx).(RedirectResponse)
		if !ok {
			return nil, nil
		}

		code, uri := redirectResp.RedirectInfo()
		if uri == "" {
			return nil, nil
		}

		http.Redirect(xcontext.HTTPWriter(ctx), xcontext.HTTPRequest(ctx), uri, code)

		// After rendering redirect response, do not render another response to client.
		return xcontext.WithResponse(ctx, nil), nil
	}
}
