package middleware

import (
	"context"

	"github.com/yatube-lab/backend/internal/model"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

// ImportUser reads the access token from the session and imports the user
// into the context. Requests without a valid token stay anonymous.
func ImportUser() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sess, err := xcontext.SessionStore(ctx).Get(xcontext.HTTPRequest(ctx))
		if err != nil || sess == nil {
			return nil, nil
		}

		token, ok := sess.Values[xcontext.Configs(ctx).Auth.AccessToken.Name].(string)
		if !ok || token == "" {
			return nil, nil
		}

		var info model.AccessToken
		if err := xcontext.TokenEngine(ctx).Verify(token, &info); err != nil {
			xcontext.Logger(ctx).Debugf("Invalid access token: %v", err)
			return nil, nil
		}

		ctx = xcontext.WithRequestUserID(ctx, info.ID)
		ctx = xcontext.WithRequestUsername(ctx, info.Username)
		return ctx, nil
	}
}

// Authenticate rejects anonymous requests.
func Authenticate() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		if xcontext.RequestUserID(ctx) == "" {
			return nil, errorx.New(errorx.Unauthenticated, "You need to log in before")
		}

		return nil, nil
	}
}
