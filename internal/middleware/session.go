package middleware

import (
	"context"

	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

// SessionResponse is implemented by responses which change the session. If
// ok is true and info is nil, the whole session is dropped.
type SessionResponse interface {
	SessionInfo() (info map[string]any, ok bool)
}

func HandleSaveSession() router.MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		sessionResp, ok := xcontext.Response(ctx).(SessionResponse)
		if !ok {
			return nil, nil
		}

		sessionInfo, ok := sessionResp.SessionInfo()
		if !ok {
			return nil, nil
		}

		store := xcontext.SessionStore(ctx)
		req, w := xcontext.HTTPRequest(ctx), xcontext.HTTPWriter(ctx)

		if sessionInfo == nil {
			if err := store.Destroy(req, w); err != nil {
				xcontext.Logger(ctx).Errorf("Cannot destroy session: %v", err)
				return nil, errorx.Unknown
			}

			ctx = xcontext.WithRequestUserID(ctx, "")
			ctx = xcontext.WithRequestUsername(ctx, "")
			return ctx, nil
		}

		// A broken cookie still yields a fresh session, which is overwritten.
		session, err := store.Get(req)
		if session == nil {
			xcontext.Logger(ctx).Errorf("Cannot get session: %v", err)
			return nil, errorx.Unknown
		}

		for k, v := range sessionInfo {
			session.Values[k] = v
		}

		if err := store.Save(req, w, session); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot save session: %v", err)
			return nil, errorx.Unknown
		}

		return nil, nil
	}
}
