package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/render"
	"github.com/yatube-lab/backend/pkg/router"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type PageResponse interface {
	TemplateName() string
}

type errorPage struct {
	Path string
}

// Render writes the final response: the error page or login redirect if the
// request failed, otherwise the page of the response. Responses which are
// neither a page nor a rendered fragment are ignored.
func Render(renderer *render.Renderer) router.CloserFunc {
	return func(ctx context.Context) {
		if err := xcontext.Error(ctx); err != nil {
			renderError(ctx, renderer, err)
			return
		}

		var fragment *render.Fragment
		switch resp := xcontext.Response(ctx).(type) {
		case *render.Fragment:
			fragment = resp
		case PageResponse:
			var err error
			fragment, err = renderer.Fragment(resp.TemplateName(), resp)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot render %s: %v", resp.TemplateName(), err)
				renderError(ctx, renderer, errorx.Unknown)
				return
			}
		default:
			return
		}

		writePage(ctx, renderer, http.StatusOK, fragment)
	}
}

func renderError(ctx context.Context, renderer *render.Renderer, err error) {
	req := xcontext.HTTPRequest(ctx)

	var errx errorx.Error
	if !errors.As(err, &errx) {
		errx = errorx.Unknown
	}

	status, name := http.StatusInternalServerError, "core/500.html"
	switch errx.Code {
	case errorx.Unauthenticated:
		loginURL := xcontext.Configs(ctx).Auth.LoginURL + "?next=" + url.QueryEscape(req.URL.RequestURI())
		http.Redirect(xcontext.HTTPWriter(ctx), req, loginURL, http.StatusFound)
		return
	case errorx.NotFound:
		status, name = http.StatusNotFound, "core/404.html"
	case errorx.PermissionDenied:
		status, name = http.StatusForbidden, "core/403.html"
	case errorx.BadRequest:
		status, name = http.StatusBadRequest, "core/400.html"
	}

	fragment, err := renderer.Fragment(name, errorPage{Path: req.URL.Path})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot render %s: %v", name, err)
		http.Error(xcontext.HTTPWriter(ctx), http.StatusText(status), status)
		return
	}

	writePage(ctx, renderer, status, fragment)
}

func writePage(ctx context.Context, renderer *render.Renderer, status int, fragment *render.Fragment) {
	w := xcontext.HTTPWriter(ctx)
	viewer := render.Viewer{
		ID:       xcontext.RequestUserID(ctx),
		Username: xcontext.RequestUsername(ctx),
	}

	buf := new(bytes.Buffer)
	if err := renderer.Page(buf, fragment, viewer); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot render layout of %s: %v", fragment.Template, err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write the response: %v", err)
	}
}
