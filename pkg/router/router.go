package router

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/yatube-lab/backend/pkg/errorx"
	"github.com/yatube-lab/backend/pkg/xcontext"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc may return a nil context to keep the current one.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs at the end of every request, even if a middleware or the
// handler failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	ctx     context.Context
	mux     *mux.Router
	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a router. Every request context is derived from ctx, so ctx
// should carry the configs, logger, database and other shared dependencies.
func New(ctx context.Context) *Router {
	return &Router{
		ctx: ctx,
		mux: mux.NewRouter(),
	}
}

// Branch returns a router which shares routes with r but owns a copy of its
// middlewares. Middlewares added to the branch do not affect r.
func (r *Router) Branch() *Router {
	clone := &Router{
		ctx:     r.ctx,
		mux:     r.mux,
		befores: make([]MiddlewareFunc, len(r.befores)),
		afters:  make([]MiddlewareFunc, len(r.afters)),
		closers: make([]CloserFunc, len(r.closers)),
	}

	copy(clone.befores, r.befores)
	copy(clone.afters, r.afters)
	copy(clone.closers, r.closers)
	return clone
}

func (r *Router) Before(middlewares ...MiddlewareFunc) {
	r.befores = append(r.befores, middlewares...)
}

func (r *Router) After(middlewares ...MiddlewareFunc) {
	r.afters = append(r.afters, middlewares...)
}

func (r *Router) AddCloser(closers ...CloserFunc) {
	r.closers = append(r.closers, closers...)
}

// Handle registers a plain http.Handler which bypasses the middlewares.
func (r *Router) Handle(pattern string, handler http.Handler) {
	r.mux.Handle(pattern, handler)
}

// PathPrefix registers a plain http.Handler for every path under prefix.
func (r *Router) PathPrefix(prefix string, handler http.Handler) {
	r.mux.PathPrefix(prefix).Handler(handler)
}

// NotFound makes unmatched paths go through the middlewares of r with an
// errorx.NotFound error.
func (r *Router) NotFound() {
	r.mux.NotFoundHandler = r.serve(func(ctx context.Context) (context.Context, error) {
		return nil, errorx.New(errorx.NotFound, "Page not found")
	})
}

func (r *Router) Handler() http.Handler {
	return r.mux
}

// GET registers handler with the middlewares r has at this moment, so every
// middleware must be added before the routes.
func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.route(http.MethodGet, pattern, wrapHandler(handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.route(http.MethodPost, pattern, wrapHandler(handler))
}

func (r *Router) route(method, pattern string, handler MiddlewareFunc) {
	r.mux.Handle(pattern, r.serve(handler)).Methods(method)
}

// serve runs befores, handler and afters in order. Once one of them fails the
// rest is skipped. A before middleware may answer the request itself by
// setting a response, the handler is skipped in this case.
func (r *Router) serve(handler MiddlewareFunc) http.Handler {
	befores, afters, closers := r.befores, r.afters, r.closers

	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		ctx := xcontext.WithHTTPRequest(r.ctx, req)
		ctx = xcontext.WithHTTPWriter(ctx, w)

		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		run := func(f MiddlewareFunc) bool {
			newCtx, err := f(ctx)
			if newCtx != nil {
				ctx = newCtx
			}

			if err != nil {
				ctx = xcontext.WithError(ctx, err)
				return false
			}

			return true
		}

		for _, before := range befores {
			if !run(before) {
				return
			}
		}

		if xcontext.Response(ctx) == nil {
			if !run(handler) {
				return
			}
		}

		for _, after := range afters {
			if !run(after) {
				return
			}
		}
	})
}

func wrapHandler[Request, Response any](handler HandlerFunc[Request, Response]) MiddlewareFunc {
	return func(ctx context.Context) (context.Context, error) {
		req, err := parseRequest[Request](ctx)
		if err != nil {
			return nil, err
		}

		resp, err := handler(ctx, req)
		if err != nil {
			return nil, err
		}

		if resp == nil {
			return nil, nil
		}

		return xcontext.WithResponse(ctx, resp), nil
	}
}
