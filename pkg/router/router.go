package router

import (
	"context"
	"net/http"
	"time"

	"github.com/athlonhq/backend/pkg/xcontext"
)

// HandlerFunc is the signature of all domain endpoints. The request is
// bound from the query string (GET) or the JSON body (POST) before the
// handler runs.
type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. It can enrich the context or
// abort the request by returning an error.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc always runs at the end of a request, even if a middleware
// or the handler failed. The response writer closer is registered by
// default.
type CloserFunc func(ctx context.Context)

type Router struct {
	mux     *http.ServeMux
	baseCtx context.Context

	befores []MiddlewareFunc
	afters  []MiddlewareFunc
	closers []CloserFunc
}

// New creates a root router. The given context must already carry the
// configs, logger, and database via xcontext.
func New(ctx context.Context) *Router {
	return &Router{
		mux:     http.NewServeMux(),
		baseCtx: ctx,
		closers: []CloserFunc{handleResponse()},
	}
}

// Branch returns a router sharing the same mux but with an independent
// middleware chain, so groups of routes can have their own auth rules.
func (r *Router) Branch() *Router {
	branch := &Router{mux: r.mux, baseCtx: r.baseCtx}
	branch.befores = append(branch.befores, r.befores...)
	branch.afters = append(branch.afters, r.afters...)
	branch.closers = append(branch.closers, r.closers...)
	return branch
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

func (r *Router) Handler() http.Handler {
	return r.mux
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.mux.HandleFunc(pattern, wrapHandler(r, http.MethodPost, handler))
}

// Raw registers a handler that takes over the connection (websocket
// upgrades). Middlewares run, closers do not, and nothing is written
// unless the handler returns an error.
func Raw(r *Router, pattern string, handler func(ctx context.Context) error) {
	befores := append([]MiddlewareFunc{}, r.befores...)

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, req *http.Request) {
		ctx := requestContext(r.baseCtx, w, req)

		for _, m := range befores {
			newCtx, err := m(ctx)
			if err != nil {
				writeError(ctx, err)
				return
			}

			if newCtx != nil {
				ctx = newCtx
			}
		}

		if err := handler(ctx); err != nil {
			writeError(ctx, err)
		}
	})
}

func requestContext(base context.Context, w http.ResponseWriter, req *http.Request) context.Context {
	ctx := xcontext.WithHTTPRequest(base, req)
	ctx = xcontext.WithHTTPWriter(ctx, w)
	ctx = xcontext.WithStartTime(ctx, time.Now())
	return ctx
}
