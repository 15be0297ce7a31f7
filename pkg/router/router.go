package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)

// MiddlewareFunc runs before the handler. A returned error stops the chain and
// is written as the response.
type MiddlewareFunc func(ctx context.Context) (context.Context, error)

// CloserFunc runs after the response was written, whether or not the handler
// failed.
type CloserFunc func(ctx context.Context)

type Router struct {
	engine *gin.Engine
	inner  gin.IRouter

	ctx         context.Context
	middlewares []MiddlewareFunc
	closers     []CloserFunc
}

// New returns a router whose handlers receive a context derived from ctx.
func New(ctx context.Context) *Router {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{engine: engine, inner: engine, ctx: ctx}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

// Branch returns a copy of the router sharing the same engine. Middlewares
// added to the branch do not affect the parent.
func (r *Router) Branch() *Router {
	return &Router{
		engine:      r.engine,
		inner:       r.inner,
		ctx:         r.ctx,
		middlewares: append([]MiddlewareFunc{}, r.middlewares...),
		closers:     append([]CloserFunc{}, r.closers...),
	}
}

func (r *Router) Before(middleware MiddlewareFunc) {
	r.middlewares = append(r.middlewares, middleware)
}

func (r *Router) After(closer CloserFunc) {
	r.closers = append(r.closers, closer)
}

// Handle mounts a plain http.Handler, bypassing the middlewares.
func (r *Router) Handle(method, pattern string, handler http.Handler) {
	r.inner.Handle(method, pattern, gin.WrapH(handler))
}

func (r *Router) Handler() http.Handler {
	return r.engine
}
