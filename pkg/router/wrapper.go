package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/questx-lab/questboard/pkg/errorx"
	"github.com/questx-lab/questboard/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := xcontext.WithHTTPRequest(router.ctx, c.Request)
		ctx = xcontext.WithClientIP(ctx, c.ClientIP())

		var resp *Response
		err := func() error {
			var err error
			for _, middleware := range router.middlewares {
				if ctx, err = middleware(ctx); err != nil {
					return err
				}
			}

			var req Request
			switch method {
			case http.MethodGet:
				err = c.ShouldBindQuery(&req)
			case http.MethodPost:
				err = c.ShouldBindJSON(&req)
			}
			if err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return errorx.New(errorx.BadRequest, "Invalid request")
			}

			resp, err = handler(ctx, &req)
			return err
		}()

		if err != nil {
			ctx = xcontext.WithError(ctx, err)
			c.JSON(http.StatusOK, newErrorResponse(err))
		} else {
			c.JSON(http.StatusOK, newResponse(resp))
		}

		for _, closer := range router.closers {
			closer(ctx)
		}
	}
}
