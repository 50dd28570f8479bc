package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	applogger "MoverScan/pkg/logger"

	"github.com/labstack/echo/v4"
)

// Recover turns a handler panic into the standard 500 envelope. The stack
// is logged with the request id and never sent to the client.
func Recover(l *applogger.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}
				if r == http.ErrAbortHandler {
					panic(r)
				}
				l.Error("handler panic",
					applogger.String("request_id", GetRequestID(c)),
					applogger.String("route", routeLabel(c)),
					applogger.String("panic", fmt.Sprint(r)),
					applogger.String("stack", string(debug.Stack())),
				)
				if c.Response().Committed {
					err = nil
					return
				}
				err = c.JSON(http.StatusInternalServerError, map[string]interface{}{
					"status":  http.StatusInternalServerError,
					"message": http.StatusText(http.StatusInternalServerError),
					"data":    []map[string]string{{"code": "ERR_INTERNAL", "request_id": GetRequestID(c)}},
				})
			}()
			return next(c)
		}
	}
}
