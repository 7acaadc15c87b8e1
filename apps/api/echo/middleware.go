package echoapi

import (
	"github.com/labstack/echo/v4"
)

func teacherMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, err := getContextUser(ctx)
			if err != nil {
				return err
			}
			if usr.IsTeacher() {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
