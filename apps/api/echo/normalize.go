package echoapi

import (
	"io/ioutil"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/Zhalalov2-code/online-course/core/normalize"
)

const normalizeBodyLimit = "1M"

func registerNormalizeAPI(g *echo.Group, jwt echo.MiddlewareFunc) {
	g.POST("/normalize/:kind", normalizePayload, jwt, middleware.BodyLimit(normalizeBodyLimit))
}

// normalizePayload runs the request body through the normalizer of the given kind.
// Bodies that are not JSON are normalized as a raw string.
func normalizePayload(ctx echo.Context) error {
	body, err := ioutil.ReadAll(ctx.Request().Body)
	if err != nil {
		return errors.Wrap(err, "reading body")
	}
	var payload interface{}
	if decoded, err := normalize.Decode(body); err == nil {
		payload = decoded
	} else {
		payload = string(body)
	}

	out, ok := normalize.ByKind(ctx.Param("kind"), payload)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, errUnknownKind)
	}
	return ctx.JSON(http.StatusOK, out)
}
