// Package health exposes the liveness probe. Registered on the Echo
// root, not the /api group: it must answer even if the API surface is
// misconfigured.
package health

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"homestock.GO/api"
)

func init() {
	api.RegisterGET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
}
