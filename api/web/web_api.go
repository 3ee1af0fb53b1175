// Package web serves the built SPA client when a dist directory is
// present. A root-level route module, applied after the /api groups so
// API paths keep priority.
package web

import (
	"os"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"

	"homestock.GO/api"
	"homestock.GO/config"
)

func init() {
	api.RegisterHTMLModule(RegisterStaticRoutes)
}

func RegisterStaticRoutes(e *echo.Echo, _ *gorm.DB) {
	config.LoadAppConfig()
	st, err := os.Stat(config.AppConfig.StaticDir)
	if err != nil || !st.IsDir() {
		return
	}
	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Root:  config.AppConfig.StaticDir,
		HTML5: true,
	}))
}
