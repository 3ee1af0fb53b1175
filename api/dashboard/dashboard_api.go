package dashboard

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"homestock.GO/api"
	metricsService "homestock.GO/service/metrics"
)

func init() {
	api.RegisterModule(RegisterDashboardRoutes)
}

// RegisterDashboardRoutes serves the full aggregate snapshot. Every
// request recomputes from the current row set.
func RegisterDashboardRoutes(apiGroup *echo.Group, db *gorm.DB) {
	metrics := metricsService.NewService(db)

	apiGroup.GET("/dashboard", func(c echo.Context) error {
		d, err := metrics.Dashboard()
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, d)
	})
}
