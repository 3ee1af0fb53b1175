package beverages

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"homestock.GO/api"
	ledgerService "homestock.GO/service/ledger"
	metricsService "homestock.GO/service/metrics"
)

func init() {
	api.RegisterModule(RegisterBeverageRoutes)
}

func RegisterBeverageRoutes(apiGroup *echo.Group, db *gorm.DB) {
	ledger := ledgerService.NewService(db)
	metrics := metricsService.NewService(db)
	g := apiGroup.Group("/beverages")

	// GET /api/beverages/summary?date – per-member capsule/sachet rollup
	g.GET("/summary", func(c echo.Context) error {
		rows, err := metrics.BeverageSummary(c.QueryParam("date"))
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// GET /api/beverages?date&member_id – list logs
	g.GET("", func(c echo.Context) error {
		rows, err := ledger.Beverages(c.QueryParam("date"), c.QueryParam("member_id"))
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// POST /api/beverages – log a coffee capsule / tea sachet
	g.POST("", func(c echo.Context) error {
		var body struct {
			MemberID          *string `json:"member_id"`
			Type              string  `json:"type"`
			CapsulesOrSachets int     `json:"capsules_or_sachets"`
			WaterMl           float64 `json:"water_ml"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		row, err := ledger.LogBeverage(body.MemberID, body.Type, body.CapsulesOrSachets, body.WaterMl)
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusCreated, row)
	})

	// DELETE /api/beverages/:id – remove log row
	g.DELETE("/:id", func(c echo.Context) error {
		if err := ledger.DeleteBeverage(c.Param("id")); err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}
