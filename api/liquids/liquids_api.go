package liquids

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"homestock.GO/api"
	ledgerService "homestock.GO/service/ledger"
	metricsService "homestock.GO/service/metrics"
)

func init() {
	api.RegisterModule(RegisterLiquidRoutes)
}

func RegisterLiquidRoutes(apiGroup *echo.Group, db *gorm.DB) {
	ledger := ledgerService.NewService(db)
	metrics := metricsService.NewService(db)
	g := apiGroup.Group("/liquids")

	// GET /api/liquids/inventory – liquid stock summary (ml, liters, calories)
	g.GET("/inventory", func(c echo.Context) error {
		out, err := metrics.LiquidInventoryStock()
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, out)
	})

	// GET /api/liquids/summary?date – per-member daily split
	g.GET("/summary", func(c echo.Context) error {
		rows, err := metrics.LiquidSummary(c.QueryParam("date"))
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// GET /api/liquids?date&member_id – list logs
	g.GET("", func(c echo.Context) error {
		rows, err := ledger.Liquids(c.QueryParam("date"), c.QueryParam("member_id"))
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// POST /api/liquids – log liquid intake (no stock linkage)
	g.POST("", func(c echo.Context) error {
		var body struct {
			MemberID *string `json:"member_id"`
			Type     string  `json:"type"`
			AmountMl float64 `json:"amount_ml"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		row, err := ledger.LogLiquid(body.MemberID, body.Type, body.AmountMl)
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusCreated, row)
	})

	// DELETE /api/liquids/:id – remove log row
	g.DELETE("/:id", func(c echo.Context) error {
		if err := ledger.DeleteLiquid(c.Param("id")); err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}
