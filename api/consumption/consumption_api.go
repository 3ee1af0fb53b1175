package consumption

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"homestock.GO/api"
	ledgerService "homestock.GO/service/ledger"
)

func init() {
	api.RegisterModule(RegisterConsumptionRoutes)
}

func RegisterConsumptionRoutes(apiGroup *echo.Group, db *gorm.DB) {
	svc := ledgerService.NewService(db)
	g := apiGroup.Group("/consumption")

	// GET /api/consumption?date&member_id – list logs, optional filters
	g.GET("", func(c echo.Context) error {
		rows, err := svc.Consumption(c.QueryParam("date"), c.QueryParam("member_id"))
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// POST /api/consumption – debit stock + log
	g.POST("", func(c echo.Context) error {
		var body struct {
			ItemID   string  `json:"item_id"`
			MemberID *string `json:"member_id"`
			Quantity float64 `json:"quantity"`
			Reason   string  `json:"reason"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Quantity == 0 {
			body.Quantity = 1
		}
		if body.Reason == "" {
			body.Reason = "consumed"
		}
		entry, err := svc.LogConsumption(body.ItemID, body.MemberID, body.Quantity, body.Reason)
		if err != nil {
			return api.WriteError(c, err, "Item not found")
		}
		return c.JSON(http.StatusCreated, entry)
	})

	// DELETE /api/consumption/:id – remove log row only (no stock restore)
	g.DELETE("/:id", func(c echo.Context) error {
		if err := svc.DeleteConsumption(c.Param("id")); err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}
