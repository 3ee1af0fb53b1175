package members

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"homestock.GO/api"
	memberEntity "homestock.GO/model/entity/member"
	memberRepo "homestock.GO/model/repository/member"
	metricsService "homestock.GO/service/metrics"
)

func init() {
	api.RegisterModule(RegisterMemberRoutes)
}

func RegisterMemberRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := memberRepo.NewRepository(db)
	metrics := metricsService.NewService(db)
	g := apiGroup.Group("/members")

	// GET /api/members – list members
	g.GET("", func(c echo.Context) error {
		rows, err := repo.List()
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// POST /api/members – create member
	g.POST("", func(c echo.Context) error {
		var body struct {
			Name               *string `json:"name"`
			DailyCalorieTarget *int    `json:"daily_calorie_target"`
			DailyLiquidTarget  *int    `json:"daily_liquid_target"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Name == nil || *body.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
		}

		m := memberEntity.HouseholdMember{
			Name:               *body.Name,
			DailyCalorieTarget: 2000,
			DailyLiquidTarget:  2000,
		}
		if body.DailyCalorieTarget != nil {
			m.DailyCalorieTarget = *body.DailyCalorieTarget
		}
		if body.DailyLiquidTarget != nil {
			m.DailyLiquidTarget = *body.DailyLiquidTarget
		}
		if err := repo.Create(&m); err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusCreated, m)
	})

	// PUT /api/members/:id – partial update
	g.PUT("/:id", func(c echo.Context) error {
		var body struct {
			Name               *string `json:"name"`
			DailyCalorieTarget *int    `json:"daily_calorie_target"`
			DailyLiquidTarget  *int    `json:"daily_liquid_target"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		set := map[string]interface{}{}
		if body.Name != nil {
			set["name"] = *body.Name
		}
		if body.DailyCalorieTarget != nil {
			set["daily_calorie_target"] = *body.DailyCalorieTarget
		}
		if body.DailyLiquidTarget != nil {
			set["daily_liquid_target"] = *body.DailyLiquidTarget
		}

		row, err := repo.Update(c.Param("id"), set)
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, row)
	})

	// DELETE /api/members/:id – delete member (log references null out)
	g.DELETE("/:id", func(c echo.Context) error {
		if err := repo.Delete(c.Param("id")); err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	// GET /api/members/:id/today – per-member daily rollup
	g.GET("/:id/today", func(c echo.Context) error {
		out, err := metrics.MemberToday(c.Param("id"))
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, out)
	})
}
