package inventory

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"homestock.GO/api"
	inventoryEntity "homestock.GO/model/entity/inventory"
	inventoryRepo "homestock.GO/model/repository/inventory"
	bulkService "homestock.GO/service/bulk"
)

func init() {
	api.RegisterModule(RegisterInventoryRoutes)
}

// itemPayload is the create/update request body. Pointer fields
// distinguish "absent" from zero so partial updates leave unspecified
// columns untouched.
type itemPayload struct {
	Name            *string     `json:"name"`
	CategoryID      *string     `json:"category_id"`
	Quantity        *float64    `json:"quantity"`
	Unit            *string     `json:"unit"`
	CaloriesPerUnit *float64    `json:"calories_per_unit"`
	ProteinG        *float64    `json:"protein_g"`
	CarbsG          *float64    `json:"carbs_g"`
	FiberG          *float64    `json:"fiber_g"`
	SugarG          *float64    `json:"sugar_g"`
	FatG            *float64    `json:"fat_g"`
	IsLiquid        interface{} `json:"is_liquid"`
	VolumeMl        *float64    `json:"volume_ml"`
	PurchaseDate    *string     `json:"purchase_date"`
	ExpiryDate      *string     `json:"expiry_date"`
	Notes           *string     `json:"notes"`
}

func RegisterInventoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := inventoryRepo.NewRepository(db)
	bulk := bulkService.NewService(db)
	g := apiGroup.Group("/inventory")

	// GET /api/inventory – list items with joined category name/color
	g.GET("", func(c echo.Context) error {
		rows, err := repo.ListWithCategory()
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// POST /api/inventory/duplicate – duplicate a set of items
	g.POST("/duplicate", func(c echo.Context) error {
		var body struct {
			IDs []string `json:"ids"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.IDs) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No IDs provided"})
		}
		created, err := bulk.Duplicate(body.IDs)
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusCreated, created)
	})

	// PUT /api/inventory/bulk – bulk partial update
	g.PUT("/bulk", func(c echo.Context) error {
		var body struct {
			IDs     []string               `json:"ids"`
			Updates map[string]interface{} `json:"updates"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.IDs) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No IDs provided"})
		}
		rows, err := bulk.Update(body.IDs, body.Updates)
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// POST /api/inventory/bulk-delete – bulk delete (POST because
	// DELETE with a body is unreliable in browsers)
	g.POST("/bulk-delete", bulkDeleteHandler(bulk))
	// Legacy DELETE route kept for older clients
	g.DELETE("/bulk", bulkDeleteHandler(bulk))

	// GET /api/inventory/:id – single item
	g.GET("/:id", func(c echo.Context) error {
		row, err := repo.FindByIDWithCategory(c.Param("id"))
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, row)
	})

	// POST /api/inventory – create item
	g.POST("", func(c echo.Context) error {
		var body itemPayload
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Name == nil || *body.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
		}

		item := inventoryEntity.Item{
			Name:     *body.Name,
			Quantity: 1,
			Unit:     "pcs",
		}
		item.CategoryID = body.CategoryID
		if body.Quantity != nil {
			item.Quantity = *body.Quantity
		}
		if body.Unit != nil {
			item.Unit = *body.Unit
		}
		if body.CaloriesPerUnit != nil {
			item.CaloriesPerUnit = *body.CaloriesPerUnit
		}
		if body.ProteinG != nil {
			item.ProteinG = *body.ProteinG
		}
		if body.CarbsG != nil {
			item.CarbsG = *body.CarbsG
		}
		if body.FiberG != nil {
			item.FiberG = *body.FiberG
		}
		if body.SugarG != nil {
			item.SugarG = *body.SugarG
		}
		if body.FatG != nil {
			item.FatG = *body.FatG
		}
		if v := api.CoerceBool01(body.IsLiquid); v != nil {
			item.IsLiquid = *v
		}
		if body.VolumeMl != nil {
			item.VolumeMl = *body.VolumeMl
		}
		item.PurchaseDate = emptyToNil(body.PurchaseDate)
		item.ExpiryDate = emptyToNil(body.ExpiryDate)
		if body.Notes != nil {
			item.Notes = *body.Notes
		}

		if err := repo.Create(&item); err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusCreated, item)
	})

	// PUT /api/inventory/:id – partial update (unspecified fields unchanged)
	g.PUT("/:id", func(c echo.Context) error {
		var body itemPayload
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		set := map[string]interface{}{}
		putString(set, "name", body.Name)
		putString(set, "category_id", body.CategoryID)
		putFloat(set, "quantity", body.Quantity)
		putString(set, "unit", body.Unit)
		putFloat(set, "calories_per_unit", body.CaloriesPerUnit)
		putFloat(set, "protein_g", body.ProteinG)
		putFloat(set, "carbs_g", body.CarbsG)
		putFloat(set, "fiber_g", body.FiberG)
		putFloat(set, "sugar_g", body.SugarG)
		putFloat(set, "fat_g", body.FatG)
		if v := api.CoerceBool01(body.IsLiquid); v != nil {
			set["is_liquid"] = *v
		}
		putFloat(set, "volume_ml", body.VolumeMl)
		putString(set, "purchase_date", body.PurchaseDate)
		putString(set, "expiry_date", body.ExpiryDate)
		putString(set, "notes", body.Notes)

		row, err := repo.Update(c.Param("id"), set)
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, row)
	})

	// DELETE /api/inventory/:id – delete item, 404 if missing
	g.DELETE("/:id", func(c echo.Context) error {
		if err := repo.Delete(c.Param("id")); err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
}

func bulkDeleteHandler(bulk *bulkService.Service) echo.HandlerFunc {
	return func(c echo.Context) error {
		var body struct {
			IDs []string `json:"ids"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if len(body.IDs) == 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "No IDs provided"})
		}
		deleted, err := bulk.Delete(body.IDs)
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true, "deleted": deleted})
	}
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func putString(set map[string]interface{}, col string, v *string) {
	if v != nil {
		set[col] = *v
	}
}

func putFloat(set map[string]interface{}, col string, v *float64) {
	if v != nil {
		set[col] = *v
	}
}
