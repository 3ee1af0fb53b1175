package medicines

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"homestock.GO/api"
	medicineEntity "homestock.GO/model/entity/medicine"
	medicineRepo "homestock.GO/model/repository/medicine"
	ledgerService "homestock.GO/service/ledger"
)

func init() {
	api.RegisterModule(RegisterMedicineRoutes)
}

type medicinePayload struct {
	Name         *string  `json:"name"`
	Type         *string  `json:"type"`
	Quantity     *float64 `json:"quantity"`
	Unit         *string  `json:"unit"`
	Dosage       *string  `json:"dosage"`
	Frequency    *string  `json:"frequency"`
	Notes        *string  `json:"notes"`
	PurchaseDate *string  `json:"purchase_date"`
	ExpiryDate   *string  `json:"expiry_date"`
}

func RegisterMedicineRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := medicineRepo.NewRepository(db)
	ledger := ledgerService.NewService(db)
	g := apiGroup.Group("/medicines")

	// GET /api/medicines – list all
	g.GET("", func(c echo.Context) error {
		rows, err := repo.List()
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// POST /api/medicines/log – debit medicine stock + log intake
	g.POST("/log", func(c echo.Context) error {
		var body struct {
			MedicineID string  `json:"medicine_id"`
			MemberID   *string `json:"member_id"`
			Quantity   float64 `json:"quantity"`
			Notes      string  `json:"notes"`
		}
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Quantity == 0 {
			body.Quantity = 1
		}
		row, err := ledger.LogMedicineIntake(body.MedicineID, body.MemberID, body.Quantity, body.Notes)
		if err != nil {
			return api.WriteError(c, err, "Medicine not found")
		}
		return c.JSON(http.StatusCreated, row)
	})

	// GET /api/medicines/log/all?date&member_id – all intake logs
	g.GET("/log/all", func(c echo.Context) error {
		rows, err := ledger.MedicineLogs(c.QueryParam("date"), c.QueryParam("member_id"))
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// DELETE /api/medicines/log/:id – remove log row only (no restock)
	g.DELETE("/log/:id", func(c echo.Context) error {
		if err := ledger.DeleteMedicineLog(c.Param("id")); err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})

	// GET /api/medicines/:id/log – intake history for one medicine
	g.GET("/:id/log", func(c echo.Context) error {
		rows, err := ledger.MedicineLogForMedicine(c.Param("id"))
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, rows)
	})

	// GET /api/medicines/:id – single medicine
	g.GET("/:id", func(c echo.Context) error {
		row, err := repo.FindByID(c.Param("id"))
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, row)
	})

	// POST /api/medicines – create
	g.POST("", func(c echo.Context) error {
		var body medicinePayload
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		if body.Name == nil || *body.Name == "" {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "name is required"})
		}

		med := medicineEntity.Medicine{
			Name: *body.Name,
			Type: "tablet",
			Unit: "tablets",
		}
		if body.Type != nil {
			med.Type = *body.Type
		}
		if body.Quantity != nil {
			med.Quantity = *body.Quantity
		}
		if body.Unit != nil {
			med.Unit = *body.Unit
		}
		if body.Dosage != nil {
			med.Dosage = *body.Dosage
		}
		if body.Frequency != nil {
			med.Frequency = *body.Frequency
		}
		if body.Notes != nil {
			med.Notes = *body.Notes
		}
		med.PurchaseDate = emptyToNil(body.PurchaseDate)
		med.ExpiryDate = emptyToNil(body.ExpiryDate)

		if err := repo.Create(&med); err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusCreated, med)
	})

	// PUT /api/medicines/:id – partial update
	g.PUT("/:id", func(c echo.Context) error {
		var body medicinePayload
		if err := c.Bind(&body); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}

		set := map[string]interface{}{}
		putString(set, "name", body.Name)
		putString(set, "type", body.Type)
		if body.Quantity != nil {
			set["quantity"] = *body.Quantity
		}
		putString(set, "unit", body.Unit)
		putString(set, "dosage", body.Dosage)
		putString(set, "frequency", body.Frequency)
		putString(set, "notes", body.Notes)
		putString(set, "purchase_date", body.PurchaseDate)
		putString(set, "expiry_date", body.ExpiryDate)

		row, err := repo.Update(c.Param("id"), set)
		if err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, row)
	})

	// DELETE /api/medicines/:id – delete medicine
	g.DELETE("/:id", func(c echo.Context) error {
		if err := repo.Delete(c.Param("id")); err != nil {
			return api.WriteError(c, err, "")
		}
		return c.JSON(http.StatusOK, echo.Map{"success": true})
	})
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
