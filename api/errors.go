package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"homestock.GO/service"
)

// WriteError maps service errors onto the `{error: string}` wire shape:
// 404 for missing rows, 400 for validation and stock failures, 500
// otherwise. notFoundMsg overrides the 404 body text ("Item not found"
// vs plain "Not found").
func WriteError(c echo.Context, err error, notFoundMsg string) error {
	var verr *service.ValidationError
	switch {
	case errors.Is(err, service.ErrNotFound):
		if notFoundMsg == "" {
			notFoundMsg = "Not found"
		}
		return c.JSON(http.StatusNotFound, echo.Map{"error": notFoundMsg})
	case errors.Is(err, service.ErrInsufficientStock):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Not enough stock"})
	case errors.Is(err, service.ErrNoFields):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "No fields to update"})
	case errors.As(err, &verr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": verr.Msg})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": err.Error()})
	}
}

// CoerceBool01 normalizes a JSON boolean-ish value (true/false or a
// number) to the 0/1 column representation. Returns nil when the value
// is absent or unusable.
func CoerceBool01(v interface{}) *int {
	var out int
	switch t := v.(type) {
	case bool:
		if t {
			out = 1
		}
	case float64:
		if t != 0 {
			out = 1
		}
	default:
		return nil
	}
	return &out
}
