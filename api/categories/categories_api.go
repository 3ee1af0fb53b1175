package categories

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"homestock.GO/api"
	"homestock.GO/config"
	"homestock.GO/core/cache"
	categoryRepo "homestock.GO/model/repository/category"
)

func init() {
	api.RegisterModule(RegisterCategoryRoutes)
}

const (
	cacheKey = "categories:list"
	cacheTTL = 300 // seconds
)

// RegisterCategoryRoutes serves the category directory. The set is
// seeded at bootstrap and immutable through the API, so responses are
// cached in Redis when configured, or the local TTL cache otherwise.
func RegisterCategoryRoutes(apiGroup *echo.Group, db *gorm.DB) {
	repo := categoryRepo.NewRepository(db)
	g := apiGroup.Group("/categories")

	g.GET("", func(c echo.Context) error {
		if config.RedisClient != nil {
			if cached, err := config.RedisClient.Get(config.RedisCtx(), cacheKey).Bytes(); err == nil {
				return c.JSONBlob(http.StatusOK, cached)
			}
		} else if cached, ok := cache.GetInstance().Get(cacheKey); ok {
			return c.JSONBlob(http.StatusOK, cached.([]byte))
		}

		rows, err := repo.List()
		if err != nil {
			return api.WriteError(c, err, "")
		}

		if body, err := json.Marshal(rows); err == nil {
			if config.RedisClient != nil {
				config.RedisClient.Set(config.RedisCtx(), cacheKey, body, cacheTTL*time.Second)
			} else {
				cache.GetInstance().Set(cacheKey, body, cacheTTL)
			}
			return c.JSONBlob(http.StatusOK, body)
		}
		return c.JSON(http.StatusOK, rows)
	})
}
