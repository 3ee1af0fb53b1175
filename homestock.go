//go:build !cli
// +build !cli

package main

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"homestock.GO/api"
	_ "homestock.GO/api/beverages"
	_ "homestock.GO/api/categories"
	_ "homestock.GO/api/consumption"
	_ "homestock.GO/api/dashboard"
	_ "homestock.GO/api/health"
	_ "homestock.GO/api/inventory"
	_ "homestock.GO/api/liquids"
	_ "homestock.GO/api/medicines"
	_ "homestock.GO/api/members"
	_ "homestock.GO/api/web"
	"homestock.GO/config"
	"homestock.GO/migrate"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()
	// Initialize Redis
	config.InitRedis()
	redisStatus := "Redis not configured or not reachable, caching disabled."
	if config.RedisClient != nil {
		err := config.RedisClient.Ping(config.RedisCtx()).Err()
		if err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Disable Redis if not reachable
			redisStatus = "Redis configured but not reachable, caching disabled."
		}
	}
	log.Println(redisStatus)

	db, err := config.NewDB()
	if err != nil {
		log.Fatalf("failed to connect to DB: %v", err)
	}

	// Check DB connection
	sqldb, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get DB instance: %v", err)
	}
	if err := sqldb.Ping(); err != nil {
		log.Fatalf("database connection failed: %v", err)
	}
	log.Println("Database connection successful.")

	// Schema bootstrap: versioned migrations plus the default category
	// seed, applied here rather than lazily on first query.
	if err := migrate.Up(db); err != nil {
		log.Fatalf("migrations failed: %v", err)
	}
	if err := migrate.Seed(db); err != nil {
		log.Fatalf("seeding failed: %v", err)
	}
	log.Println("Schema up to date.")

	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())
	e.Use(middleware.CORS())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	apiGroup := e.Group("/api")
	api.ApplyModules(apiGroup, db)
	// Root-level modules: health probe and SPA static serving.
	api.ApplyRoutes(e, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Server running on :%s", port)
	e.Logger.Fatal(e.Start(":" + port))
}
