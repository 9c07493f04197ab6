package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/rotaops/conflict-api-go/pkg/auth"
	"github.com/rotaops/conflict-api-go/pkg/cache"
	"github.com/rotaops/conflict-api-go/pkg/database"
	"github.com/rotaops/conflict-api-go/pkg/handlers"
)

func main() {
	// Load .env if it exists; try parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	cache.Init()
	h := &handlers.Handler{DB: db}

	r := gin.Default()

	// Admin interface static assets from the embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Rota Conflict API",
			"version": "1.2.0",
		})
	})

	// The rule catalog is public so legends render without a key
	r.GET("/rules", h.GetRules)

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

	// Conflict engine endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.GET("/conflicts", h.GetConflicts)
		api.POST("/conflicts", h.ConflictsJSON)
		api.POST("/conflicts/csv", h.ConflictsCSV)
		api.GET("/conflicts/rules", h.GetRules)

		api.POST("/shifts", h.CreateShift)
		api.GET("/shifts", h.ListShifts)
		api.POST("/shifts/validate", h.ValidateShift)
		api.PUT("/shifts/:id/status", h.UpdateShiftStatus)
		api.DELETE("/shifts/:id", h.DeleteShift)

		api.POST("/availability", h.CreateAvailability)
		api.GET("/availability", h.ListAvailability)

		api.GET("/usage", h.GetMyUsage)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Info().Str("port", port).Msg("server starting")
	if err := r.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("could not run server")
	}
}
