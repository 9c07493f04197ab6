package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/rotaops/conflict-api-go/pkg/auth"
	"github.com/rotaops/conflict-api-go/pkg/cache"
	"github.com/rotaops/conflict-api-go/pkg/database"
	"github.com/rotaops/conflict-api-go/pkg/handlers"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	cache.Init()
	h := &handlers.Handler{DB: db}

	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.StaticFS("/static", h.GetStaticFS())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Rota Conflict API (Serverless)",
			"version": "1.2.0",
		})
	})

	r.GET("/rules", h.GetRules)

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)
	}

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
}

// Handler is the entry point for the serverless Go runtime
func Handler(w http.ResponseWriter, req *http.Request) {
	r.ServeHTTP(w, req)
}
