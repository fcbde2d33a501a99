package app

import (
	"study_scholar_backend/internal/middleware"
	"study_scholar_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(不区分设备)
	a.registerPublicRoutes(router, c)

	// 2. 按设备隔离的数据接口
	api := router.Group("/api")
	api.Use(middleware.ScopeMiddleware(a.Store))
	{
		a.registerMockTestRoutes(api, c)
		a.registerNoteRoutes(api, c)
		a.registerProgressRoutes(api, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	router.GET("/api/health", c.health.HealthCheck)

	functions := router.Group("/api/functions")
	{
		functions.POST("/generate-mock-test", c.generation.GenerateMockTest)
	}
}

func (a *App) registerMockTestRoutes(api *gin.RouterGroup, c *controllers) {
	tests := api.Group("/mock-tests")
	{
		tests.POST("", c.mockTest.Generate)
		tests.GET("", c.mockTest.List)
		tests.GET("/:id", c.mockTest.Get)
		tests.GET("/:id/export", c.mockTest.Export)
		tests.DELETE("/:id", c.mockTest.Delete)
	}
}

func (a *App) registerNoteRoutes(api *gin.RouterGroup, c *controllers) {
	notes := api.Group("/notes")
	{
		notes.POST("", c.note.Upload)
		notes.GET("", c.note.List)
		notes.GET("/:id", c.note.Get)
		notes.GET("/:id/download", c.note.Download)
		notes.DELETE("/:id", c.note.Delete)
	}
}

func (a *App) registerProgressRoutes(api *gin.RouterGroup, c *controllers) {
	progress := api.Group("/progress")
	{
		progress.GET("", c.progress.Get)
		progress.PATCH("", c.progress.Update)
		progress.POST("/streak", c.progress.UpdateStreak)
		progress.POST("/points", c.progress.AddPoints)
		progress.POST("/badges", c.progress.AddBadge)
	}
}
