package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"stationpro-api/internal/services"
)

// RouterConfig holds configuration for setting up routes
type RouterConfig struct {
	StationService services.StationService
	ReportService  services.ReportService
	InsightService services.InsightService
	Broker         *SSEBroker

	// InsightLimiter throttles the insight generation endpoint. Optional.
	InsightLimiter gin.HandlerFunc
}

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, config *RouterConfig) {
	// Create handlers
	stationHandler := NewStationHandler(config.StationService)
	reportHandler := NewReportHandler(config.ReportService)
	insightHandler := NewInsightHandler(config.InsightService)

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "stationpro-api",
			"version": "1.0.0",
		})
	})

	// Prometheus metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Station state
		station := v1.Group("/station")
		{
			station.GET("", stationHandler.GetState)
			station.GET("/stream", config.Broker.Stream)
		}

		// Fuel operations
		v1.POST("/shifts", stationHandler.CompleteShift)
		v1.PUT("/fuel-prices/:fuelType", stationHandler.SetFuelPrice)

		fuelTypes := v1.Group("/fuel-types")
		{
			fuelTypes.POST("", stationHandler.AddFuelType)
			fuelTypes.DELETE("/:fuelType", stationHandler.DeleteFuelType)
			fuelTypes.POST("/:fuelType/rename", stationHandler.RenameFuelType)
		}

		v1.PUT("/tanks/:id", stationHandler.UpdateTank)

		pumps := v1.Group("/pumps")
		{
			pumps.POST("", stationHandler.AddPump)
			pumps.PUT("/:id", stationHandler.UpdatePump)
		}

		// Shop operations
		v1.POST("/sales", stationHandler.RecordSale)

		products := v1.Group("/products")
		{
			products.POST("", stationHandler.AddProduct)
			products.PUT("/:id", stationHandler.UpdateProduct)
			products.DELETE("/:id", stationHandler.DeleteProduct)
			products.POST("/:id/stock", stationHandler.AdjustStock)
			products.POST("/:id/restocks", stationHandler.AddRestock)
		}

		// Expenses
		expenses := v1.Group("/expenses")
		{
			expenses.POST("", stationHandler.AddExpense)
			expenses.DELETE("/:id", stationHandler.DeleteExpense)
		}

		// Settings
		v1.PUT("/settings", stationHandler.UpdateSettings)

		// Reports
		reports := v1.Group("/reports")
		{
			reports.GET("/dashboard", reportHandler.GetDashboard)
			reports.GET("/period", reportHandler.GetPeriodReport)
			reports.GET("/period/export", reportHandler.ExportPeriodReport)
		}

		// Insights
		insights := v1.Group("/insights")
		if config.InsightLimiter != nil {
			insights.Use(config.InsightLimiter)
		}
		{
			insights.POST("", insightHandler.Generate)
			insights.GET("/status", insightHandler.Status)
		}
	}
}
