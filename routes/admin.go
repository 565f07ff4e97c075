package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	carcontroller "github.com/AgentGrom/autoshop/controllers/car"
	categorycontroller "github.com/AgentGrom/autoshop/controllers/category"
	orderControllers "github.com/AgentGrom/autoshop/controllers/order"
	partcontroller "github.com/AgentGrom/autoshop/controllers/part"
	pickupcontroller "github.com/AgentGrom/autoshop/controllers/pickup"
	settingscontroller "github.com/AgentGrom/autoshop/controllers/settings"
	userControllers "github.com/AgentGrom/autoshop/controllers/user"
	"github.com/AgentGrom/autoshop/middleware"
)

// SetupAdminRoutes registers the API-key-protected staff surface.
func SetupAdminRoutes(api *gin.RouterGroup, db *gorm.DB) {
	admin := api.Group("/admin")
	admin.Use(middleware.ValidateAPIKey)
	{
		admin.GET("/users", userControllers.GetAllUsers(db))
		admin.PATCH("/users/:id/status", userControllers.SetUserStatus(db))

		categories := admin.Group("/categories")
		{
			categories.POST("", categorycontroller.CreateHandler(db))
			categories.PUT("/:id", categorycontroller.RenameHandler(db))
			categories.DELETE("/:id", categorycontroller.DeleteHandler(db, partcontroller.InvalidateSpecCache))
		}

		parts := admin.Group("/parts")
		{
			parts.POST("", partcontroller.CreatePartHandler(db))
			parts.PUT("/:id", partcontroller.UpdatePartHandler(db))
			parts.DELETE("/:id", partcontroller.DeletePartHandler(db))
			parts.GET("/export-excel", partcontroller.ExportPartsToExcel(db))
		}

		cars := admin.Group("/cars")
		{
			cars.GET("", carcontroller.GetCarsHandler(db, true))
			cars.POST("", carcontroller.CreateCarHandler(db))
			cars.PUT("/:id", carcontroller.UpdateCarHandler(db))
			cars.DELETE("/:id", carcontroller.DeleteCarHandler(db))
			cars.POST("/trims", carcontroller.CreateTrimHandler(db))
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", orderControllers.ListOrdersHandler(db))
			orders.PATCH("/:id/status", orderControllers.TransitionStatusHandler(db))
			orders.PATCH("/:id/paid", orderControllers.SetPaidHandler(db))
			orders.PATCH("/:id/notes", orderControllers.UpdateAdminNotesHandler(db))
		}
		admin.GET("/orders-socket", orderControllers.OrderSocketHandler)

		pickups := admin.Group("/pickup-points")
		{
			pickups.GET("", pickupcontroller.ListHandler(db, true))
			pickups.POST("", pickupcontroller.CreateHandler(db))
			pickups.PUT("/:id", pickupcontroller.UpdateHandler(db))
			pickups.PATCH("/:id/active", pickupcontroller.SetActiveHandler(db))
			pickups.DELETE("/:id", pickupcontroller.DeleteHandler(db))
		}

		settings := admin.Group("/settings")
		{
			settings.GET("", settingscontroller.ListHandler(db))
			settings.PUT("", settingscontroller.SetHandler(db))
		}
	}
}
