package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/AgentGrom/autoshop/controllers/cart"
	orderControllers "github.com/AgentGrom/autoshop/controllers/order"
	userControllers "github.com/AgentGrom/autoshop/controllers/user"
	"github.com/AgentGrom/autoshop/middleware"
)

// SetupUserRoutes registers the JWT-protected account surface.
func SetupUserRoutes(api *gin.RouterGroup, db *gorm.DB) {
	me := api.Group("/users/me")
	me.Use(middleware.ValidateToken)
	{
		me.GET("", userControllers.GetProfile(db))
		me.PUT("", userControllers.UpdateProfile(db))

		me.GET("/addresses", userControllers.ListAddresses(db))
		me.POST("/addresses", userControllers.CreateAddress(db))
		me.DELETE("/addresses/:id", userControllers.DeleteAddress(db))
	}

	cart := api.Group("/cart")
	cart.Use(middleware.ValidateToken)
	{
		cart.GET("", cartControllers.GetCartHandler(db))
		cart.POST("", cartControllers.UpsertItemHandler(db))
		cart.PUT("", cartControllers.SyncCartHandler(db))
		cart.DELETE("/:part_id", cartControllers.RemoveItemHandler(db))
		cart.DELETE("", cartControllers.ClearCartHandler(db))
	}

	orders := api.Group("/orders")
	orders.Use(middleware.ValidateToken)
	{
		orders.GET("", orderControllers.ListUserOrdersHandler(db))
		orders.GET("/:id", orderControllers.GetOrderHandler(db))
		orders.POST("/parts", orderControllers.PlacePartOrderHandler(db))
		orders.POST("/cars", orderControllers.PlaceCarOrderHandler(db))
		orders.POST("/:id/cancel", orderControllers.CancelOrderHandler(db))
	}
}
