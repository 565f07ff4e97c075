package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/auth"
	carcontroller "github.com/AgentGrom/autoshop/controllers/car"
	categorycontroller "github.com/AgentGrom/autoshop/controllers/category"
	partcontroller "github.com/AgentGrom/autoshop/controllers/part"
	pickupcontroller "github.com/AgentGrom/autoshop/controllers/pickup"
	userControllers "github.com/AgentGrom/autoshop/controllers/user"
)

// SetupPublicRoutes registers the unauthenticated catalog and signup
// endpoints.
func SetupPublicRoutes(api *gin.RouterGroup, db *gorm.DB, codes *auth.VerificationStore) {
	api.POST("/users", userControllers.Register(db))

	verification := api.Group("/auth/verification")
	{
		verification.POST("/request", auth.RequestCodeHandler(db, codes))
		verification.POST("/confirm", auth.ConfirmCodeHandler(db, codes))
	}

	api.GET("/categories/tree", categorycontroller.TreeHandler(db))

	parts := api.Group("/parts")
	{
		parts.GET("", partcontroller.GetPartsHandler(db))
		parts.GET("/:id", partcontroller.GetPartHandler(db))
		parts.GET("/specs-meta", partcontroller.SpecsMetaHandler(db))
	}

	cars := api.Group("/cars")
	{
		cars.GET("", carcontroller.GetCarsHandler(db, false))
		cars.GET("/:id", carcontroller.GetCarHandler(db))
		cars.GET("/trims", carcontroller.GetTrimsHandler(db))
	}

	api.GET("/pickup-points", pickupcontroller.ListHandler(db, false))
}
