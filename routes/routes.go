package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AgentGrom/autoshop/auth"
)

// SetupRoutes wires up the public catalog, the JWT-protected account
// surface and the API-key-protected admin surface under /api/v1.
func SetupRoutes(r *gin.Engine, db *gorm.DB, codes *auth.VerificationStore) {
	api := r.Group("/api/v1")

	SetupPublicRoutes(api, db, codes)
	SetupUserRoutes(api, db)
	SetupAdminRoutes(api, db)
}
