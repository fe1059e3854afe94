package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mpesaControllers "github.com/obimbo07/mohacollection-api/controllers/mpesa"
)

// SetupRoutes wires up every route group: public catalog, auth, guest cart,
// JWT-protected user routes, the payment gateway surface and the
// API-key-protected admin surface.
func SetupRoutes(r *gin.Engine, db *gorm.DB) {
	mpesaClient := mpesaControllers.NewClientFromEnv()

	SetupPublicRoutes(r, db)
	SetupAuthRoutes(r, db)
	SetupGuestRoutes(r, db)
	SetupUserRoutes(r, db, mpesaClient)
	SetupMpesaRoutes(r, db)
	SetupAdminRoutes(r, db)
}
