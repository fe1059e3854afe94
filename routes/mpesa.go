package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	mpesaControllers "github.com/obimbo07/mohacollection-api/controllers/mpesa"
	"github.com/obimbo07/mohacollection-api/middleware"
)

// The callback URL registered with the gateway embeds a secret path segment;
// production requests without it are rejected.
func SetupMpesaRoutes(r *gin.Engine, db *gorm.DB) {
	group := r.Group("/mpesa")
	group.Use(middleware.MpesaCallbackAuth())
	{
		group.POST("/callback/:secret", mpesaControllers.CallbackHandler(db))
	}
}
