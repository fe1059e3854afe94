package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/obimbo07/mohacollection-api/controllers/cart"
)

// Guest cart routes: identified by guest_id, no JWT required. The guest token
// from /auth/guest is only needed once the cart is claimed at login.
func SetupGuestRoutes(r *gin.Engine, db *gorm.DB) {
	group := r.Group("/guest")
	{
		group.GET("/cart", cartControllers.GetGuestCart(db))
		group.POST("/cart", cartControllers.AddGuestCartItem(db))
		group.DELETE("/cart", cartControllers.ClearGuestCartHandler(db))
		group.DELETE("/cart/:item_id", cartControllers.DeleteGuestCartItem(db))
	}
}
