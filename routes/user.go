package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	cartControllers "github.com/obimbo07/mohacollection-api/controllers/cart"
	mpesaControllers "github.com/obimbo07/mohacollection-api/controllers/mpesa"
	orderControllers "github.com/obimbo07/mohacollection-api/controllers/order"
	promoControllers "github.com/obimbo07/mohacollection-api/controllers/promo"
	reviewControllers "github.com/obimbo07/mohacollection-api/controllers/review"
	userControllers "github.com/obimbo07/mohacollection-api/controllers/user"
	"github.com/obimbo07/mohacollection-api/middleware"
)

func SetupUserRoutes(r *gin.Engine, db *gorm.DB, mpesaClient *mpesaControllers.Client) {
	group := r.Group("/user")
	group.Use(middleware.ValidateToken, middleware.RequireUser)
	{
		group.GET("/profile", userControllers.GetProfile(db))
		group.PUT("/profile", userControllers.UpdateProfile(db))

		group.GET("/cart", cartControllers.GetUserCart(db))
		group.POST("/cart", cartControllers.AddCartItem(db))
		group.PUT("/cart", cartControllers.ReplaceCart(db))
		group.DELETE("/cart", cartControllers.ClearUserCart(db))
		group.POST("/cart/items/:item_id/decrement", cartControllers.DecrementCartItem(db))
		group.DELETE("/cart/items/:item_id", cartControllers.DeleteCartItem(db))
		group.POST("/cart/merge", cartControllers.MergeGuestCartHandler(db))

		group.POST("/orders", orderControllers.PlaceOrder(db))
		group.GET("/orders", orderControllers.GetUserOrders(db))
		group.GET("/orders/:order_number", orderControllers.GetUserOrder(db))

		group.POST("/checkout/:order_number", mpesaControllers.InitiateCheckoutHandler(db, mpesaClient))
		group.GET("/checkout/:order_number/status", mpesaControllers.CheckoutStatusHandler(db))
		group.POST("/checkout/:order_number/query", mpesaControllers.QueryCheckoutHandler(db, mpesaClient))

		group.POST("/promocodes/validate", promoControllers.ValidatePromoHandler(db))

		group.POST("/products/:product_id/reviews", reviewControllers.SubmitReviewHandler(db))
		group.GET("/reviews", reviewControllers.ListUserReviews(db))
		group.DELETE("/reviews/:id", reviewControllers.DeleteReview(db))

		group.GET("/addresses", userControllers.ListAddresses(db))
		group.POST("/addresses", userControllers.CreateAddress(db))
		group.PUT("/addresses/:id", userControllers.UpdateAddress(db))
		group.DELETE("/addresses/:id", userControllers.DeleteAddress(db))

		group.GET("/payment-methods", userControllers.ListPaymentMethods(db))
		group.POST("/payment-methods", userControllers.CreatePaymentMethod(db))
		group.DELETE("/payment-methods/:id", userControllers.DeletePaymentMethod(db))
	}
}
