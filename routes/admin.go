package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/obimbo07/mohacollection-api/controllers/admin"
	orderControllers "github.com/obimbo07/mohacollection-api/controllers/order"
	productControllers "github.com/obimbo07/mohacollection-api/controllers/product"
	promoControllers "github.com/obimbo07/mohacollection-api/controllers/promo"
	reviewControllers "github.com/obimbo07/mohacollection-api/controllers/review"
	"github.com/obimbo07/mohacollection-api/middleware"
)

func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	group := r.Group("/admin")
	group.Use(middleware.ValidateAPIKey)
	{
		group.GET("/products", productControllers.ListAllProducts(db))
		group.POST("/products", productControllers.CreateProduct(db))
		group.PUT("/products/:id", productControllers.UpdateProduct(db))
		group.DELETE("/products/:id", productControllers.DeleteProduct(db))
		group.PUT("/products/:id/stock", productControllers.UpdateStock(db))
		group.POST("/products/import", productControllers.ImportProductsFromExcel(db))
		group.GET("/products/export", productControllers.ExportProductsToExcel(db))

		group.POST("/categories", productControllers.CreateCategory(db))
		group.PUT("/categories/:id", productControllers.UpdateCategory(db))
		group.DELETE("/categories/:id", productControllers.DeleteCategory(db))

		group.GET("/orders", orderControllers.GetAllOrders(db))
		group.GET("/orders-feed", orderControllers.OrderFeed())
		group.GET("/orders/:order_number", orderControllers.GetOrderByNumber(db))
		group.PUT("/orders/:order_number/status", orderControllers.UpdateOrderStatus(db))
		group.PUT("/orders/:order_number/payment-status", orderControllers.UpdatePaymentStatus(db))
		group.PUT("/orders/:order_number/tracking", orderControllers.UpdateTrackingNumber(db))

		group.GET("/promocodes", promoControllers.ListPromoCodes(db))
		group.POST("/promocodes", promoControllers.CreatePromoCode(db))
		group.PUT("/promocodes/:id", promoControllers.UpdatePromoCode(db))
		group.DELETE("/promocodes/:id", promoControllers.DeletePromoCode(db))

		group.GET("/deals", productControllers.ListAllDeals(db))
		group.POST("/deals", productControllers.CreateDeal(db))
		group.PUT("/deals/:id", productControllers.UpdateDeal(db))
		group.DELETE("/deals/:id", productControllers.DeleteDeal(db))

		group.GET("/reviews", reviewControllers.ListAllReviews(db))
		group.PUT("/reviews/:id/approve", reviewControllers.SetReviewApproval(db))
		group.DELETE("/reviews/:id", reviewControllers.AdminDeleteReview(db))

		group.POST("/banners", adminControllers.CreateBanner(db))
		group.PUT("/banners/:id", adminControllers.UpdateBanner(db))
		group.DELETE("/banners/:id", adminControllers.DeleteBanner(db))
	}
}
