package routes

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	adminControllers "github.com/obimbo07/mohacollection-api/controllers/admin"
	productControllers "github.com/obimbo07/mohacollection-api/controllers/product"
	reviewControllers "github.com/obimbo07/mohacollection-api/controllers/review"
)

// Public storefront routes: no authentication.
func SetupPublicRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/products", productControllers.ListProducts(db))
	r.GET("/products/:slug", productControllers.GetProductBySlug(db))
	r.GET("/products/:slug/reviews", reviewControllers.ListProductReviews(db))
	r.GET("/categories", productControllers.ListCategories(db))
	r.GET("/deals", productControllers.ListActiveDeals(db))
	r.GET("/banners", adminControllers.ListBanners(db))
}
