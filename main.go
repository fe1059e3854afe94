package main

import (
	"fmt"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
	"github.com/obimbo07/mohacollection-api/pkg/logger"
	"github.com/obimbo07/mohacollection-api/routes"
)

func main() {
	_ = godotenv.Load()

	logger.Init()
	defer logger.Sync()
	logger.L.Info("starting mohacollection api")

	db := initDatabase()

	if err := db.AutoMigrate(
		&models.User{},
		&models.GuestUser{},
		&models.Product{},
		&models.Category{},
		&models.Banner{},
		&models.Cart{},
		&models.CartItem{},
		&models.GuestCart{},
		&models.GuestCartItem{},
		&models.Order{},
		&models.OrderItem{},
		&models.PromoCode{},
		&models.HolidayDeal{},
		&models.ProductReview{},
		&models.ShippingAddress{},
		&models.PaymentMethod{},
		&models.CheckoutSession{},
	); err != nil {
		logger.L.Fatal("auto-migrate failed", zap.Error(err))
	}

	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-KEY"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.L.Info("server listening", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		logger.L.Fatal("server exited", zap.Error(err))
	}
}

// initDatabase opens the GORM connection from DATABASE_URL, falling back to
// the individual DB_* variables.
func initDatabase() *gorm.DB {
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
		if err != nil {
			logger.L.Fatal("db connection failed", zap.Error(err))
		}
		return db
	}

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.L.Fatal("db connection failed", zap.Error(err))
	}
	return db
}
