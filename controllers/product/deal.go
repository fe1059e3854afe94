package productControllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
)

// DealPrice applies a deal's percentage discount to a product price, rounded
// to cents.
func DealPrice(price, discountPercentage float64) float64 {
	p := decimal.NewFromFloat(price)
	factor := decimal.NewFromInt(100).Sub(decimal.NewFromFloat(discountPercentage))
	f, _ := p.Mul(factor).Div(decimal.NewFromInt(100)).Round(2).Float64()
	if f < 0 {
		return 0
	}
	return f
}

type dealProductView struct {
	models.Product
	DealPrice float64 `json:"deal_price"`
}

type dealView struct {
	ID                 uint              `json:"id"`
	Name               string            `json:"name"`
	Banner             string            `json:"banner"`
	DiscountPercentage float64           `json:"discount_percentage"`
	StartDate          *time.Time        `json:"start_date"`
	EndDate            *time.Time        `json:"end_date"`
	Products           []dealProductView `json:"products"`
}

// GET /deals
// Lists currently running deals with each product's discounted price resolved.
func ListActiveDeals(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var deals []models.HolidayDeal
		if err := db.Preload("Products").Where("is_active = ?", true).Find(&deals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
			return
		}

		now := time.Now()
		views := make([]dealView, 0, len(deals))
		for i := range deals {
			deal := &deals[i]
			if !deal.ActiveAt(now) {
				continue
			}
			view := dealView{
				ID:                 deal.ID,
				Name:               deal.Name,
				Banner:             deal.Banner,
				DiscountPercentage: deal.DiscountPercentage,
				StartDate:          deal.StartDate,
				EndDate:            deal.EndDate,
				Products:           make([]dealProductView, 0, len(deal.Products)),
			}
			for _, p := range deal.Products {
				if !p.IsActive {
					continue
				}
				view.Products = append(view.Products, dealProductView{
					Product:   p,
					DealPrice: DealPrice(p.Price, deal.DiscountPercentage),
				})
			}
			views = append(views, view)
		}
		c.JSON(http.StatusOK, views)
	}
}

// -------- Admin --------

// GET /admin/deals
func ListAllDeals(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var deals []models.HolidayDeal
		if err := db.Preload("Products").Order("created_at DESC").Find(&deals).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch deals"})
			return
		}
		c.JSON(http.StatusOK, deals)
	}
}

type dealInput struct {
	Name               string     `json:"name" binding:"required"`
	Banner             string     `json:"banner"`
	DiscountPercentage float64    `json:"discount_percentage" binding:"required"`
	StartDate          *time.Time `json:"start_date"`
	EndDate            *time.Time `json:"end_date"`
	IsActive           *bool      `json:"is_active"`
	ProductIDs         []uint     `json:"product_ids"`
}

// POST /admin/deals
func CreateDeal(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input dealInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.DiscountPercentage <= 0 || input.DiscountPercentage > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_percentage must be in (0, 100]"})
			return
		}

		deal := models.HolidayDeal{
			Name:               input.Name,
			Banner:             input.Banner,
			DiscountPercentage: input.DiscountPercentage,
			StartDate:          input.StartDate,
			EndDate:            input.EndDate,
			IsActive:           true,
		}
		if input.IsActive != nil {
			deal.IsActive = *input.IsActive
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&deal).Error; err != nil {
				return err
			}
			if len(input.ProductIDs) == 0 {
				return nil
			}
			var products []models.Product
			if err := tx.Find(&products, input.ProductIDs).Error; err != nil {
				return err
			}
			return tx.Model(&deal).Association("Products").Replace(products)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create deal"})
			return
		}
		c.JSON(http.StatusCreated, deal)
	}
}

// PUT /admin/deals/:id
func UpdateDeal(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		var deal models.HolidayDeal
		if err := db.First(&deal, uint(id)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
			return
		}

		var input dealInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}
		if input.DiscountPercentage <= 0 || input.DiscountPercentage > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "discount_percentage must be in (0, 100]"})
			return
		}

		deal.Name = input.Name
		deal.Banner = input.Banner
		deal.DiscountPercentage = input.DiscountPercentage
		deal.StartDate = input.StartDate
		deal.EndDate = input.EndDate
		if input.IsActive != nil {
			deal.IsActive = *input.IsActive
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Save(&deal).Error; err != nil {
				return err
			}
			if input.ProductIDs == nil {
				return nil
			}
			var products []models.Product
			if len(input.ProductIDs) > 0 {
				if err := tx.Find(&products, input.ProductIDs).Error; err != nil {
					return err
				}
			}
			return tx.Model(&deal).Association("Products").Replace(products)
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update deal"})
			return
		}
		c.JSON(http.StatusOK, deal)
	}
}

// DELETE /admin/deals/:id
func DeleteDeal(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
			return
		}

		var deal models.HolidayDeal
		if err := db.First(&deal, uint(id)).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Deal not found"})
			return
		}

		err = db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&deal).Association("Products").Clear(); err != nil {
				return err
			}
			return tx.Delete(&deal).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete deal"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Deal deleted"})
	}
}
