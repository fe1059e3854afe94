package promoControllers

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/obimbo07/mohacollection-api/models"
)

var (
	ErrPromoNotFound    = errors.New("promo code not found")
	ErrPromoInactive    = errors.New("promo code is not active")
	ErrPromoNotStarted  = errors.New("promo code is not yet valid")
	ErrPromoExpired     = errors.New("promo code has expired")
	ErrPromoMinPurchase = errors.New("order subtotal below promo code minimum")
	ErrPromoExhausted   = errors.New("promo code usage limit reached")
)

// Validate checks whether a promo code can be applied to an order with the
// given subtotal at the given time. It returns the specific rejection reason;
// callers deciding order totals treat any error as "discount = 0".
func Validate(p *models.PromoCode, subtotal float64, now time.Time) error {
	if !p.IsActive {
		return ErrPromoInactive
	}
	if p.StartDate != nil && now.Before(*p.StartDate) {
		return ErrPromoNotStarted
	}
	if p.EndDate != nil && now.After(*p.EndDate) {
		return ErrPromoExpired
	}
	if subtotal < p.MinPurchaseAmount {
		return ErrPromoMinPurchase
	}
	if p.UsageLimit != nil && p.UsedCount >= *p.UsageLimit {
		return ErrPromoExhausted
	}
	return nil
}

// Discount computes the discount a promo code grants on a subtotal.
// Percentage discounts are capped by max_discount_amount when set; no discount
// ever exceeds the subtotal itself.
func Discount(p *models.PromoCode, subtotal float64) float64 {
	sub := decimal.NewFromFloat(subtotal)
	var d decimal.Decimal

	switch p.DiscountType {
	case models.DiscountTypePercentage:
		d = sub.Mul(decimal.NewFromFloat(p.DiscountValue)).Div(decimal.NewFromInt(100))
		if p.MaxDiscountAmount != nil {
			max := decimal.NewFromFloat(*p.MaxDiscountAmount)
			if d.GreaterThan(max) {
				d = max
			}
		}
	case models.DiscountTypeFixed:
		d = decimal.NewFromFloat(p.DiscountValue)
	default:
		return 0
	}

	if d.GreaterThan(sub) {
		d = sub
	}
	if d.IsNegative() {
		return 0
	}
	f, _ := d.Round(2).Float64()
	return f
}

// Lookup finds an active-or-not promo code by its case-insensitive code.
func Lookup(db *gorm.DB, code string) (*models.PromoCode, error) {
	var promo models.PromoCode
	err := db.Where("LOWER(code) = ?", strings.ToLower(strings.TrimSpace(code))).First(&promo).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrPromoNotFound
	}
	if err != nil {
		return nil, err
	}
	return &promo, nil
}

// ConsumeUsage increments used_count inside the caller's transaction, guarding
// the usage limit at the database so concurrent orders cannot oversell a code.
func ConsumeUsage(tx *gorm.DB, promoID uint) error {
	result := tx.Model(&models.PromoCode{}).
		Where("id = ? AND (usage_limit IS NULL OR used_count < usage_limit)", promoID).
		Update("used_count", gorm.Expr("used_count + 1"))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromoExhausted
	}
	return nil
}
