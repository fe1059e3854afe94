package promoControllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/obimbo07/mohacollection-api/models"
)

func ptrF(v float64) *float64 { return &v }
func ptrI(v int) *int         { return &v }
func ptrT(v time.Time) *time.Time {
	return &v
}

func TestValidateRejections(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	base := models.PromoCode{
		Code:          "SAVE10",
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 10,
		IsActive:      true,
	}

	t.Run("active and unconstrained", func(t *testing.T) {
		p := base
		assert.NoError(t, Validate(&p, 100, now))
	})

	t.Run("inactive", func(t *testing.T) {
		p := base
		p.IsActive = false
		assert.ErrorIs(t, Validate(&p, 100, now), ErrPromoInactive)
	})

	t.Run("not yet started", func(t *testing.T) {
		p := base
		p.StartDate = ptrT(now.Add(24 * time.Hour))
		assert.ErrorIs(t, Validate(&p, 100, now), ErrPromoNotStarted)
	})

	t.Run("expired", func(t *testing.T) {
		p := base
		p.EndDate = ptrT(now.Add(-24 * time.Hour))
		assert.ErrorIs(t, Validate(&p, 100, now), ErrPromoExpired)
	})

	t.Run("below minimum purchase", func(t *testing.T) {
		p := base
		p.MinPurchaseAmount = 500
		assert.ErrorIs(t, Validate(&p, 499.99, now), ErrPromoMinPurchase)
		assert.NoError(t, Validate(&p, 500, now))
	})

	t.Run("usage limit reached", func(t *testing.T) {
		p := base
		p.UsageLimit = ptrI(10)
		p.UsedCount = 10
		assert.ErrorIs(t, Validate(&p, 100, now), ErrPromoExhausted)

		p.UsedCount = 9
		assert.NoError(t, Validate(&p, 100, now))
	})
}

func TestDiscountPercentage(t *testing.T) {
	p := models.PromoCode{
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 10,
	}
	assert.Equal(t, 100.0, Discount(&p, 1000))

	p.MaxDiscountAmount = ptrF(50)
	assert.Equal(t, 50.0, Discount(&p, 1000))

	// Cap above the raw discount leaves it unchanged.
	p.MaxDiscountAmount = ptrF(500)
	assert.Equal(t, 100.0, Discount(&p, 1000))
}

func TestDiscountFixed(t *testing.T) {
	p := models.PromoCode{
		DiscountType:  models.DiscountTypeFixed,
		DiscountValue: 100,
	}
	assert.Equal(t, 100.0, Discount(&p, 1000))

	// Fixed discount larger than the subtotal is clamped to the subtotal.
	assert.Equal(t, 80.0, Discount(&p, 80))
}

func TestDiscountRoundsToCents(t *testing.T) {
	p := models.PromoCode{
		DiscountType:  models.DiscountTypePercentage,
		DiscountValue: 33,
	}
	// 33% of 99.99 is 32.9967, rounded to 33.00.
	assert.Equal(t, 33.0, Discount(&p, 99.99))
}

func TestDiscountUnknownTypeIsZero(t *testing.T) {
	p := models.PromoCode{DiscountType: "bogus", DiscountValue: 50}
	assert.Equal(t, 0.0, Discount(&p, 1000))
}
