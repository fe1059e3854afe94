package productControllers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/obimbo07/mohacollection-api/models"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Ankara Dress":          "ankara-dress",
		"  Kitenge  Shirt  ":    "kitenge-shirt",
		"Beaded Sandals (2pk)!": "beaded-sandals-2pk",
		"UPPER case":            "upper-case",
		"---":                   "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Slugify(in), "input %q", in)
	}
}

func TestDealPrice(t *testing.T) {
	assert.Equal(t, 900.0, DealPrice(1000, 10))
	assert.Equal(t, 0.0, DealPrice(1000, 100))
	assert.Equal(t, 66.99, DealPrice(99.99, 33))
}

func TestHolidayDealActiveAt(t *testing.T) {
	now := time.Date(2025, 12, 20, 0, 0, 0, 0, time.UTC)
	start := now.Add(-24 * time.Hour)
	end := now.Add(24 * time.Hour)

	deal := models.HolidayDeal{IsActive: true, StartDate: &start, EndDate: &end}
	assert.True(t, deal.ActiveAt(now))

	deal.IsActive = false
	assert.False(t, deal.ActiveAt(now))

	deal.IsActive = true
	assert.False(t, deal.ActiveAt(now.Add(-48*time.Hour)))
	assert.False(t, deal.ActiveAt(now.Add(48*time.Hour)))

	open := models.HolidayDeal{IsActive: true}
	assert.True(t, open.ActiveAt(now))
}
