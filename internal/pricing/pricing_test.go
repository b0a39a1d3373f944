package pricing

import (
	"math"
	"testing"

	"github.com/nfanikita31-bit/woodshop-sushko/internal/catalog"
)

const eps = 1e-9

func closeEnough(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestCalculate(t *testing.T) {
	cfg := Config{DeliveryCostPerKm: 1.0}

	tests := []struct {
		name         string
		basePrice    float64
		discountRate float64
		distanceKm   float64
		want         Breakdown
	}{
		{
			name:      "no discount",
			basePrice: 260, discountRate: 0, distanceKm: 42.5,
			want: Breakdown{BasePrice: 260, DiscountValue: 0, DiscountedPrice: 260, DeliveryPrice: 42.5, Total: 302.5},
		},
		{
			name:      "pensioner discount",
			basePrice: 520, discountRate: 0.05, distanceKm: 10,
			want: Breakdown{BasePrice: 520, DiscountValue: 26, DiscountedPrice: 494, DeliveryPrice: 10, Total: 504},
		},
		{
			name:      "zero distance",
			basePrice: 169, discountRate: 0.05, distanceKm: 0,
			want: Breakdown{BasePrice: 169, DiscountValue: 8.45, DiscountedPrice: 160.55, DeliveryPrice: 0, Total: 160.55},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.basePrice, tt.discountRate, tt.distanceKm, cfg)
			if !closeEnough(got.BasePrice, tt.want.BasePrice) ||
				!closeEnough(got.DiscountValue, tt.want.DiscountValue) ||
				!closeEnough(got.DiscountedPrice, tt.want.DiscountedPrice) ||
				!closeEnough(got.DeliveryPrice, tt.want.DeliveryPrice) ||
				!closeEnough(got.Total, tt.want.Total) {
				t.Errorf("Calculate() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCalculate_ZeroDiscountIdentity(t *testing.T) {
	got := Calculate(500, 0, 33.33, NewDefaultConfig())
	if got.DiscountedPrice != got.BasePrice {
		t.Errorf("zero discount changed price: %v != %v", got.DiscountedPrice, got.BasePrice)
	}
	if got.DiscountValue != 0 {
		t.Errorf("zero discount produced value %v", got.DiscountValue)
	}
}

func TestCalculate_DeliveryCoefficient(t *testing.T) {
	cfg := Config{DeliveryCostPerKm: 2.5}
	got := Calculate(100, 0, 10, cfg)
	if got.DeliveryPrice != 25 {
		t.Errorf("delivery price = %v, want 25", got.DeliveryPrice)
	}
	if got.Total != 125 {
		t.Errorf("total = %v, want 125", got.Total)
	}
}

func TestCalculate_WholeCatalog(t *testing.T) {
	c := catalog.NewDefault()
	cfg := NewDefaultConfig()

	for _, product := range c.Products() {
		for _, volume := range c.VolumesFor(product) {
			base, ok := c.Price(product, volume)
			if !ok {
				t.Fatalf("catalog has no price for %s %v", product, volume)
			}
			for _, label := range c.Discounts() {
				rate, ok := c.DiscountRate(label)
				if !ok {
					t.Fatalf("catalog has no rate for %s", label)
				}
				got := Calculate(base, rate, 17.42, cfg)
				if got.Total < 0 {
					t.Errorf("%s %v %s: negative total %v", product, volume, label, got.Total)
				}
				if got.DiscountedPrice > got.BasePrice {
					t.Errorf("%s %v %s: discounted %v above base %v",
						product, volume, label, got.DiscountedPrice, got.BasePrice)
				}
			}
		}
	}
}
