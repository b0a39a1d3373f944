package pricing

type Config struct {
	DeliveryCostPerKm float64
}

func NewDefaultConfig() Config {
	return Config{
		DeliveryCostPerKm: 1.0,
	}
}

// Breakdown holds every component of an order's price. Values are kept at
// full float precision; rounding happens only when formatting for display.
type Breakdown struct {
	BasePrice       float64
	DiscountValue   float64
	DiscountedPrice float64
	DeliveryPrice   float64
	Total           float64
}

// Calculate computes the price breakdown for an order: the catalog base
// price, minus the discount, plus a distance-proportional delivery fee.
func Calculate(basePrice, discountRate, distanceKm float64, cfg Config) Breakdown {
	discountValue := basePrice * discountRate
	discountedPrice := basePrice - discountValue
	deliveryPrice := distanceKm * cfg.DeliveryCostPerKm

	return Breakdown{
		BasePrice:       basePrice,
		DiscountValue:   discountValue,
		DiscountedPrice: discountedPrice,
		DeliveryPrice:   deliveryPrice,
		Total:           discountedPrice + deliveryPrice,
	}
}
