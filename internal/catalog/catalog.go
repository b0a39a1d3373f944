package catalog

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Catalog holds the static product/volume/price table and the discount table.
// Loaded once at startup and never mutated afterwards.
type Catalog struct {
	products  []string
	prices    map[string]map[float64]float64
	discounts []string
	rates     map[string]float64
}

// NewDefault returns the built-in firewood price list.
func NewDefault() *Catalog {
	return &Catalog{
		products: []string{
			"Береза колотая",
			"Береза чурками",
			"Ольха колотая",
			"Ольха чурками",
			"Микс(береза+ольха)колотая",
			"Микс(береза+ольха)чурками",
			"Обрезки 3-4 метра",
			"Обрезки резанные (30-40 см)",
		},
		prices: map[string]map[float64]float64{
			"Береза колотая":              {2.5: 260, 5: 520},
			"Береза чурками":              {2.5: 240, 5: 500},
			"Ольха колотая":               {2.5: 260, 5: 495},
			"Ольха чурками":               {2.5: 240, 5: 475},
			"Микс(береза+ольха)колотая":   {2.5: 260, 5: 500},
			"Микс(береза+ольха)чурками":   {2.5: 240, 5: 480},
			"Обрезки 3-4 метра":           {5: 169},
			"Обрезки резанные (30-40 см)": {5: 235},
		},
		discounts: []string{"Пенсионер", "Инвалид", "Без скидки"},
		rates: map[string]float64{
			"Пенсионер":  0.05,
			"Инвалид":    0.05,
			"Без скидки": 0.0,
		},
	}
}

type catalogFile struct {
	Products  map[string]map[string]float64 `json:"products"`
	Discounts map[string]float64            `json:"discounts"`
}

// Load reads a catalog override from a JSON file. Volume keys are decimal
// strings ("2.5", "5"). Products and discounts are listed alphabetically
// since JSON objects carry no order.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if len(file.Products) == 0 {
		return nil, fmt.Errorf("catalog %s has no products", path)
	}
	if len(file.Discounts) == 0 {
		return nil, fmt.Errorf("catalog %s has no discounts", path)
	}

	c := &Catalog{
		prices: make(map[string]map[float64]float64, len(file.Products)),
		rates:  file.Discounts,
	}

	for name, volumes := range file.Products {
		c.products = append(c.products, name)
		c.prices[name] = make(map[float64]float64, len(volumes))
		for key, price := range volumes {
			volume, err := strconv.ParseFloat(key, 64)
			if err != nil {
				return nil, fmt.Errorf("product %q: bad volume key %q: %w", name, key, err)
			}
			if price < 0 {
				return nil, fmt.Errorf("product %q: negative price for volume %s", name, key)
			}
			c.prices[name][volume] = price
		}
	}
	sort.Strings(c.products)

	for label, rate := range file.Discounts {
		if rate < 0 || rate >= 1 {
			return nil, fmt.Errorf("discount %q: rate %v outside [0,1)", label, rate)
		}
		c.discounts = append(c.discounts, label)
	}
	sort.Strings(c.discounts)

	return c, nil
}

// Products returns product names in keyboard order.
func (c *Catalog) Products() []string {
	return c.products
}

func (c *Catalog) HasProduct(name string) bool {
	_, ok := c.prices[name]
	return ok
}

// VolumesFor returns the volumes offered for a product, ascending.
func (c *Catalog) VolumesFor(product string) []float64 {
	volumes := make([]float64, 0, len(c.prices[product]))
	for v := range c.prices[product] {
		volumes = append(volumes, v)
	}
	sort.Float64s(volumes)
	return volumes
}

func (c *Catalog) Price(product string, volume float64) (float64, bool) {
	price, ok := c.prices[product][volume]
	return price, ok
}

// Discounts returns discount labels in keyboard order.
func (c *Catalog) Discounts() []string {
	return c.discounts
}

func (c *Catalog) DiscountRate(label string) (float64, bool) {
	rate, ok := c.rates[label]
	return rate, ok
}

// ParseVolume extracts the numeric volume from a button label such as
// "2.5 куба" or "5 кубов".
func ParseVolume(text string) (float64, bool) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, false
	}
	volume, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, false
	}
	return volume, true
}

// VolumeLabel renders a volume as a button label with the right Russian
// plural form ("2.5 куба", "5 кубов").
func VolumeLabel(volume float64) string {
	return strconv.FormatFloat(volume, 'f', -1, 64) + " " + cubesWord(volume)
}

func cubesWord(volume float64) string {
	if volume != math.Trunc(volume) {
		return "куба"
	}
	switch n := int(volume) % 10; {
	case n == 1 && int(volume)%100 != 11:
		return "куб"
	case n >= 2 && n <= 4 && (int(volume)%100 < 12 || int(volume)%100 > 14):
		return "куба"
	default:
		return "кубов"
	}
}
