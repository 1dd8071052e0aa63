package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ===== Catalog Seed =====

// catalogEntry is a product as written in a catalog file, with a display price.
type catalogEntry struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Price       string `yaml:"price"`
	Image       string `yaml:"image"`
	Stock       int    `yaml:"stock"`
	Description string `yaml:"description"`
}

var defaultCatalog = []catalogEntry{
	{
		ID:          "1",
		Name:        "AKILLI TELEFON",
		Price:       "799.99",
		Image:       "https://dummyimage.com/200x200/000/fff&text=Smartphone",
		Stock:       5,
		Description: "Son çıkan güçlü bir akıllı telefon.",
	},
	{
		ID:          "2",
		Name:        "LAPTOP",
		Price:       "1299.99",
		Image:       "https://dummyimage.com/200x200/000/fff&text=Laptop",
		Stock:       3,
		Description: "Yüksek performans sağlayan iş bilgisayarı.",
	},
	{
		ID:          "3",
		Name:        "KULAKLIK",
		Price:       "199.99",
		Image:       "https://dummyimage.com/200x200/000/fff&text=Headphones",
		Stock:       10,
		Description: "Gürültü engelleyen son model kulaklık.",
	},
	{
		ID:          "4",
		Name:        "AKILLI SAAT",
		Price:       "249.99",
		Image:       "https://dummyimage.com/200x200/000/fff&text=Smartwatch",
		Stock:       8,
		Description: "Her telefon ile uyumlu olan akıllı saat.",
	},
}

// DefaultProducts returns the built-in four-product catalog.
func DefaultProducts(currency string) []Product {
	products, _ := buildCatalog(defaultCatalog, currency)
	return products
}

// LoadCatalog reads a YAML list of products. Prices are display strings and
// are parsed once here.
func LoadCatalog(path, currency string) ([]Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	var entries []catalogEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse catalog %s: %w", path, err)
	}
	return buildCatalog(entries, currency)
}

func buildCatalog(entries []catalogEntry, currency string) ([]Product, error) {
	seen := make(map[string]bool, len(entries))
	products := make([]Product, 0, len(entries))
	for i, e := range entries {
		if e.ID == "" {
			return nil, fmt.Errorf("catalog entry %d: missing id", i)
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("catalog entry %d: duplicate id %q", i, e.ID)
		}
		if e.Stock < 0 {
			return nil, fmt.Errorf("catalog entry %q: negative stock", e.ID)
		}
		if _, err := parseMinor(e.Price); err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", e.ID, err)
		}
		seen[e.ID] = true
		products = append(products, Product{
			ID:          e.ID,
			Name:        e.Name,
			Price:       ParsePrice(e.Price, currency),
			Image:       e.Image,
			Stock:       e.Stock,
			Description: e.Description,
		})
	}
	return products, nil
}
