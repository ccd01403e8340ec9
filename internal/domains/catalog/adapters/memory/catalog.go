package memory

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/FrankoBuyern/Proekt2/internal/domains/catalog/domain"
	"github.com/FrankoBuyern/Proekt2/internal/domains/catalog/ports"
)

var _ ports.Catalog = (*Catalog)(nil)

// Catalog is an in-memory product catalog. It is read-only after
// construction, so lookups need no locking.
type Catalog struct {
	products map[int64]domain.Product
}

// NewCatalog builds a catalog from the given products.
func NewCatalog(products []domain.Product) *Catalog {
	byID := make(map[int64]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &Catalog{products: byID}
}

func (c *Catalog) FindProduct(productID int64) (domain.Product, bool) {
	p, ok := c.products[productID]
	return p, ok
}

func (c *Catalog) List() []domain.Product {
	list := make([]domain.Product, 0, len(c.products))
	for _, p := range c.products {
		list = append(list, p)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
	return list
}

// SeedProducts returns the default shop assortment.
func SeedProducts(now time.Time) []domain.Product {
	expiry := func(days int) *time.Time {
		t := now.AddDate(0, 0, days)
		return &t
	}
	return []domain.Product{
		{ID: 1, Name: "Apple", Category: domain.CategoryFood, Price: decimal.RequireFromString("0.50"), ExpireDate: expiry(10), Description: "Fresh red apple"},
		{ID: 2, Name: "Milk 1L", Category: domain.CategoryFood, Price: decimal.RequireFromString("1.20"), ExpireDate: expiry(7), Description: "Whole milk 1L"},
		{ID: 3, Name: "USB Cable", Category: domain.CategoryElectronics, Price: decimal.RequireFromString("5.00"), Description: "USB-A to USB-C cable"},
		{ID: 4, Name: "Bread", Category: domain.CategoryFood, Price: decimal.RequireFromString("0.80"), ExpireDate: expiry(3), Description: "Loaf of bread"},
		{ID: 5, Name: "Jeans", Category: domain.CategoryClothing, Price: decimal.RequireFromString("25.00"), Description: "Blue denim jeans"},
		{ID: 6, Name: "Pen", Category: domain.CategoryHome, Price: decimal.RequireFromString("0.30"), Description: "Ballpoint pen"},
		{ID: 7, Name: "Coffee Mug", Category: domain.CategoryHome, Price: decimal.RequireFromString("7.50"), Description: "Ceramic mug 350ml"},
	}
}

// SeedStock is the initial quantity on hand per seeded product, deliberately
// small so restocking comes up during play.
func SeedStock() map[int64]int {
	return map[int64]int{
		1: 10,
		2: 8,
		3: 3,
		4: 12,
		5: 2,
		6: 25,
		7: 5,
	}
}
