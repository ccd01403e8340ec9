package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category groups products on the shelf.
type Category string

const (
	CategoryFood        Category = "food"
	CategoryElectronics Category = "electronics"
	CategoryClothing    Category = "clothing"
	CategoryHome        Category = "home"
)

// Product is immutable reference data owned by the catalog. The core never
// mutates it; prices are captured into orders at reservation time.
type Product struct {
	ID          int64
	Name        string
	Category    Category
	Price       decimal.Decimal
	ExpireDate  *time.Time
	Description string
}
