package ports

import (
	"github.com/FrankoBuyern/Proekt2/internal/domains/catalog/domain"
)

// Catalog looks up immutable product reference data.
type Catalog interface {
	// FindProduct returns the product for an identifier, or false when the
	// identifier is unknown. An unknown identifier is not an error.
	FindProduct(productID int64) (domain.Product, bool)
	// List returns every catalog product ordered by identifier.
	List() []domain.Product
}
