// Package generator produces random shoppers and carts for the simulation
// loop. The checkout core consumes its output but never depends on it.
package generator

import (
	"math/rand"

	"github.com/shopspring/decimal"

	catalogports "github.com/FrankoBuyern/Proekt2/internal/domains/catalog/ports"
	checkouttypes "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/application/types"
	"github.com/FrankoBuyern/Proekt2/internal/domains/customers/domain"
)

var names = []string{"Ivan", "Olga", "Alex", "Maria", "Petr", "Anna", "Sergey", "Dmitry", "Elena"}

var psychoTypes = []domain.PsychoType{
	domain.PsychoTypeImpulsive,
	domain.PsychoTypeThrifty,
	domain.PsychoTypeBrowser,
	domain.PsychoTypeLoyal,
}

// Generator creates random customers and carts drawn from the catalog.
type Generator struct {
	rng     *rand.Rand
	catalog catalogports.Catalog
}

// New seeds a generator. The same seed reproduces the same arrivals.
func New(catalog catalogports.Catalog, seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed)), catalog: catalog}
}

// Customer invents a shopper with up to 100.00 in cash, rounded to cents.
func (g *Generator) Customer() domain.Customer {
	gender := domain.GenderMale
	if g.rng.Intn(2) == 0 {
		gender = domain.GenderFemale
	}
	return domain.Customer{
		ID:     int64(1000 + g.rng.Intn(9000)),
		Name:   names[g.rng.Intn(len(names))],
		Age:    18 + g.rng.Intn(50),
		Gender: gender,
		Type:   psychoTypes[g.rng.Intn(len(psychoTypes))],
		Cash:   decimal.NewFromFloat(g.rng.Float64() * 100).Round(2),
	}
}

// Cart picks one to three distinct catalog products, one to five units each.
func (g *Generator) Cart() []checkouttypes.DesiredItem {
	products := g.catalog.List()
	g.rng.Shuffle(len(products), func(i, j int) {
		products[i], products[j] = products[j], products[i]
	})
	count := 1 + g.rng.Intn(3)
	if count > len(products) {
		count = len(products)
	}
	cart := make([]checkouttypes.DesiredItem, 0, count)
	for _, p := range products[:count] {
		cart = append(cart, checkouttypes.DesiredItem{
			ProductID: p.ID,
			Quantity:  1 + g.rng.Intn(5),
		})
	}
	return cart
}
