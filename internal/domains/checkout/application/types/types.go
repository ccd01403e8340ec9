// Package types carries the checkout use-case inputs and projections shared
// by the ports and their adapters.
package types

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	catalogdomain "github.com/FrankoBuyern/Proekt2/internal/domains/catalog/domain"
	checkoutdomain "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/domain"
	customersdomain "github.com/FrankoBuyern/Proekt2/internal/domains/customers/domain"
	inventorydomain "github.com/FrankoBuyern/Proekt2/internal/domains/inventory/domain"
)

// DesiredItem is one requested product in a customer's cart. Cart order
// matters: earlier items get first claim on shared stock.
type DesiredItem struct {
	ProductID int64
	Quantity  int
}

// Outcome classifies how a purchase transaction ended.
type Outcome string

const (
	OutcomeCommitted         Outcome = "committed"
	OutcomeDeclined          Outcome = "declined"
	OutcomeInsufficientFunds Outcome = "insufficient_funds"
	OutcomeEmpty             Outcome = "empty"
)

// SkipReason explains why a desired item produced no order line.
type SkipReason string

const (
	SkipUnknownProduct SkipReason = "unknown_product"
	SkipOutOfStock     SkipReason = "out_of_stock"
)

// SkippedItem pairs a desired item with the reason it was skipped.
type SkippedItem struct {
	Item   DesiredItem
	Reason SkipReason
}

// Shortage describes a reservation that failed for lack of stock, handed to
// the seller together with the restock opportunity.
type Shortage struct {
	Product catalogdomain.Product
	Have    int
	Need    int
}

// PaymentRequest is what the seller sees when asked to confirm a sale.
type PaymentRequest struct {
	Customer customersdomain.Customer
	OrderID  int64
	Total    decimal.Decimal
}

// CheckoutResult reports everything the presentation layer needs after one
// transaction: order state, outcome, money movement, and the ledger snapshot.
type CheckoutResult struct {
	TransactionID uuid.UUID
	Order         *checkoutdomain.Order
	Outcome       Outcome
	Total         decimal.Decimal
	// CustomerCash is the customer's balance after the transaction. It only
	// differs from the arriving balance on a committed sale.
	CustomerCash  decimal.Decimal
	RegisterTotal decimal.Decimal
	Ledger        inventorydomain.Snapshot
	Skipped       []SkippedItem
	// LostUnits are rollback returns the warehouse refused because a
	// concurrent restock consumed the freed capacity. They are reported, not
	// silently dropped.
	LostUnits []checkoutdomain.Line
}
