package ports

import (
	"context"

	checkouttypes "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/application/types"
)

// SellerPrompt is the human behind the register (outbound/driven port). Both
// calls may block indefinitely on seller input; the checkout service never
// holds the stock-ledger lock while prompting.
type SellerPrompt interface {
	// RestockAmount offers the seller a chance to restock a product that
	// could not be reserved. Zero or a negative value declines.
	RestockAmount(ctx context.Context, shortage checkouttypes.Shortage) int
	// ConfirmPayment asks the seller to take payment for the order total.
	ConfirmPayment(ctx context.Context, payment checkouttypes.PaymentRequest) bool
}
