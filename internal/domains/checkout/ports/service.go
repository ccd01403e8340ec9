package ports

import (
	"context"

	checkouttypes "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/application/types"
	customersdomain "github.com/FrankoBuyern/Proekt2/internal/domains/customers/domain"
)

// Service exposes the checkout use case to adapters (inbound/driving port).
type Service interface {
	Checkout(ctx context.Context, customer customersdomain.Customer, desired []checkouttypes.DesiredItem) (*checkouttypes.CheckoutResult, error)
}
