package application

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/google/uuid"

	catalogdomain "github.com/FrankoBuyern/Proekt2/internal/domains/catalog/domain"
	catalogports "github.com/FrankoBuyern/Proekt2/internal/domains/catalog/ports"
	checkouttypes "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/application/types"
	"github.com/FrankoBuyern/Proekt2/internal/domains/checkout/domain"
	"github.com/FrankoBuyern/Proekt2/internal/domains/checkout/ports"
	customersdomain "github.com/FrankoBuyern/Proekt2/internal/domains/customers/domain"
	inventorydomain "github.com/FrankoBuyern/Proekt2/internal/domains/inventory/domain"
)

// Service runs the purchase transaction: reserve the desired items on the
// warehouse ledger, offer the seller a single restock-and-retry per
// shortage, then commit the sale or return the reserved units.
type Service struct {
	catalog  catalogports.Catalog
	ledger   *inventorydomain.Ledger
	register *domain.Register
	seller   ports.SellerPrompt
	orderSeq atomic.Int64
}

func NewService(catalog catalogports.Catalog, ledger *inventorydomain.Ledger, register *domain.Register, seller ports.SellerPrompt) *Service {
	return &Service{
		catalog:  catalog,
		ledger:   ledger,
		register: register,
		seller:   seller,
	}
}

// Checkout processes one customer's cart. Items are handled in cart order, so
// earlier items get first claim on stock. Reservations are per-item atomic:
// an item reserved before a later one fails stays reserved unless the whole
// order is later declined or underfunded.
func (s *Service) Checkout(ctx context.Context, customer customersdomain.Customer, desired []checkouttypes.DesiredItem) (*checkouttypes.CheckoutResult, error) {
	order := domain.NewOrder(s.orderSeq.Add(1), customer.ID)
	result := &checkouttypes.CheckoutResult{
		TransactionID: uuid.New(),
		Order:         order,
		CustomerCash:  customer.Cash,
	}

	for _, item := range desired {
		product, known := s.catalog.FindProduct(item.ProductID)
		if !known {
			result.Skipped = append(result.Skipped, checkouttypes.SkippedItem{Item: item, Reason: checkouttypes.SkipUnknownProduct})
			continue
		}
		reserved, err := s.reserveWithRetry(ctx, product, item)
		if err != nil {
			return nil, mapError(err)
		}
		if !reserved {
			result.Skipped = append(result.Skipped, checkouttypes.SkippedItem{Item: item, Reason: checkouttypes.SkipOutOfStock})
			continue
		}
		price := product.Price
		if err := order.AddLine(item.ProductID, item.Quantity, &price); err != nil {
			return nil, mapError(err)
		}
	}

	if order.Empty() {
		result.Outcome = checkouttypes.OutcomeEmpty
		s.finish(result, order)
		return result, nil
	}

	payment := checkouttypes.PaymentRequest{Customer: customer, OrderID: order.ID(), Total: order.Total()}
	switch {
	case !s.seller.ConfirmPayment(ctx, payment):
		result.Outcome = checkouttypes.OutcomeDeclined
		s.rollback(order, result)
	case customer.Cash.Cmp(order.Total()) < 0:
		// No partial payment: treated exactly like a declined sale.
		result.Outcome = checkouttypes.OutcomeInsufficientFunds
		s.rollback(order, result)
	default:
		result.CustomerCash = customer.Cash.Sub(order.Total())
		if err := s.register.Credit(order.Total()); err != nil {
			return nil, err
		}
		order.Close()
		result.Outcome = checkouttypes.OutcomeCommitted
	}

	s.finish(result, order)
	return result, nil
}

// reserveWithRetry attempts the reservation and, on an out-of-stock failure,
// surfaces the shortage to the seller exactly once. Whether or not the
// seller's restock lands, the reservation is retried exactly once more.
func (s *Service) reserveWithRetry(ctx context.Context, product catalogdomain.Product, item checkouttypes.DesiredItem) (bool, error) {
	err := s.ledger.Reserve(item.ProductID, item.Quantity)
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, inventorydomain.ErrInsufficientStock) {
		return false, err
	}

	shortage := checkouttypes.Shortage{
		Product: product,
		Have:    s.ledger.QuantityOf(item.ProductID),
		Need:    item.Quantity,
	}
	amount := s.seller.RestockAmount(ctx, shortage)
	if amount <= 0 {
		return false, nil
	}
	// The restock itself may be refused for capacity; the single retry still
	// runs so a racing operator restock can satisfy it.
	_ = s.ledger.Restock(item.ProductID, amount)
	retryErr := s.ledger.Reserve(item.ProductID, item.Quantity)
	if retryErr == nil {
		return true, nil
	}
	if errors.Is(retryErr, inventorydomain.ErrInsufficientStock) {
		return false, nil
	}
	return false, retryErr
}

// rollback returns every reserved line to the warehouse. A return can fail
// only when a concurrent restock consumed the freed capacity; those units are
// recorded on the result instead of vanishing silently.
func (s *Service) rollback(order *domain.Order, result *checkouttypes.CheckoutResult) {
	for _, line := range order.Lines() {
		if err := s.ledger.Restock(line.ProductID, line.Quantity); err != nil {
			result.LostUnits = append(result.LostUnits, line)
		}
	}
}

func (s *Service) finish(result *checkouttypes.CheckoutResult, order *domain.Order) {
	result.Total = order.Total()
	result.RegisterTotal = s.register.Total()
	result.Ledger = s.ledger.Snapshot()
}

var _ ports.Service = (*Service)(nil)
