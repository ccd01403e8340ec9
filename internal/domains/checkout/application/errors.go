package application

import (
	"errors"
	"fmt"

	checkoutdomain "github.com/FrankoBuyern/Proekt2/internal/domains/checkout/domain"
	inventorydomain "github.com/FrankoBuyern/Proekt2/internal/domains/inventory/domain"
)

var (
	// ErrInvalidInput signals a caller bug: a non-positive quantity reached
	// the transaction. It is never recovered from, unlike a stock shortage.
	ErrInvalidInput = errors.New("invalid checkout input")
	// ErrOrderMutation signals a mutation on a closed order, a
	// programming-contract violation inside the transaction.
	ErrOrderMutation = errors.New("order mutated after close")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, inventorydomain.ErrInvalidQuantity) ||
		errors.Is(err, checkoutdomain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if errors.Is(err, checkoutdomain.ErrOrderClosed) {
		return fmt.Errorf("%w: %w", ErrOrderMutation, err)
	}
	return err
}
