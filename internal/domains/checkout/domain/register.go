package domain

import (
	"errors"
	"sync"

	"github.com/shopspring/decimal"
)

var ErrNegativeAmount = errors.New("credit amount must not be negative")

// Register is the seller's cash box. It only ever grows: rollbacks return
// stock, never money, so no debit path exists.
type Register struct {
	mu    sync.RWMutex
	total decimal.Decimal
}

// NewRegister starts an empty register.
func NewRegister() *Register {
	return &Register{total: decimal.Zero}
}

// Credit adds a collected payment. Zero is a no-op, negative is rejected.
func (r *Register) Credit(amount decimal.Decimal) error {
	if amount.IsNegative() {
		return ErrNegativeAmount
	}
	if amount.IsZero() {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = r.total.Add(amount)
	return nil
}

// Total reports the cash collected so far.
func (r *Register) Total() decimal.Decimal {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}
