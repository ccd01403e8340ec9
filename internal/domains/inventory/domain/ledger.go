package domain

import (
	"errors"
	"sync"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("not enough stock on hand")
	ErrCapacityExceeded  = errors.New("restock would exceed warehouse capacity")
)

// Ledger is the capacity-bounded stock accounting for the warehouse.
// Reserve and Restock are its only mutators; both are safe to call from the
// transaction loop, the seller console, and admin handlers concurrently.
type Ledger struct {
	mu        sync.RWMutex
	capacity  int
	size      int
	freeSpace int
	stock     map[int64]int
}

// Snapshot is an immutable view of the ledger state at one instant.
type Snapshot struct {
	Capacity  int
	Size      int
	FreeSpace int
	Stock     map[int64]int
}

// NewLedger constructs an empty ledger with a fixed capacity. A negative
// capacity is clamped to zero.
func NewLedger(capacity int) *Ledger {
	if capacity < 0 {
		capacity = 0
	}
	return &Ledger{
		capacity:  capacity,
		freeSpace: capacity,
		stock:     map[int64]int{},
	}
}

// Reserve removes quantity units of a product on behalf of an in-progress
// order. Nothing changes unless the full quantity is available.
func (l *Ledger) Reserve(productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	current, ok := l.stock[productID]
	if !ok || quantity > current {
		return ErrInsufficientStock
	}
	if quantity == current {
		delete(l.stock, productID)
	} else {
		l.stock[productID] = current - quantity
	}
	l.recalcSpace()
	return nil
}

// Restock returns or adds quantity units of a product to the warehouse. It
// fails without mutating anything when the quantity would not fit.
func (l *Ledger) Restock(productID int64, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if quantity > l.freeSpace {
		return ErrCapacityExceeded
	}
	l.stock[productID] += quantity
	l.recalcSpace()
	return nil
}

// QuantityOf reports the units on hand for a product, zero when absent.
func (l *Ledger) QuantityOf(productID int64) int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.stock[productID]
}

// Capacity reports the fixed maximum number of units the warehouse holds.
func (l *Ledger) Capacity() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.capacity
}

// Size reports the total units currently on hand across all products.
func (l *Ledger) Size() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.size
}

// FreeSpace reports how many more units the warehouse can accept.
func (l *Ledger) FreeSpace() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.freeSpace
}

// Snapshot copies the current state for display without blocking writers
// beyond the copy itself.
func (l *Ledger) Snapshot() Snapshot {
	l.mu.RLock()
	defer l.mu.RUnlock()
	stock := make(map[int64]int, len(l.stock))
	for id, qty := range l.stock {
		stock[id] = qty
	}
	return Snapshot{
		Capacity:  l.capacity,
		Size:      l.size,
		FreeSpace: l.freeSpace,
		Stock:     stock,
	}
}

// recalcSpace recomputes the derived counters. Callers hold the write lock.
func (l *Ledger) recalcSpace() {
	total := 0
	for _, qty := range l.stock {
		total += qty
	}
	l.size = total
	l.freeSpace = l.capacity - total
}
