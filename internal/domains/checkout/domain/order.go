package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
)

var (
	ErrOrderClosed     = errors.New("order is closed")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// Line is one reserved product within an order.
type Line struct {
	ProductID int64
	Quantity  int
}

// Order is the basket of reserved line items for one customer. Prices are
// captured at reservation time, so the running total never depends on later
// catalog changes. A closed order is immutable forever.
type Order struct {
	id         int64
	customerID int64
	lines      []Line
	index      map[int64]int
	total      decimal.Decimal
	status     Status
}

// NewOrder creates an open, empty order bound to a customer.
func NewOrder(id, customerID int64) *Order {
	return &Order{
		id:         id,
		customerID: customerID,
		index:      map[int64]int{},
		total:      decimal.Zero,
		status:     StatusOpen,
	}
}

func (o *Order) ID() int64         { return o.id }
func (o *Order) CustomerID() int64 { return o.customerID }
func (o *Order) Status() Status    { return o.status }

// Total is the running price of all reserved line items.
func (o *Order) Total() decimal.Decimal { return o.total }

// Empty reports whether no line items are reserved.
func (o *Order) Empty() bool { return len(o.lines) == 0 }

// AddLine reserves quantity units of a product on the order, merging into an
// existing line when present. A nil unitPrice records the units without
// touching the total (reserved but not yet priced).
func (o *Order) AddLine(productID int64, quantity int, unitPrice *decimal.Decimal) error {
	if o.status == StatusClosed {
		return ErrOrderClosed
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	if pos, ok := o.index[productID]; ok {
		o.lines[pos].Quantity += quantity
	} else {
		o.index[productID] = len(o.lines)
		o.lines = append(o.lines, Line{ProductID: productID, Quantity: quantity})
	}
	if unitPrice != nil {
		o.total = o.total.Add(unitPrice.Mul(decimal.NewFromInt(int64(quantity))))
	}
	return nil
}

// RemoveLine releases up to quantity units of a product from the order. A
// product not on the order is a no-op. The total drops by the units actually
// removed when unitPrice is given.
func (o *Order) RemoveLine(productID int64, quantity int, unitPrice *decimal.Decimal) error {
	if o.status == StatusClosed {
		return ErrOrderClosed
	}
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	pos, ok := o.index[productID]
	if !ok {
		return nil
	}
	current := o.lines[pos].Quantity
	removed := quantity
	if removed > current {
		removed = current
	}
	if removed == current {
		o.deleteLine(pos)
	} else {
		o.lines[pos].Quantity = current - removed
	}
	if unitPrice != nil {
		o.total = o.total.Sub(unitPrice.Mul(decimal.NewFromInt(int64(removed))))
	}
	return nil
}

// Close finalizes the order. Any mutation afterwards fails with ErrOrderClosed.
func (o *Order) Close() {
	o.status = StatusClosed
}

// Lines returns a snapshot of the reserved line items in insertion order.
// Safe to call in any state.
func (o *Order) Lines() []Line {
	return append([]Line{}, o.lines...)
}

func (o *Order) deleteLine(pos int) {
	delete(o.index, o.lines[pos].ProductID)
	o.lines = append(o.lines[:pos], o.lines[pos+1:]...)
	for i := pos; i < len(o.lines); i++ {
		o.index[o.lines[i].ProductID] = i
	}
}
