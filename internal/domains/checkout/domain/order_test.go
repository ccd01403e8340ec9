package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestAddLine_AccumulatesQuantityAndTotal(t *testing.T) {
	order := NewOrder(1, 100)

	require.NoError(t, order.AddLine(1, 2, price("0.50")))
	require.NoError(t, order.AddLine(1, 3, price("0.50")))

	lines := order.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, Line{ProductID: 1, Quantity: 5}, lines[0])
	require.True(t, order.Total().Equal(decimal.RequireFromString("2.50")))
}

func TestAddLine_NilPriceReservesWithoutPricing(t *testing.T) {
	order := NewOrder(1, 100)

	require.NoError(t, order.AddLine(7, 4, nil))

	require.Len(t, order.Lines(), 1)
	require.True(t, order.Total().IsZero())
}

func TestAddLine_PreservesInsertionOrder(t *testing.T) {
	order := NewOrder(1, 100)
	require.NoError(t, order.AddLine(3, 1, price("5.00")))
	require.NoError(t, order.AddLine(1, 1, price("0.50")))
	require.NoError(t, order.AddLine(2, 1, price("1.20")))

	lines := order.Lines()
	require.Equal(t, []int64{3, 1, 2}, []int64{lines[0].ProductID, lines[1].ProductID, lines[2].ProductID})
}

func TestRemoveLine_RemovesAtMostCurrentQuantity(t *testing.T) {
	order := NewOrder(1, 100)
	require.NoError(t, order.AddLine(1, 3, price("2.00")))

	require.NoError(t, order.RemoveLine(1, 10, price("2.00")))

	require.Empty(t, order.Lines())
	require.True(t, order.Total().IsZero(), "total reduced only by units actually removed, got %s", order.Total())
}

func TestRemoveLine_PartialDecrement(t *testing.T) {
	order := NewOrder(1, 100)
	require.NoError(t, order.AddLine(1, 5, price("1.00")))

	require.NoError(t, order.RemoveLine(1, 2, price("1.00")))

	lines := order.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 3, lines[0].Quantity)
	require.True(t, order.Total().Equal(decimal.RequireFromString("3.00")))
}

func TestRemoveLine_AbsentProductIsNoOp(t *testing.T) {
	order := NewOrder(1, 100)
	require.NoError(t, order.AddLine(1, 2, price("1.00")))

	require.NoError(t, order.RemoveLine(99, 5, price("3.00")))

	require.Len(t, order.Lines(), 1)
	require.True(t, order.Total().Equal(decimal.RequireFromString("2.00")))
}

func TestClose_FreezesOrder(t *testing.T) {
	order := NewOrder(1, 100)
	require.NoError(t, order.AddLine(1, 2, price("1.00")))

	order.Close()

	require.Equal(t, StatusClosed, order.Status())
	require.ErrorIs(t, order.AddLine(2, 1, price("1.00")), ErrOrderClosed)
	require.ErrorIs(t, order.RemoveLine(1, 1, price("1.00")), ErrOrderClosed)

	lines := order.Lines()
	require.Len(t, lines, 1)
	require.Equal(t, 2, lines[0].Quantity)
	require.True(t, order.Total().Equal(decimal.RequireFromString("2.00")))
}

func TestAddLine_RejectsNonPositiveQuantity(t *testing.T) {
	order := NewOrder(1, 100)
	require.ErrorIs(t, order.AddLine(1, 0, price("1.00")), ErrInvalidQuantity)
	require.ErrorIs(t, order.AddLine(1, -2, price("1.00")), ErrInvalidQuantity)
	require.Empty(t, order.Lines())
}

func TestLines_ReturnsSnapshot(t *testing.T) {
	order := NewOrder(1, 100)
	require.NoError(t, order.AddLine(1, 2, price("1.00")))

	lines := order.Lines()
	lines[0].Quantity = 99

	require.Equal(t, 2, order.Lines()[0].Quantity)
}
