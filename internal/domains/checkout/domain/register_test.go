package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestRegister_CreditAccumulates(t *testing.T) {
	register := NewRegister()

	require.NoError(t, register.Credit(decimal.RequireFromString("12.00")))
	require.NoError(t, register.Credit(decimal.RequireFromString("0.50")))

	require.True(t, register.Total().Equal(decimal.RequireFromString("12.50")))
}

func TestRegister_ZeroCreditIsNoOp(t *testing.T) {
	register := NewRegister()
	require.NoError(t, register.Credit(decimal.Zero))
	require.True(t, register.Total().IsZero())
}

func TestRegister_RejectsNegativeCredit(t *testing.T) {
	register := NewRegister()
	require.ErrorIs(t, register.Credit(decimal.RequireFromString("-1.00")), ErrNegativeAmount)
	require.True(t, register.Total().IsZero())
}
