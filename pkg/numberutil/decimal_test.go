package numberutil

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestMulInt(t *testing.T) {
	require.Equal(t, int64(110), MulInt(100, decimal.RequireFromString("1.1")))
	require.Equal(t, int64(115), MulInt(100, decimal.RequireFromString("1.15")))
	require.Equal(t, int64(2), MulInt(1, decimal.RequireFromString("1.5")))
	require.Equal(t, int64(1), MulInt(1, decimal.RequireFromString("1.25")))
	require.Equal(t, int64(0), MulInt(0, decimal.RequireFromString("3")))
}

func TestMulIntUp(t *testing.T) {
	require.Equal(t, int64(2), MulIntUp(1, decimal.RequireFromString("1.05")))
	require.Equal(t, int64(2), MulIntUp(1, decimal.RequireFromString("1.25")))
	require.Equal(t, int64(110), MulIntUp(100, decimal.RequireFromString("1.1")))
	require.Equal(t, int64(0), MulIntUp(0, decimal.RequireFromString("1.5")))
}

func TestMulFloat(t *testing.T) {
	require.Equal(t, 12.0, MulFloat(10, decimal.RequireFromString("1.2")))
	require.Equal(t, 0.3, MulFloat(0.1, decimal.NewFromInt(3)))
}

func TestRoundFloat(t *testing.T) {
	require.Equal(t, 10.57, RoundFloat(10.5678, 2))
	require.Equal(t, 10.13, RoundFloat(10.125, 2))
	require.Equal(t, 10.0, RoundFloat(10, 2))
}

func TestPercentile(t *testing.T) {
	require.Equal(t, 75.0, Percentile(1, 4))
	require.Equal(t, 0.0, Percentile(4, 4))
	require.Equal(t, 66.67, Percentile(1, 3))
	require.Equal(t, 0.0, Percentile(1, 0))
}
