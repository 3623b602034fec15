package option

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewValidContract(t *testing.T) {
	c, err := New(1.0, 100, Call, 0.2, 0.05, 0.01)
	require.NoError(t, err)
	assert.Equal(t, 1.0, c.Expiry())
	assert.Equal(t, 100.0, c.Strike())
	assert.Equal(t, Call, c.Type())
	assert.Equal(t, 0.2, c.Volatility())
	assert.Equal(t, 0.05, c.Rate())
	assert.Equal(t, 0.01, c.DividendYield())
}

func TestNewRejectsBadOptionType(t *testing.T) {
	_, err := New(1.0, 100, Type("banana"), 0.2, 0.05, 0)
	require.ErrorIs(t, err, ErrInvalidOptionType)
}

func TestNewRejectsOutOfBoundsParameters(t *testing.T) {
	cases := []struct {
		name                           string
		expiry, strike, vol, rate, div float64
	}{
		{"zero expiry", 0, 100, 0.2, 0.05, 0},
		{"negative expiry", -1, 100, 0.2, 0.05, 0},
		{"zero strike", 1, 0, 0.2, 0.05, 0},
		{"zero volatility", 1, 100, 0, 0.05, 0},
		{"negative rate", 1, 100, 0.2, -0.01, 0},
		{"negative dividend yield", 1, 100, 0.2, 0.05, -0.01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.expiry, tc.strike, Put, tc.vol, tc.rate, tc.div)
			require.ErrorIs(t, err, ErrInvalidParameter)
		})
	}
}

func TestPayoff(t *testing.T) {
	assert.Equal(t, 5.0, Call.Payoff(105, 100))
	assert.Equal(t, 0.0, Call.Payoff(95, 100))
	assert.Equal(t, 5.0, Put.Payoff(95, 100))
	assert.Equal(t, 0.0, Put.Payoff(105, 100))

	c, err := New(1.0, 100, Put, 0.2, 0.05, 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, c.Intrinsic(90))
}
