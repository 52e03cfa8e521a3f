package payment_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github/chapool/child-wallet/internal/wallet/payment"
)

func TestParseUnits(t *testing.T) {
	tests := []struct {
		in       string
		decimals uint8
		want     string
	}{
		{in: "1", decimals: 18, want: "1000000000000000000"},
		{in: "1.5", decimals: 18, want: "1500000000000000000"},
		{in: ".25", decimals: 2, want: "25"},
		{in: "100", decimals: 0, want: "100"},
		{in: "0.000001", decimals: 6, want: "1"},
		{in: "12.", decimals: 2, want: "1200"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := payment.ParseUnits(tt.in, tt.decimals)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseUnitsInvalid(t *testing.T) {
	for _, in := range []string{"", ".", "abc", "-1", "1.2.3", "1e5", "0.123"} {
		t.Run(in, func(t *testing.T) {
			_, err := payment.ParseUnits(in, 2)
			require.ErrorIs(t, err, payment.ErrInvalidAmount)
		})
	}
}

func TestFormatUnits(t *testing.T) {
	tests := []struct {
		in       string
		decimals uint8
		want     string
	}{
		{in: "1000000000000000000", decimals: 18, want: "1"},
		{in: "1500000000000000000", decimals: 18, want: "1.5"},
		{in: "1", decimals: 6, want: "0.000001"},
		{in: "0", decimals: 18, want: "0"},
		{in: "100", decimals: 0, want: "100"},
		{in: "-25", decimals: 2, want: "-0.25"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			amount, ok := new(big.Int).SetString(tt.in, 10)
			require.True(t, ok)
			assert.Equal(t, tt.want, payment.FormatUnits(amount, tt.decimals))
		})
	}

	assert.Equal(t, "0", payment.FormatUnits(nil, 18))
}
