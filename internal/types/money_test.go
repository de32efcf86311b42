package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2.344", "2.34"},
		{"2.345", "2.35"},
		{"2.346", "2.35"},
		{"-2.345", "-2.35"},
		{"0.005", "0.01"},
		{"10", "10"},
	}

	for _, tt := range tests {
		got := RoundCurrency(decimal.RequireFromString(tt.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"RoundCurrency(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestClampToZero(t *testing.T) {
	assert.True(t, ClampToZero(decimal.RequireFromString("-0.01")).IsZero())
	assert.True(t, ClampToZero(decimal.Zero).IsZero())

	positive := decimal.RequireFromString("12.50")
	assert.True(t, ClampToZero(positive).Equal(positive))
}
