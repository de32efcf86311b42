package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsWithinWindow(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		date time.Time
		to   *time.Time
		want bool
	}{
		{"before window", from.AddDate(0, 0, -1), &to, false},
		{"on start date", from, &to, true},
		{"inside window", from.AddDate(0, 6, 0), &to, true},
		{"on end date", to, &to, true},
		{"after window", to.AddDate(0, 0, 1), &to, false},
		{"open ended inside", from.AddDate(10, 0, 0), nil, true},
		{"open ended before", from.AddDate(0, 0, -1), nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWithinWindow(tt.date, from, tt.to))
		})
	}
}
