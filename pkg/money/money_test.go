package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestToPaise(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0", 0},
		{"70.00", 7000},
		{"120", 12000},
		{"0.01", 1},
		{"99.99", 9999},
		{"10.005", 1001}, // half away from zero
		{"10.004", 1000},
	}
	for _, tt := range tests {
		d, err := decimal.NewFromString(tt.in)
		assert.NoError(t, err)
		assert.Equal(t, tt.want, ToPaise(d), "ToPaise(%s)", tt.in)
	}
}

func TestFromPaiseRoundTrip(t *testing.T) {
	for _, paise := range []int64{0, 1, 99, 100, 26000, 7000} {
		assert.Equal(t, paise, ToPaise(FromPaise(paise)))
	}
}

func TestParsePaise(t *testing.T) {
	assert.Equal(t, int64(50000), ParsePaise("500"))
	assert.Equal(t, int64(1050), ParsePaise(" 10.50 "))
	assert.Equal(t, int64(0), ParsePaise(""))
	assert.Equal(t, int64(0), ParsePaise("abc"))
	assert.Equal(t, int64(0), ParsePaise("-25"))
}

func TestFormat(t *testing.T) {
	assert.Equal(t, "260.00", Format(26000))
	assert.Equal(t, "0.00", Format(0))
	assert.Equal(t, "0.05", Format(5))
}
