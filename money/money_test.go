package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestSum(t *testing.T) {
	rows := []decimal.Decimal{d("10.10"), d("0.20"), d("5")}
	id := func(v decimal.Decimal) decimal.Decimal { return v }

	assert.True(t, d("15.30").Equal(Sum(rows, id)))
	assert.True(t, Sum([]decimal.Decimal{}, id).IsZero())

	big := func(v decimal.Decimal) bool { return v.GreaterThan(d("1")) }
	assert.True(t, d("15.10").Equal(SumIf(rows, big, id)))
}

func TestPercent(t *testing.T) {
	tests := []struct {
		part, whole string
		want        string
	}{
		{"1", "3", "33.3"},
		{"2", "3", "66.7"},
		{"50", "200", "25"},
		{"5", "0", "0"},
		{"5", "-1", "0"},
	}
	for _, tt := range tests {
		got := Percent(d(tt.part), d(tt.whole))
		assert.True(t, d(tt.want).Equal(got), "%s/%s = %s", tt.part, tt.whole, got)
	}
}

func TestParse(t *testing.T) {
	got, err := Parse(" 1,250.75 ")
	require.NoError(t, err)
	assert.True(t, d("1250.75").Equal(got))

	got, err = Parse("")
	require.NoError(t, err)
	assert.True(t, got.IsZero())

	_, err = Parse("abc")
	assert.Error(t, err)
}

func TestFormat(t *testing.T) {
	f := NewFormatter("en-IN", "₹")
	assert.Equal(t, "₹950.50", f.Format(d("950.5")))
	assert.Equal(t, "₹1,234.50", f.Format(d("1234.5")))
	assert.Equal(t, "-₹12.00", f.Format(d("-12")))
	assert.Equal(t, "33.3%", f.FormatPercent(d("33.3")))

	// Halves round away from zero on the decimal, not on its float approximation.
	assert.Equal(t, "₹1.01", f.Format(d("1.005")))
	assert.Equal(t, "₹2.68", f.Format(d("2.675")))
	assert.Equal(t, "-₹2.68", f.Format(d("-2.675")))
	assert.Equal(t, "₹0.00", f.Format(d("-0.004")), "no sign once rounded to zero")

	fallback := NewFormatter("not a locale!", "$")
	assert.Equal(t, "$7.25", fallback.Format(d("7.25")))
}
