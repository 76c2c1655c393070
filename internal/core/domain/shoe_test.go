package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShoe_Success(t *testing.T) {
	shoe, err := ParseShoe([]string{"South Africa", "SKU44386", "Air Max 90", "2300.0", "20"})
	require.NoError(t, err)

	assert.Equal(t, "South Africa", shoe.Country)
	assert.Equal(t, "SKU44386", shoe.Code)
	assert.Equal(t, "Air Max 90", shoe.Product)
	assert.True(t, shoe.Cost.Equal(decimal.NewFromInt(2300)))
	assert.Equal(t, 20, shoe.Quantity)
}

func TestParseShoe_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		fields []string
	}{
		{name: "too few fields", fields: []string{"China", "SKU1", "Jordan 1", "3200"}},
		{name: "too many fields", fields: []string{"China", "SKU1", "Jordan", "1", "3200", "5"}},
		{name: "bad cost", fields: []string{"China", "SKU1", "Jordan 1", "cheap", "5"}},
		{name: "bad quantity", fields: []string{"China", "SKU1", "Jordan 1", "3200", "5.5"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseShoe(tc.fields)
			assert.ErrorIs(t, err, ErrMalformedField)
		})
	}
}

func TestParseShoe_AcceptsNegativeValues(t *testing.T) {
	shoe, err := ParseShoe([]string{"Vietnam", "SKU2", "Court", "-1", "-2"})
	require.NoError(t, err)
	assert.ErrorIs(t, shoe.Validate(), ErrNegativeValue)
}

func TestShoe_Validate(t *testing.T) {
	valid := Shoe{Code: "A", Cost: decimal.RequireFromString("0"), Quantity: 0}
	assert.NoError(t, valid.Validate())

	negativeCost := Shoe{Code: "A", Cost: decimal.RequireFromString("-0.01"), Quantity: 1}
	assert.ErrorIs(t, negativeCost.Validate(), ErrNegativeValue)

	negativeQuantity := Shoe{Code: "A", Cost: decimal.RequireFromString("1"), Quantity: -1}
	assert.ErrorIs(t, negativeQuantity.Validate(), ErrNegativeValue)

	multiline := Shoe{Code: "A", Product: "Two\nLines", Cost: decimal.RequireFromString("1"), Quantity: 1}
	assert.ErrorIs(t, multiline.Validate(), ErrMalformedField)
}

func TestShoe_Value(t *testing.T) {
	shoe := Shoe{Cost: decimal.RequireFromString("19.99"), Quantity: 3}
	item := ItemValue{Value: shoe.Value()}
	assert.Equal(t, "59.97", item.Formatted())
}

func TestShoe_FieldsRoundTrip(t *testing.T) {
	original := Shoe{Country: "Pakistan", Code: "SKU9", Product: "Gel", Cost: decimal.RequireFromString("1999.5"), Quantity: 7}

	parsed, err := ParseShoe(original.Fields())
	require.NoError(t, err)

	assert.Equal(t, original.Fields(), parsed.Fields())
}

func TestLineError_Unwrap(t *testing.T) {
	err := &LineError{Line: 4, Err: ErrMalformedField}
	assert.True(t, errors.Is(err, ErrMalformedField))
	assert.Equal(t, "line 4: malformed field", err.Error())
}
