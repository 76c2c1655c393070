package domain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Header is the column row written at the top of the backing store.
var Header = []string{"Country", "Code", "Product", "Cost", "Quantity"}

type Shoe struct {
	Country  string
	Code     string
	Product  string
	Cost     decimal.Decimal
	Quantity int
}

// Validate enforces non-negative cost and quantity. Text fields must fit on
// one storage line.
func (s Shoe) Validate() error {
	if s.Cost.IsNegative() || s.Quantity < 0 {
		return ErrNegativeValue
	}
	for _, field := range []string{s.Country, s.Code, s.Product} {
		if strings.ContainsAny(field, "\r\n") {
			return fmt.Errorf("%w: line break in %q", ErrMalformedField, field)
		}
	}
	return nil
}

// Value is cost times quantity.
func (s Shoe) Value() decimal.Decimal {
	return s.Cost.Mul(decimal.NewFromInt(int64(s.Quantity)))
}

// Fields returns the record in storage column order.
func (s Shoe) Fields() []string {
	return []string{s.Country, s.Code, s.Product, s.Cost.String(), strconv.Itoa(s.Quantity)}
}

func (s Shoe) String() string {
	return fmt.Sprintf("%s [%s] from %s, cost %s, quantity %d",
		s.Product, s.Code, s.Country, s.Cost.StringFixed(2), s.Quantity)
}

// ParseShoe builds a Shoe from the five storage columns. Negative values
// are accepted here; only capture and restock enforce the invariant.
func ParseShoe(fields []string) (Shoe, error) {
	if len(fields) != len(Header) {
		return Shoe{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedField, len(Header), len(fields))
	}

	cost, err := ParseCost(fields[3])
	if err != nil {
		return Shoe{}, err
	}
	quantity, err := ParseQuantity(fields[4])
	if err != nil {
		return Shoe{}, err
	}

	return Shoe{
		Country:  fields[0],
		Code:     fields[1],
		Product:  fields[2],
		Cost:     cost,
		Quantity: quantity,
	}, nil
}

func ParseCost(raw string) (decimal.Decimal, error) {
	cost, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("%w: cost %q", ErrMalformedField, raw)
	}
	return cost, nil
}

func ParseQuantity(raw string) (int, error) {
	quantity, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%w: quantity %q", ErrMalformedField, raw)
	}
	return quantity, nil
}

type ItemValue struct {
	Product string
	Code    string
	Value   decimal.Decimal
}

// Formatted renders the value with two decimal places.
func (v ItemValue) Formatted() string {
	return v.Value.StringFixed(2)
}
