package types

import (
	"encoding/json"
	"math/big"

	"github.com/FedererKK/citrex-go/internal/utils"
	"github.com/shopspring/decimal"
)

// E18 is a fixed-point venue value (price, quantity, balance) transported as
// an integer scaled by 10^18, either as a JSON string or a JSON number.
type E18 struct {
	decimal.Decimal
}

func NewE18(d decimal.Decimal) E18 {
	return E18{Decimal: d}
}

// UnmarshalJSON implements json.Unmarshaler for E18
func (e *E18) UnmarshalJSON(b []byte) error {
	// Handle "null"
	if string(b) == "null" {
		e.Decimal = decimal.Zero
		return nil
	}

	// Quoted integer
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v, err := utils.ParseE18(s)
		if err != nil {
			return err
		}
		e.Decimal = v
		return nil
	}

	// Otherwise a bare JSON number
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	v, err := utils.ParseE18(n.String())
	if err != nil {
		return err
	}
	e.Decimal = v
	return nil
}

// MarshalJSON writes the e18 integer as a string.
func (e E18) MarshalJSON() ([]byte, error) {
	i, err := e.Int()
	if err != nil {
		return nil, err
	}
	return json.Marshal(i.String())
}

// Int returns the scaled integer form. Negative values (fees, pnl) keep
// their sign.
func (e E18) Int() (*big.Int, error) {
	if e.IsNegative() {
		b, err := utils.ToE18(e.Neg())
		if err != nil {
			return nil, err
		}
		return b.Neg(b), nil
	}
	return utils.ToE18(e.Decimal)
}

func (e E18) String() string {
	return e.Decimal.String()
}
