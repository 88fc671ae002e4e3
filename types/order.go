package types

import (
	"encoding/json"
	"fmt"
	"strings"
)

type OrderType uint8

const (
	LIMIT  OrderType = 0
	MARKET OrderType = 1
)

func (o OrderType) String() string {
	switch o {
	case LIMIT:
		return "LIMIT"
	case MARKET:
		return "MARKET"
	}
	return fmt.Sprintf("OrderType(%d)", uint8(o))
}

type TimeInForce uint8

const (
	// GTC rests until filled, cancelled or expired.
	GTC TimeInForce = 0
	// FOK fills completely or not at all.
	FOK TimeInForce = 1
	// IOC fills what it can and cancels the rest.
	IOC TimeInForce = 2
	// ALO (post only) is rejected if it would take liquidity.
	ALO TimeInForce = 3
)

func (t TimeInForce) String() string {
	switch t {
	case GTC:
		return "GTC"
	case FOK:
		return "FOK"
	case IOC:
		return "IOC"
	case ALO:
		return "ALO"
	}
	return fmt.Sprintf("TimeInForce(%d)", uint8(t))
}

// UnmarshalJSON accepts the numeric value or the name, e.g. 0 or "LIMIT".
func (o *OrderType) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, map[string]uint8{"LIMIT": 0, "MARKET": 1})
	if err != nil {
		return fmt.Errorf("order type: %w", err)
	}
	*o = OrderType(v)
	return nil
}

// UnmarshalJSON accepts the numeric value or the name, e.g. 2 or "IOC".
func (t *TimeInForce) UnmarshalJSON(b []byte) error {
	v, err := unmarshalEnum(b, map[string]uint8{"GTC": 0, "FOK": 1, "IOC": 2, "ALO": 3})
	if err != nil {
		return fmt.Errorf("time in force: %w", err)
	}
	*t = TimeInForce(v)
	return nil
}

func unmarshalEnum(b []byte, names map[string]uint8) (uint8, error) {
	var n uint8
	if err := json.Unmarshal(b, &n); err == nil {
		return n, nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return 0, err
	}
	v, ok := names[strings.ToUpper(s)]
	if !ok {
		return 0, fmt.Errorf("unknown value %q", s)
	}
	return v, nil
}
