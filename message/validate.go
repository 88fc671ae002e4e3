package message

import (
	"fmt"
	"math/big"

	"github.com/FedererKK/citrex-go/constants"
	"github.com/FedererKK/citrex-go/internal/utils"
	"github.com/ethereum/go-ethereum/common"
)

// Validate checks msg against the schema of its primary type: same field
// names in the same order, Go values matching the declared types, integers
// in range and non-zero account and asset addresses. It does no cryptographic work.
func Validate(msg Message) error {
	if msg == nil {
		return fmt.Errorf("message is nil")
	}

	schema, ok := schemas[msg.PrimaryType()]
	if !ok {
		return fmt.Errorf("unknown message type %q", msg.PrimaryType())
	}

	fields, err := msg.Fields()
	if err != nil {
		return fmt.Errorf("%s: %w", msg.Kind(), err)
	}

	if len(fields) != len(schema) {
		for i := range max(len(fields), len(schema)) {
			if i >= len(fields) {
				return fmt.Errorf("%s: missing field %q", msg.Kind(), schema[i].Name)
			}
			if i >= len(schema) {
				return fmt.Errorf("%s: unknown field %q", msg.Kind(), fields[i].Name)
			}
			if fields[i].Name != schema[i].Name {
				return fmt.Errorf(
					"%s: field %d is %q, want %q",
					msg.Kind(), i, fields[i].Name, schema[i].Name,
				)
			}
		}
	}

	for i, f := range fields {
		want := schema[i]
		if f.Name != want.Name {
			return fmt.Errorf(
				"%s: field %d is %q, want %q",
				msg.Kind(), i, f.Name, want.Name,
			)
		}
		if f.Type != want.Type {
			return fmt.Errorf(
				"%s: field %q has type %s, want %s",
				msg.Kind(), f.Name, f.Type, want.Type,
			)
		}
		if err := checkValue(f); err != nil {
			return fmt.Errorf("%s: field %q: %w", msg.Kind(), f.Name, err)
		}
	}

	return nil
}

func checkValue(f Field) error {
	if f.Value == nil {
		return fmt.Errorf("missing value")
	}

	switch f.Type {
	case "address":
		a, ok := f.Value.(common.Address)
		if !ok {
			return fmt.Errorf("expected common.Address, got %T", f.Value)
		}
		if (f.Name == "account" || f.Name == "asset") && a == constants.ZERO_ADDRESS {
			return fmt.Errorf("zero %s address", f.Name)
		}
	case "bool":
		if _, ok := f.Value.(bool); !ok {
			return fmt.Errorf("expected bool, got %T", f.Value)
		}
	case "bytes32":
		if _, ok := f.Value.(common.Hash); !ok {
			return fmt.Errorf("expected common.Hash, got %T", f.Value)
		}
	case "uint8":
		if _, ok := f.Value.(uint8); !ok {
			return fmt.Errorf("expected uint8, got %T", f.Value)
		}
	case "uint32":
		if _, ok := f.Value.(uint32); !ok {
			return fmt.Errorf("expected uint32, got %T", f.Value)
		}
	case "uint64":
		if _, ok := f.Value.(uint64); !ok {
			return fmt.Errorf("expected uint64, got %T", f.Value)
		}
	case "uint128":
		b, ok := f.Value.(*big.Int)
		if !ok {
			return fmt.Errorf("expected *big.Int, got %T", f.Value)
		}
		if !utils.FitsUint(b, 128) {
			return fmt.Errorf("%s does not fit in uint128", b)
		}
	default:
		return fmt.Errorf("unsupported type %s", f.Type)
	}

	return nil
}

// TypedValue converts a validated field value to the form expected by the
// typed-data encoder.
func TypedValue(f Field) any {
	switch v := f.Value.(type) {
	case common.Address:
		return v.Hex()
	case common.Hash:
		return v.Bytes()
	case uint8:
		return new(big.Int).SetUint64(uint64(v))
	case uint32:
		return new(big.Int).SetUint64(uint64(v))
	case uint64:
		return new(big.Int).SetUint64(v)
	}
	return f.Value
}
