package types

import (
	"reflect"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

const orderIDLength = 32

// OrderID is the venue-assigned identifier of a resting order.
type OrderID [orderIDLength]byte

var orderIDT = reflect.TypeFor[OrderID]()

// BytesToOrderID returns OrderID with value b.
// If b is larger than len(o), b will be cropped from the left.
func BytesToOrderID(b []byte) OrderID {
	var o OrderID
	o.SetBytes(b)
	return o
}

// HexToOrderID returns OrderID with byte values of s.
// If s is larger than len(o), s will be cropped from the left.
func HexToOrderID(s string) OrderID {
	return BytesToOrderID(common.FromHex(s))
}

// SetBytes sets the OrderID to the value of b.
// If b is larger than len(o), b will be cropped from the left.
func (o *OrderID) SetBytes(b []byte) {
	if len(b) > len(o) {
		b = b[len(b)-orderIDLength:]
	}

	copy(o[orderIDLength-len(b):], b)
}

// Hash returns the id as a 32 byte hash, the form used in typed data.
func (o OrderID) Hash() common.Hash { return common.Hash(o) }

func (o OrderID) IsZero() bool { return o == OrderID{} }

// Hex converts an OrderID to a hex string.
func (o OrderID) Hex() string { return hexutil.Encode(o[:]) }

func (o OrderID) String() string {
	return o.Hex()
}

// UnmarshalJSON parses an OrderID in hex syntax.
func (o *OrderID) UnmarshalJSON(input []byte) error {
	return hexutil.UnmarshalFixedJSON(orderIDT, input, o[:])
}

// MarshalText returns the hex representation of o.
func (o OrderID) MarshalText() ([]byte, error) {
	return hexutil.Bytes(o[:]).MarshalText()
}
