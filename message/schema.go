package message

import (
	"github.com/ethereum/go-ethereum/signer/core/apitypes"
)

// Primary types of the venue's typed-data schema.
const (
	TypeCancelOrders   = "CancelOrders"
	TypeCancelOrder    = "CancelOrder"
	TypeOrder          = "Order"
	TypeWithdraw       = "Withdraw"
	TypeAuthentication = "Authentication"
)

// DomainType is the EIP712Domain struct every signature is bound to.
var DomainType = []apitypes.Type{
	{Name: "name", Type: "string"},
	{Name: "version", Type: "string"},
	{Name: "chainId", Type: "uint256"},
	{Name: "verifyingContract", Type: "address"},
}

// schemas lists the fields of each primary type in signing order. The same
// order is used for the JSON payload, since the venue rebuilds the digest
// from it.
var schemas = map[string][]apitypes.Type{
	TypeCancelOrders: {
		{Name: "account", Type: "address"},
		{Name: "subAccountId", Type: "uint8"},
		{Name: "productId", Type: "uint32"},
		{Name: "nonce", Type: "uint64"},
	},
	TypeCancelOrder: {
		{Name: "account", Type: "address"},
		{Name: "subAccountId", Type: "uint8"},
		{Name: "productId", Type: "uint32"},
		{Name: "orderId", Type: "bytes32"},
		{Name: "nonce", Type: "uint64"},
	},
	TypeOrder: {
		{Name: "account", Type: "address"},
		{Name: "subAccountId", Type: "uint8"},
		{Name: "productId", Type: "uint32"},
		{Name: "isBuy", Type: "bool"},
		{Name: "orderType", Type: "uint8"},
		{Name: "timeInForce", Type: "uint8"},
		{Name: "expiration", Type: "uint64"},
		{Name: "price", Type: "uint128"},
		{Name: "quantity", Type: "uint128"},
		{Name: "nonce", Type: "uint64"},
	},
	TypeWithdraw: {
		{Name: "account", Type: "address"},
		{Name: "subAccountId", Type: "uint8"},
		{Name: "asset", Type: "address"},
		{Name: "amount", Type: "uint128"},
		{Name: "nonce", Type: "uint64"},
	},
	TypeAuthentication: {
		{Name: "account", Type: "address"},
		{Name: "timestamp", Type: "uint64"},
	},
}

// Types returns the typed-data type set for primaryType, including the
// domain type. ok is false for an unknown primary type.
func Types(primaryType string) (apitypes.Types, bool) {
	fields, ok := schemas[primaryType]
	if !ok {
		return nil, false
	}
	return apitypes.Types{
		"EIP712Domain": DomainType,
		primaryType:    fields,
	}, true
}

// Schema returns a copy of the field list of primaryType.
func Schema(primaryType string) ([]apitypes.Type, bool) {
	fields, ok := schemas[primaryType]
	if !ok {
		return nil, false
	}
	out := make([]apitypes.Type, len(fields))
	copy(out, fields)
	return out, true
}
