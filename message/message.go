// Package message defines the signed domain messages of the venue.
//
// Each operation kind is its own type implementing Message. A message carries
// its operation fields plus the SharedParams (account, subaccount, nonce)
// that bind it to one identity and make it non-replayable. Messages are
// built once per request and are not reused.
package message

import (
	"fmt"

	"github.com/FedererKK/citrex-go/internal/utils"
	"github.com/FedererKK/citrex-go/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindCancelOrders     Kind = "CancelOrders"
	KindCancelOrder      Kind = "CancelOrder"
	KindOrder            Kind = "Order"
	KindCancelAndReplace Kind = "CancelAndReplace"
	KindWithdraw         Kind = "Withdraw"
	KindAuthentication   Kind = "Authentication"
)

// Field is one typed-data field. Value holds the Go form checked by
// Validate: common.Address, uint8, uint32, uint64, bool, common.Hash or
// *big.Int (uint128).
type Field struct {
	Name  string
	Type  string
	Value any
}

// Message is a typed-data message that can be signed and sent.
type Message interface {
	Kind() Kind
	// PrimaryType names the schema the message is signed under.
	PrimaryType() string
	// Fields returns the fields in schema order.
	Fields() ([]Field, error)
}

// SharedParams are attached to every signed message. They must be built
// freshly for each message.
type SharedParams struct {
	Account      common.Address
	SubAccountID uint8
	Nonce        uint64
}

func (s SharedParams) head() []Field {
	return []Field{
		{Name: "account", Type: "address", Value: s.Account},
		{Name: "subAccountId", Type: "uint8", Value: s.SubAccountID},
	}
}

func (s SharedParams) tail() Field {
	return Field{Name: "nonce", Type: "uint64", Value: s.Nonce}
}

// CancelOrders cancels every open order of a subaccount on one product.
type CancelOrders struct {
	SharedParams
	ProductID uint32
}

func (CancelOrders) Kind() Kind          { return KindCancelOrders }
func (CancelOrders) PrimaryType() string { return TypeCancelOrders }

func (m CancelOrders) Fields() ([]Field, error) {
	return append(
		m.head(),
		Field{Name: "productId", Type: "uint32", Value: m.ProductID},
		m.tail(),
	), nil
}

// CancelOrder cancels one order by id.
type CancelOrder struct {
	SharedParams
	ProductID uint32
	OrderID   types.OrderID
}

func (CancelOrder) Kind() Kind          { return KindCancelOrder }
func (CancelOrder) PrimaryType() string { return TypeCancelOrder }

func (m CancelOrder) Fields() ([]Field, error) {
	return append(
		m.head(),
		Field{Name: "productId", Type: "uint32", Value: m.ProductID},
		Field{Name: "orderId", Type: "bytes32", Value: m.OrderID.Hash()},
		m.tail(),
	), nil
}

// Order places a new order. Price and Quantity are human units, scaled to
// e18 integers when the fields are built.
type Order struct {
	SharedParams
	ProductID   uint32
	IsBuy       bool
	OrderType   types.OrderType
	TimeInForce types.TimeInForce
	// Expiration is a unix timestamp in seconds.
	Expiration uint64
	Price      decimal.Decimal
	Quantity   decimal.Decimal
}

func (Order) Kind() Kind          { return KindOrder }
func (Order) PrimaryType() string { return TypeOrder }

func (m Order) Fields() ([]Field, error) {
	price, err := utils.ToE18(m.Price)
	if err != nil {
		return nil, fmt.Errorf("price: %w", err)
	}
	quantity, err := utils.ToE18(m.Quantity)
	if err != nil {
		return nil, fmt.Errorf("quantity: %w", err)
	}

	return append(
		m.head(),
		Field{Name: "productId", Type: "uint32", Value: m.ProductID},
		Field{Name: "isBuy", Type: "bool", Value: m.IsBuy},
		Field{Name: "orderType", Type: "uint8", Value: uint8(m.OrderType)},
		Field{Name: "timeInForce", Type: "uint8", Value: uint8(m.TimeInForce)},
		Field{Name: "expiration", Type: "uint64", Value: m.Expiration},
		Field{Name: "price", Type: "uint128", Value: price},
		Field{Name: "quantity", Type: "uint128", Value: quantity},
		m.tail(),
	), nil
}

// CancelAndReplace atomically cancels IDToCancel and places NewOrder. Only
// the new order is signed; the id travels next to it in the payload.
type CancelAndReplace struct {
	IDToCancel types.OrderID
	NewOrder   Order
}

func (CancelAndReplace) Kind() Kind          { return KindCancelAndReplace }
func (CancelAndReplace) PrimaryType() string { return TypeOrder }

func (m CancelAndReplace) Fields() ([]Field, error) {
	return m.NewOrder.Fields()
}

// Withdraw moves Amount of the Asset token out of the subaccount.
type Withdraw struct {
	SharedParams
	Asset  common.Address
	Amount decimal.Decimal
}

func (Withdraw) Kind() Kind          { return KindWithdraw }
func (Withdraw) PrimaryType() string { return TypeWithdraw }

func (m Withdraw) Fields() ([]Field, error) {
	amount, err := utils.ToE18(m.Amount)
	if err != nil {
		return nil, fmt.Errorf("amount: %w", err)
	}

	return append(
		m.head(),
		Field{Name: "asset", Type: "address", Value: m.Asset},
		Field{Name: "amount", Type: "uint128", Value: amount},
		m.tail(),
	), nil
}

// Authentication is signed for the request headers of authenticated calls.
// It is never sent as a body.
type Authentication struct {
	Account common.Address
	// Timestamp in milliseconds.
	Timestamp uint64
}

func (Authentication) Kind() Kind          { return KindAuthentication }
func (Authentication) PrimaryType() string { return TypeAuthentication }

func (m Authentication) Fields() ([]Field, error) {
	return []Field{
		{Name: "account", Type: "address", Value: m.Account},
		{Name: "timestamp", Type: "uint64", Value: m.Timestamp},
	}, nil
}

var (
	_ Message = CancelOrders{}
	_ Message = CancelOrder{}
	_ Message = Order{}
	_ Message = CancelAndReplace{}
	_ Message = Withdraw{}
	_ Message = Authentication{}
)
