package exchange

import (
	"github.com/FedererKK/citrex-go/constants"
	"github.com/FedererKK/citrex-go/errs"
	"github.com/FedererKK/citrex-go/message"
	"github.com/FedererKK/citrex-go/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// ============================================================================
// Request Interface
// ============================================================================

// request is an interface for all request types that can be converted to
// signed messages
type request interface {
	toMessage(e *Exchange) (message.Message, error)
}

// ============================================================================
// Order Request
// ============================================================================

type orderRequest struct {
	productID uint32
	isBuy     bool
	quantity  decimal.Decimal
	price     decimal.Decimal
	cfg       orderConfig
}

func newOrderRequest(
	productID uint32,
	isBuy bool,
	quantity decimal.Decimal,
	price decimal.Decimal,
	opts ...OrderOption,
) orderRequest {
	cfg := defaultOrderConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	return orderRequest{
		productID: productID,
		isBuy:     isBuy,
		quantity:  quantity,
		price:     price,
		cfg:       cfg,
	}
}

func (o orderRequest) toMessage(e *Exchange) (message.Message, error) {
	return o.toOrder(e)
}

func (o orderRequest) toOrder(e *Exchange) (message.Order, error) {
	if !o.quantity.IsPositive() {
		return message.Order{}, errs.Invalid("quantity", "must be positive, got %s", o.quantity)
	}
	if o.price.IsNegative() {
		return message.Order{}, errs.Invalid("price", "must not be negative, got %s", o.price)
	}

	shared, err := e.sharedParams(o.cfg.subAccountID.OrElse(e.subAccountID))
	if err != nil {
		return message.Order{}, err
	}

	return message.Order{
		SharedParams: shared,
		ProductID:    o.productID,
		IsBuy:        o.isBuy,
		OrderType:    o.cfg.orderType,
		TimeInForce:  o.cfg.timeInForce,
		Expiration:   o.cfg.getExpiration(e.now()),
		Price:        o.price,
		Quantity:     o.quantity,
	}, nil
}

// ============================================================================
// Cancel And Replace Request
// ============================================================================

type cancelAndReplaceRequest struct {
	idToCancel types.OrderID
	order      orderRequest
}

func (c cancelAndReplaceRequest) toMessage(e *Exchange) (message.Message, error) {
	if c.idToCancel.IsZero() {
		return nil, errs.Invalid("idToCancel", "is required")
	}

	order, err := c.order.toOrder(e)
	if err != nil {
		return nil, err
	}

	return message.CancelAndReplace{
		IDToCancel: c.idToCancel,
		NewOrder:   order,
	}, nil
}

// ============================================================================
// Cancel Requests
// ============================================================================

type cancelRequest struct {
	orderID   types.OrderID
	productID uint32
	cfg       cancelConfig
}

func (c cancelRequest) toMessage(e *Exchange) (message.Message, error) {
	if c.orderID.IsZero() {
		return nil, errs.Invalid("orderId", "is required")
	}

	shared, err := e.sharedParams(c.cfg.subAccountID.OrElse(e.subAccountID))
	if err != nil {
		return nil, err
	}

	return message.CancelOrder{
		SharedParams: shared,
		ProductID:    c.productID,
		OrderID:      c.orderID,
	}, nil
}

type cancelAllRequest struct {
	subAccountID uint8
	productID    uint32
}

func (c cancelAllRequest) toMessage(e *Exchange) (message.Message, error) {
	shared, err := e.sharedParams(c.subAccountID)
	if err != nil {
		return nil, err
	}

	return message.CancelOrders{
		SharedParams: shared,
		ProductID:    c.productID,
	}, nil
}

// ============================================================================
// Withdraw Request
// ============================================================================

type withdrawRequest struct {
	asset  common.Address
	amount decimal.Decimal
	cfg    cancelConfig
}

func (w withdrawRequest) toMessage(e *Exchange) (message.Message, error) {
	if !w.amount.IsPositive() {
		return nil, errs.Invalid("amount", "must be positive, got %s", w.amount)
	}
	if w.asset == constants.ZERO_ADDRESS {
		return nil, errs.Invalid("asset", "must not be the zero address")
	}

	shared, err := e.sharedParams(w.cfg.subAccountID.OrElse(e.subAccountID))
	if err != nil {
		return nil, err
	}

	return message.Withdraw{
		SharedParams: shared,
		Asset:        w.asset,
		Amount:       w.amount,
	}, nil
}

var (
	_ request = orderRequest{}
	_ request = cancelAndReplaceRequest{}
	_ request = cancelRequest{}
	_ request = cancelAllRequest{}
	_ request = withdrawRequest{}
)
