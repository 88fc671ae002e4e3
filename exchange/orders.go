package exchange

import (
	"context"
	"fmt"
	"net/http"

	"github.com/FedererKK/citrex-go/endpoints"
	"github.com/FedererKK/citrex-go/types"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// CreateOrder places an order. quantity and price are in human units; they
// are scaled to e18 when signed.
func (e *Exchange) CreateOrder(
	ctx context.Context,
	productID uint32,
	isBuy bool,
	quantity decimal.Decimal,
	price decimal.Decimal,
	opts ...OrderOption,
) (OrderResponse, error) {
	req := newOrderRequest(productID, isBuy, quantity, price, opts...)

	return post[OrderResponse](ctx, e, endpoints.Order, http.MethodPost, req, "create order")
}

// CancelOrder cancels one order by id.
func (e *Exchange) CancelOrder(
	ctx context.Context,
	orderID types.OrderID,
	productID uint32,
	opts ...CancelOption,
) (CancelOrderResponse, error) {
	var cfg cancelConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	req := cancelRequest{
		orderID:   orderID,
		productID: productID,
		cfg:       cfg,
	}

	return post[CancelOrderResponse](ctx, e, endpoints.Order, http.MethodDelete, req, "cancel order")
}

// CancelAndReplaceOrder atomically cancels orderID and places a new order
// on productID.
func (e *Exchange) CancelAndReplaceOrder(
	ctx context.Context,
	orderID types.OrderID,
	productID uint32,
	isBuy bool,
	quantity decimal.Decimal,
	price decimal.Decimal,
	opts ...OrderOption,
) (OrderResponse, error) {
	req := cancelAndReplaceRequest{
		idToCancel: orderID,
		order:      newOrderRequest(productID, isBuy, quantity, price, opts...),
	}

	return post[OrderResponse](
		ctx, e, endpoints.CancelAndReplace, http.MethodPost, req, "cancel and replace order",
	)
}

// CancelAllOrders cancels every open order of subAccountID on productID.
func (e *Exchange) CancelAllOrders(
	ctx context.Context,
	subAccountID uint8,
	productID uint32,
) (map[string]any, error) {
	req := cancelAllRequest{
		subAccountID: subAccountID,
		productID:    productID,
	}

	return post[map[string]any](ctx, e, endpoints.OpenOrders, http.MethodDelete, req, "cancel all orders")
}

// Withdraw moves amount of the asset token out of the subaccount.
func (e *Exchange) Withdraw(
	ctx context.Context,
	asset common.Address,
	amount decimal.Decimal,
	opts ...CancelOption,
) (WithdrawResponse, error) {
	var cfg cancelConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	req := withdrawRequest{
		asset:  asset,
		amount: amount,
		cfg:    cfg,
	}

	return post[WithdrawResponse](ctx, e, endpoints.Withdraw, http.MethodPost, req, "withdraw")
}

// post builds the signed message of req and sends it to endpoint.
func post[T any](
	ctx context.Context,
	e *Exchange,
	endpoint string,
	method string,
	req request,
	op string,
) (T, error) {
	var result T

	msg, err := req.toMessage(e)
	if err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}

	result, err = Send[T](ctx, e, Request{
		Endpoint:      endpoint,
		Method:        method,
		Message:       msg,
		Authenticated: true,
	})
	if err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
