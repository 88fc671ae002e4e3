package exchange

import (
	"context"
	"fmt"
	"net/http"

	"github.com/FedererKK/citrex-go/endpoints"
)

// GetAccountHealth retrieves the margin health of the subaccount.
func (e *Exchange) GetAccountHealth(
	ctx context.Context,
	opts ...QueryOption,
) (AccountHealth, error) {
	return getAccount[AccountHealth](ctx, e, endpoints.AccountHealth, "get account health", opts...)
}

// GetSpotBalances retrieves the token balances of the subaccount.
func (e *Exchange) GetSpotBalances(
	ctx context.Context,
	opts ...QueryOption,
) (Balances, error) {
	return getAccount[Balances](ctx, e, endpoints.Balances, "get spot balances", opts...)
}

// GetPositions retrieves all positions of the subaccount, or only the one
// on the symbol passed with WithSymbol.
func (e *Exchange) GetPositions(
	ctx context.Context,
	opts ...QueryOption,
) (Positions, error) {
	return getAccount[Positions](ctx, e, endpoints.PositionRisk, "get positions", opts...)
}

// GetOpenOrders retrieves the resting orders of the subaccount.
func (e *Exchange) GetOpenOrders(
	ctx context.Context,
	opts ...QueryOption,
) (OpenOrders, error) {
	return getAccount[OpenOrders](ctx, e, endpoints.OpenOrders, "get open orders", opts...)
}

func getAccount[T any](
	ctx context.Context,
	e *Exchange,
	endpoint string,
	op string,
	opts ...QueryOption,
) (T, error) {
	var result T

	var cfg queryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	params, err := e.accountParams(cfg.subAccountID.OrElse(e.subAccountID))
	if err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}
	if symbol, ok := cfg.symbol.Get(); ok {
		params["symbol"] = symbol
	}

	result, err = Send[T](ctx, e, Request{
		Endpoint:      endpoint,
		Method:        http.MethodGet,
		Params:        params,
		Authenticated: true,
	})
	if err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
