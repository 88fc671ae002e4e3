package exchange

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/FedererKK/citrex-go/endpoints"
)

// DEFAULT_TRADE_LOOKBACK is the number of trades GetTradeHistory returns
// when lookback is not positive.
const DEFAULT_TRADE_LOOKBACK = 10

// GetServerTime retrieves the venue clock.
func (e *Exchange) GetServerTime(ctx context.Context) (ServerTime, error) {
	return getPublic[ServerTime](ctx, e, endpoints.ServerTime, nil, "get server time")
}

// GetDepth retrieves the order book of symbol.
func (e *Exchange) GetDepth(
	ctx context.Context,
	symbol string,
	opts ...QueryOption,
) (Depth, error) {
	var cfg queryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	params := map[string]string{"symbol": symbol}
	if limit, ok := cfg.limit.Get(); ok {
		params["limit"] = strconv.Itoa(limit)
	}

	return getPublic[Depth](ctx, e, endpoints.Depth, params, "get depth")
}

// GetTradeHistory retrieves the last lookback trades of symbol.
func (e *Exchange) GetTradeHistory(
	ctx context.Context,
	symbol string,
	lookback int,
) (Trades, error) {
	if lookback <= 0 {
		lookback = DEFAULT_TRADE_LOOKBACK
	}

	params := map[string]string{
		"symbol":   symbol,
		"lookback": strconv.Itoa(lookback),
	}

	return getPublic[Trades](ctx, e, endpoints.TradeHistory, params, "get trade history")
}

// GetTicker retrieves 24h statistics of every symbol, or one with
// WithSymbol.
func (e *Exchange) GetTicker(
	ctx context.Context,
	opts ...QueryOption,
) (Tickers, error) {
	var cfg queryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var params map[string]string
	if symbol, ok := cfg.symbol.Get(); ok {
		params = map[string]string{"symbol": symbol}
	}

	return getPublic[Tickers](ctx, e, endpoints.Ticker24hr, params, "get ticker")
}

// GetKlines retrieves candles of symbol for interval (e.g. "1m", "1h").
func (e *Exchange) GetKlines(
	ctx context.Context,
	symbol string,
	interval string,
	opts ...QueryOption,
) (Klines, error) {
	var cfg queryConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	params := map[string]string{
		"symbol":   symbol,
		"interval": interval,
	}
	if t, ok := cfg.startTime.Get(); ok {
		params["startTime"] = strconv.FormatInt(t.UnixMilli(), 10)
	}
	if t, ok := cfg.endTime.Get(); ok {
		params["endTime"] = strconv.FormatInt(t.UnixMilli(), 10)
	}
	if limit, ok := cfg.limit.Get(); ok {
		params["limit"] = strconv.Itoa(limit)
	}

	return getPublic[Klines](ctx, e, endpoints.Klines, params, "get klines")
}

func getPublic[T any](
	ctx context.Context,
	e *Exchange,
	endpoint string,
	params map[string]string,
	op string,
) (T, error) {
	result, err := Send[T](ctx, e, Request{
		Endpoint: endpoint,
		Method:   http.MethodGet,
		Params:   params,
	})
	if err != nil {
		return result, fmt.Errorf("%s: %w", op, err)
	}

	return result, nil
}
