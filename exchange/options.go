package exchange

import (
	"time"

	"github.com/FedererKK/citrex-go/constants"
	"github.com/FedererKK/citrex-go/types"
	"github.com/samber/mo"
)

/*//////////////////////////////////////////////////////////////
                             QUERY
//////////////////////////////////////////////////////////////*/

// QueryOption is a functional option for read operations
type QueryOption func(*queryConfig)

type queryConfig struct {
	symbol       mo.Option[string]
	limit        mo.Option[int]
	startTime    mo.Option[time.Time]
	endTime      mo.Option[time.Time]
	subAccountID mo.Option[uint8]
}

// WithSymbol restricts the query to one symbol, e.g. "ethperp"
func WithSymbol(symbol string) QueryOption {
	return func(cfg *queryConfig) {
		cfg.symbol = mo.Some(symbol)
	}
}

// WithLimit caps the number of returned rows
func WithLimit(limit int) QueryOption {
	return func(cfg *queryConfig) {
		cfg.limit = mo.Some(limit)
	}
}

func WithStartTime(t time.Time) QueryOption {
	return func(cfg *queryConfig) {
		cfg.startTime = mo.Some(t)
	}
}

func WithEndTime(t time.Time) QueryOption {
	return func(cfg *queryConfig) {
		cfg.endTime = mo.Some(t)
	}
}

// WithQuerySubAccount reads another subaccount of the same account
func WithQuerySubAccount(id uint8) QueryOption {
	return func(cfg *queryConfig) {
		cfg.subAccountID = mo.Some(id)
	}
}

/*//////////////////////////////////////////////////////////////
                             ORDER
//////////////////////////////////////////////////////////////*/

// OrderOption is a functional option for order placement
type OrderOption func(*orderConfig)

type orderConfig struct {
	orderType    types.OrderType
	timeInForce  types.TimeInForce
	expiration   mo.Option[time.Time]
	subAccountID mo.Option[uint8]
}

func defaultOrderConfig() orderConfig {
	return orderConfig{
		orderType:   types.LIMIT,
		timeInForce: types.GTC,
	}
}

// getExpiration returns the explicit expiration or now plus the default
// order TTL, in unix seconds.
func (c orderConfig) getExpiration(now time.Time) uint64 {
	if exp, ok := c.expiration.Get(); ok {
		return uint64(exp.Unix())
	}
	return uint64(now.Add(constants.DEFAULT_ORDER_TTL).Unix())
}

// WithOrderType sets LIMIT or MARKET. Default LIMIT.
func WithOrderType(orderType types.OrderType) OrderOption {
	return func(cfg *orderConfig) {
		cfg.orderType = orderType
	}
}

// WithTimeInForce sets the time in force. Default GTC.
func WithTimeInForce(tif types.TimeInForce) OrderOption {
	return func(cfg *orderConfig) {
		cfg.timeInForce = tif
	}
}

// WithExpiration sets when a resting order expires
func WithExpiration(t time.Time) OrderOption {
	return func(cfg *orderConfig) {
		cfg.expiration = mo.Some(t)
	}
}

// WithSubAccount places the order for another subaccount
func WithSubAccount(id uint8) OrderOption {
	return func(cfg *orderConfig) {
		cfg.subAccountID = mo.Some(id)
	}
}

/*//////////////////////////////////////////////////////////////
                             CANCEL
//////////////////////////////////////////////////////////////*/

// CancelOption is a functional option for cancels and withdrawals
type CancelOption func(*cancelConfig)

type cancelConfig struct {
	subAccountID mo.Option[uint8]
}

// WithCancelSubAccount acts on another subaccount
func WithCancelSubAccount(id uint8) CancelOption {
	return func(cfg *cancelConfig) {
		cfg.subAccountID = mo.Some(id)
	}
}
