// Package endpoints holds the static allow-list of REST routes the client is
// permitted to call. Paths that are not listed here are rejected before any
// signing or network work is done.
package endpoints

import (
	"net/http"
	"strings"
)

// Descriptor describes one permitted (method, path) pair.
type Descriptor struct {
	Name         string
	Method       string
	Path         string
	RequiresAuth bool
}

const (
	ServerTime       = "/v1/time"
	Depth            = "/v1/depth"
	TradeHistory     = "/v1/trades"
	Ticker24hr       = "/v1/ticker/24hr"
	Klines           = "/v1/klines"
	AccountHealth    = "/v1/account/health"
	Balances         = "/v1/balances"
	PositionRisk     = "/v1/positionRisk"
	OpenOrders       = "/v1/openOrders"
	Order            = "/v1/order"
	CancelAndReplace = "/v1/order/cancel-and-replace"
	Withdraw         = "/v1/withdraw"
)

var registry = []Descriptor{
	{Name: "serverTime", Method: http.MethodGet, Path: ServerTime},
	{Name: "depth", Method: http.MethodGet, Path: Depth},
	{Name: "tradeHistory", Method: http.MethodGet, Path: TradeHistory},
	{Name: "ticker24hr", Method: http.MethodGet, Path: Ticker24hr},
	{Name: "klines", Method: http.MethodGet, Path: Klines},
	{Name: "accountHealth", Method: http.MethodGet, Path: AccountHealth, RequiresAuth: true},
	{Name: "balances", Method: http.MethodGet, Path: Balances, RequiresAuth: true},
	{Name: "positionRisk", Method: http.MethodGet, Path: PositionRisk, RequiresAuth: true},
	{Name: "openOrders", Method: http.MethodGet, Path: OpenOrders, RequiresAuth: true},
	{Name: "cancelAllOrders", Method: http.MethodDelete, Path: OpenOrders, RequiresAuth: true},
	{Name: "createOrder", Method: http.MethodPost, Path: Order, RequiresAuth: true},
	{Name: "cancelOrder", Method: http.MethodDelete, Path: Order, RequiresAuth: true},
	{Name: "cancelAndReplace", Method: http.MethodPost, Path: CancelAndReplace, RequiresAuth: true},
	{Name: "withdraw", Method: http.MethodPost, Path: Withdraw, RequiresAuth: true},
}

type routeKey struct {
	method string
	path   string
}

var (
	byPath  = map[string]struct{}{}
	byRoute = map[routeKey]Descriptor{}
)

func init() {
	for _, d := range registry {
		byPath[d.Path] = struct{}{}
		byRoute[routeKey{d.Method, d.Path}] = d
	}
}

// Validate reports whether path is a registered endpoint. The match is
// exact: no normalisation, no templating.
func Validate(path string) bool {
	_, ok := byPath[path]
	return ok
}

// Lookup returns the descriptor registered for method and path. method is
// case-insensitive.
func Lookup(path string, method string) (Descriptor, bool) {
	d, ok := byRoute[routeKey{strings.ToUpper(method), path}]
	return d, ok
}

// All returns a copy of the registry.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}
