package ws

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/FedererKK/citrex-go/types"
)

// ===== Subscription Types =====

// SubscriptionType is a stream topic the client can subscribe to.
type SubscriptionType interface {
	// identifier is the routing key, equal to the normalized topic.
	identifier() string
}

// TradeHistorySubscription streams the trades of a symbol
type TradeHistorySubscription struct {
	Symbol string
}

func (s TradeHistorySubscription) identifier() string {
	return topic(channelTradeHistory, s.Symbol)
}

// DepthSubscription streams order book snapshots of a symbol
type DepthSubscription struct {
	Symbol string
}

func (s DepthSubscription) identifier() string {
	return topic(channelDepth, s.Symbol)
}

// TickerSubscription streams 24h statistics of a symbol
type TickerSubscription struct {
	Symbol string
}

func (s TickerSubscription) identifier() string {
	return topic(channelTicker, s.Symbol)
}

// KlineSubscription streams candles of a symbol for one interval
type KlineSubscription struct {
	Symbol   string
	Interval string
}

func (s KlineSubscription) identifier() string {
	return topic(channelKline, s.Symbol+"@"+s.Interval)
}

const (
	channelTradeHistory = "tradeHistory"
	channelDepth        = "depth"
	channelTicker       = "ticker"
	channelKline        = "kline"
	channelPong         = "pong"
)

// topic joins a channel and its arguments, e.g. "depth@ethperp". Symbols
// are case-insensitive.
func topic(channel string, args string) string {
	return fmt.Sprintf("%s@%s", channel, strings.ToLower(args))
}

// normalizeTopic lower-cases the arguments of a topic received on the wire.
func normalizeTopic(t string) (channel string, identifier string) {
	channel, args, ok := strings.Cut(t, "@")
	if !ok {
		return channel, channel
	}
	return channel, topic(channel, args)
}

// ===== Message Types =====

type Trade struct {
	ID            string    `json:"id"`
	ProductID     uint32    `json:"productId"`
	ProductSymbol string    `json:"productSymbol"`
	Price         types.E18 `json:"price"`
	Quantity      types.E18 `json:"quantity"`
	IsBuyerMaker  bool      `json:"isBuyerMaker"`
	Timestamp     int64     `json:"timestamp"`
}

type TradesMessage struct {
	Topic  string
	Trades []Trade
}

type DepthMessage struct {
	Topic     string         `json:"-"`
	Symbol    string         `json:"symbol"`
	Bids      [][2]types.E18 `json:"bids"`
	Asks      [][2]types.E18 `json:"asks"`
	Timestamp int64          `json:"timestamp"`
}

type TickerMessage struct {
	Topic         string    `json:"-"`
	ProductID     uint32    `json:"productId"`
	ProductSymbol string    `json:"productSymbol"`
	LastPrice     types.E18 `json:"lastPrice"`
	MarkPrice     types.E18 `json:"markPrice"`
	OraclePrice   types.E18 `json:"oraclePrice"`
	Volume        types.E18 `json:"volume24Hr"`
	FundingRate   types.E18 `json:"fundingRate"`
}

type KlineMessage struct {
	Topic     string    `json:"-"`
	Symbol    string    `json:"symbol"`
	Interval  string    `json:"interval"`
	OpenTime  int64     `json:"openTime"`
	CloseTime int64     `json:"closeTime"`
	Open      types.E18 `json:"open"`
	High      types.E18 `json:"high"`
	Low       types.E18 `json:"low"`
	Close     types.E18 `json:"close"`
	Volume    types.E18 `json:"volume"`
}

// frame is every message the server pushes.
type frame struct {
	Channel string          `json:"channel"`
	Data    json.RawMessage `json:"data"`
}

// request is every message the client sends.
type request struct {
	Method string   `json:"method"`
	Params []string `json:"params,omitempty"`
}
