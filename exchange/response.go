package exchange

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/FedererKK/citrex-go/types"
	"github.com/ethereum/go-ethereum/common"
)

// unmarshalList decodes either a bare JSON array or an object holding the
// array under key.
//
//	[ ... ]  or  { "<key>": [ ... ] }
func unmarshalList[T any](data []byte, key string, out *[]T) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}

	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}

	raw, ok := wrapped[key]
	if !ok || string(raw) == "null" {
		*out = nil
		return nil
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

/*//////////////////////////////////////////////////////////////
                             ACCOUNT
//////////////////////////////////////////////////////////////*/

// AccountHealth is the margin state of a subaccount. Values are e18.
type AccountHealth struct {
	Health            types.E18 `json:"health"`
	InitialHealth     types.E18 `json:"initialHealth"`
	MaintenanceHealth types.E18 `json:"maintenanceHealth"`
	AccountValue      types.E18 `json:"accountValue"`
}

type Balance struct {
	Address  common.Address `json:"address"`
	Symbol   string         `json:"symbol"`
	Quantity types.E18      `json:"quantity"`
}

type Balances []Balance

func (b *Balances) UnmarshalJSON(data []byte) error {
	return unmarshalList(data, "balances", (*[]Balance)(b))
}

type Position struct {
	ProductID        uint32    `json:"productId"`
	ProductSymbol    string    `json:"productSymbol"`
	Quantity         types.E18 `json:"quantity"`
	AvgEntryPrice    types.E18 `json:"avgEntryPrice"`
	MarkPrice        types.E18 `json:"markPrice"`
	LiquidationPrice types.E18 `json:"liquidationPrice"`
	UnrealizedPnl    types.E18 `json:"unrealizedPnl"`
	Margin           types.E18 `json:"margin"`
	IsLong           bool      `json:"isLong"`
}

type Positions []Position

func (p *Positions) UnmarshalJSON(data []byte) error {
	return unmarshalList(data, "positions", (*[]Position)(p))
}

type OpenOrder struct {
	ID             types.OrderID     `json:"id"`
	ProductID      uint32            `json:"productId"`
	ProductSymbol  string            `json:"productSymbol"`
	IsBuy          bool              `json:"isBuy"`
	OrderType      types.OrderType   `json:"orderType"`
	TimeInForce    types.TimeInForce `json:"timeInForce"`
	Price          types.E18         `json:"price"`
	Quantity       types.E18         `json:"quantity"`
	FilledQuantity types.E18         `json:"filledQuantity"`
	Status         string            `json:"status"`
	Expiration     int64             `json:"expiration"`
	CreatedAt      int64             `json:"createdAt"`
}

type OpenOrders []OpenOrder

func (o *OpenOrders) UnmarshalJSON(data []byte) error {
	return unmarshalList(data, "orders", (*[]OpenOrder)(o))
}

/*//////////////////////////////////////////////////////////////
                             ORDER
//////////////////////////////////////////////////////////////*/

// OrderResponse is the venue's view of a placed order.
type OrderResponse OpenOrder

type CancelOrderResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

type WithdrawResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}

/*//////////////////////////////////////////////////////////////
                             MARKET
//////////////////////////////////////////////////////////////*/

type ServerTime struct {
	ServerTime int64 `json:"serverTime"`
}

// Level is one [price, quantity] book level.
type Level [2]types.E18

func (l Level) Price() types.E18    { return l[0] }
func (l Level) Quantity() types.E18 { return l[1] }

type Depth struct {
	Symbol    string  `json:"symbol"`
	Bids      []Level `json:"bids"`
	Asks      []Level `json:"asks"`
	Timestamp int64   `json:"timestamp"`
}

type Trade struct {
	ID            string    `json:"id"`
	ProductID     uint32    `json:"productId"`
	ProductSymbol string    `json:"productSymbol"`
	Price         types.E18 `json:"price"`
	Quantity      types.E18 `json:"quantity"`
	IsBuyerMaker  bool      `json:"isBuyerMaker"`
	Timestamp     int64     `json:"timestamp"`
}

type Trades []Trade

func (t *Trades) UnmarshalJSON(data []byte) error {
	return unmarshalList(data, "trades", (*[]Trade)(t))
}

type Ticker struct {
	ProductID          uint32    `json:"productId"`
	ProductSymbol      string    `json:"productSymbol"`
	LastPrice          types.E18 `json:"lastPrice"`
	MarkPrice          types.E18 `json:"markPrice"`
	OraclePrice        types.E18 `json:"oraclePrice"`
	PriceChangePercent types.E18 `json:"priceChangePercent24Hr"`
	HighPrice          types.E18 `json:"highPrice24Hr"`
	LowPrice           types.E18 `json:"lowPrice24Hr"`
	Volume             types.E18 `json:"volume24Hr"`
	OpenInterest       types.E18 `json:"openInterest"`
	FundingRate        types.E18 `json:"fundingRate"`
	NextFundingTime    int64     `json:"nextFundingTime"`
}

type Tickers []Ticker

// UnmarshalJSON also accepts a single ticker object, returned when the
// query names one symbol.
func (t *Tickers) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return err
		}
		if _, ok := probe["tickers"]; !ok {
			var one Ticker
			if err := json.Unmarshal(trimmed, &one); err != nil {
				return err
			}
			*t = Tickers{one}
			return nil
		}
	}
	return unmarshalList(data, "tickers", (*[]Ticker)(t))
}

type Kline struct {
	OpenTime  int64     `json:"openTime"`
	CloseTime int64     `json:"closeTime"`
	Open      types.E18 `json:"open"`
	High      types.E18 `json:"high"`
	Low       types.E18 `json:"low"`
	Close     types.E18 `json:"close"`
	Volume    types.E18 `json:"volume"`
}

type Klines []Kline

func (k *Klines) UnmarshalJSON(data []byte) error {
	return unmarshalList(data, "klines", (*[]Kline)(k))
}
