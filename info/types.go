package info

import (
	"github.com/FedererKK/citrex-go/types"
	"github.com/ethereum/go-ethereum/common"
)

// Product is a tradable instrument. Numeric trading parameters are e18
// values.
type Product struct {
	ID                     uint32         `json:"id"`
	Symbol                 string         `json:"symbol"`
	Type                   string         `json:"type"`
	BaseAssetAddress       common.Address `json:"baseAssetAddress"`
	QuoteAssetAddress      common.Address `json:"quoteAssetAddress"`
	BaseAsset              string         `json:"baseAsset"`
	QuoteAsset             string         `json:"quoteAsset"`
	IncrementSize          types.E18      `json:"increment"`
	MinQuantity            types.E18      `json:"minQuantity"`
	MaxQuantity            types.E18      `json:"maxQuantity"`
	MakerFee               types.E18      `json:"makerFee"`
	TakerFee               types.E18      `json:"takerFee"`
	InitialLongWeight      types.E18      `json:"initialLongWeight"`
	InitialShortWeight     types.E18      `json:"initialShortWeight"`
	MaintenanceLongWeight  types.E18      `json:"maintenanceLongWeight"`
	MaintenanceShortWeight types.E18      `json:"maintenanceShortWeight"`
	OraclePrice            types.E18      `json:"oraclePrice"`
	MarkPrice              types.E18      `json:"markPrice"`
	IsActive               bool           `json:"isActive"`
	IsMakerRebate          bool           `json:"isMakerRebate"`
}

type productsResponse struct {
	Products []Product `json:"products"`
}

// Symbol is the display metadata of a product.
type Symbol struct {
	Symbol      string `json:"symbol"`
	ProductID   uint32 `json:"productId"`
	BaseAsset   string `json:"baseAsset"`
	QuoteAsset  string `json:"quoteAsset"`
	Type        string `json:"type"`
	Status      string `json:"status"`
	DisplayName string `json:"displayName"`
}

type symbolsResponse struct {
	Symbols []Symbol `json:"symbols"`
}
