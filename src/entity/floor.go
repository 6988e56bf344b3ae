package entity

import "github.com/shopspring/decimal"

// FloorListing is one active sell order for the tracked collection.
type FloorListing struct {
	OrderHash       string          `json:"order_hash"`
	ProtocolAddress string          `json:"protocol_address"`
	TokenID         string          `json:"token_id"`
	PriceEth        decimal.Decimal `json:"price_eth"`
	ImageURI        string          `json:"image_uri"`
}

type FloorListingsResp struct {
	Result interface{} `json:"result"`
	Count  int         `json:"count"`
}
