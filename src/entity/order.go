package entity

import "github.com/shopspring/decimal"

type CreateListingParams struct {
	TokenID    string          `json:"token_id"`
	Maker      string          `json:"maker"`
	PriceEth   decimal.Decimal `json:"price_eth"`
	ExpireTime int64           `json:"expire_time"`
}

type AcceptOfferParams struct {
	TokenID         string `json:"token_id"`
	Taker           string `json:"taker"`
	OrderHash       string `json:"order_hash"`
	ProtocolAddress string `json:"protocol_address"`
}

type BuyFloorParams struct {
	OrderHash       string `json:"order_hash"`
	ProtocolAddress string `json:"protocol_address"`
	Taker           string `json:"taker"`
}

type CreateListingResp struct {
	OrderHash string `json:"order_hash"`
}

type FulfillResp struct {
	TxHash string `json:"tx_hash"`
}
