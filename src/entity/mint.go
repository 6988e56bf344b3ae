package entity

import "github.com/shopspring/decimal"

type MintParams struct {
	Quantity int64 `json:"quantity"`
}

// TodayCanvas describes the mintable canvas of the current day.
// FloorPriceEth is filled from the cached collection floor when available.
type TodayCanvas struct {
	Day           int64           `json:"day"`
	PriceEth      decimal.Decimal `json:"price_eth"`
	OpenUntil     int64           `json:"open_until"`
	FloorPriceEth string          `json:"floor_price_eth,omitempty"`
}

type MintResult struct {
	Day        int64           `json:"day"`
	Quantity   int64           `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	// ValueWeiHex is TotalPrice in eth_sendTransaction value form.
	ValueWeiHex string `json:"value_wei_hex"`
	TxHash      string `json:"tx_hash"`
}

type MintResp struct {
	Result interface{} `json:"result"`
}
