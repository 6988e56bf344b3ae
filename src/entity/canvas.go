package entity

import "github.com/shopspring/decimal"

// CanvasItem is one owned canvas, annotated in place as market data arrives.
// BestOfferOrderHash and BestOfferProtocolAddress are set together or not at
// all; IsListed implies ListPrice is non-nil.
type CanvasItem struct {
	TokenID                  string           `json:"token_id"`
	Day                      int64            `json:"day"`
	ImageURI                 string           `json:"image_uri"`
	LastSale                 decimal.Decimal  `json:"last_sale"`
	ListPrice                *decimal.Decimal `json:"list_price,omitempty"`
	BestOffer                decimal.Decimal  `json:"best_offer"`
	IsListed                 bool             `json:"is_listed"`
	BestOfferOrderHash       string           `json:"best_offer_order_hash,omitempty"`
	BestOfferProtocolAddress string           `json:"best_offer_protocol_address,omitempty"`
}

// HasFulfillableOffer reports whether the item carries everything needed to
// accept its best offer.
func (c *CanvasItem) HasFulfillableOffer() bool {
	return c.BestOfferOrderHash != "" && c.BestOfferProtocolAddress != ""
}

type UserCanvasesResp struct {
	Result interface{} `json:"result"`
	Count  int         `json:"count"`
}
