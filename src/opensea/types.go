package opensea

import (
	"github.com/shopspring/decimal"
)

// OwnedNFT is one token from the account enumeration, already filtered to
// the tracked contract.
type OwnedNFT struct {
	TokenID  string
	Name     string
	ImageURI string
}

// Listing is an active sell order. PriceEth is the full current price in ETH.
type Listing struct {
	OrderHash       string
	ProtocolAddress string
	TokenID         string
	PriceEth        decimal.Decimal
	ImageURI        string
}

// Offer is an active bid. Absence of an offer is a nil *Offer, not an error.
type Offer struct {
	OrderHash       string
	ProtocolAddress string
	PriceEth        decimal.Decimal
}

// CreateOrderParams shapes a new fixed-price listing. Construction and
// settlement of the order stay on the marketplace side; this client only
// carries parameters and the wallet's opaque signature.
type CreateOrderParams struct {
	TokenID    string
	Maker      string
	PriceEth   decimal.Decimal
	ExpireTime int64
}

// TxRequest is the prepared settlement transaction in eth_sendTransaction
// shape.
type TxRequest struct {
	From  string `json:"from"`
	To    string `json:"to"`
	Value string `json:"value,omitempty"`
	Data  string `json:"data"`
}

// Wire types below mirror the marketplace REST payloads.

type accountNFTsPage struct {
	NFTs []wireNFT `json:"nfts"`
	Next string    `json:"next"`
}

type wireNFT struct {
	Identifier string `json:"identifier"`
	Contract   string `json:"contract"`
	Name       string `json:"name"`
	ImageURL   string `json:"image_url"`
}

type nftResp struct {
	NFT wireNFT `json:"nft"`
}

type ordersPage struct {
	Orders []wireOrder `json:"orders"`
	Next   string      `json:"next"`
}

type wireOrder struct {
	OrderHash       string           `json:"order_hash"`
	ProtocolAddress string           `json:"protocol_address"`
	CurrentPrice    string           `json:"current_price"`
	ExpirationTime  int64            `json:"expiration_time"`
	ProtocolData    wireProtocolData `json:"protocol_data"`
}

type wireProtocolData struct {
	Parameters orderParameters `json:"parameters"`
	Signature  string          `json:"signature,omitempty"`
}

type orderParameters struct {
	Offerer       string      `json:"offerer"`
	Offer         []orderItem `json:"offer"`
	Consideration []orderItem `json:"consideration"`
	StartTime     string      `json:"startTime"`
	EndTime       string      `json:"endTime"`
	OrderType     int         `json:"orderType"`
	Zone          string      `json:"zone"`
	ZoneHash      string      `json:"zoneHash"`
	Salt          string      `json:"salt"`
	ConduitKey    string      `json:"conduitKey"`
	Counter       string      `json:"counter"`
}

type orderItem struct {
	ItemType             int    `json:"itemType"`
	Token                string `json:"token"`
	IdentifierOrCriteria string `json:"identifierOrCriteria"`
	StartAmount          string `json:"startAmount"`
	EndAmount            string `json:"endAmount"`
	Recipient            string `json:"recipient,omitempty"`
}

type createOrderReq struct {
	Parameters      orderParameters `json:"parameters"`
	Signature       string          `json:"signature"`
	ProtocolAddress string          `json:"protocol_address"`
}

type createOrderResp struct {
	Order wireOrder `json:"order"`
}

type fulfillmentReq struct {
	Order     fulfillmentOrder `json:"order"`
	Fulfiller fulfillerRef     `json:"fulfiller"`
}

type fulfillmentOrder struct {
	Hash            string `json:"hash"`
	Chain           string `json:"chain"`
	ProtocolAddress string `json:"protocol_address"`
}

type fulfillerRef struct {
	Address string `json:"address"`
}

type eventsPage struct {
	AssetEvents []wireEvent `json:"asset_events"`
	Next        string      `json:"next"`
}

type wireEvent struct {
	EventType string      `json:"event_type"`
	Payment   wirePayment `json:"payment"`
}

type wirePayment struct {
	Quantity string `json:"quantity"`
	Decimals int    `json:"decimals"`
	Symbol   string `json:"symbol"`
}

type fulfillmentResp struct {
	FulfillmentData struct {
		Transaction TxRequest `json:"transaction"`
	} `json:"fulfillment_data"`
}
