package opensea

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const (
	defaultPageSize = 50
	defaultMaxItems = 200
	weiDecimals     = 18

	// Seaport 1.6
	defaultProtocol = "0x0000000000000068F116a894984e2DB1123eB395"
)

// Signer produces an opaque EIP-712 signature for a listing; the wallet
// adapter satisfies it.
type Signer interface {
	SignTypedData(ctx context.Context, address string, typedData json.RawMessage) (string, error)
}

// Options configures a collection-scoped client. Chain is the marketplace
// chain slug ("base"), Contract the tracked collection address.
type Options struct {
	BaseURL  string
	APIKey   string
	Chain    string
	ChainID  int
	Contract string
	Protocol string
	PageSize int
	MaxItems int
	Timeout  time.Duration
}

type Client struct {
	opts Options
	http *http.Client
}

func New(opts Options) *Client {
	if opts.PageSize <= 0 {
		opts.PageSize = defaultPageSize
	}
	if opts.MaxItems <= 0 {
		opts.MaxItems = defaultMaxItems
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 15 * time.Second
	}
	if opts.Protocol == "" {
		opts.Protocol = defaultProtocol
	}
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}
}

// OwnedNFTs pages through the account's tokens and keeps those belonging to
// the tracked contract. Pagination stops at the configured result cap or when
// the marketplace stops returning a cursor.
func (c *Client) OwnedNFTs(ctx context.Context, address string) ([]OwnedNFT, error) {
	var owned []OwnedNFT
	next := ""
	for {
		q := url.Values{}
		q.Set("limit", strconv.Itoa(c.opts.PageSize))
		if next != "" {
			q.Set("next", next)
		}
		var page accountNFTsPage
		path := fmt.Sprintf("/api/v2/chain/%s/account/%s/nfts", c.opts.Chain, address)
		if err := c.get(ctx, path, q, &page); err != nil {
			return nil, errors.Wrap(err, "failed on query owned nfts")
		}
		for _, nft := range page.NFTs {
			if !strings.EqualFold(nft.Contract, c.opts.Contract) {
				continue
			}
			owned = append(owned, OwnedNFT{
				TokenID:  nft.Identifier,
				Name:     nft.Name,
				ImageURI: nft.ImageURL,
			})
		}
		if page.Next == "" || len(owned) >= c.opts.MaxItems {
			break
		}
		next = page.Next
	}
	if len(owned) > c.opts.MaxItems {
		owned = owned[:c.opts.MaxItems]
	}
	return owned, nil
}

// BestListing returns the cheapest active listing for the token, or nil when
// the token is not listed.
func (c *Client) BestListing(ctx context.Context, tokenID string) (*Listing, error) {
	orders, err := c.queryOrders(ctx, "listings", url.Values{
		"asset_contract_address": {c.opts.Contract},
		"token_ids":              {tokenID},
		"order_by":               {"eth_price"},
		"order_direction":        {"asc"},
		"limit":                  {"1"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on query best listing")
	}
	if len(orders) == 0 {
		return nil, nil
	}
	listing, err := c.toListing(orders[0])
	if err != nil {
		return nil, err
	}
	return listing, nil
}

// BestOffer returns the highest active offer for the token, or nil when there
// is none.
func (c *Client) BestOffer(ctx context.Context, tokenID string) (*Offer, error) {
	orders, err := c.queryOrders(ctx, "offers", url.Values{
		"asset_contract_address": {c.opts.Contract},
		"token_ids":              {tokenID},
		"order_by":               {"eth_price"},
		"order_direction":        {"desc"},
		"limit":                  {"1"},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on query best offer")
	}
	if len(orders) == 0 {
		return nil, nil
	}
	price, err := weiStringToEth(orders[0].CurrentPrice)
	if err != nil {
		return nil, err
	}
	return &Offer{
		OrderHash:       orders[0].OrderHash,
		ProtocolAddress: orders[0].ProtocolAddress,
		PriceEth:        price,
	}, nil
}

// LastSale returns the token's most recent sale price in ETH, or zero when it
// has never traded.
func (c *Client) LastSale(ctx context.Context, tokenID string) (decimal.Decimal, error) {
	var page eventsPage
	path := fmt.Sprintf("/api/v2/events/chain/%s/contract/%s/nfts/%s", c.opts.Chain, c.opts.Contract, tokenID)
	err := c.get(ctx, path, url.Values{
		"event_type": {"sale"},
		"limit":      {"1"},
	}, &page)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed on query last sale")
	}
	if len(page.AssetEvents) == 0 {
		return decimal.Zero, nil
	}
	payment := page.AssetEvents[0].Payment
	if payment.Quantity == "" {
		return decimal.Zero, nil
	}
	amount, err := decimal.NewFromString(payment.Quantity)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "bad sale amount %q", payment.Quantity)
	}
	shift := payment.Decimals
	if shift == 0 {
		shift = weiDecimals
	}
	return amount.Shift(int32(-shift)), nil
}

// FloorListings returns up to limit cheapest active listings collection-wide,
// each annotated with the listed token's image.
func (c *Client) FloorListings(ctx context.Context, limit int) ([]Listing, error) {
	orders, err := c.queryOrders(ctx, "listings", url.Values{
		"asset_contract_address": {c.opts.Contract},
		"order_by":               {"eth_price"},
		"order_direction":        {"asc"},
		"limit":                  {strconv.Itoa(limit)},
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed on query floor listings")
	}
	listings := make([]Listing, 0, len(orders))
	for _, order := range orders {
		listing, err := c.toListing(order)
		if err != nil {
			continue
		}
		listings = append(listings, *listing)
	}
	for i := range listings {
		if listings[i].TokenID == "" {
			continue
		}
		// a missing image is not worth failing the whole floor query over
		if img, err := c.NFTImage(ctx, listings[i].TokenID); err == nil {
			listings[i].ImageURI = img
		}
	}
	return listings, nil
}

// NFTImage resolves the token's image URL from its metadata.
func (c *Client) NFTImage(ctx context.Context, tokenID string) (string, error) {
	var resp nftResp
	path := fmt.Sprintf("/api/v2/chain/%s/contract/%s/nfts/%s", c.opts.Chain, c.opts.Contract, tokenID)
	if err := c.get(ctx, path, nil, &resp); err != nil {
		return "", errors.Wrap(err, "failed on query nft metadata")
	}
	return resp.NFT.ImageURL, nil
}

// CreateListing shapes a fixed-price sell order, has the wallet sign it
// off-chain, and posts it. Returns the new order hash.
func (c *Client) CreateListing(ctx context.Context, signer Signer, p CreateOrderParams) (string, error) {
	if p.PriceEth.Sign() <= 0 {
		return "", errors.New("listing price must be positive")
	}
	params := c.buildListingParameters(p)
	typedData, err := json.Marshal(map[string]interface{}{
		"domain": map[string]interface{}{
			"name":              "Seaport",
			"version":           "1.6",
			"chainId":           c.opts.ChainID,
			"verifyingContract": c.opts.Protocol,
		},
		"primaryType": "OrderComponents",
		"message":     params,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed on marshal order typed data")
	}
	signature, err := signer.SignTypedData(ctx, p.Maker, typedData)
	if err != nil {
		return "", errors.Wrap(err, "failed on sign order")
	}

	var resp createOrderResp
	path := fmt.Sprintf("/api/v2/orders/%s/seaport/listings", c.opts.Chain)
	err = c.post(ctx, path, createOrderReq{
		Parameters:      params,
		Signature:       signature,
		ProtocolAddress: c.opts.Protocol,
	}, &resp)
	if err != nil {
		return "", errors.Wrap(err, "failed on submit listing")
	}
	return resp.Order.OrderHash, nil
}

// FulfillmentData asks the marketplace for the settlement transaction of an
// order. side is "listings" for buys and "offers" for accepted bids.
func (c *Client) FulfillmentData(ctx context.Context, side, orderHash, protocolAddress, fulfiller string) (*TxRequest, error) {
	var resp fulfillmentResp
	path := fmt.Sprintf("/api/v2/%s/fulfillment_data", side)
	err := c.post(ctx, path, fulfillmentReq{
		Order: fulfillmentOrder{
			Hash:            orderHash,
			Chain:           c.opts.Chain,
			ProtocolAddress: protocolAddress,
		},
		Fulfiller: fulfillerRef{Address: fulfiller},
	}, &resp)
	if err != nil {
		return nil, errors.Wrap(err, "failed on query fulfillment data")
	}
	tx := resp.FulfillmentData.Transaction
	if tx.To == "" {
		return nil, errors.New("marketplace returned no settlement transaction")
	}
	tx.From = fulfiller
	return &tx, nil
}

func (c *Client) buildListingParameters(p CreateOrderParams) orderParameters {
	now := time.Now().Unix()
	end := p.ExpireTime
	if end <= now {
		end = now + 30*24*60*60
	}
	priceWei := p.PriceEth.Shift(weiDecimals).BigInt()
	return orderParameters{
		Offerer: p.Maker,
		Offer: []orderItem{{
			ItemType:             2, // ERC-721
			Token:                c.opts.Contract,
			IdentifierOrCriteria: p.TokenID,
			StartAmount:          "1",
			EndAmount:            "1",
		}},
		Consideration: []orderItem{{
			ItemType:             0, // native
			Token:                "0x0000000000000000000000000000000000000000",
			IdentifierOrCriteria: "0",
			StartAmount:          priceWei.String(),
			EndAmount:            priceWei.String(),
			Recipient:            p.Maker,
		}},
		StartTime:  strconv.FormatInt(now, 10),
		EndTime:    strconv.FormatInt(end, 10),
		OrderType:  0,
		Zone:       "0x0000000000000000000000000000000000000000",
		ZoneHash:   "0x" + strings.Repeat("0", 64),
		Salt:       saltFromUUID(),
		ConduitKey: "0x" + strings.Repeat("0", 64),
		Counter:    "0",
	}
}

func (c *Client) queryOrders(ctx context.Context, side string, q url.Values) ([]wireOrder, error) {
	var page ordersPage
	path := fmt.Sprintf("/api/v2/orders/%s/seaport/%s", c.opts.Chain, side)
	if err := c.get(ctx, path, q, &page); err != nil {
		return nil, err
	}
	return page.Orders, nil
}

func (c *Client) toListing(order wireOrder) (*Listing, error) {
	price, err := weiStringToEth(order.CurrentPrice)
	if err != nil {
		return nil, err
	}
	tokenID := ""
	if len(order.ProtocolData.Parameters.Offer) > 0 {
		tokenID = order.ProtocolData.Parameters.Offer[0].IdentifierOrCriteria
	}
	return &Listing{
		OrderHash:       order.OrderHash,
		ProtocolAddress: order.ProtocolAddress,
		TokenID:         tokenID,
		PriceEth:        price,
	}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out interface{}) error {
	u := c.opts.BaseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	raw, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.BaseURL+path, bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	if c.opts.APIKey != "" {
		req.Header.Set("X-API-KEY", c.opts.APIKey)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return errors.Errorf("marketplace responded %d: %s", resp.StatusCode, string(raw))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// weiStringToEth converts a decimal wei string to ETH.
func weiStringToEth(wei string) (decimal.Decimal, error) {
	if wei == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(wei)
	if err != nil {
		return decimal.Zero, errors.Wrapf(err, "bad wei amount %q", wei)
	}
	return d.Shift(-weiDecimals), nil
}

// EthToWeiHex renders an ETH amount as the 0x-prefixed wei quantity used in
// transaction values.
func EthToWeiHex(eth decimal.Decimal) string {
	return hexutil.EncodeBig(eth.Shift(weiDecimals).BigInt())
}

func saltFromUUID() string {
	id := uuid.New()
	return new(big.Int).SetBytes(id[:]).String()
}
