package service

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/pinkyblu/bp-tracker-test/src/dao"
	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/errcode"
	"github.com/pinkyblu/bp-tracker-test/src/opensea"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
	"github.com/pinkyblu/bp-tracker-test/src/wallet"
)

// orderMarket is the slice of the dao the order flows need.
type orderMarket interface {
	CreateListing(ctx context.Context, signer opensea.Signer, p entity.CreateListingParams) (string, error)
	FulfillOrder(ctx context.Context, sender dao.TxSender, side, orderHash, protocolAddress, taker string) (string, error)
}

// CreateListing lists one canvas at a fixed price. The wallet signs the
// order off-chain; nothing touches the chain until a buyer fulfills.
func CreateListing(ctx context.Context, serverCtx *svc.ServerCtx, p entity.CreateListingParams) (*entity.CreateListingResp, error) {
	if p.Maker == "" {
		p.Maker = serverCtx.Wallet.Address()
	}
	if p.Maker == "" {
		return nil, errcode.ErrWalletNotConnected
	}
	if p.TokenID == "" || p.PriceEth.Sign() <= 0 {
		return nil, errcode.ErrInvalidParams
	}
	orderHash, err := serverCtx.Dao.CreateListing(ctx, serverCtx.Wallet, p)
	if err != nil {
		if IsUserRejected(err) {
			return nil, errcode.ErrUserCancelled
		}
		return nil, errors.Wrap(err, "failed on create listing")
	}
	return &entity.CreateListingResp{OrderHash: orderHash}, nil
}

// AcceptOffer fulfills the best offer on an owned canvas.
func AcceptOffer(ctx context.Context, serverCtx *svc.ServerCtx, p entity.AcceptOfferParams) (*entity.FulfillResp, error) {
	if p.Taker == "" {
		p.Taker = serverCtx.Wallet.Address()
	}
	if p.Taker == "" {
		return nil, errcode.ErrWalletNotConnected
	}
	txHash, err := acceptOffer(ctx, serverCtx.Dao, serverCtx.Wallet, p)
	if err != nil {
		if e, ok := err.(*errcode.Err); ok {
			return nil, e
		}
		if IsUserRejected(err) {
			return nil, errcode.ErrUserCancelled
		}
		return nil, errors.Wrap(err, "failed on accept offer")
	}
	return &entity.FulfillResp{TxHash: txHash}, nil
}

// acceptOffer rejects locally, before any network call, when the offer lacks
// the order hash or protocol address required for fulfillment.
func acceptOffer(ctx context.Context, market orderMarket, sender dao.TxSender, p entity.AcceptOfferParams) (string, error) {
	if p.OrderHash == "" || p.ProtocolAddress == "" {
		return "", errcode.ErrOfferNotFulfill
	}
	return market.FulfillOrder(ctx, sender, "offers", p.OrderHash, p.ProtocolAddress, p.Taker)
}

// BuyFloorListing fulfills a collection floor listing.
func BuyFloorListing(ctx context.Context, serverCtx *svc.ServerCtx, p entity.BuyFloorParams) (*entity.FulfillResp, error) {
	if p.Taker == "" {
		p.Taker = serverCtx.Wallet.Address()
	}
	if p.Taker == "" {
		return nil, errcode.ErrWalletNotConnected
	}
	if p.OrderHash == "" || p.ProtocolAddress == "" {
		return nil, errcode.ErrInvalidParams
	}
	txHash, err := serverCtx.Dao.FulfillOrder(ctx, serverCtx.Wallet, "listings", p.OrderHash, p.ProtocolAddress, p.Taker)
	if err != nil {
		if IsUserRejected(err) {
			return nil, errcode.ErrUserCancelled
		}
		return nil, errors.Wrap(err, "failed on buy floor listing")
	}
	return &entity.FulfillResp{TxHash: txHash}, nil
}

// GetFloorListings returns the cheapest active listings for the collection.
func GetFloorListings(ctx context.Context, serverCtx *svc.ServerCtx, limit int) ([]entity.FloorListing, error) {
	if limit <= 0 || int64(limit) > serverCtx.C.Api.MaxNum {
		limit = 10
	}
	listings, err := serverCtx.Dao.QueryFloorListings(ctx, limit, serverCtx.C.Marketplace.FloorCacheSecs)
	if err != nil {
		return nil, errors.Wrap(err, "failed on get floor listings")
	}
	if serverCtx.Cached != nil && len(listings) > 0 {
		_ = serverCtx.Cached.CacheFloorPrice(listings[0].PriceEth.String(), serverCtx.C.Marketplace.FloorCacheSecs)
	}
	return listings, nil
}

// IsUserRejected detects a wallet-side rejection, either by EIP-1193 code
// 4001 or by the message substrings browser wallets emit.
func IsUserRejected(err error) bool {
	if err == nil {
		return false
	}
	if pe, ok := wallet.AsProviderError(err); ok && pe.Code == wallet.CodeUserRejected {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "user rejected") ||
		strings.Contains(msg, "user denied") ||
		strings.Contains(msg, "rejected by user")
}
