package dao

import (
	"context"

	"github.com/pkg/errors"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/opensea"
)

// TxSender submits a prepared settlement transaction through the wallet.
type TxSender interface {
	SendTransaction(ctx context.Context, tx interface{}) (string, error)
}

// CreateListing signs (via the wallet) and posts a fixed-price sell order,
// returning the order hash.
func (dao *Dao) CreateListing(ctx context.Context, signer opensea.Signer, p entity.CreateListingParams) (string, error) {
	orderHash, err := dao.Market.CreateListing(ctx, signer, opensea.CreateOrderParams{
		TokenID:    p.TokenID,
		Maker:      p.Maker,
		PriceEth:   p.PriceEth,
		ExpireTime: p.ExpireTime,
	})
	if err != nil {
		return "", errors.Wrap(err, "failed on create listing")
	}
	return orderHash, nil
}

// FulfillOrder settles an order on chain: fetch the marketplace's settlement
// transaction, then hand it to the wallet. side is "listings" for buys,
// "offers" for accepted bids.
func (dao *Dao) FulfillOrder(ctx context.Context, sender TxSender, side, orderHash, protocolAddress, taker string) (string, error) {
	tx, err := dao.Market.FulfillmentData(ctx, side, orderHash, protocolAddress, taker)
	if err != nil {
		return "", errors.Wrap(err, "failed on build fulfillment")
	}
	txHash, err := sender.SendTransaction(ctx, tx)
	if err != nil {
		return "", errors.Wrap(err, "failed on send fulfillment tx")
	}
	return txHash, nil
}
