package dao

import (
	"context"
	"strconv"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/opensea"
	"github.com/pinkyblu/bp-tracker-test/src/utils"
)

// QueryUserCanvases enumerates the wallet's tokens in the tracked collection
// and maps them to bare canvas items. Market annotations are filled in later
// by the enrichment pipeline.
func (dao *Dao) QueryUserCanvases(ctx context.Context, userAddr string) ([]entity.CanvasItem, error) {
	owned, err := dao.Market.OwnedNFTs(ctx, userAddr)
	if err != nil {
		return nil, errors.Wrap(err, "failed on query user canvases")
	}
	imageByToken := make(map[string]string, len(owned))
	tokenIDs := make([]string, 0, len(owned))
	for _, nft := range owned {
		tokenIDs = append(tokenIDs, nft.TokenID)
		imageByToken[nft.TokenID] = nft.ImageURI
	}
	// Pagination can hand back the same token twice across page boundaries.
	tokenIDs = utils.RemoveRepeatedElement(tokenIDs)
	items := make([]entity.CanvasItem, 0, len(tokenIDs))
	for _, id := range tokenIDs {
		items = append(items, entity.CanvasItem{
			TokenID:  id,
			Day:      dayFromTokenID(id),
			ImageURI: imageByToken[id],
		})
	}
	return items, nil
}

// QueryBestListing returns nil when the token has no active listing.
func (dao *Dao) QueryBestListing(ctx context.Context, tokenID string) (*opensea.Listing, error) {
	listing, err := dao.Market.BestListing(ctx, tokenID)
	if err != nil {
		return nil, errors.Wrap(err, "failed on query best listing")
	}
	return listing, nil
}

// QueryBestOffer returns nil when the token has no active offer.
func (dao *Dao) QueryBestOffer(ctx context.Context, tokenID string) (*opensea.Offer, error) {
	offer, err := dao.Market.BestOffer(ctx, tokenID)
	if err != nil {
		return nil, errors.Wrap(err, "failed on query best offer")
	}
	return offer, nil
}

// QueryLastSale returns zero when the token has never traded.
func (dao *Dao) QueryLastSale(ctx context.Context, tokenID string) (decimal.Decimal, error) {
	price, err := dao.Market.LastSale(ctx, tokenID)
	if err != nil {
		return decimal.Zero, errors.Wrap(err, "failed on query last sale")
	}
	return price, nil
}

// Canvas token ids are the day number.
func dayFromTokenID(tokenID string) int64 {
	day, err := strconv.ParseInt(tokenID, 10, 64)
	if err != nil {
		return 0
	}
	return day
}
