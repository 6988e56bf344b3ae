package service

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	xzap "github.com/pinkyblu/bp-tracker-test/src/logger"
	"github.com/pinkyblu/bp-tracker-test/src/opensea"
	"github.com/pinkyblu/bp-tracker-test/src/svc"
)

const defaultBatchSize = 4

// marketSource is the slice of the dao the enrichment pipeline needs.
type marketSource interface {
	QueryBestListing(ctx context.Context, tokenID string) (*opensea.Listing, error)
	QueryBestOffer(ctx context.Context, tokenID string) (*opensea.Offer, error)
	QueryLastSale(ctx context.Context, tokenID string) (decimal.Decimal, error)
}

// ProgressFunc receives a full snapshot of the item list after each batch so
// callers can render partial results.
type ProgressFunc func(snapshot []entity.CanvasItem)

// GetUserCanvases returns the wallet's canvases annotated with live market
// data. onProgress may be nil.
func GetUserCanvases(ctx context.Context, serverCtx *svc.ServerCtx, userAddr string, onProgress ProgressFunc) ([]entity.CanvasItem, error) {
	items, err := serverCtx.Dao.QueryUserCanvases(ctx, userAddr)
	if err != nil {
		return nil, errors.Wrap(err, "failed on get user canvases")
	}
	return EnrichWithMarketData(ctx, serverCtx.Dao, items, serverCtx.C.Enrich.BatchSize, onProgress), nil
}

// EnrichWithMarketData annotates items with best listing and best offer data
// in fixed-size concurrent batches: a batch's fetches run together, batches
// run strictly one after another, results land at their original index. After
// each batch the full updated list is emitted through onProgress, so a run
// over N items produces ceil(N/batchSize) snapshots. A failed fetch leaves
// the item with no-data defaults; nothing is retried.
func EnrichWithMarketData(ctx context.Context, market marketSource, items []entity.CanvasItem, batchSize int, onProgress ProgressFunc) []entity.CanvasItem {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	for start := 0; start < len(items); start += batchSize {
		end := min(start+batchSize, len(items))
		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				enrichItem(ctx, market, &items[i])
			}(i)
		}
		wg.Wait()
		if onProgress != nil {
			snapshot := make([]entity.CanvasItem, len(items))
			copy(snapshot, items)
			onProgress(snapshot)
		}
	}
	return items
}

func enrichItem(ctx context.Context, market marketSource, item *entity.CanvasItem) {
	listing, err := market.QueryBestListing(ctx, item.TokenID)
	if err != nil {
		xzap.WithContext(ctx).Warn("best listing lookup failed",
			zap.String("token_id", item.TokenID), zap.Error(err))
	}
	if err == nil && listing != nil {
		price := listing.PriceEth
		item.ListPrice = &price
		item.IsListed = true
	} else {
		item.ListPrice = nil
		item.IsListed = false
	}

	offer, err := market.QueryBestOffer(ctx, item.TokenID)
	if err != nil {
		xzap.WithContext(ctx).Warn("best offer lookup failed",
			zap.String("token_id", item.TokenID), zap.Error(err))
	}
	// Hash and protocol address must land together; an offer missing either
	// keeps its price but cannot be fulfilled.
	item.BestOffer = decimal.Zero
	item.BestOfferOrderHash = ""
	item.BestOfferProtocolAddress = ""
	if err == nil && offer != nil {
		item.BestOffer = offer.PriceEth
		if offer.OrderHash != "" && offer.ProtocolAddress != "" {
			item.BestOfferOrderHash = offer.OrderHash
			item.BestOfferProtocolAddress = offer.ProtocolAddress
		}
	}

	lastSale, err := market.QueryLastSale(ctx, item.TokenID)
	if err != nil {
		xzap.WithContext(ctx).Warn("last sale lookup failed",
			zap.String("token_id", item.TokenID), zap.Error(err))
		lastSale = decimal.Zero
	}
	item.LastSale = lastSale
}
