package dao

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"

	cached "github.com/pinkyblu/bp-tracker-test/src/cache"
	"github.com/pinkyblu/bp-tracker-test/src/entity"
)

// QueryFloorListings fetches the cheapest active listings collection-wide,
// behind a short redis TTL when a kv store is wired. cacheSecs <= 0 disables
// caching.
func (dao *Dao) QueryFloorListings(ctx context.Context, limit, cacheSecs int) ([]entity.FloorListing, error) {
	cacheKey := cached.GenFloorListingsKey(limit)
	if dao.KvStore != nil && cacheSecs > 0 {
		if raw, err := dao.KvStore.Get(cacheKey); err == nil && raw != "" {
			var listings []entity.FloorListing
			if err := json.Unmarshal([]byte(raw), &listings); err == nil {
				return listings, nil
			}
		}
	}

	orders, err := dao.Market.FloorListings(ctx, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed on query floor listings")
	}
	listings := make([]entity.FloorListing, 0, len(orders))
	for _, order := range orders {
		listings = append(listings, entity.FloorListing{
			OrderHash:       order.OrderHash,
			ProtocolAddress: order.ProtocolAddress,
			TokenID:         order.TokenID,
			PriceEth:        order.PriceEth,
			ImageURI:        order.ImageURI,
		})
	}

	if dao.KvStore != nil && cacheSecs > 0 {
		if raw, err := json.Marshal(listings); err == nil {
			_ = dao.KvStore.Setex(cacheKey, string(raw), cacheSecs)
		}
	}
	return listings, nil
}
