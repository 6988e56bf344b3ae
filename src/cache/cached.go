package cached

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/stores/kv"
)

const (
	floorListingsKeyPrefix = "cache:bp:floor:listings"
	floorPriceKey          = "cache:bp:floor:price"
)

type Cached struct {
	ctx     context.Context
	KvStore kv.Store
}

func NewCache(ctx context.Context, kvStore kv.Store) *Cached {
	return &Cached{
		ctx:     ctx,
		KvStore: kvStore,
	}
}

func GenFloorListingsKey(limit int) string {
	return fmt.Sprintf("%s:%d", floorListingsKeyPrefix, limit)
}

// CacheFloorPrice stores the collection floor in ETH as a plain string.
func (cached *Cached) CacheFloorPrice(price string, expireSeconds int) error {
	if err := cached.KvStore.Setex(floorPriceKey, price, expireSeconds); err != nil {
		return errors.Wrap(err, "failed on cache floor price")
	}
	return nil
}

// GetFloorPrice returns "" when no floor has been cached yet.
func (cached *Cached) GetFloorPrice() (string, error) {
	price, err := cached.KvStore.Get(floorPriceKey)
	if err != nil {
		return "", errors.Wrap(err, "failed on get floor price")
	}
	return price, nil
}
