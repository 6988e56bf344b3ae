package dao

import (
	"context"

	"github.com/zeromicro/go-zero/core/stores/kv"

	"github.com/pinkyblu/bp-tracker-test/src/opensea"
)

// Dao is the data access layer. Every read comes from the live marketplace
// API or the chain; KvStore only shelters hot reads behind a short TTL and
// may be nil when no redis is configured.
type Dao struct {
	ctx     context.Context
	Market  *opensea.Client
	KvStore kv.Store
}

func New(ctx context.Context, market *opensea.Client, kvStore kv.Store) *Dao {
	return &Dao{
		ctx:     ctx,
		Market:  market,
		KvStore: kvStore,
	}
}
