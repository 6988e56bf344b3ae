package svc

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/zeromicro/go-zero/core/stores/cache"
	"github.com/zeromicro/go-zero/core/stores/kv"
	"github.com/zeromicro/go-zero/core/stores/redis"

	cached "github.com/pinkyblu/bp-tracker-test/src/cache"
	"github.com/pinkyblu/bp-tracker-test/src/config"
	"github.com/pinkyblu/bp-tracker-test/src/dao"
	xzap "github.com/pinkyblu/bp-tracker-test/src/logger"
	"github.com/pinkyblu/bp-tracker-test/src/opensea"
	"github.com/pinkyblu/bp-tracker-test/src/utils"
	"github.com/pinkyblu/bp-tracker-test/src/wallet"
)

type ServerCtx struct {
	C       *config.Config
	Dao     *dao.Dao
	KvStore kv.Store
	Cached  *cached.Cached
	Wallet  *wallet.Adapter
}

type CtxConfig struct {
	dao     *dao.Dao
	kvStore kv.Store
	cached  *cached.Cached
	wallet  *wallet.Adapter
}

type CtxOption func(conf *CtxConfig)

func NewServerCtx(options ...CtxOption) *ServerCtx {
	c := &CtxConfig{}
	for _, opt := range options {
		opt(c)
	}
	return &ServerCtx{
		Dao:     c.dao,
		KvStore: c.kvStore,
		Cached:  c.cached,
		Wallet:  c.wallet,
	}
}

func WithDao(d *dao.Dao) CtxOption {
	return func(conf *CtxConfig) {
		conf.dao = d
	}
}

func WithKv(store kv.Store) CtxOption {
	return func(conf *CtxConfig) {
		conf.kvStore = store
	}
}

func WithCached(c *cached.Cached) CtxOption {
	return func(conf *CtxConfig) {
		conf.cached = c
	}
}

func WithWallet(w *wallet.Adapter) CtxOption {
	return func(conf *CtxConfig) {
		conf.wallet = w
	}
}

// NewServiceContext wires logging, the optional redis kv store, the
// marketplace client and the wallet adapter. Extra providers take precedence
// over the node fallback dialed from the chain endpoint; a frame host passes
// its wallet here.
func NewServiceContext(c *config.Config, providers ...wallet.Provider) (*ServerCtx, error) {
	if _, err := xzap.SetUp(c.Log); err != nil {
		return nil, err
	}

	var store kv.Store
	if c.Kv != nil && len(c.Kv.Redis) > 0 {
		var kvConf kv.KvConf
		for _, con := range c.Kv.Redis {
			kvConf = append(kvConf, cache.NodeConf{
				RedisConf: redis.RedisConf{
					Host: con.Host,
					Type: con.Type,
					Pass: con.Pass,
				},
				Weight: 1,
			})
		}
		store = kv.NewStore(kvConf)
	}

	chainSlug, ok := utils.ChainIdToChain[c.Chain.ChainId]
	if !ok {
		return nil, errors.Errorf("unsupported chain id %d", c.Chain.ChainId)
	}
	market := opensea.New(opensea.Options{
		BaseURL:  c.Marketplace.BaseUrl,
		APIKey:   c.Marketplace.ApiKey,
		Chain:    chainSlug,
		ChainID:  c.Chain.ChainId,
		Contract: c.Collection.Address,
		Protocol: c.Marketplace.Protocol,
		PageSize: c.Marketplace.PageSize,
		MaxItems: c.Marketplace.MaxItems,
		Timeout:  time.Duration(c.Marketplace.TimeoutSeconds) * time.Second,
	})

	if len(providers) == 0 {
		node, err := wallet.DialNode(context.Background(), c.Chain.Endpoint)
		if err != nil {
			return nil, errors.Wrap(err, "failed on dial chain node")
		}
		providers = []wallet.Provider{node}
	}
	adapter := wallet.NewAdapter(buildChainParams(c.Chain), providers...)
	adapter.Start(context.Background())

	d := dao.New(context.Background(), market, store)

	var kvCache *cached.Cached
	if store != nil {
		kvCache = cached.NewCache(context.Background(), store)
	}

	serverCtx := NewServerCtx(
		WithDao(d),
		WithKv(store),
		WithCached(kvCache),
		WithWallet(adapter),
	)
	serverCtx.C = c
	return serverCtx, nil
}

func buildChainParams(c config.Chain) wallet.ChainParams {
	return wallet.ChainParams{
		ChainID:           c.ChainId,
		ChainIdHex:        utils.ChainIDToHex(c.ChainId),
		ChainName:         c.Name,
		RpcUrls:           []string{c.Endpoint},
		BlockExplorerUrls: []string{c.ExplorerUrl},
		NativeCurrency: wallet.NativeCurrency{
			Name:     c.CurrencyName,
			Symbol:   c.CurrencySymbol,
			Decimals: c.CurrencyDecimal,
		},
	}
}
