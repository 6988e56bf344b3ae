package service

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/opensea"
)

type fakeMarket struct {
	mu       sync.Mutex
	listings map[string]*opensea.Listing
	offers   map[string]*opensea.Offer
	sales    map[string]decimal.Decimal
	listErr  error
	calls    int
}

func (f *fakeMarket) QueryBestListing(_ context.Context, tokenID string) (*opensea.Listing, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listings[tokenID], nil
}

func (f *fakeMarket) QueryBestOffer(_ context.Context, tokenID string) (*opensea.Offer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.offers[tokenID], nil
}

func (f *fakeMarket) QueryLastSale(_ context.Context, tokenID string) (decimal.Decimal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.sales[tokenID], nil
}

func makeItems(ids ...string) []entity.CanvasItem {
	items := make([]entity.CanvasItem, 0, len(ids))
	for _, id := range ids {
		items = append(items, entity.CanvasItem{TokenID: id})
	}
	return items
}

func TestEnrichEmitsOneSnapshotPerBatch(t *testing.T) {
	tests := []struct {
		name      string
		n         int
		batchSize int
		want      int
	}{
		{name: "empty", n: 0, batchSize: 4, want: 0},
		{name: "single_partial_batch", n: 3, batchSize: 4, want: 1},
		{name: "exact_batches", n: 8, batchSize: 4, want: 2},
		{name: "trailing_partial", n: 10, batchSize: 4, want: 3},
		{name: "batch_of_five", n: 11, batchSize: 5, want: 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := make([]string, tt.n)
			for i := range ids {
				ids[i] = string(rune('a' + i))
			}
			var snapshots [][]entity.CanvasItem
			EnrichWithMarketData(context.Background(), &fakeMarket{}, makeItems(ids...), tt.batchSize,
				func(snapshot []entity.CanvasItem) {
					snapshots = append(snapshots, snapshot)
				})
			assert.Len(t, snapshots, tt.want)
			for _, s := range snapshots {
				assert.Len(t, s, tt.n)
			}
		})
	}
}

func TestEnrichSnapshotsGrowMonotonically(t *testing.T) {
	price := decimal.RequireFromString("0.01")
	market := &fakeMarket{listings: map[string]*opensea.Listing{}}
	ids := []string{"1", "2", "3", "4", "5", "6", "7"}
	for _, id := range ids {
		market.listings[id] = &opensea.Listing{TokenID: id, PriceEth: price}
	}

	var snapshots [][]entity.CanvasItem
	final := EnrichWithMarketData(context.Background(), market, makeItems(ids...), 3,
		func(snapshot []entity.CanvasItem) {
			snapshots = append(snapshots, snapshot)
		})

	require.Len(t, snapshots, 3)
	for i, snapshot := range snapshots {
		enriched := min((i+1)*3, len(ids))
		for j := 0; j < enriched; j++ {
			assert.True(t, snapshot[j].IsListed, "snapshot %d item %d should be enriched", i, j)
		}
		for j := enriched; j < len(ids); j++ {
			assert.False(t, snapshot[j].IsListed, "snapshot %d item %d should be untouched", i, j)
		}
	}
	for _, item := range final {
		assert.True(t, item.IsListed)
		require.NotNil(t, item.ListPrice)
		assert.True(t, item.ListPrice.Equal(price))
	}
}

func TestEnrichNoListingNoOffer(t *testing.T) {
	items := EnrichWithMarketData(context.Background(), &fakeMarket{}, makeItems("42"), 4, nil)
	require.Len(t, items, 1)
	assert.False(t, items[0].IsListed)
	assert.Nil(t, items[0].ListPrice)
	assert.True(t, items[0].BestOffer.IsZero())
	assert.Empty(t, items[0].BestOfferOrderHash)
	assert.Empty(t, items[0].BestOfferProtocolAddress)
}

func TestEnrichListedAndUnlistedMix(t *testing.T) {
	price := decimal.RequireFromString("0.025")
	market := &fakeMarket{
		listings: map[string]*opensea.Listing{
			"701": {TokenID: "701", PriceEth: price, OrderHash: "0xaaa"},
		},
	}

	items := EnrichWithMarketData(context.Background(), market, makeItems("701", "703"), 4, nil)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].ListPrice)
	assert.True(t, items[0].ListPrice.Equal(price))
	assert.True(t, items[0].IsListed)

	assert.Nil(t, items[1].ListPrice)
	assert.False(t, items[1].IsListed)
}

func TestEnrichAttachesLastSale(t *testing.T) {
	market := &fakeMarket{
		sales: map[string]decimal.Decimal{"701": decimal.RequireFromString("0.019")},
	}
	items := EnrichWithMarketData(context.Background(), market, makeItems("701", "703"), 4, nil)
	assert.True(t, items[0].LastSale.Equal(decimal.RequireFromString("0.019")))
	assert.True(t, items[1].LastSale.IsZero())
}

func TestEnrichFetchFailureDegradesToDefaults(t *testing.T) {
	market := &fakeMarket{listErr: assert.AnError}
	items := EnrichWithMarketData(context.Background(), market, makeItems("1", "2"), 4, nil)
	for _, item := range items {
		assert.False(t, item.IsListed)
		assert.Nil(t, item.ListPrice)
	}
}

func TestEnrichOfferHashAndProtocolTravelTogether(t *testing.T) {
	market := &fakeMarket{
		offers: map[string]*opensea.Offer{
			"1": {OrderHash: "0xhash", ProtocolAddress: "0xproto", PriceEth: decimal.RequireFromString("0.02")},
			"2": {OrderHash: "0xhash", PriceEth: decimal.RequireFromString("0.03")}, // no protocol address
		},
	}
	items := EnrichWithMarketData(context.Background(), market, makeItems("1", "2"), 4, nil)

	assert.Equal(t, "0xhash", items[0].BestOfferOrderHash)
	assert.Equal(t, "0xproto", items[0].BestOfferProtocolAddress)
	assert.True(t, items[0].HasFulfillableOffer())

	assert.Empty(t, items[1].BestOfferOrderHash)
	assert.Empty(t, items[1].BestOfferProtocolAddress)
	assert.False(t, items[1].HasFulfillableOffer())
	// price still shown even when the offer cannot be fulfilled
	assert.False(t, items[1].BestOffer.IsZero())
}
