package service

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pinkyblu/bp-tracker-test/src/dao"
	"github.com/pinkyblu/bp-tracker-test/src/entity"
	"github.com/pinkyblu/bp-tracker-test/src/errcode"
	"github.com/pinkyblu/bp-tracker-test/src/opensea"
	"github.com/pinkyblu/bp-tracker-test/src/wallet"
)

type fakeOrderMarket struct {
	fulfillCalls int
	lastSide     string
	txHash       string
	err          error
}

func (f *fakeOrderMarket) CreateListing(context.Context, opensea.Signer, entity.CreateListingParams) (string, error) {
	return "", nil
}

func (f *fakeOrderMarket) FulfillOrder(_ context.Context, _ dao.TxSender, side, _, _, _ string) (string, error) {
	f.fulfillCalls++
	f.lastSide = side
	return f.txHash, f.err
}

type fakeSender struct{}

func (fakeSender) SendTransaction(context.Context, interface{}) (string, error) {
	return "0xtx", nil
}

func TestAcceptOfferMissingHashRejectsLocally(t *testing.T) {
	tests := []struct {
		name   string
		params entity.AcceptOfferParams
	}{
		{name: "no_hash", params: entity.AcceptOfferParams{Taker: "0xabc", ProtocolAddress: "0xproto"}},
		{name: "no_protocol", params: entity.AcceptOfferParams{Taker: "0xabc", OrderHash: "0xhash"}},
		{name: "neither", params: entity.AcceptOfferParams{Taker: "0xabc"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			market := &fakeOrderMarket{}
			_, err := acceptOffer(context.Background(), market, fakeSender{}, tt.params)
			require.ErrorIs(t, err, errcode.ErrOfferNotFulfill)
			assert.Zero(t, market.fulfillCalls, "no network call may be issued")
		})
	}
}

func TestAcceptOfferFulfillsOfferSide(t *testing.T) {
	market := &fakeOrderMarket{txHash: "0xtx"}
	txHash, err := acceptOffer(context.Background(), market, fakeSender{}, entity.AcceptOfferParams{
		Taker:           "0xabc",
		OrderHash:       "0xhash",
		ProtocolAddress: "0xproto",
	})
	require.NoError(t, err)
	assert.Equal(t, "0xtx", txHash)
	assert.Equal(t, 1, market.fulfillCalls)
	assert.Equal(t, "offers", market.lastSide)
}

func TestIsUserRejected(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "code_4001", err: &wallet.ProviderError{Code: wallet.CodeUserRejected, Message: "nope"}, want: true},
		{name: "wrapped_4001", err: errors.Wrap(&wallet.ProviderError{Code: 4001, Message: "nope"}, "failed on send"), want: true},
		{name: "metamask_message", err: errors.New("MetaMask Tx Signature: User denied transaction signature."), want: true},
		{name: "viem_message", err: errors.New("User rejected the request."), want: true},
		{name: "other", err: errors.New("execution reverted"), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsUserRejected(tt.err))
		})
	}
}
