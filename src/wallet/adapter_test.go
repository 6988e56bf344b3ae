package wallet

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testChain = ChainParams{
	ChainID:    8453,
	ChainIdHex: "0x2105",
	ChainName:  "Base",
	RpcUrls:    []string{"https://mainnet.base.org"},
	NativeCurrency: NativeCurrency{
		Name: "Ether", Symbol: "ETH", Decimals: 18,
	},
}

type fakeProvider struct {
	mu       sync.Mutex
	calls    []string
	handlers map[string]func(params ...interface{}) (json.RawMessage, error)
	events   map[string][]func(json.RawMessage)
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		handlers: make(map[string]func(params ...interface{}) (json.RawMessage, error)),
		events:   make(map[string][]func(json.RawMessage)),
	}
}

func (f *fakeProvider) Request(_ context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, method)
	h, ok := f.handlers[method]
	f.mu.Unlock()
	if !ok {
		return json.RawMessage(`null`), nil
	}
	return h(params...)
}

func (f *fakeProvider) On(event string, handler func(payload json.RawMessage)) func() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[event] = append(f.events[event], handler)
	return func() {}
}

func (f *fakeProvider) emit(event string, payload string) {
	f.mu.Lock()
	handlers := append([]func(json.RawMessage){}, f.events[event]...)
	f.mu.Unlock()
	for _, h := range handlers {
		h(json.RawMessage(payload))
	}
}

func (f *fakeProvider) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == method {
			n++
		}
	}
	return n
}

func (f *fakeProvider) stub(method string, result string) {
	f.handlers[method] = func(...interface{}) (json.RawMessage, error) {
		return json.RawMessage(result), nil
	}
}

func (f *fakeProvider) stubErr(method string, err error) {
	f.handlers[method] = func(...interface{}) (json.RawMessage, error) {
		return nil, err
	}
}

func TestConnectOnCorrectChain(t *testing.T) {
	p := newFakeProvider()
	p.stub("eth_requestAccounts", `["0xAbCd000000000000000000000000000000000001"]`)
	p.stub("eth_chainId", `"0x2105"`)

	a := NewAdapter(testChain, p)
	session, err := a.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "0xabcd000000000000000000000000000000000001", session.Address)
	assert.False(t, session.IsConnecting)
	assert.Empty(t, session.Error)
	assert.Zero(t, p.callCount("wallet_switchEthereumChain"))
}

func TestConnectSwitchesChainExactlyOnce(t *testing.T) {
	p := newFakeProvider()
	p.stub("eth_requestAccounts", `["0xabcd000000000000000000000000000000000001"]`)
	p.stub("eth_chainId", `"0x1"`)
	p.handlers["wallet_switchEthereumChain"] = func(...interface{}) (json.RawMessage, error) {
		p.stub("eth_chainId", `"0x2105"`)
		return json.RawMessage(`null`), nil
	}

	a := NewAdapter(testChain, p)
	_, err := a.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.callCount("wallet_switchEthereumChain"))
	assert.Zero(t, p.callCount("wallet_addEthereumChain"))
	assert.Equal(t, 2, p.callCount("eth_chainId"), "chain must be re-read after switching")
}

func TestConnectAddsChainOn4902(t *testing.T) {
	p := newFakeProvider()
	p.stub("eth_requestAccounts", `["0xabcd000000000000000000000000000000000001"]`)
	p.stub("eth_chainId", `"0x1"`)
	p.stubErr("wallet_switchEthereumChain", &ProviderError{Code: CodeChainNotAdded, Message: "unknown chain"})
	p.handlers["wallet_addEthereumChain"] = func(...interface{}) (json.RawMessage, error) {
		p.stub("eth_chainId", `"0x2105"`)
		return json.RawMessage(`null`), nil
	}

	a := NewAdapter(testChain, p)
	session, err := a.Connect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, p.callCount("wallet_switchEthereumChain"))
	assert.Equal(t, 1, p.callCount("wallet_addEthereumChain"))
	assert.NotEmpty(t, session.Address)
}

func TestConnectFailsWhenSwitchDoesNotMoveChain(t *testing.T) {
	p := newFakeProvider()
	p.stub("eth_requestAccounts", `["0xabcd000000000000000000000000000000000001"]`)
	p.stub("eth_chainId", `"0x1"`)
	p.stub("wallet_switchEthereumChain", `null`) // reports success, chain stays put

	a := NewAdapter(testChain, p)
	session, err := a.Connect(context.Background())
	require.Error(t, err)
	assert.Empty(t, session.Address)
	assert.Contains(t, session.Error, "unsupported network")
}

func TestConnectSwitchFailureOtherCode(t *testing.T) {
	p := newFakeProvider()
	p.stub("eth_requestAccounts", `["0xabcd000000000000000000000000000000000001"]`)
	p.stub("eth_chainId", `"0x1"`)
	p.stubErr("wallet_switchEthereumChain", &ProviderError{Code: CodeUserRejected, Message: "User rejected the request."})

	a := NewAdapter(testChain, p)
	session, err := a.Connect(context.Background())
	require.Error(t, err)
	assert.Empty(t, session.Address)
	assert.NotEmpty(t, session.Error)
	assert.Zero(t, p.callCount("wallet_addEthereumChain"))
}

func TestConnectUserRejectedIsHumanReadable(t *testing.T) {
	p := newFakeProvider()
	p.stubErr("eth_requestAccounts", &ProviderError{Code: CodeUserRejected, Message: "User rejected the request."})

	a := NewAdapter(testChain, p)
	session, err := a.Connect(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Connection request was cancelled.", session.Error)
}

func TestConnectNoProvider(t *testing.T) {
	a := NewAdapter(testChain)
	session, err := a.Connect(context.Background())
	require.Error(t, err)
	assert.Empty(t, session.Address)
	assert.Contains(t, session.Error, "No wallet provider")
}

func TestDisconnectIssuesNoProviderCalls(t *testing.T) {
	p := newFakeProvider()
	p.stub("eth_requestAccounts", `["0xabcd000000000000000000000000000000000001"]`)
	p.stub("eth_chainId", `"0x2105"`)

	a := NewAdapter(testChain, p)
	_, err := a.Connect(context.Background())
	require.NoError(t, err)

	before := len(p.calls)
	a.Disconnect()
	assert.Len(t, p.calls, before)
	assert.Empty(t, a.Session().Address)
}

func TestStartRestoresSilently(t *testing.T) {
	p := newFakeProvider()
	p.stub("eth_accounts", `["0xAbCd000000000000000000000000000000000002"]`)

	a := NewAdapter(testChain, p)
	a.Start(context.Background())
	assert.Equal(t, "0xabcd000000000000000000000000000000000002", a.Address())
	assert.Zero(t, p.callCount("eth_requestAccounts"))
}

func TestStartWithoutAuthorizedAccounts(t *testing.T) {
	p := newFakeProvider()
	p.stub("eth_accounts", `[]`)

	a := NewAdapter(testChain, p)
	a.Start(context.Background())
	assert.Empty(t, a.Address())
}

func TestAccountsChangedEvents(t *testing.T) {
	p := newFakeProvider()
	p.stub("eth_accounts", `["0xabcd000000000000000000000000000000000001"]`)

	a := NewAdapter(testChain, p)
	a.Start(context.Background())
	require.NotEmpty(t, a.Address())

	p.emit(EventAccountsChanged, `["0xabcd000000000000000000000000000000000003"]`)
	assert.Equal(t, "0xabcd000000000000000000000000000000000003", a.Address())

	p.emit(EventAccountsChanged, `[]`)
	assert.Empty(t, a.Address())
}

func TestChainChangedToUnsupportedResetsSession(t *testing.T) {
	p := newFakeProvider()
	p.stub("eth_accounts", `["0xabcd000000000000000000000000000000000001"]`)

	a := NewAdapter(testChain, p)
	a.Start(context.Background())
	require.NotEmpty(t, a.Address())

	p.emit(EventChainChanged, `"0x1"`)
	session := a.Session()
	assert.Empty(t, session.Address)
	assert.NotEmpty(t, session.Error)

	// switching back to the tracked chain is a no-op
	p.emit(EventChainChanged, `"0x2105"`)
	assert.Empty(t, a.Session().Address)
}

func TestAsProviderError(t *testing.T) {
	pe, ok := AsProviderError(&ProviderError{Code: 4902, Message: "x"})
	require.True(t, ok)
	assert.Equal(t, 4902, pe.Code)

	_, ok = AsProviderError(assert.AnError)
	assert.False(t, ok)
}
