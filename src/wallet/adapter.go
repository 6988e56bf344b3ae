package wallet

import (
	"context"
	"encoding/json"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/pinkyblu/bp-tracker-test/src/entity"
	xzap "github.com/pinkyblu/bp-tracker-test/src/logger"
	"github.com/pinkyblu/bp-tracker-test/src/utils"
)

const (
	msgNoProvider = "No wallet provider found. Open this app inside a frame host or install a wallet."
	msgNoAccounts = "Wallet returned no authorized accounts."
	msgBadNetwork = "Wallet is connected to an unsupported network."
)

// NativeCurrency is the currency block of a wallet_addEthereumChain request.
type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// ChainParams is the chain definition in the exact shape
// wallet_addEthereumChain expects, plus the integer id for comparisons.
type ChainParams struct {
	ChainID           int            `json:"-"`
	ChainIdHex        string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	RpcUrls           []string       `json:"rpcUrls"`
	BlockExplorerUrls []string       `json:"blockExplorerUrls,omitempty"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
}

type switchChainParam struct {
	ChainId string `json:"chainId"`
}

// Adapter owns the single wallet session: connect with chain-switch flow,
// silent restore, event-driven resets. Failures are recorded on the session
// as human-readable strings and additionally returned to the caller.
type Adapter struct {
	mu        sync.Mutex
	provider  Provider
	chain     ChainParams
	session   entity.WalletSession
	sessionID string
	removers  []func()
}

// NewAdapter picks the first usable provider, preferring earlier entries
// (frame-host wallet before node fallback). A fully nil list is allowed:
// Connect then fails with a blocking no-provider message.
func NewAdapter(chain ChainParams, providers ...Provider) *Adapter {
	a := &Adapter{chain: chain}
	for _, p := range providers {
		if p != nil {
			a.provider = p
			break
		}
	}
	return a
}

// Start performs the silent session restore (eth_accounts, no prompt) and
// subscribes to provider events for the adapter's lifetime.
func (a *Adapter) Start(ctx context.Context) {
	if a.provider == nil {
		return
	}
	if raw, err := a.provider.Request(ctx, "eth_accounts"); err == nil {
		var accounts []string
		if err := json.Unmarshal(raw, &accounts); err == nil && len(accounts) > 0 {
			a.mu.Lock()
			a.session.Address = strings.ToLower(accounts[0])
			a.sessionID = uuid.NewString()
			a.mu.Unlock()
		}
	}
	a.removers = append(a.removers,
		a.provider.On(EventAccountsChanged, a.handleAccountsChanged),
		a.provider.On(EventChainChanged, a.handleChainChanged),
	)
}

// Close drops the event subscriptions.
func (a *Adapter) Close() {
	for _, remove := range a.removers {
		remove()
	}
	a.removers = nil
}

// Connect requests account access, then verifies the active chain and walks
// the switch/add flow when it is not the tracked one. Exactly one
// wallet_switchEthereumChain is issued per call; wallet_addEthereumChain only
// when the provider reports code 4902.
func (a *Adapter) Connect(ctx context.Context) (entity.WalletSession, error) {
	a.mu.Lock()
	if a.provider == nil {
		a.session.Error = msgNoProvider
		s := a.session
		a.mu.Unlock()
		return s, errors.New(msgNoProvider)
	}
	a.session.IsConnecting = true
	a.session.Error = ""
	a.mu.Unlock()

	address, err := a.requestAccounts(ctx)
	if err == nil {
		err = a.ensureChain(ctx)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.IsConnecting = false
	if err != nil {
		a.session.Address = ""
		a.session.Error = humanReadable(err)
		return a.session, err
	}
	a.session.Address = address
	a.sessionID = uuid.NewString()
	xzap.WithContext(ctx).Info("wallet connected",
		zap.String("address", address), zap.String("session_id", a.sessionID))
	return a.session, nil
}

func (a *Adapter) requestAccounts(ctx context.Context) (string, error) {
	raw, err := a.provider.Request(ctx, "eth_requestAccounts")
	if err != nil {
		return "", errors.Wrap(err, "failed on request accounts")
	}
	var accounts []string
	if err := json.Unmarshal(raw, &accounts); err != nil {
		return "", errors.Wrap(err, "failed on decode accounts")
	}
	if len(accounts) == 0 {
		return "", errors.New(msgNoAccounts)
	}
	return strings.ToLower(accounts[0]), nil
}

func (a *Adapter) ensureChain(ctx context.Context) error {
	onChain, err := a.activeChainID(ctx)
	if err != nil {
		return err
	}
	if onChain == a.chain.ChainID {
		return nil
	}

	_, err = a.provider.Request(ctx, "wallet_switchEthereumChain",
		switchChainParam{ChainId: a.chain.ChainIdHex})
	if err != nil {
		pe, ok := AsProviderError(err)
		if !ok || pe.Code != CodeChainNotAdded {
			return errors.Wrap(err, "failed on switch chain")
		}
		if _, addErr := a.provider.Request(ctx, "wallet_addEthereumChain", a.chain); addErr != nil {
			return errors.Wrap(addErr, "failed on add chain")
		}
	}

	// wallets may report success without actually moving
	onChain, err = a.activeChainID(ctx)
	if err != nil {
		return err
	}
	if onChain != a.chain.ChainID {
		return errors.New(msgBadNetwork)
	}
	return nil
}

func (a *Adapter) activeChainID(ctx context.Context) (int, error) {
	raw, err := a.provider.Request(ctx, "eth_chainId")
	if err != nil {
		return 0, errors.Wrap(err, "failed on read chain id")
	}
	var hexID string
	if err := json.Unmarshal(raw, &hexID); err != nil {
		return 0, errors.Wrap(err, "failed on decode chain id")
	}
	return utils.ChainIDFromHex(hexID), nil
}

// Disconnect clears local session state only. Wallets cannot be disconnected
// programmatically, so no provider call is made.
func (a *Adapter) Disconnect() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session = entity.WalletSession{}
	a.sessionID = ""
}

func (a *Adapter) Session() entity.WalletSession {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

func (a *Adapter) Address() string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session.Address
}

// SignTypedData obtains an opaque EIP-712 signature from the wallet. The
// typed data passes through unparsed.
func (a *Adapter) SignTypedData(ctx context.Context, address string, typedData json.RawMessage) (string, error) {
	if a.provider == nil {
		return "", errors.New(msgNoProvider)
	}
	raw, err := a.provider.Request(ctx, "eth_signTypedData_v4", address, string(typedData))
	if err != nil {
		return "", err
	}
	var sig string
	if err := json.Unmarshal(raw, &sig); err != nil {
		return "", errors.Wrap(err, "failed on decode signature")
	}
	return sig, nil
}

// SendTransaction submits a prepared transaction through the wallet and
// returns the transaction hash.
func (a *Adapter) SendTransaction(ctx context.Context, tx interface{}) (string, error) {
	if a.provider == nil {
		return "", errors.New(msgNoProvider)
	}
	raw, err := a.provider.Request(ctx, "eth_sendTransaction", tx)
	if err != nil {
		return "", err
	}
	var hash string
	if err := json.Unmarshal(raw, &hash); err != nil {
		return "", errors.Wrap(err, "failed on decode tx hash")
	}
	return hash, nil
}

func (a *Adapter) handleAccountsChanged(payload json.RawMessage) {
	var accounts []string
	if err := json.Unmarshal(payload, &accounts); err != nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(accounts) == 0 {
		a.session = entity.WalletSession{}
		a.sessionID = ""
		return
	}
	a.session.Address = strings.ToLower(accounts[0])
	a.session.Error = ""
}

func (a *Adapter) handleChainChanged(payload json.RawMessage) {
	var hexID string
	if err := json.Unmarshal(payload, &hexID); err != nil {
		return
	}
	if utils.ChainIDFromHex(hexID) == a.chain.ChainID {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.session.Address = ""
	a.session.Error = msgBadNetwork
	a.sessionID = ""
}

// humanReadable flattens wrapped provider errors into a message fit for
// direct display.
func humanReadable(err error) string {
	if pe, ok := AsProviderError(err); ok {
		if pe.Code == CodeUserRejected {
			return "Connection request was cancelled."
		}
		return pe.Message
	}
	return err.Error()
}
