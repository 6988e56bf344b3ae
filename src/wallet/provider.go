package wallet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
)

// Events a provider may push. Payloads follow EIP-1193: a JSON array of
// addresses for accountsChanged, a hex chain id string for chainChanged.
const (
	EventAccountsChanged = "accountsChanged"
	EventChainChanged    = "chainChanged"
)

// Well-known provider error codes (EIP-1193 / EIP-3085).
const (
	CodeUserRejected  = 4001
	CodeChainNotAdded = 4902
)

// Provider is the EIP-1193-style wallet surface: a request pipe plus event
// subscription. A frame-host wallet and a plain node endpoint both satisfy it.
type Provider interface {
	Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
	// On registers a handler for the given event and returns a remover.
	// Providers without push support return a no-op remover.
	On(event string, handler func(payload json.RawMessage)) (remove func())
}

// ProviderError carries the numeric code wallets attach to rejections.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider error %d: %s", e.Code, e.Message)
}

// rpcError matches go-ethereum's JSON-RPC error interface without importing
// it here.
type rpcError interface {
	Error() string
	ErrorCode() int
}

// AsProviderError extracts a coded provider error from err, unwrapping both
// our own type and JSON-RPC errors.
func AsProviderError(err error) (*ProviderError, bool) {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe, true
	}
	var re rpcError
	if errors.As(err, &re) {
		return &ProviderError{Code: re.ErrorCode(), Message: re.Error()}, true
	}
	return nil, false
}
