package wallet

import (
	"context"
	"encoding/json"

	"github.com/ethereum/go-ethereum/rpc"
	"github.com/pkg/errors"
)

// NodeProvider adapts a bare JSON-RPC endpoint to the Provider interface.
// It is the fallback when no frame-host wallet was injected: read methods
// work, account methods fail with whatever the node answers, and there are
// no push events.
type NodeProvider struct {
	client *rpc.Client
}

func DialNode(ctx context.Context, endpoint string) (*NodeProvider, error) {
	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, errors.Wrap(err, "failed on dial chain endpoint")
	}
	return &NodeProvider{client: client}, nil
}

func NewNodeProvider(client *rpc.Client) *NodeProvider {
	return &NodeProvider{client: client}
}

func (p *NodeProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	var result json.RawMessage
	if err := p.client.CallContext(ctx, &result, method, params...); err != nil {
		return nil, err
	}
	return result, nil
}

func (p *NodeProvider) On(string, func(payload json.RawMessage)) (remove func()) {
	return func() {}
}

func (p *NodeProvider) Close() {
	p.client.Close()
}
