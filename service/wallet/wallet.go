package wallet

import (
	"context"
	"encoding/json"

	"builderid/core"

	"github.com/ethereum/go-ethereum/rpc"
)

type rpcProvider struct {
	client *rpc.Client
}

// NewRPCProvider wallet provider backed by a json-rpc node. Read-only:
// it serves the pre-flight queries (chain id, balance) while signing and
// broadcast stay with the caller's own wallet.
func NewRPCProvider(ctx context.Context, endpoint string) (core.WalletProvider, error) {
	client, err := rpc.DialContext(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	return &rpcProvider{client: client}, nil
}

func (p *rpcProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	switch method {
	case core.MethodSendTransaction, core.MethodRequestAccounts, core.MethodSwitchChain:
		// a fixed node is pinned to its chain and holds no keys
		return nil, core.ErrOperationForbidden
	}

	var result json.RawMessage
	if err := p.client.CallContext(ctx, &result, method, params...); err != nil {
		return nil, err
	}

	return result, nil
}
