package mint

import (
	"context"
	"encoding/json"
	"errors"
	"math/big"
	"testing"

	"builderid/core"
	"builderid/pkg/number"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testChain() core.Chain {
	return core.Chain{
		ChainID:   8453,
		Contract:  "0xbe2940989E203FE1cfD75e0bAa1202D58A273956",
		MintPrice: "0.0005",
		GasBuffer: "0.0002",
	}
}

func TestBuildTransaction(t *testing.T) {
	s, err := New(testChain())
	require.NoError(t, err)

	tx, err := s.BuildTransaction(context.Background(), 1234, "alice")
	require.NoError(t, err)

	assert.Equal(t, "0xbe2940989e203fe1cfd75e0baa1202d58a273956", tx.To)
	assert.Equal(t, uint64(8453), tx.ChainID)
	assert.Equal(t, hexutil.EncodeBig(number.ToWei(number.Decimal("0.0005"))), tx.Value)

	data, err := hexutil.Decode(tx.Data)
	require.NoError(t, err)

	method := s.(*mintService).abi.Methods["claim"]
	assert.Equal(t, method.ID, data[:4])

	args, err := method.Inputs.Unpack(data[4:])
	require.NoError(t, err)
	require.Len(t, args, 2)
	assert.Equal(t, 0, args[0].(*big.Int).Cmp(big.NewInt(1234)))
	assert.Equal(t, "alice", args[1].(string))
}

func TestBuildTransactionDeterministic(t *testing.T) {
	s, err := New(testChain())
	require.NoError(t, err)

	a, err := s.BuildTransaction(context.Background(), 42, "bob")
	require.NoError(t, err)
	b, err := s.BuildTransaction(context.Background(), 42, "bob")
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

// fakeProvider scripts responses per method and records the call order
type fakeProvider struct {
	chainIDs []string // consumed one per eth_chainId call
	balance  string
	calls    []string

	chainErr   error
	balanceErr error
	switchErr  error
}

func (p *fakeProvider) Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error) {
	p.calls = append(p.calls, method)

	switch method {
	case core.MethodChainID:
		if p.chainErr != nil {
			return nil, p.chainErr
		}
		id := p.chainIDs[0]
		if len(p.chainIDs) > 1 {
			p.chainIDs = p.chainIDs[1:]
		}
		return json.Marshal(id)
	case core.MethodGetBalance:
		if p.balanceErr != nil {
			return nil, p.balanceErr
		}
		return json.Marshal(p.balance)
	case core.MethodSwitchChain:
		if p.switchErr != nil {
			return nil, p.switchErr
		}
		return json.Marshal(nil)
	}

	return nil, core.ErrOperationForbidden
}

const wallet = "0xabc0000000000000000000000000000000000001"

func TestPreflight(t *testing.T) {
	s, err := New(testChain())
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("passes on target chain with funds", func(t *testing.T) {
		p := &fakeProvider{
			chainIDs: []string{"0x2105"},
			balance:  hexutil.EncodeBig(number.ToWei(number.Decimal("0.001"))),
		}

		require.NoError(t, s.Preflight(ctx, p, wallet))
		assert.Equal(t, []string{core.MethodChainID, core.MethodGetBalance}, p.calls)
	})

	t.Run("switches chain then proceeds", func(t *testing.T) {
		p := &fakeProvider{
			chainIDs: []string{"0x1", "0x2105"},
			balance:  hexutil.EncodeBig(number.ToWei(number.Decimal("0.001"))),
		}

		require.NoError(t, s.Preflight(ctx, p, wallet))
		assert.Equal(t, []string{
			core.MethodChainID,
			core.MethodSwitchChain,
			core.MethodChainID,
			core.MethodGetBalance,
		}, p.calls)
	})

	t.Run("network mismatch is a hard stop before balance", func(t *testing.T) {
		p := &fakeProvider{
			chainIDs:  []string{"0x1"},
			balance:   hexutil.EncodeBig(number.ToWei(number.Decimal("1"))),
			switchErr: core.ErrUserCancelled,
		}

		err := s.Preflight(ctx, p, wallet)
		assert.ErrorIs(t, err, core.ErrNetworkMismatch)
		assert.NotContains(t, p.calls, core.MethodGetBalance)
	})

	t.Run("insufficient balance reports the shortfall", func(t *testing.T) {
		p := &fakeProvider{
			chainIDs: []string{"0x2105"},
			balance:  hexutil.EncodeBig(number.ToWei(number.Decimal("0.0006"))),
		}

		err := s.Preflight(ctx, p, wallet)
		assert.ErrorIs(t, err, core.ErrInsufficientBalance)
		assert.Contains(t, err.Error(), "0.0006")
		assert.Contains(t, err.Error(), "0.0007")
	})

	t.Run("chain rpc failure is not a network mismatch", func(t *testing.T) {
		p := &fakeProvider{chainErr: errors.New("connection refused")}

		err := s.Preflight(ctx, p, wallet)
		require.Error(t, err)
		assert.NotErrorIs(t, err, core.ErrNetworkMismatch)
		assert.NotErrorIs(t, err, core.ErrInsufficientBalance)
		assert.Contains(t, err.Error(), "eth_chainId")
	})

	t.Run("balance rpc failure is not an insufficient balance", func(t *testing.T) {
		p := &fakeProvider{
			chainIDs:   []string{"0x2105"},
			balanceErr: errors.New("connection refused"),
		}

		err := s.Preflight(ctx, p, wallet)
		require.Error(t, err)
		assert.NotErrorIs(t, err, core.ErrInsufficientBalance)
		assert.Contains(t, err.Error(), "eth_getBalance")
	})

	t.Run("malformed balance is not an insufficient balance", func(t *testing.T) {
		p := &fakeProvider{
			chainIDs: []string{"0x2105"},
			balance:  "not-a-quantity",
		}

		err := s.Preflight(ctx, p, wallet)
		require.Error(t, err)
		assert.NotErrorIs(t, err, core.ErrInsufficientBalance)
	})

	t.Run("rejects malformed wallet before any call", func(t *testing.T) {
		p := &fakeProvider{chainIDs: []string{"0x2105"}}

		err := s.Preflight(ctx, p, "nope")
		assert.ErrorIs(t, err, core.ErrInvalidAddress)
		assert.Empty(t, p.calls)
	})
}
