package core

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// EIP-1193 methods the claim flow depends on. The core depends on this
// method-call contract only, not on any specific wallet implementation.
const (
	MethodRequestAccounts = "eth_requestAccounts"
	MethodChainID         = "eth_chainId"
	MethodGetBalance      = "eth_getBalance"
	MethodSwitchChain     = "wallet_switchEthereumChain"
	MethodSendTransaction = "eth_sendTransaction"
)

// WalletProvider EIP-1193 style request/sign interface
type WalletProvider interface {
	Request(ctx context.Context, method string, params ...interface{}) (json.RawMessage, error)
}

// MintTransaction on-chain call parameters for the soulbound mint.
// Hex-encoded so the caller's wallet can submit them unmodified.
type MintTransaction struct {
	To      string `json:"to"`
	Data    string `json:"data"`
	Value   string `json:"value"`
	ChainID uint64 `json:"chain_id"`
}

// IMintService mint transaction builder and pre-flight checks
type IMintService interface {
	BuildTransaction(ctx context.Context, fid int64, username string) (*MintTransaction, error)
	Preflight(ctx context.Context, provider WalletProvider, walletAddress string) error
	Contract() string
	ChainID() uint64
	MintPrice() decimal.Decimal
}
