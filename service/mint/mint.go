package mint

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"builderid/core"
	"builderid/pkg/number"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/fox-one/pkg/logger"
	"github.com/shopspring/decimal"
)

const claimABI = `[{"type":"function","name":"claim","stateMutability":"payable","inputs":[{"name":"fid","type":"uint256"},{"name":"username","type":"string"}],"outputs":[]}]`

type mintService struct {
	contract  common.Address
	chainID   uint64
	mintPrice decimal.Decimal
	gasBuffer decimal.Decimal
	abi       abi.ABI
}

// New new mint service for the soulbound claim contract
func New(cfg core.Chain) (core.IMintService, error) {
	if !common.IsHexAddress(cfg.Contract) {
		return nil, fmt.Errorf("mint: invalid contract address %q", cfg.Contract)
	}

	parsed, err := abi.JSON(strings.NewReader(claimABI))
	if err != nil {
		return nil, err
	}

	return &mintService{
		contract:  common.HexToAddress(cfg.Contract),
		chainID:   cfg.ChainID,
		mintPrice: number.Decimal(cfg.MintPrice),
		gasBuffer: number.Decimal(cfg.GasBuffer),
		abi:       parsed,
	}, nil
}

func (s *mintService) Contract() string {
	return strings.ToLower(s.contract.Hex())
}

func (s *mintService) ChainID() uint64 {
	return s.chainID
}

func (s *mintService) MintPrice() decimal.Decimal {
	return s.mintPrice
}

// BuildTransaction encodes the claim(uint256,string) call. Submission
// happens in the caller's wallet environment; this only constructs the
// call parameters.
func (s *mintService) BuildTransaction(ctx context.Context, fid int64, username string) (*core.MintTransaction, error) {
	data, err := s.abi.Pack("claim", big.NewInt(fid), username)
	if err != nil {
		return nil, err
	}

	return &core.MintTransaction{
		To:      s.Contract(),
		Data:    hexutil.Encode(data),
		Value:   hexutil.EncodeBig(number.ToWei(s.mintPrice)),
		ChainID: s.chainID,
	}, nil
}

// Preflight runs the hard-stop checks in order: connected chain first,
// balance second. A chain mismatch triggers one switch request before
// failing; an insufficient balance reports the shortfall.
func (s *mintService) Preflight(ctx context.Context, provider core.WalletProvider, walletAddress string) error {
	log := logger.FromContext(ctx).WithField("service", "mint")

	if !common.IsHexAddress(walletAddress) {
		return core.ErrInvalidAddress
	}

	chainID, err := s.connectedChain(ctx, provider)
	if err != nil {
		return err
	}

	if chainID != s.chainID {
		log.Infoln("chain mismatch, requesting switch from", chainID)

		if _, err := provider.Request(ctx, core.MethodSwitchChain, switchChainParam{
			ChainID: hexutil.EncodeUint64(s.chainID),
		}); err != nil {
			return fmt.Errorf("%w: switch from chain %d rejected", core.ErrNetworkMismatch, chainID)
		}

		if chainID, err = s.connectedChain(ctx, provider); err != nil {
			return err
		}
		if chainID != s.chainID {
			return fmt.Errorf("%w: still on chain %d", core.ErrNetworkMismatch, chainID)
		}
	}

	balance, err := s.balanceOf(ctx, provider, walletAddress)
	if err != nil {
		return err
	}

	required := new(big.Int).Add(number.ToWei(s.mintPrice), number.ToWei(s.gasBuffer))
	if balance.Cmp(required) < 0 {
		return fmt.Errorf("%w: have %s ETH, need %s ETH",
			core.ErrInsufficientBalance,
			number.FromWei(balance).String(),
			number.FromWei(required).String(),
		)
	}

	return nil
}

type switchChainParam struct {
	ChainID string `json:"chainId"`
}

// Transport and decode failures stay generic. NETWORK_MISMATCH and
// INSUFFICIENT_BALANCE only report conditions the check actually observed.

func (s *mintService) connectedChain(ctx context.Context, provider core.WalletProvider) (uint64, error) {
	raw, err := provider.Request(ctx, core.MethodChainID)
	if err != nil {
		return 0, fmt.Errorf("eth_chainId: %w", err)
	}

	var quantity string
	if err := json.Unmarshal(raw, &quantity); err != nil {
		return 0, fmt.Errorf("eth_chainId: %w", err)
	}

	v, err := hexutil.DecodeUint64(quantity)
	if err != nil {
		return 0, fmt.Errorf("eth_chainId: %w", err)
	}

	return v, nil
}

func (s *mintService) balanceOf(ctx context.Context, provider core.WalletProvider, walletAddress string) (*big.Int, error) {
	raw, err := provider.Request(ctx, core.MethodGetBalance, strings.ToLower(walletAddress), "latest")
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance: %w", err)
	}

	var quantity string
	if err := json.Unmarshal(raw, &quantity); err != nil {
		return nil, fmt.Errorf("eth_getBalance: %w", err)
	}

	balance, err := hexutil.DecodeBig(quantity)
	if err != nil {
		return nil, fmt.Errorf("eth_getBalance: %w", err)
	}

	return balance, nil
}
