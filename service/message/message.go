package message

import (
	"fmt"
	"strings"
	"time"

	"builderid/core"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
)

// claimTemplate is stable across implementations so any signer UI can
// reconstruct and display exactly what it is signing.
const claimTemplate = `I am claiming my Builder ID NFT on Fixr.

FID: %d
Username: @%s
Wallet: %s
Timestamp: %d

This signature proves I own this wallet and authorize the Builder ID claim.`

type messageService struct{}

// New new claim message service
func New() core.IMessageService {
	return &messageService{}
}

// Build renders the claim message. Deterministic over its four inputs;
// the wallet address is lower-cased into the message.
func (s *messageService) Build(fid int64, walletAddress, username string, timestamp int64) string {
	return fmt.Sprintf(claimTemplate, fid, username, strings.ToLower(walletAddress), timestamp)
}

// Fresh reports whether a message issued at timestamp (epoch millis) is
// still inside the freshness window at now
func (s *messageService) Fresh(timestamp int64, now time.Time) bool {
	issued := time.UnixMilli(timestamp)

	drift := now.Sub(issued)
	if drift < 0 {
		drift = -drift
	}

	return drift <= core.ClaimFreshWindow
}

// Verify recovers the EIP-191 personal-sign signer of message and requires
// it to equal walletAddress. The verified-address membership check remains
// the primary gate; this closes the door on a signature produced by any
// other key.
func (s *messageService) Verify(message, signature, walletAddress string) error {
	if !common.IsHexAddress(walletAddress) {
		return core.ErrInvalidAddress
	}

	sig, err := hexutil.Decode(ensureHexPrefix(signature))
	if err != nil || len(sig) != crypto.SignatureLength {
		return core.ErrInvalidSignature
	}

	// wallets emit v as 27/28, crypto wants 0/1
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig = append([]byte(nil), sig...)
		sig[crypto.RecoveryIDOffset] -= 27
	}

	hash := accounts.TextHash([]byte(message))
	pub, err := crypto.SigToPub(hash, sig)
	if err != nil {
		return core.ErrInvalidSignature
	}

	recovered := crypto.PubkeyToAddress(*pub)
	if recovered != common.HexToAddress(walletAddress) {
		return core.ErrInvalidSignature
	}

	return nil
}

func ensureHexPrefix(s string) string {
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		return s
	}
	return "0x" + s
}
