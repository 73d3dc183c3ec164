package ownership

import (
	"fmt"
	"strings"

	"builderid/core"

	"github.com/ethereum/go-ethereum/common"
)

type verifier struct{}

// New new ownership verifier
func New() core.OwnershipVerifier {
	return &verifier{}
}

// Verify authorizes the wallet iff its normalized form is a member of the
// profile's verified-address set. No fallback, no heuristic matching. An
// unparseable address is never authorized.
func (v *verifier) Verify(profile *core.BuilderProfile, walletAddress string) core.Verification {
	if !common.IsHexAddress(walletAddress) {
		return core.Verification{
			Reason: fmt.Sprintf("%s is not a valid ethereum address", walletAddress),
		}
	}

	wallet := strings.ToLower(walletAddress)
	if !profile.HasVerifiedAddress(wallet) {
		return core.Verification{
			Reason: fmt.Sprintf("wallet %s is not a verified address for @%s, verify this wallet on Farcaster first", wallet, profile.Username),
		}
	}

	return core.Verification{Authorized: true}
}
