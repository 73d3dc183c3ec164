package core

import "context"

// ClaimState claim machine state
type ClaimState string

const (
	// ClaimStateCheck query the record store for an existing mint
	ClaimStateCheck ClaimState = "CHECK"
	// ClaimStateVerifying fetch profile and run the ownership check
	ClaimStateVerifying ClaimState = "VERIFYING"
	// ClaimStateBuildingTx run pre-flight checks and build tx params
	ClaimStateBuildingTx ClaimState = "BUILDING_TX"
	// ClaimStateAwaitingSubmission waiting for the caller's wallet
	ClaimStateAwaitingSubmission ClaimState = "AWAITING_SUBMISSION"
	// ClaimStateRecording persist the record with the reported tx hash
	ClaimStateRecording ClaimState = "RECORDING"
	// ClaimStateDone record returned to the caller
	ClaimStateDone ClaimState = "DONE"
	// ClaimStateFailed terminal failure, reachable from every non-done state
	ClaimStateFailed ClaimState = "FAILED"
)

// Verification ownership check result
type Verification struct {
	Authorized bool   `json:"authorized"`
	Reason     string `json:"reason,omitempty"`
}

// OwnershipVerifier decides whether a wallet is authorized to act for a
// profile's fid. Membership in the verified-address set is the entire
// security boundary; signature and timestamp checks are defense in depth.
type OwnershipVerifier interface {
	Verify(profile *BuilderProfile, walletAddress string) Verification
}

// ClaimTicket payload handed back to the caller while the machine sits in
// AWAITING_SUBMISSION. When the fid already minted, Existing carries the
// record and everything else is empty.
type ClaimTicket struct {
	State             ClaimState       `json:"state"`
	Existing          *BuilderID       `json:"existing,omitempty"`
	Message           string           `json:"message,omitempty"`
	Timestamp         int64            `json:"timestamp,omitempty"`
	Username          string           `json:"username,omitempty"`
	VerifiedAddresses []string         `json:"verified_addresses,omitempty"`
	Transaction       *MintTransaction `json:"transaction,omitempty"`
}

// ClaimSubmission external callback carrying the broadcast tx hash
type ClaimSubmission struct {
	FID           int64  `json:"fid"`
	WalletAddress string `json:"wallet_address"`
	TxHash        string `json:"tx_hash"`
	Timestamp     int64  `json:"timestamp"`
	Signature     string `json:"signature,omitempty"`
}

// ClaimService claim orchestrator.
//
// Begin runs CHECK through BUILDING_TX and parks in AWAITING_SUBMISSION;
// Submit runs RECORDING once the caller reports a tx hash; Resume re-runs
// RECORDING alone for a known tx hash after a storage failure. Nothing is
// persisted before RECORDING, so abandoning a flow needs no rollback.
type ClaimService interface {
	Begin(ctx context.Context, fid int64, walletAddress string) (*ClaimTicket, error)
	Submit(ctx context.Context, sub *ClaimSubmission) (*BuilderID, error)
	Resume(ctx context.Context, fid int64, walletAddress, txHash string) (*BuilderID, error)
	Cancel(ctx context.Context, fid int64)
}
