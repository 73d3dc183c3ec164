package claim

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"builderid/core"
	"builderid/pkg/id"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
)

type claimService struct {
	builders   core.BuilderStore
	identities core.IdentityService
	verifier   core.OwnershipVerifier
	messages   core.IMessageService
	mints      core.IMintService
	provider   core.WalletProvider
}

// New new claim orchestrator.
//
// builders must be the undecorated store; provider may be nil when
// pre-flight checks run entirely in the caller's wallet environment.
func New(
	builders core.BuilderStore,
	identities core.IdentityService,
	verifier core.OwnershipVerifier,
	messages core.IMessageService,
	mints core.IMintService,
	provider core.WalletProvider,
) core.ClaimService {
	return &claimService{
		builders:   builders,
		identities: identities,
		verifier:   verifier,
		messages:   messages,
		mints:      mints,
		provider:   provider,
	}
}

// Begin walks CHECK, VERIFYING and BUILDING_TX, then parks the machine in
// AWAITING_SUBMISSION. An fid that already minted short-circuits at CHECK
// and returns its record untouched.
func (s *claimService) Begin(ctx context.Context, fid int64, walletAddress string) (*core.ClaimTicket, error) {
	log := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"trace": id.GenTraceID(),
		"fid":   fid,
	})
	ctx = logger.WithContext(ctx, log)

	log.WithField("state", core.ClaimStateCheck).Debugln("claim begin")

	record, err := s.builders.Find(ctx, fid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}

	if record.ID > 0 {
		// idempotent re-entry, not an error
		return &core.ClaimTicket{State: core.ClaimStateDone, Existing: record}, nil
	}

	log.WithField("state", core.ClaimStateVerifying).Debugln("fetching profile")

	// always a fresh fetch; verified addresses carry no freshness guarantee
	profile, err := s.identities.FetchProfile(ctx, fid)
	if err != nil {
		return nil, err
	}

	if v := s.verifier.Verify(profile, walletAddress); !v.Authorized {
		log.Infoln("wallet not verified:", v.Reason)
		return nil, fmt.Errorf("%w: %s", core.ErrWalletNotVerified, v.Reason)
	}

	log.WithField("state", core.ClaimStateBuildingTx).Debugln("building mint transaction")

	if s.provider != nil {
		if err := s.mints.Preflight(ctx, s.provider, walletAddress); err != nil {
			return nil, err
		}
	}

	tx, err := s.mints.BuildTransaction(ctx, fid, profile.Username)
	if err != nil {
		return nil, err
	}

	timestamp := time.Now().UnixMilli()

	return &core.ClaimTicket{
		State:             core.ClaimStateAwaitingSubmission,
		Message:           s.messages.Build(fid, walletAddress, profile.Username, timestamp),
		Timestamp:         timestamp,
		Username:          profile.Username,
		VerifiedAddresses: profile.VerifiedAddresses,
		Transaction:       tx,
	}, nil
}

// Submit runs RECORDING once the caller reports the broadcast tx hash.
// The profile is re-fetched and the ownership check re-run; a stale
// ticket fails with ErrMessageExpired and the caller restarts from Begin.
func (s *claimService) Submit(ctx context.Context, sub *core.ClaimSubmission) (*core.BuilderID, error) {
	log := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"trace": id.TraceIDFrom(sub.TxHash),
		"fid":   sub.FID,
		"state": core.ClaimStateRecording,
	})
	ctx = logger.WithContext(ctx, log)

	record, err := s.builders.Find(ctx, sub.FID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}
	if record.ID > 0 {
		return record, nil
	}

	if !s.messages.Fresh(sub.Timestamp, time.Now()) {
		return nil, core.ErrMessageExpired
	}

	if !validTxHash(sub.TxHash) {
		return nil, fmt.Errorf("%w: malformed tx hash", core.ErrUnknown)
	}

	profile, err := s.identities.FetchProfile(ctx, sub.FID)
	if err != nil {
		return nil, err
	}

	if v := s.verifier.Verify(profile, sub.WalletAddress); !v.Authorized {
		return nil, fmt.Errorf("%w: %s", core.ErrWalletNotVerified, v.Reason)
	}

	if sub.Signature != "" {
		message := s.messages.Build(sub.FID, sub.WalletAddress, profile.Username, sub.Timestamp)
		if err := s.messages.Verify(message, sub.Signature, sub.WalletAddress); err != nil {
			return nil, err
		}
	}

	return s.record(ctx, profile, sub.WalletAddress, sub.TxHash)
}

// Resume re-runs RECORDING alone for a known tx hash after a storage
// failure: the mint may already sit on-chain, so retrying the whole flow
// would be wrong. The ownership check still applies; the freshness window
// does not, since a late tx hash is still valid to record.
func (s *claimService) Resume(ctx context.Context, fid int64, walletAddress, txHash string) (*core.BuilderID, error) {
	log := logger.FromContext(ctx).WithFields(map[string]interface{}{
		"trace": id.TraceIDFrom(txHash),
		"fid":   fid,
		"state": core.ClaimStateRecording,
	})
	ctx = logger.WithContext(ctx, log)

	record, err := s.builders.Find(ctx, fid)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}
	if record.ID > 0 {
		return record, nil
	}

	if !validTxHash(txHash) {
		return nil, fmt.Errorf("%w: malformed tx hash", core.ErrUnknown)
	}

	profile, err := s.identities.FetchProfile(ctx, fid)
	if err != nil {
		return nil, err
	}

	if v := s.verifier.Verify(profile, walletAddress); !v.Authorized {
		return nil, fmt.Errorf("%w: %s", core.ErrWalletNotVerified, v.Reason)
	}

	return s.record(ctx, profile, walletAddress, txHash)
}

// Cancel acknowledges a declined wallet prompt. A normal exit back to
// CHECK: nothing was persisted, nothing to roll back.
func (s *claimService) Cancel(ctx context.Context, fid int64) {
	logger.FromContext(ctx).WithFields(map[string]interface{}{
		"fid":   fid,
		"state": core.ClaimStateCheck,
	}).Infoln("claim cancelled by user")
}

func (s *claimService) record(ctx context.Context, profile *core.BuilderProfile, walletAddress, txHash string) (*core.BuilderID, error) {
	log := logger.FromContext(ctx)

	stats := s.identities.FetchStats(ctx, profile.FID)

	record := &core.BuilderID{
		FID:           profile.FID,
		Username:      profile.Username,
		WalletAddress: strings.ToLower(walletAddress),
		TxHash:        strings.ToLower(txHash),
		MintedAt:      time.Now(),

		BuilderScore: stats.BuilderScore,
		NeynarScore:  profile.NeynarScore,
		TalentScore:  stats.TalentScore,
		EthosScore:   stats.EthosScore,
		EthosLevel:   stats.EthosLevel,
		ShippedCount: stats.ShippedCount,
		PowerBadge:   profile.PowerBadge,
	}

	err := s.builders.Save(ctx, record)
	if errors.Is(err, core.ErrDuplicateClaim) {
		// another claim won the race; theirs is the canonical record
		log.Infoln("concurrent claim detected, returning existing record")

		existing, ferr := s.builders.Find(ctx, profile.FID)
		if ferr != nil || existing.ID == 0 {
			return nil, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, ferr)
		}
		return existing, nil
	}

	if err != nil {
		log.WithError(err).Errorln("save builder id failed")
		return nil, fmt.Errorf("%w: %v", core.ErrStorageUnavailable, err)
	}

	log.WithField("state", core.ClaimStateDone).Infoln("builder id recorded")

	return record, nil
}

func validTxHash(txHash string) bool {
	if len(txHash) != 2+2*common.HashLength {
		return false
	}

	if !strings.HasPrefix(txHash, "0x") {
		return false
	}

	for _, c := range txHash[2:] {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')) {
			return false
		}
	}

	return true
}
