package core

import "time"

// ClaimFreshWindow how long a claim message stays valid after issuing
const ClaimFreshWindow = 5 * time.Minute

// IMessageService claim message protocol.
//
// Build is deterministic: the same four inputs always produce the same
// string, so a client can reconstruct what it is about to sign. Messages
// are transient and never persisted.
type IMessageService interface {
	Build(fid int64, walletAddress, username string, timestamp int64) string
	Fresh(timestamp int64, now time.Time) bool
	Verify(message, signature, walletAddress string) error
}
