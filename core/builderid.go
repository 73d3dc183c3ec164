package core

import (
	"context"
	"time"
)

// BuilderID soulbound mint record, at most one per fid.
// Score fields are a point-in-time snapshot captured at mint; they are
// never refreshed from the live profile afterwards.
type BuilderID struct {
	ID            int64     `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id,omitempty"`
	CreatedAt     time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at,omitempty"`
	FID           int64     `sql:"UNIQUE_INDEX:idx_builder_ids_fid" json:"fid"`
	Username      string    `sql:"size:64" json:"username"`
	WalletAddress string    `sql:"size:42" json:"wallet_address"`
	TokenID       int64     `json:"token_id,omitempty"`
	ImageURL      string    `sql:"size:512" json:"image_url,omitempty"`
	MetadataURL   string    `sql:"size:512" json:"metadata_url,omitempty"`
	TxHash        string    `sql:"size:66" json:"tx_hash"`
	MintedAt      time.Time `json:"minted_at"`

	BuilderScore int64   `json:"builder_score,omitempty"`
	NeynarScore  float64 `json:"neynar_score,omitempty"`
	TalentScore  float64 `json:"talent_score,omitempty"`
	EthosScore   int64   `json:"ethos_score,omitempty"`
	EthosLevel   string  `sql:"size:24" json:"ethos_level,omitempty"`
	ShippedCount int64   `json:"shipped_count,omitempty"`
	PowerBadge   bool    `json:"power_badge,omitempty"`
}

// BuilderStore builder id record store.
//
// Save must reject a second record for the same fid with ErrDuplicateClaim;
// the unique index on fid is the storage-layer guard behind the
// orchestrator's check-then-write.
type BuilderStore interface {
	Save(ctx context.Context, record *BuilderID) error
	Find(ctx context.Context, fid int64) (*BuilderID, error)
	Exists(ctx context.Context, fid int64) (bool, error)
	List(ctx context.Context, limit, offset int) ([]*BuilderID, error)
	Count(ctx context.Context) (int64, error)
}
