package core

import (
	"context"
	"strings"
)

// BuilderProfile farcaster profile fetched from the identity network.
// Ephemeral, never persisted. VerifiedAddresses is the sole trust anchor
// for ownership checks; everything else is display or advisory data.
type BuilderProfile struct {
	FID               int64    `json:"fid"`
	Username          string   `json:"username"`
	DisplayName       string   `json:"display_name,omitempty"`
	PfpURL            string   `json:"pfp_url,omitempty"`
	Bio               string   `json:"bio,omitempty"`
	FollowerCount     int64    `json:"follower_count"`
	FollowingCount    int64    `json:"following_count"`
	VerifiedAddresses []string `json:"verified_addresses"`
	NeynarScore       float64  `json:"neynar_score,omitempty"`
	PowerBadge        bool     `json:"power_badge,omitempty"`
}

// HasVerifiedAddress reports whether addr is a member of the verified set.
// Comparison is over normalized lower-case hex on both sides.
func (p *BuilderProfile) HasVerifiedAddress(addr string) bool {
	addr = strings.ToLower(addr)
	for _, verified := range p.VerifiedAddresses {
		if strings.ToLower(verified) == addr {
			return true
		}
	}
	return false
}

// BuilderStats aggregated shipping stats, advisory only
type BuilderStats struct {
	ShippedCount    int64    `json:"shipped_count"`
	TotalEngagement int64    `json:"total_engagement"`
	TopTopics       []string `json:"top_topics,omitempty"`
	BuilderScore    int64    `json:"builder_score"`
	TalentScore     float64  `json:"talent_score,omitempty"`
	EthosScore      int64    `json:"ethos_score,omitempty"`
	EthosLevel      string   `json:"ethos_level,omitempty"`
}

// IdentityService reads profiles and stats from the upstream social graph.
// FetchProfile fails closed: any upstream failure surfaces as ErrProfileNotFound.
type IdentityService interface {
	FetchProfile(ctx context.Context, fid int64) (*BuilderProfile, error)
	FetchStats(ctx context.Context, fid int64) *BuilderStats
}
