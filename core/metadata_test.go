package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildMetadata(t *testing.T) {
	profile := &BuilderProfile{
		FID:           1234,
		Username:      "alice",
		FollowerCount: 250,
		NeynarScore:   0.87,
		PowerBadge:    true,
	}
	stats := &BuilderStats{
		ShippedCount:    7,
		TotalEngagement: 90,
		TopTopics:       []string{"ai", "defi"},
		BuilderScore:    82,
		EthosScore:      1400,
		EthosLevel:      "reputable",
	}

	minted := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	m := BuildMetadata(profile, stats, "https://img.example/1234.png", 17, minted)

	assert.Equal(t, "Builder ID #17", m.Name)
	assert.Equal(t, "https://img.example/1234.png", m.Image)
	assert.Equal(t, "https://farcaster.xyz/alice", m.ExternalURL)
	assert.Contains(t, m.Description, "@alice")
	assert.Contains(t, m.Description, "7 shipped projects")
	assert.Contains(t, m.Description, "Power Badge holder")

	byTrait := map[string]interface{}{}
	for _, attr := range m.Attributes {
		byTrait[attr.TraitType] = attr.Value
	}

	assert.Equal(t, int64(1234), byTrait["FID"])
	assert.Equal(t, "@alice", byTrait["Username"])
	assert.Equal(t, "Yes", byTrait["OG Builder"], "fid below the og cutoff")
	assert.Equal(t, "Yes", byTrait["Power Badge"])
	assert.Equal(t, int64(87), byTrait["Neynar Score"])
	assert.Equal(t, int64(1400), byTrait["Ethos Score"])
	assert.Equal(t, "reputable", byTrait["Ethos Level"])
	assert.Equal(t, "ai", byTrait["Skill 1"])
	assert.Equal(t, "defi", byTrait["Skill 2"])
	assert.Equal(t, "2026-03-14", byTrait["Minted"])
}

func TestBuildMetadataFallsBackToFid(t *testing.T) {
	profile := &BuilderProfile{FID: 99999, Username: "bob"}
	m := BuildMetadata(profile, &BuilderStats{}, "", 0, time.Now())

	assert.Equal(t, "Builder ID #99999", m.Name)

	for _, attr := range m.Attributes {
		assert.NotEqual(t, "OG Builder", attr.TraitType)
		assert.NotEqual(t, "Power Badge", attr.TraitType)
	}
}
