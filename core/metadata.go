package core

import (
	"fmt"
	"strings"
	"time"
)

// MetadataAttribute erc-721 metadata attribute
type MetadataAttribute struct {
	TraitType   string      `json:"trait_type"`
	Value       interface{} `json:"value"`
	DisplayType string      `json:"display_type,omitempty"`
}

// Metadata erc-721 token metadata document
type Metadata struct {
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Image       string              `json:"image"`
	ExternalURL string              `json:"external_url"`
	Attributes  []MetadataAttribute `json:"attributes"`
}

// ogBuilderMaxFID accounts registered below this fid get the OG trait
const ogBuilderMaxFID = 10000

// BuildMetadata renders the token metadata document from a profile and a
// stats snapshot. Pure; the snapshot it embeds is frozen at mint time.
func BuildMetadata(profile *BuilderProfile, stats *BuilderStats, imageURL string, tokenID int64, mintedAt time.Time) *Metadata {
	attrs := []MetadataAttribute{
		{TraitType: "FID", Value: profile.FID, DisplayType: "number"},
		{TraitType: "Username", Value: "@" + profile.Username},
		{TraitType: "Shipped Projects", Value: stats.ShippedCount, DisplayType: "number"},
		{TraitType: "Builder Score", Value: stats.BuilderScore, DisplayType: "number"},
		{TraitType: "Total Engagement", Value: stats.TotalEngagement, DisplayType: "number"},
		{TraitType: "Followers", Value: profile.FollowerCount, DisplayType: "number"},
	}

	if profile.FID < ogBuilderMaxFID {
		attrs = append(attrs, MetadataAttribute{TraitType: "OG Builder", Value: "Yes"})
	}
	if profile.PowerBadge {
		attrs = append(attrs, MetadataAttribute{TraitType: "Power Badge", Value: "Yes"})
	}
	if profile.NeynarScore > 0 {
		attrs = append(attrs, MetadataAttribute{
			TraitType:   "Neynar Score",
			Value:       int64(profile.NeynarScore*100 + 0.5),
			DisplayType: "number",
		})
	}
	if stats.TalentScore > 0 {
		attrs = append(attrs, MetadataAttribute{TraitType: "Talent Score", Value: stats.TalentScore, DisplayType: "number"})
	}
	if stats.EthosScore > 0 {
		attrs = append(attrs, MetadataAttribute{TraitType: "Ethos Score", Value: stats.EthosScore, DisplayType: "number"})
		if stats.EthosLevel != "" {
			attrs = append(attrs, MetadataAttribute{TraitType: "Ethos Level", Value: stats.EthosLevel})
		}
	}
	for i, topic := range stats.TopTopics {
		attrs = append(attrs, MetadataAttribute{TraitType: fmt.Sprintf("Skill %d", i+1), Value: topic})
	}
	attrs = append(attrs, MetadataAttribute{TraitType: "Minted", Value: mintedAt.UTC().Format("2006-01-02")})

	name := fmt.Sprintf("Builder ID #%d", tokenID)
	if tokenID <= 0 {
		name = fmt.Sprintf("Builder ID #%d", profile.FID)
	}

	scores := []string{fmt.Sprintf("Builder Score: %d/100", stats.BuilderScore)}
	if profile.NeynarScore > 0 {
		scores = append(scores, fmt.Sprintf("Neynar: %d%%", int64(profile.NeynarScore*100+0.5)))
	}
	if stats.TalentScore > 0 {
		scores = append(scores, fmt.Sprintf("Talent: %.0f", stats.TalentScore))
	}
	if stats.EthosScore > 0 {
		scores = append(scores, fmt.Sprintf("Ethos: %d", stats.EthosScore))
	}

	badge := ""
	if profile.PowerBadge {
		badge = "Power Badge holder. "
	}

	return &Metadata{
		Name: name,
		Description: fmt.Sprintf(
			"Builder ID for @%s (FID: %d). %d shipped projects. %s. %sThis soulbound NFT represents verified builder identity in the Farcaster ecosystem.",
			profile.Username, profile.FID, stats.ShippedCount, strings.Join(scores, " | "), badge,
		),
		Image:       imageURL,
		ExternalURL: "https://farcaster.xyz/" + profile.Username,
		Attributes:  attrs,
	}
}
