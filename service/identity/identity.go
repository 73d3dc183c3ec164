package identity

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"builderid/core"
	"builderid/pkg/resthttp"

	"github.com/fox-one/pkg/logger"
	"github.com/go-resty/resty/v2"
)

const (
	ethosEndpoint = "https://api.ethos.network"
	ethosClient   = "fixr-shipyard"

	// ethos scores run 0-2800
	ethosMaxScore = 2800
)

type identityService struct {
	neynar   *resty.Client
	shipyard *resty.Client
	ethos    *resty.Client
	talent   *resty.Client // nil when no api key is configured
}

// New new identity service backed by the Neynar user API and the
// shipyard project database
func New(neynar core.Neynar, shipyard core.Shipyard, talent core.Talent) core.IdentityService {
	s := &identityService{
		neynar: resthttp.NewClient(neynar.Endpoint, map[string]string{
			"x-api-key": neynar.APIKey,
		}),
		shipyard: resthttp.NewClient(shipyard.Endpoint, map[string]string{
			"apikey":        shipyard.ServiceKey,
			"Authorization": "Bearer " + shipyard.ServiceKey,
		}),
		ethos: resthttp.NewClient(ethosEndpoint, map[string]string{
			"X-Ethos-Client": ethosClient,
		}),
	}

	if talent.APIKey != "" {
		s.talent = resthttp.NewClient(talent.Endpoint, map[string]string{
			"X-API-KEY": talent.APIKey,
		})
	}

	return s
}

type neynarUser struct {
	FID            int64  `json:"fid"`
	Username       string `json:"username"`
	DisplayName    string `json:"display_name"`
	PfpURL         string `json:"pfp_url"`
	FollowerCount  int64  `json:"follower_count"`
	FollowingCount int64  `json:"following_count"`
	Profile        struct {
		Bio struct {
			Text string `json:"text"`
		} `json:"bio"`
	} `json:"profile"`
	VerifiedAddresses struct {
		EthAddresses []string `json:"eth_addresses"`
	} `json:"verified_addresses"`
	Experimental struct {
		NeynarUserScore float64 `json:"neynar_user_score"`
	} `json:"experimental"`
	PowerBadge bool `json:"power_badge"`
}

// FetchProfile reads the profile from Neynar. Every upstream failure,
// transport error or malformed payload collapses into ErrProfileNotFound so
// callers never proceed as if verified.
func (s *identityService) FetchProfile(ctx context.Context, fid int64) (*core.BuilderProfile, error) {
	log := logger.FromContext(ctx).WithField("fid", fid)

	var body struct {
		Users []neynarUser `json:"users"`
	}

	r, err := resthttp.Request(ctx, s.neynar).
		SetQueryParam("fids", fmt.Sprintf("%d", fid)).
		SetResult(&body).
		Get("/v2/farcaster/user/bulk")
	if err != nil {
		log.WithError(err).Warningln("neynar user fetch failed")
		return nil, core.ErrProfileNotFound
	}

	if !r.IsSuccess() || len(body.Users) == 0 {
		log.Warningln("neynar user fetch:", r.Status())
		return nil, core.ErrProfileNotFound
	}

	user := body.Users[0]
	addresses := make([]string, 0, len(user.VerifiedAddresses.EthAddresses))
	for _, addr := range user.VerifiedAddresses.EthAddresses {
		addresses = append(addresses, strings.ToLower(addr))
	}

	return &core.BuilderProfile{
		FID:               user.FID,
		Username:          user.Username,
		DisplayName:       user.DisplayName,
		PfpURL:            user.PfpURL,
		Bio:               user.Profile.Bio.Text,
		FollowerCount:     user.FollowerCount,
		FollowingCount:    user.FollowingCount,
		VerifiedAddresses: addresses,
		NeynarScore:       user.Experimental.NeynarUserScore,
		PowerBadge:        user.PowerBadge,
	}, nil
}

type shippedCast struct {
	ID      string   `json:"id"`
	Topics  []string `json:"topics"`
	Likes   int64    `json:"likes"`
	Recasts int64    `json:"recasts"`
}

// FetchStats aggregates shipping stats from the project database plus the
// talent and ethos scores. Advisory data only: every upstream failure
// degrades to zero values, never an error.
func (s *identityService) FetchStats(ctx context.Context, fid int64) *core.BuilderStats {
	log := logger.FromContext(ctx).WithField("fid", fid)

	stats := &core.BuilderStats{}

	var casts []shippedCast
	r, err := resthttp.Request(ctx, s.shipyard).
		SetQueryParam("author_fid", fmt.Sprintf("eq.%d", fid)).
		SetQueryParam("category", "eq.shipped").
		SetQueryParam("select", "id,topics,likes,recasts").
		SetResult(&casts).
		Get("/rest/v1/builder_casts")
	if err != nil {
		log.WithError(err).Warningln("shipped casts fetch failed")
	} else if r.IsSuccess() {
		stats.ShippedCount = int64(len(casts))

		topicCounts := map[string]int{}
		for _, cast := range casts {
			stats.TotalEngagement += cast.Likes + cast.Recasts
			for _, topic := range cast.Topics {
				topicCounts[topic]++
			}
		}
		stats.TopTopics = topTopics(topicCounts, 3)
	}

	if score, ok := s.fetchTalent(ctx, fid); ok {
		stats.TalentScore = score
	}

	if score, level, ok := s.fetchEthos(ctx, fid); ok {
		stats.EthosScore = score
		stats.EthosLevel = level
	}

	stats.BuilderScore = builderScore(stats)

	return stats
}

func (s *identityService) fetchTalent(ctx context.Context, fid int64) (float64, bool) {
	if s.talent == nil {
		return 0, false
	}

	var body struct {
		Passports []struct {
			Score float64 `json:"score"`
		} `json:"passports"`
	}

	r, err := resthttp.Request(ctx, s.talent).
		SetQueryParam("filter[farcaster_id]", fmt.Sprintf("%d", fid)).
		SetResult(&body).
		Get("/api/v2/passports")
	if err != nil || !r.IsSuccess() || len(body.Passports) == 0 {
		return 0, false
	}

	return body.Passports[0].Score, true
}

func (s *identityService) fetchEthos(ctx context.Context, fid int64) (int64, string, bool) {
	var user struct {
		Score int64  `json:"score"`
		Level string `json:"level"`
	}

	r, err := resthttp.Request(ctx, s.ethos).
		SetResult(&user).
		Get(fmt.Sprintf("/api/v2/user/by/farcaster/%d", fid))
	if err != nil || !r.IsSuccess() {
		return 0, "", false
	}

	return user.Score, user.Level, true
}

func topTopics(counts map[string]int, n int) []string {
	topics := make([]string, 0, len(counts))
	for topic := range counts {
		topics = append(topics, topic)
	}
	sort.Slice(topics, func(i, j int) bool {
		if counts[topics[i]] != counts[topics[j]] {
			return counts[topics[i]] > counts[topics[j]]
		}
		return topics[i] < topics[j]
	})

	if len(topics) > n {
		topics = topics[:n]
	}
	return topics
}

// builderScore composite 0-100 score from shipping activity and
// credibility signals
func builderScore(stats *core.BuilderStats) int64 {
	ethosNormalized := float64(stats.EthosScore) / ethosMaxScore * 100

	score := float64(stats.ShippedCount)*10 +
		float64(stats.TotalEngagement)*0.5 +
		float64(len(stats.TopTopics))*5 +
		stats.TalentScore*0.2 +
		ethosNormalized*0.1

	if score > 100 {
		score = 100
	}
	return int64(score + 0.5)
}
