package cmd

import (
	"context"

	"builderid/core"
	"builderid/service/claim"
	"builderid/service/identity"
	"builderid/service/message"
	"builderid/service/mint"
	"builderid/service/ownership"
	"builderid/service/wallet"

	"github.com/sirupsen/logrus"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideIdentityService() core.IdentityService {
	return identity.New(cfg.Neynar, cfg.Shipyard, cfg.Talent)
}

func provideMintService() core.IMintService {
	s, err := mint.New(cfg.Chain)
	if err != nil {
		panic(err)
	}

	return s
}

// provideWalletProvider returns nil when no rpc endpoint is configured;
// pre-flight checks then stay with the caller's wallet.
func provideWalletProvider(ctx context.Context) core.WalletProvider {
	if cfg.Chain.RPCEndpoint == "" {
		return nil
	}

	provider, err := wallet.NewRPCProvider(ctx, cfg.Chain.RPCEndpoint)
	if err != nil {
		logrus.WithError(err).Panicln("dial chain rpc")
	}

	return provider
}

func provideClaimService(builders core.BuilderStore, provider core.WalletProvider) core.ClaimService {
	return claim.New(
		builders,
		provideIdentityService(),
		ownership.New(),
		message.New(),
		provideMintService(),
		provider,
	)
}
