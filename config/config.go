package config

import (
	"builderid/core"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("BUILDERID")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	defaultChain(&config.Chain)
	defaultNeynar(&config.Neynar)
	defaultTalent(&config.Talent)

	return nil
}

func defaultChain(chain *core.Chain) {
	if chain.ChainID == 0 {
		// base mainnet
		chain.ChainID = 8453
	}
	if chain.Contract == "" {
		chain.Contract = "0xbe2940989E203FE1cfD75e0bAa1202D58A273956"
	}
	if chain.MintPrice == "" {
		chain.MintPrice = "0.0005"
	}
	if chain.GasBuffer == "" {
		chain.GasBuffer = "0.0002"
	}
	if chain.CollectionName == "" {
		chain.CollectionName = "Builder ID"
	}
	if chain.CollectionSymbol == "" {
		chain.CollectionSymbol = "BUILDER"
	}
}

func defaultNeynar(neynar *core.Neynar) {
	if neynar.Endpoint == "" {
		neynar.Endpoint = "https://api.neynar.com"
	}
}

func defaultTalent(talent *core.Talent) {
	if talent.Endpoint == "" {
		talent.Endpoint = "https://api.talentprotocol.com"
	}
}
