package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config builder id service config
type Config struct {
	DB       db.Config `json:"db"`
	Neynar   Neynar    `json:"neynar"`
	Shipyard Shipyard  `json:"shipyard"`
	Talent   Talent    `json:"talent"`
	Chain    Chain     `json:"chain"`
}

// Neynar identity provider endpoint
type Neynar struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key"`
}

// Shipyard project database REST endpoint for builder stats
type Shipyard struct {
	Endpoint   string `json:"endpoint"`
	ServiceKey string `json:"service_key"`
}

// Talent talent protocol passports endpoint. The score fetch is skipped
// entirely when no api key is configured.
type Talent struct {
	Endpoint string `json:"endpoint"`
	APIKey   string `json:"api_key"`
}

// Chain target chain and mint contract config. The contract address is
// configuration, not a secret.
type Chain struct {
	RPCEndpoint string `json:"rpc_endpoint"`
	ChainID     uint64 `json:"chain_id"`
	Contract    string `json:"contract"`
	// ether amounts as decimal strings
	MintPrice string `json:"mint_price"`
	GasBuffer string `json:"gas_buffer"`

	CollectionName   string `json:"collection_name"`
	CollectionSymbol string `json:"collection_symbol"`
}
