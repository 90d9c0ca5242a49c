package networkdefinition

import (
	"fmt"

	"nft_grinder/internal/app/port"
	"nft_grinder/internal/domain/entity"
)

// ChainRegistry provides the static table of chains supported by the NFT provider.
type ChainRegistry struct {
	logger port.Logger
	byID   map[string]entity.ChainDescriptor
	order  []entity.ChainDescriptor
}

// Predefined chain definitions
var ( //nolint:gochecknoglobals // Global for definitions
	Ethereum = entity.ChainDescriptor{
		ID:      "eth-mainnet",
		Name:    "Ethereum",
		BaseURL: "https://eth-mainnet.g.alchemy.com/nft/v3",
	}
	Arbitrum = entity.ChainDescriptor{
		ID:      "arb-mainnet",
		Name:    "Arbitrum",
		BaseURL: "https://arb-mainnet.g.alchemy.com/nft/v3",
	}
	Base = entity.ChainDescriptor{
		ID:      "base-mainnet",
		Name:    "Base",
		BaseURL: "https://base-mainnet.g.alchemy.com/nft/v3",
	}
	Abstract = entity.ChainDescriptor{
		ID:      "abstract-mainnet",
		Name:    "Abstract",
		BaseURL: "https://abstract-mainnet.g.alchemy.com/nft/v3",
	}
	Apechain = entity.ChainDescriptor{
		ID:      "apechain-mainnet",
		Name:    "Apechain",
		BaseURL: "https://apechain-mainnet.g.alchemy.com/nft/v3",
	}
)

// supportedChains keeps registry order stable for listings.
var supportedChains = []entity.ChainDescriptor{Ethereum, Arbitrum, Base, Abstract, Apechain}

// NewChainRegistry creates a registry over the predefined chains.
func NewChainRegistry(log port.Logger) *ChainRegistry {
	return newChainRegistry(log, supportedChains)
}

// NewChainRegistryWith builds a registry over custom chains, e.g. to point the client at a test server.
func NewChainRegistryWith(log port.Logger, chains []entity.ChainDescriptor) *ChainRegistry {
	return newChainRegistry(log, chains)
}

func newChainRegistry(log port.Logger, chains []entity.ChainDescriptor) *ChainRegistry {
	r := &ChainRegistry{
		logger: log,
		byID:   make(map[string]entity.ChainDescriptor, len(chains)),
		order:  make([]entity.ChainDescriptor, 0, len(chains)),
	}
	for _, c := range chains {
		if _, dup := r.byID[c.ID]; dup {
			if r.logger != nil {
				r.logger.Warn(fmt.Sprintf("Duplicate chain id %s in registry. Skipping.", c.ID))
			}
			continue
		}
		r.byID[c.ID] = c
		r.order = append(r.order, c)
	}
	if r.logger != nil {
		r.logger.Debug(fmt.Sprintf("ChainRegistry initialized with %d chains", len(r.order)))
	}
	return r
}

// GetAllChains returns a copy of the supported chains.
func (r *ChainRegistry) GetAllChains() []entity.ChainDescriptor {
	if r == nil {
		return []entity.ChainDescriptor{}
	}
	out := make([]entity.ChainDescriptor, len(r.order))
	copy(out, r.order)
	return out
}

// GetChainByID looks a chain up by its provider id. Lookup is case-sensitive.
func (r *ChainRegistry) GetChainByID(id string) (entity.ChainDescriptor, bool) {
	if r == nil {
		return entity.ChainDescriptor{}, false
	}
	c, ok := r.byID[id]
	return c, ok
}

var _ port.ChainRegistry = (*ChainRegistry)(nil)
