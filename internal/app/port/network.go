package port

import "nft_grinder/internal/domain/entity"

// ChainRegistry defines the interface for looking up supported chains.
type ChainRegistry interface {
	// GetAllChains returns every supported chain in registry order.
	GetAllChains() []entity.ChainDescriptor

	// GetChainByID returns the chain with the given provider id.
	// Возвращает описание сети и true, если найдено, иначе false.
	GetChainByID(id string) (entity.ChainDescriptor, bool)
}
