package port

import (
	"context"

	"nft_grinder/internal/domain/entity"
	alchemy "nft_grinder/internal/entity"
)

// WalletFetcher pages through every token a wallet owns on one chain.
type WalletFetcher interface {
	FetchOwnedTokens(ctx context.Context, walletAddress, apiKey string, chain entity.ChainDescriptor) ([]alchemy.OwnedNFT, error)
}

// NFTService is the multi-wallet, multi-chain orchestrator.
type NFTService interface {
	FetchAll(ctx context.Context, walletAddresses, chainIDs []string) entity.FetchResult
}

// MetadataService looks up single tokens.
type MetadataService interface {
	GetNFTMetadata(ctx context.Context, chainID, contractAddress, tokenID string) (entity.NFT, error)
	ResolveImage(ctx context.Context, chainID, contractAddress, tokenID string) (string, bool, error)
}

// ImageURLCache is a bounded key to image URL cache owned by its caller.
type ImageURLCache interface {
	Get(key string) (string, bool)
	Set(key, imageURL string)
}
