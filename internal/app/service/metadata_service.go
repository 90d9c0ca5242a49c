package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nft_grinder/internal/app/port"
	"nft_grinder/internal/client"
	"nft_grinder/internal/domain/entity"
	"nft_grinder/internal/pkg/metrics"

	"github.com/patrickmn/go-cache"
)

// metadataServiceImpl implements port.MetadataService
type metadataServiceImpl struct {
	registry   port.ChainRegistry
	client     client.AlchemyClient
	normalizer *NFTNormalizer
	limiter    *RateLimiterRegistry
	imageCache port.ImageURLCache
	tokens     *cache.Cache // key "chainID|contract|tokenID" -> entity.NFT
	apiKey     string
	logger     port.Logger
}

// NewMetadataService creates a new single-token lookup service.
// limiter and imageCache may be nil.
func NewMetadataService(
	registry port.ChainRegistry,
	c client.AlchemyClient,
	normalizer *NFTNormalizer,
	limiter *RateLimiterRegistry,
	imageCache port.ImageURLCache,
	apiKey string,
	ttl, cleanupInterval time.Duration,
	l port.Logger,
) port.MetadataService {
	if normalizer == nil {
		normalizer = NewNFTNormalizer("")
	}
	return &metadataServiceImpl{
		registry:   registry,
		client:     c,
		normalizer: normalizer,
		limiter:    limiter,
		imageCache: imageCache,
		tokens:     cache.New(ttl, cleanupInterval),
		apiKey:     apiKey,
		logger:     l,
	}
}

func tokenCacheKey(chainID, contractAddress, tokenID string) string {
	return chainID + "|" + strings.ToLower(contractAddress) + "|" + tokenID
}

// GetNFTMetadata returns the normalized NFT for a single token. The owner field is left empty.
func (s *metadataServiceImpl) GetNFTMetadata(ctx context.Context, chainID, contractAddress, tokenID string) (entity.NFT, error) {
	if s.apiKey == "" {
		return entity.NFT{}, entity.ErrMissingAPIKey
	}
	chain, ok := s.registry.GetChainByID(chainID)
	if !ok {
		return entity.NFT{}, fmt.Errorf("%w: %s", entity.ErrUnsupportedChain, chainID)
	}
	if !entity.IsValidWalletAddress(contractAddress) {
		return entity.NFT{}, fmt.Errorf("%w: %s", entity.ErrInvalidAddress, contractAddress)
	}
	if strings.TrimSpace(tokenID) == "" {
		return entity.NFT{}, entity.ErrInvalidTokenID
	}

	key := tokenCacheKey(chainID, contractAddress, tokenID)
	if cached, found := s.tokens.Get(key); found {
		if nft, ok := cached.(entity.NFT); ok {
			s.logger.Debug("Token metadata served from cache", "chain", chainID, "contract", contractAddress, "tokenId", tokenID)
			return nft, nil
		}
	}

	if err := s.limiter.Wait(ctx, chain.ID); err != nil {
		return entity.NFT{}, err
	}
	rec, err := s.client.GetNFTMetadata(ctx, chain, s.apiKey, contractAddress, tokenID)
	if err != nil {
		s.logger.Warn("Failed to fetch token metadata", "chain", chainID, "contract", contractAddress, "tokenId", tokenID, "error", err)
		return entity.NFT{}, err
	}

	nft := s.normalizer.Normalize(*rec, chain, "")
	s.tokens.Set(key, nft, cache.DefaultExpiration)
	if s.imageCache != nil {
		s.imageCache.Set(nft.ID, nft.Image)
	}
	return nft, nil
}

// ResolveImage returns the image URL for a token, consulting the image cache
// before the provider. The bool reports a cache hit.
func (s *metadataServiceImpl) ResolveImage(ctx context.Context, chainID, contractAddress, tokenID string) (string, bool, error) {
	if s.imageCache != nil {
		id := fmt.Sprintf("%s-%s-%s", chainID, contractAddress, tokenID)
		if img, ok := s.imageCache.Get(id); ok {
			metrics.ImageCacheLookups.WithLabelValues("hit").Inc()
			return img, true, nil
		}
		metrics.ImageCacheLookups.WithLabelValues("miss").Inc()
	}

	nft, err := s.GetNFTMetadata(ctx, chainID, contractAddress, tokenID)
	if err != nil {
		return "", false, err
	}
	return nft.Image, false, nil
}
