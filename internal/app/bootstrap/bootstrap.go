// Package bootstrap wires the NFT pipeline from configuration.
package bootstrap

import (
	"time"

	"nft_grinder/internal/app/port"
	"nft_grinder/internal/app/service"
	"nft_grinder/internal/client"
	"nft_grinder/internal/config"
	"nft_grinder/internal/domain/entity"
	"nft_grinder/internal/infrastructure/imagecache"
	networkdefinition "nft_grinder/internal/infrastructure/network/definition"

	"go.uber.org/zap"
)

// App holds the wired components shared by the server and the CLI.
type App struct {
	Registry        *networkdefinition.ChainRegistry
	ImageCache      *imagecache.Cache
	NFTService      port.NFTService
	MetadataService port.MetadataService
}

// Build creates every component over the predefined chains.
// zl is used by the HTTP client, appLogger by services.
func Build(cfg *config.Config, zl *zap.Logger, appLogger port.Logger) *App {
	return BuildWithChains(cfg, zl, appLogger, nil)
}

// BuildWithChains is Build with a custom chain table; nil means the predefined chains.
func BuildWithChains(cfg *config.Config, zl *zap.Logger, appLogger port.Logger, chains []entity.ChainDescriptor) *App {
	registry := networkdefinition.NewChainRegistry(appLogger)
	if chains != nil {
		registry = networkdefinition.NewChainRegistryWith(appLogger, chains)
	}

	alchemyClient := client.NewAlchemyClient(
		time.Duration(cfg.Alchemy.RequestTimeoutMillis)*time.Millisecond,
		zl,
	)
	limiter := service.NewRateLimiterRegistry(
		cfg.Fetch.RateLimit.Scope,
		cfg.Fetch.RateLimit.RequestsPerSecond,
		cfg.Fetch.RateLimit.Burst,
	)
	normalizer := service.NewNFTNormalizer(cfg.Normalizer.PlaceholderBaseURL)
	imageCache := imagecache.New(
		cfg.Cache.ImageCacheSizeMB,
		time.Duration(cfg.Cache.ImageTTLSeconds)*time.Second,
		appLogger,
	)

	fetcher := service.NewWalletFetcher(
		alchemyClient,
		limiter,
		appLogger,
		cfg.Alchemy.PageSize,
		time.Duration(cfg.Alchemy.PageDelayMillis)*time.Millisecond,
	)

	nftService := service.NewNFTService(registry, fetcher, normalizer, imageCache, appLogger, service.NFTServiceConfig{
		APIKey:             cfg.Alchemy.APIKey,
		APIKeyEnv:          cfg.Alchemy.APIKeyEnv,
		MaxConcurrentPairs: cfg.Fetch.MaxConcurrentPairs,
		RunDeadline:        time.Duration(cfg.Fetch.RunDeadlineSeconds) * time.Second,
	})

	metadataService := service.NewMetadataService(
		registry,
		alchemyClient,
		normalizer,
		limiter,
		imageCache,
		cfg.Alchemy.APIKey,
		time.Duration(cfg.Cache.MetadataTTLMinutes)*time.Minute,
		time.Duration(cfg.Cache.CleanupIntervalMinutes)*time.Minute,
		appLogger,
	)

	return &App{
		Registry:        registry,
		ImageCache:      imageCache,
		NFTService:      nftService,
		MetadataService: metadataService,
	}
}
