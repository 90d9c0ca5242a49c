package service

import (
	"context"
	"fmt"
	"time"

	"nft_grinder/internal/app/port"
	"nft_grinder/internal/client"
	"nft_grinder/internal/domain/entity"
	alchemy "nft_grinder/internal/entity"
	"nft_grinder/internal/pkg/metrics"
)

const (
	DefaultPageSize  = 100
	DefaultPageDelay = 500 * time.Millisecond
)

// walletFetcherImpl implements port.WalletFetcher on top of the Alchemy client.
type walletFetcherImpl struct {
	client    client.AlchemyClient
	limiter   *RateLimiterRegistry
	logger    port.Logger
	pageSize  int
	pageDelay time.Duration
}

// NewWalletFetcher creates a new wallet fetcher. limiter may be nil.
func NewWalletFetcher(c client.AlchemyClient, limiter *RateLimiterRegistry, l port.Logger, pageSize int, pageDelay time.Duration) port.WalletFetcher {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	if pageDelay < 0 {
		pageDelay = 0
	}
	return &walletFetcherImpl{
		client:    c,
		limiter:   limiter,
		logger:    l,
		pageSize:  pageSize,
		pageDelay: pageDelay,
	}
}

// FetchOwnedTokens pages through getNFTsForOwner until the provider stops returning a pageKey.
// Any failed page aborts the whole fetch; records of earlier pages are discarded.
func (f *walletFetcherImpl) FetchOwnedTokens(ctx context.Context, walletAddress, apiKey string, chain entity.ChainDescriptor) ([]alchemy.OwnedNFT, error) {
	if !entity.IsValidWalletAddress(walletAddress) {
		return nil, fmt.Errorf("%w: %s", entity.ErrInvalidAddress, walletAddress)
	}

	all := make([]alchemy.OwnedNFT, 0)
	pageKey := ""
	pageNum := 0

	for {
		if err := f.limiter.Wait(ctx, chain.ID); err != nil {
			return nil, err
		}

		page, err := f.client.GetNFTsForOwner(ctx, chain, apiKey, walletAddress, pageKey, f.pageSize)
		if err != nil {
			return nil, err
		}
		pageNum++
		metrics.PagesFetched.WithLabelValues(chain.ID).Inc()

		if !page.HasOwnedNfts {
			metrics.SchemaStops.WithLabelValues(chain.ID).Inc()
			f.logger.Warn("Response has no ownedNfts list, stopping pagination",
				"wallet", walletAddress,
				"chain", chain.ID,
				"page", pageNum,
				"error", entity.ErrUnexpectedSchema)
			break
		}

		all = append(all, page.OwnedNfts...)
		f.logger.Debug("Fetched NFT page", "wallet", walletAddress, "chain", chain.ID, "page", pageNum, "count", len(page.OwnedNfts), "total", len(all))

		if page.PageKey == "" {
			break
		}
		pageKey = page.PageKey

		if err := sleepContext(ctx, f.pageDelay); err != nil {
			return nil, err
		}
	}

	f.logger.Info("Fetched NFTs for wallet", "wallet", walletAddress, "chain", chain.ID, "pages", pageNum, "count", len(all))
	return all, nil
}

// sleepContext waits for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
