package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"nft_grinder/internal/app/port"
	"nft_grinder/internal/domain/entity"
	"nft_grinder/internal/pkg/metrics"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const DefaultMaxConcurrentPairs = 3

// NFTServiceConfig holds the orchestrator settings.
type NFTServiceConfig struct {
	APIKey             string
	APIKeyEnv          string
	MaxConcurrentPairs int
	RunDeadline        time.Duration // 0 means no deadline beyond the caller's context
}

// nftServiceImpl implements port.NFTService
type nftServiceImpl struct {
	registry   port.ChainRegistry
	fetcher    port.WalletFetcher
	normalizer *NFTNormalizer
	imageCache port.ImageURLCache
	logger     port.Logger
	cfg        NFTServiceConfig
}

// NewNFTService creates the multi-wallet, multi-chain orchestrator. imageCache may be nil.
func NewNFTService(
	registry port.ChainRegistry,
	fetcher port.WalletFetcher,
	normalizer *NFTNormalizer,
	imageCache port.ImageURLCache,
	l port.Logger,
	cfg NFTServiceConfig,
) port.NFTService {
	if cfg.MaxConcurrentPairs <= 0 {
		cfg.MaxConcurrentPairs = DefaultMaxConcurrentPairs
	}
	if cfg.APIKeyEnv == "" {
		cfg.APIKeyEnv = "ALCHEMY_API_KEY"
	}
	if normalizer == nil {
		normalizer = NewNFTNormalizer("")
	}
	return &nftServiceImpl{
		registry:   registry,
		fetcher:    fetcher,
		normalizer: normalizer,
		imageCache: imageCache,
		logger:     l,
		cfg:        cfg,
	}
}

type walletChainPair struct {
	wallet  string
	chainID string
}

type pairResult struct {
	index int
	nfts  []entity.NFT
	err   *entity.FetchError
}

// FetchAll fetches and normalizes the NFTs of every (wallet, chain) pair.
// Pair failures never abort sibling pairs; they are collected and reported in the result.
// Data and errors are ordered wallet-major, chain-minor, as given.
func (s *nftServiceImpl) FetchAll(ctx context.Context, walletAddresses, chainIDs []string) entity.FetchResult {
	if s.cfg.APIKey == "" {
		s.logger.Error("Alchemy API key is not set")
		return entity.FetchResult{
			Success:       false,
			Data:          []entity.NFT{},
			Error:         fmt.Sprintf("%s. Please add the %s environment variable.", entity.ErrMissingAPIKey, s.cfg.APIKeyEnv),
			MissingAPIKey: true,
		}
	}
	if len(walletAddresses) == 0 {
		return entity.FetchResult{Success: false, Data: []entity.NFT{}, Error: "No wallet addresses provided"}
	}
	if len(chainIDs) == 0 {
		return entity.FetchResult{Success: false, Data: []entity.NFT{}, Error: "No blockchains selected"}
	}

	runID := uuid.NewString()
	start := time.Now()

	if s.cfg.RunDeadline > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.RunDeadline)
		defer cancel()
	}

	pairs := make([]walletChainPair, 0, len(walletAddresses)*len(chainIDs))
	for _, w := range walletAddresses {
		for _, c := range chainIDs {
			pairs = append(pairs, walletChainPair{wallet: w, chainID: c})
		}
	}

	s.logger.Info("Starting NFT fetch run",
		"runId", runID,
		"wallets", len(walletAddresses),
		"chains", len(chainIDs),
		"pairs", len(pairs),
		"maxConcurrentPairs", s.cfg.MaxConcurrentPairs)

	results := make(chan pairResult, len(pairs))
	go func() {
		var g errgroup.Group
		g.SetLimit(s.cfg.MaxConcurrentPairs)
		for i, p := range pairs {
			g.Go(func() error {
				results <- s.processPair(ctx, runID, i, p)
				return nil
			})
		}
		_ = g.Wait()
		close(results)
	}()

	// Единственный сборщик результатов: порядок восстанавливается по индексу пары
	ordered := make([]pairResult, len(pairs))
	for r := range results {
		ordered[r.index] = r
	}

	allNFTs := make([]entity.NFT, 0)
	var errs []string
	for _, r := range ordered {
		if r.err != nil {
			errs = append(errs, r.err.String())
			continue
		}
		allNFTs = append(allNFTs, r.nfts...)
	}

	result := classify(allNFTs, errs)
	metrics.RunDuration.WithLabelValues(runOutcome(result, errs)).Observe(time.Since(start).Seconds())
	s.logger.Info("NFT fetch run finished",
		"runId", runID,
		"nfts", len(result.Data),
		"failedPairs", len(errs),
		"success", result.Success,
		"duration", time.Since(start).String())
	return result
}

func (s *nftServiceImpl) processPair(ctx context.Context, runID string, index int, p walletChainPair) pairResult {
	fail := func(err error) pairResult {
		metrics.PairOutcomes.WithLabelValues(p.chainID, "failed").Inc()
		fe := entity.NewFetchError(p.wallet, p.chainID, err)
		s.logger.Error("Error fetching NFTs for wallet",
			"runId", runID,
			"wallet", p.wallet,
			"chain", p.chainID,
			"error", err)
		return pairResult{index: index, err: &fe}
	}

	chain, ok := s.registry.GetChainByID(p.chainID)
	if !ok {
		return fail(fmt.Errorf("%w: %s", entity.ErrUnsupportedChain, p.chainID))
	}
	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	records, err := s.fetcher.FetchOwnedTokens(ctx, p.wallet, s.cfg.APIKey, chain)
	if err != nil {
		return fail(err)
	}

	nfts := make([]entity.NFT, 0, len(records))
	for _, rec := range records {
		nft := s.normalizer.Normalize(rec, chain, p.wallet)
		if s.imageCache != nil {
			s.imageCache.Set(nft.ID, nft.Image)
		}
		nfts = append(nfts, nft)
	}

	metrics.PairOutcomes.WithLabelValues(p.chainID, "ok").Inc()
	s.logger.Debug("Pair processed", "runId", runID, "wallet", p.wallet, "chain", p.chainID, "nfts", len(nfts))
	return pairResult{index: index, nfts: nfts}
}

// classify turns the merged data and pair errors into the final result.
// Zero NFTs with any error is a failure, even when some pairs succeeded empty.
func classify(nfts []entity.NFT, errs []string) entity.FetchResult {
	switch {
	case len(errs) == 0:
		return entity.FetchResult{Success: true, Data: nfts}
	case len(nfts) > 0:
		return entity.FetchResult{
			Success: true,
			Data:    nfts,
			Error:   "Some requests had errors: " + strings.Join(errs, ". "),
		}
	default:
		return entity.FetchResult{Success: false, Data: []entity.NFT{}, Error: strings.Join(errs, ". ")}
	}
}

func runOutcome(r entity.FetchResult, errs []string) string {
	switch {
	case !r.Success:
		return "failure"
	case len(errs) > 0:
		return "partial"
	default:
		return "success"
	}
}
