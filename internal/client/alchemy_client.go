package client

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"nft_grinder/internal/domain/entity"
	alchemy "nft_grinder/internal/entity"
	"nft_grinder/internal/pkg/metrics"

	jsoniter "github.com/json-iterator/go"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	endpointOwnedNFTs   = "getNFTsForOwner"
	endpointNFTMetadata = "getNFTMetadata"
)

// AlchemyClient defines the interface for interacting with the Alchemy NFT v3 API.
type AlchemyClient interface {
	GetNFTsForOwner(ctx context.Context, chain entity.ChainDescriptor, apiKey, owner, pageKey string, pageSize int) (*alchemy.OwnedNFTsPage, error)
	GetNFTMetadata(ctx context.Context, chain entity.ChainDescriptor, apiKey, contractAddress, tokenID string) (*alchemy.OwnedNFT, error)
}

// alchemyClientImpl is the implementation of AlchemyClient.
type alchemyClientImpl struct {
	client  *fasthttp.Client
	timeout time.Duration
	logger  *zap.Logger
}

// NewAlchemyClient creates a new instance of alchemyClientImpl.
// timeout bounds every single request, independent of the caller's context deadline.
func NewAlchemyClient(timeout time.Duration, logger *zap.Logger) AlchemyClient {
	return &alchemyClientImpl{
		client: &fasthttp.Client{
			Name:                "nft_grinder",
			MaxIdleConnDuration: 90 * time.Second,
		},
		timeout: timeout,
		logger:  logger.Named("AlchemyClient"),
	}
}

// GetNFTsForOwner fetches one page of the tokens owned by owner on chain.
func (c *alchemyClientImpl) GetNFTsForOwner(ctx context.Context, chain entity.ChainDescriptor, apiKey, owner, pageKey string, pageSize int) (*alchemy.OwnedNFTsPage, error) {
	q := url.Values{}
	q.Set("owner", owner)
	q.Set("pageSize", strconv.Itoa(pageSize))
	if pageKey != "" {
		q.Set("pageKey", pageKey)
	}

	body, err := c.get(ctx, chain, apiKey, endpointOwnedNFTs, q)
	if err != nil {
		if errors.Is(err, entity.ErrRequestTimeout) {
			return nil, fmt.Errorf("%w for wallet %s on %s", entity.ErrRequestTimeout, owner, chain.Name)
		}
		return nil, err
	}

	page, err := alchemy.DecodeOwnedNFTsPage(body)
	if err != nil {
		c.logger.Error("Failed to unmarshal getNFTsForOwner response",
			zap.String("chain", chain.ID),
			zap.String("owner", owner),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return nil, err
	}

	c.logger.Debug("Fetched owned NFTs page",
		zap.String("chain", chain.ID),
		zap.String("owner", owner),
		zap.Int("count", len(page.OwnedNfts)),
		zap.Bool("hasNextPage", page.PageKey != ""))
	return page, nil
}

// GetNFTMetadata fetches metadata of a single token.
func (c *alchemyClientImpl) GetNFTMetadata(ctx context.Context, chain entity.ChainDescriptor, apiKey, contractAddress, tokenID string) (*alchemy.OwnedNFT, error) {
	q := url.Values{}
	q.Set("contractAddress", contractAddress)
	q.Set("tokenId", tokenID)

	body, err := c.get(ctx, chain, apiKey, endpointNFTMetadata, q)
	if err != nil {
		if errors.Is(err, entity.ErrRequestTimeout) {
			return nil, fmt.Errorf("%w for token %s/%s on %s", entity.ErrRequestTimeout, contractAddress, tokenID, chain.Name)
		}
		return nil, err
	}

	var nft alchemy.OwnedNFT
	if err := json.Unmarshal(body, &nft); err != nil {
		c.logger.Error("Failed to unmarshal getNFTMetadata response",
			zap.String("chain", chain.ID),
			zap.ByteString("responseBody", body),
			zap.Error(err))
		return nil, fmt.Errorf("failed to decode getNFTMetadata response: %w", err)
	}
	return &nft, nil
}

// get performs a GET against {baseUrl}/{apiKey}/{endpoint}?query and returns the body of a 2xx response.
func (c *alchemyClientImpl) get(ctx context.Context, chain entity.ChainDescriptor, apiKey, endpoint string, query url.Values) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	requestURL := fmt.Sprintf("%s/%s/%s?%s", strings.TrimRight(chain.BaseURL, "/"), url.PathEscape(apiKey), endpoint, query.Encode())

	req := fasthttp.AcquireRequest()
	defer fasthttp.ReleaseRequest(req)
	req.SetRequestURI(requestURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")

	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseResponse(resp)

	// Ближайший из двух дедлайнов: таймаут запроса или дедлайн контекста
	deadline := time.Now().Add(c.timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	start := time.Now()
	err := c.client.DoDeadline(req, resp, deadline)
	metrics.ProviderRequestDuration.WithLabelValues(chain.ID, endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, fasthttp.ErrTimeout) {
			if ctxErr := ctx.Err(); ctxErr != nil {
				metrics.ProviderRequests.WithLabelValues(chain.ID, endpoint, "cancelled").Inc()
				return nil, ctxErr
			}
			metrics.ProviderRequests.WithLabelValues(chain.ID, endpoint, "timeout").Inc()
			c.logger.Warn("Alchemy request timed out",
				zap.String("chain", chain.ID),
				zap.String("endpoint", endpoint),
				zap.Duration("timeout", c.timeout))
			return nil, entity.ErrRequestTimeout
		}
		metrics.ProviderRequests.WithLabelValues(chain.ID, endpoint, "error").Inc()
		c.logger.Error("Failed to execute request to Alchemy",
			zap.String("chain", chain.ID),
			zap.String("endpoint", endpoint),
			zap.Error(err))
		return nil, fmt.Errorf("failed to execute %s request on %s: %w", endpoint, chain.Name, err)
	}

	status := resp.StatusCode()
	metrics.ProviderRequests.WithLabelValues(chain.ID, endpoint, strconv.Itoa(status)).Inc()

	// Body() принадлежит resp, который возвращается в пул: копируем
	body := append([]byte(nil), resp.Body()...)

	if status < 200 || status >= 300 {
		c.logger.Error("Alchemy API request failed",
			zap.String("chain", chain.ID),
			zap.String("endpoint", endpoint),
			zap.Int("statusCode", status),
			zap.ByteString("responseBody", body))
		return nil, &entity.APIError{StatusCode: status, Body: string(body)}
	}
	return body, nil
}
