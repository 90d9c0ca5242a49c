package restapi

import (
	"errors"
	"net/http"

	"nft_grinder/internal/app/port"
	"nft_grinder/internal/domain/entity"
	"nft_grinder/internal/pkg/utils"

	"github.com/gin-gonic/gin"
)

// FetchNFTsRequest is the body of POST /api/v1/nfts.
type FetchNFTsRequest struct {
	Wallets []string `json:"wallets"`
	Chains  []string `json:"chains"`
}

// TokenResponse wraps a single token lookup.
type TokenResponse struct {
	Success bool        `json:"success"`
	Data    *entity.NFT `json:"data"`
	Error   string      `json:"error,omitempty"`
}

// TokenImageResponse is the body of the token image lookup.
type TokenImageResponse struct {
	Success bool   `json:"success"`
	Image   string `json:"image,omitempty"`
	Cached  bool   `json:"cached"`
	Error   string `json:"error,omitempty"`
}

// NFTHandler обрабатывает HTTP запросы, связанные с NFT.
type NFTHandler struct {
	nftService      port.NFTService
	metadataService port.MetadataService
	registry        port.ChainRegistry
	defaultChains   []string
	logger          port.Logger
}

// NewNFTHandler создает новый экземпляр NFTHandler.
func NewNFTHandler(ns port.NFTService, ms port.MetadataService, registry port.ChainRegistry, defaultChains []string, l port.Logger) *NFTHandler {
	return &NFTHandler{
		nftService:      ns,
		metadataService: ms,
		registry:        registry,
		defaultChains:   defaultChains,
		logger:          l,
	}
}

// ListChainsHandler returns the supported chains.
func (h *NFTHandler) ListChainsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.registry.GetAllChains()})
}

// GetNFTsHandler handles GET /nfts?wallet=..&chain=..
// Both parameters may be repeated or comma-separated.
func (h *NFTHandler) GetNFTsHandler(c *gin.Context) {
	wallets := utils.SplitList(append(c.QueryArray("wallet"), c.QueryArray("wallets")...)...)
	chains := utils.SplitList(append(c.QueryArray("chain"), c.QueryArray("chains")...)...)
	h.fetch(c, wallets, chains)
}

// PostNFTsHandler handles POST /nfts with a FetchNFTsRequest body.
func (h *NFTHandler) PostNFTsHandler(c *gin.Context) {
	var req FetchNFTsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, entity.FetchResult{
			Success: false,
			Data:    []entity.NFT{},
			Error:   "invalid request body: " + err.Error(),
		})
		return
	}
	h.fetch(c, utils.SplitList(req.Wallets...), utils.SplitList(req.Chains...))
}

func (h *NFTHandler) fetch(c *gin.Context, wallets, chains []string) {
	if len(chains) == 0 {
		chains = h.defaultChains
	}

	result := h.nftService.FetchAll(c.Request.Context(), wallets, chains)
	c.JSON(fetchStatus(result, len(wallets) == 0 || len(chains) == 0), result)
}

// fetchStatus maps a FetchResult to an HTTP status. Partial failures stay 200.
func fetchStatus(result entity.FetchResult, emptyInput bool) int {
	switch {
	case result.MissingAPIKey:
		return http.StatusServiceUnavailable
	case result.Success:
		return http.StatusOK
	case emptyInput:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// GetTokenHandler handles GET /tokens/:chain/:contract/:tokenId.
func (h *NFTHandler) GetTokenHandler(c *gin.Context) {
	nft, err := h.metadataService.GetNFTMetadata(c.Request.Context(), c.Param("chain"), c.Param("contract"), c.Param("tokenId"))
	if err != nil {
		h.logger.Warn("Token lookup failed", "chain", c.Param("chain"), "contract", c.Param("contract"), "tokenId", c.Param("tokenId"), "error", err)
		c.JSON(errorStatus(err), TokenResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Success: true, Data: &nft})
}

// GetTokenImageHandler handles GET /tokens/:chain/:contract/:tokenId/image.
func (h *NFTHandler) GetTokenImageHandler(c *gin.Context) {
	img, cached, err := h.metadataService.ResolveImage(c.Request.Context(), c.Param("chain"), c.Param("contract"), c.Param("tokenId"))
	if err != nil {
		c.JSON(errorStatus(err), TokenImageResponse{Success: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, TokenImageResponse{Success: true, Image: img, Cached: cached})
}

func errorStatus(err error) int {
	var apiErr *entity.APIError
	switch {
	case errors.Is(err, entity.ErrMissingAPIKey):
		return http.StatusServiceUnavailable
	case errors.Is(err, entity.ErrUnsupportedChain), errors.Is(err, entity.ErrInvalidAddress), errors.Is(err, entity.ErrInvalidTokenID):
		return http.StatusBadRequest
	case errors.Is(err, entity.ErrRequestTimeout):
		return http.StatusGatewayTimeout
	case errors.As(err, &apiErr):
		if apiErr.StatusCode == http.StatusNotFound {
			return http.StatusNotFound
		}
		return http.StatusBadGateway
	default:
		return http.StatusBadGateway
	}
}
