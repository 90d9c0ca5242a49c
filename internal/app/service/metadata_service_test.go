package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"nft_grinder/internal/domain/entity"
	alchemy "nft_grinder/internal/entity"
	networkdefinition "nft_grinder/internal/infrastructure/network/definition"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contractAddr = "0x00000000000000000000000000000000000c0fee"

func TestMetadataService(t *testing.T) {
	ctx := context.Background()
	registry := networkdefinition.NewChainRegistry(nil)
	meta := &alchemy.OwnedNFT{
		TokenID:  "42",
		Name:     "Hat",
		Contract: alchemy.Contract{Address: contractAddr, Name: "Hats"},
		Raw:      alchemy.Raw{Metadata: alchemy.Metadata{Image: "ar://hat"}},
	}

	t.Run("fetches normalizes and caches", func(t *testing.T) {
		fc := &fakeAlchemyClient{metadata: meta}
		cache := &mapImageCache{}
		svc := NewMetadataService(registry, fc, nil, nil, cache, "KEY", time.Minute, time.Minute, nopLogger{})

		nft, err := svc.GetNFTMetadata(ctx, "eth-mainnet", contractAddr, "42")
		require.NoError(t, err)
		assert.Equal(t, "Hat", nft.Name)
		assert.Equal(t, "Hats", nft.Collection)
		assert.Equal(t, "https://arweave.net/hat", nft.Image)
		assert.Empty(t, nft.Owner)
		assert.Equal(t, "eth-mainnet-"+contractAddr+"-42", nft.ID)

		_, err = svc.GetNFTMetadata(ctx, "eth-mainnet", contractAddr, "42")
		require.NoError(t, err)
		assert.Equal(t, 1, fc.metaHits, "second lookup must be served from cache")

		img, ok := cache.Get(nft.ID)
		assert.True(t, ok)
		assert.Equal(t, nft.Image, img)
	})

	t.Run("resolve image prefers the image cache", func(t *testing.T) {
		fc := &fakeAlchemyClient{metadata: meta}
		cache := &mapImageCache{}
		cache.Set("eth-mainnet-"+contractAddr+"-42", "https://cached/hat.png")
		svc := NewMetadataService(registry, fc, nil, nil, cache, "KEY", time.Minute, time.Minute, nopLogger{})

		img, hit, err := svc.ResolveImage(ctx, "eth-mainnet", contractAddr, "42")
		require.NoError(t, err)
		assert.True(t, hit)
		assert.Equal(t, "https://cached/hat.png", img)
		assert.Zero(t, fc.metaHits)
	})

	t.Run("resolve image falls back to provider", func(t *testing.T) {
		fc := &fakeAlchemyClient{metadata: meta}
		svc := NewMetadataService(registry, fc, nil, nil, &mapImageCache{}, "KEY", time.Minute, time.Minute, nopLogger{})

		img, hit, err := svc.ResolveImage(ctx, "eth-mainnet", contractAddr, "42")
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Equal(t, "https://arweave.net/hat", img)
	})

	t.Run("input validation", func(t *testing.T) {
		fc := &fakeAlchemyClient{metadata: meta}

		_, err := NewMetadataService(registry, fc, nil, nil, nil, "", time.Minute, time.Minute, nopLogger{}).
			GetNFTMetadata(ctx, "eth-mainnet", contractAddr, "42")
		assert.ErrorIs(t, err, entity.ErrMissingAPIKey)

		svc := NewMetadataService(registry, fc, nil, nil, nil, "KEY", time.Minute, time.Minute, nopLogger{})
		_, err = svc.GetNFTMetadata(ctx, "solana", contractAddr, "42")
		assert.ErrorIs(t, err, entity.ErrUnsupportedChain)
		_, err = svc.GetNFTMetadata(ctx, "eth-mainnet", "0xnope", "42")
		assert.ErrorIs(t, err, entity.ErrInvalidAddress)
		_, err = svc.GetNFTMetadata(ctx, "eth-mainnet", contractAddr, " ")
		assert.Error(t, err)
		assert.Zero(t, fc.metaHits)
	})

	t.Run("provider errors propagate", func(t *testing.T) {
		fc := &fakeAlchemyClient{metaErr: &entity.APIError{StatusCode: 404, Body: "not found"}}
		svc := NewMetadataService(registry, fc, nil, nil, nil, "KEY", time.Minute, time.Minute, nopLogger{})

		_, err := svc.GetNFTMetadata(ctx, "eth-mainnet", contractAddr, "42")
		var apiErr *entity.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, 404, apiErr.StatusCode)
	})
}
