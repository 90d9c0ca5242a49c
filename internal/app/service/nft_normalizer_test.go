package service

import (
	"testing"

	"nft_grinder/internal/domain/entity"
	alchemy "nft_grinder/internal/entity"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var ethChain = entity.ChainDescriptor{ID: "eth-mainnet", Name: "Ethereum", BaseURL: "https://eth-mainnet.g.alchemy.com/nft/v3"}

const ownerWallet = "0x1111111111111111111111111111111111111111"

func decodeRecord(t *testing.T, raw string) alchemy.OwnedNFT {
	t.Helper()
	var rec alchemy.OwnedNFT
	require.NoError(t, jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal([]byte(raw), &rec))
	return rec
}

func TestNFTNormalizer(t *testing.T) {
	n := NewNFTNormalizer("")

	t.Run("full record", func(t *testing.T) {
		rec := decodeRecord(t, `{
			"tokenId": "5",
			"tokenType": "ERC721",
			"name": "Grinder #5",
			"description": "a grinder",
			"contract": {"address": "0xabc", "name": "Grinders"},
			"image": {"cachedUrl": "http://cdn.example/5.png"},
			"raw": {"metadata": {"attributes": [{"trait_type": "Hat", "value": "Red"}]}},
			"collection": {"name": "Grinders Collection"}
		}`)

		got := n.Normalize(rec, ethChain, ownerWallet)
		assert.Equal(t, "eth-mainnet-0xabc-5", got.ID)
		assert.Equal(t, "Grinder #5", got.Name)
		assert.Equal(t, "5", got.TokenID)
		assert.Equal(t, "Grinders Collection", got.Collection)
		assert.Equal(t, "0xabc", got.CollectionAddress)
		assert.Equal(t, "https://cdn.example/5.png", got.Image)
		assert.Equal(t, ownerWallet, got.Owner)
		assert.Equal(t, "Ethereum", got.Blockchain)
		assert.Equal(t, "a grinder", got.Description)
		assert.Len(t, got.Attributes, 1)
	})

	t.Run("empty record gets placeholder and defaults", func(t *testing.T) {
		got := n.Normalize(alchemy.OwnedNFT{}, ethChain, ownerWallet)
		assert.Equal(t, "unknown", got.TokenID)
		assert.Equal(t, "eth-mainnet-unknown-unknown", got.ID)
		assert.Equal(t, "#unknown", got.Name)
		assert.Equal(t, "Unknown Collection", got.Collection)
		assert.Equal(t, "unknown", got.CollectionAddress)
		assert.Equal(t, "/placeholder.svg?height=400&width=400&text=NFT%20%23unknown", got.Image)
		assert.Equal(t, "", got.Description)
		assert.NotNil(t, got.Attributes)
		assert.Empty(t, got.Attributes)
	})

	t.Run("placeholder encodes name", func(t *testing.T) {
		rec := decodeRecord(t, `{"tokenId":"1","name":"Cool Cat! (v2) & co"}`)
		got := n.Normalize(rec, ethChain, ownerWallet)
		assert.Equal(t, "/placeholder.svg?height=400&width=400&text=Cool%20Cat!%20(v2)%20%26%20co", got.Image)
	})

	t.Run("custom placeholder base", func(t *testing.T) {
		got := NewNFTNormalizer("https://img.example/ph?t=").Normalize(decodeRecord(t, `{"tokenId":"9"}`), ethChain, ownerWallet)
		assert.Equal(t, "https://img.example/ph?t=NFT%20%239", got.Image)
	})

	t.Run("metadata image used when no cached url", func(t *testing.T) {
		rec := decodeRecord(t, `{"tokenId":"1","raw":{"metadata":{"image":"ipfs://QmX"}}}`)
		assert.Equal(t, "https://ipfs.io/ipfs/QmX", n.Normalize(rec, ethChain, ownerWallet).Image)
	})

	t.Run("video prefers metadata fallback image", func(t *testing.T) {
		rec := decodeRecord(t, `{
			"tokenId":"1",
			"image":{"cachedUrl":"https://cdn/v.mp4","contentType":"video/mp4","pngUrl":"https://cdn/v.png"},
			"raw":{"metadata":{"fallback_image":"ar://still"}}
		}`)
		assert.Equal(t, "https://arweave.net/still", n.Normalize(rec, ethChain, ownerWallet).Image)
	})

	t.Run("video without fallback uses png rendition", func(t *testing.T) {
		rec := decodeRecord(t, `{"tokenId":"1","image":{"cachedUrl":"https://cdn/v.mp4","contentType":"mp4","pngUrl":"https://cdn/v.png"}}`)
		assert.Equal(t, "https://cdn/v.png", n.Normalize(rec, ethChain, ownerWallet).Image)
	})

	t.Run("video without stills keeps video url", func(t *testing.T) {
		rec := decodeRecord(t, `{"tokenId":"1","image":{"cachedUrl":"https://cdn/v.mp4","contentType":"video/webm"}}`)
		assert.Equal(t, "https://cdn/v.mp4", n.Normalize(rec, ethChain, ownerWallet).Image)
	})

	t.Run("non video ignores fallback image", func(t *testing.T) {
		rec := decodeRecord(t, `{
			"tokenId":"1",
			"image":{"cachedUrl":"https://cdn/a.png","contentType":"image/png"},
			"raw":{"metadata":{"fallback_image":"https://cdn/other.png"}}
		}`)
		assert.Equal(t, "https://cdn/a.png", n.Normalize(rec, ethChain, ownerWallet).Image)
	})

	t.Run("collection falls back to contract name", func(t *testing.T) {
		rec := decodeRecord(t, `{"tokenId":"1","contract":{"name":"Contract Name"}}`)
		assert.Equal(t, "Contract Name", n.Normalize(rec, ethChain, ownerWallet).Collection)
	})

	t.Run("erc1155 collection falls back to item name", func(t *testing.T) {
		rec := decodeRecord(t, `{"tokenId":"1","tokenType":"ERC1155","name":"Edition"}`)
		assert.Equal(t, "Edition", n.Normalize(rec, ethChain, ownerWallet).Collection)

		rec = decodeRecord(t, `{"tokenId":"1","tokenType":"ERC721","name":"Single"}`)
		assert.Equal(t, "Unknown Collection", n.Normalize(rec, ethChain, ownerWallet).Collection)
	})

	t.Run("numeric token id", func(t *testing.T) {
		rec := decodeRecord(t, `{"tokenId": 1234, "contract": {"address": "0xdef"}}`)
		got := n.Normalize(rec, ethChain, ownerWallet)
		assert.Equal(t, "1234", got.TokenID)
		assert.Equal(t, "eth-mainnet-0xdef-1234", got.ID)
	})
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "abc-_.!~*'()", encodeURIComponent("abc-_.!~*'()"))
	assert.Equal(t, "a%20b%2Fc%3F%3D%26", encodeURIComponent("a b/c?=&"))
	assert.Equal(t, "%C3%A9", encodeURIComponent("é"))
}
