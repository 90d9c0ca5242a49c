package service

import (
	"fmt"
	"strings"

	"nft_grinder/internal/domain/entity"
	alchemy "nft_grinder/internal/entity"
	"nft_grinder/internal/pkg/imageurl"
)

const (
	DefaultPlaceholderBaseURL = "/placeholder.svg?height=400&width=400&text="

	unknownValue      = "unknown"
	unknownCollection = "Unknown Collection"
	tokenTypeERC1155  = "ERC1155"
)

// NFTNormalizer maps raw provider records to entity.NFT. It never fails:
// every missing or malformed field falls back to a default.
type NFTNormalizer struct {
	placeholderBaseURL string
}

// NewNFTNormalizer creates a normalizer. An empty base uses DefaultPlaceholderBaseURL.
func NewNFTNormalizer(placeholderBaseURL string) *NFTNormalizer {
	if placeholderBaseURL == "" {
		placeholderBaseURL = DefaultPlaceholderBaseURL
	}
	return &NFTNormalizer{placeholderBaseURL: placeholderBaseURL}
}

// Normalize builds the canonical NFT for rec, owned by walletAddress on chain.
func (n *NFTNormalizer) Normalize(rec alchemy.OwnedNFT, chain entity.ChainDescriptor, walletAddress string) entity.NFT {
	tokenID := orDefault(rec.TokenID.String(), unknownValue)
	name := rec.Name.String()
	contractAddress := orDefault(rec.Contract.Address.String(), unknownValue)

	image := n.resolveImage(rec)
	if image == "" {
		title := orDefault(name, "NFT #"+tokenID)
		image = n.placeholderBaseURL + encodeURIComponent(title)
	}

	attributes := []map[string]any(rec.Raw.Metadata.Attributes)
	if attributes == nil {
		attributes = []map[string]any{}
	}

	return entity.NFT{
		ID:                fmt.Sprintf("%s-%s-%s", chain.ID, contractAddress, tokenID),
		Name:              orDefault(name, "#"+tokenID),
		TokenID:           tokenID,
		Collection:        collectionName(rec),
		CollectionAddress: contractAddress,
		Image:             image,
		Owner:             walletAddress,
		Blockchain:        chain.Name,
		Description:       rec.Description.String(),
		Attributes:        attributes,
	}
}

// resolveImage applies the override chain: cached image, metadata image,
// then for video assets the metadata fallback still or the PNG rendition.
func (n *NFTNormalizer) resolveImage(rec alchemy.OwnedNFT) string {
	image := rec.Image.CachedURL.String()
	if image == "" {
		image = rec.Raw.Metadata.Image.String()
	}

	if isVideo(rec.Image.ContentType.String()) {
		fallback := rec.Raw.Metadata.FallbackImage.String()
		png := rec.Image.PngURL.String()
		switch {
		case fallback != "":
			image = fallback
		case png != "":
			image = png
		}
	}

	return imageurl.Normalize(image)
}

func isVideo(contentType string) bool {
	return strings.HasPrefix(contentType, "video/") || contentType == "mp4"
}

func collectionName(rec alchemy.OwnedNFT) string {
	if v := rec.Collection.Name.String(); v != "" {
		return v
	}
	if v := rec.Contract.Name.String(); v != "" {
		return v
	}
	if rec.TokenType.String() == tokenTypeERC1155 && rec.Name.String() != "" {
		return rec.Name.String()
	}
	return unknownCollection
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

// encodeURIComponent escapes s like the browser function of the same name:
// only ASCII letters, digits and -_.!~*'() are left as is.
func encodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || ('0' <= c && c <= '9') || strings.IndexByte("-_.!~*'()", c) >= 0 {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0F])
	}
	return b.String()
}
