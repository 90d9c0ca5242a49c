package entity

// NFT is the canonical, provider-independent view of a single owned token.
// Image is never empty: a placeholder is substituted when no image source exists.
type NFT struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	TokenID           string           `json:"tokenId"`
	Collection        string           `json:"collection"`
	CollectionAddress string           `json:"collectionAddress"`
	Image             string           `json:"image"`
	Owner             string           `json:"owner"`
	Blockchain        string           `json:"blockchain"`
	Description       string           `json:"description"`
	Attributes        []map[string]any `json:"attributes"`
}
