package entity

// FetchResult is the outcome of a multi-wallet, multi-chain fetch.
type FetchResult struct {
	Success       bool   `json:"success"`
	Data          []NFT  `json:"data"`
	Error         string `json:"error,omitempty"`
	MissingAPIKey bool   `json:"missingApiKey,omitempty"`
}
