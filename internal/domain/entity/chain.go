package entity

// ChainDescriptor describes a blockchain supported by the NFT provider.
// Instances live in a static table and are never mutated.
type ChainDescriptor struct {
	ID      string `json:"id" yaml:"id"`     // Идентификатор сети у провайдера, например "eth-mainnet"
	Name    string `json:"name" yaml:"name"` // Человекочитаемое имя, например "Ethereum"
	BaseURL string `json:"baseUrl" yaml:"baseUrl"`
}
