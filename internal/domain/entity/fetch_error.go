package entity

import (
	"errors"
	"fmt"
)

// FetchError represents a failure of a single (wallet, chain) pair.
type FetchError struct {
	WalletAddress string `json:"walletAddress"`
	ChainID       string `json:"chainId"`
	Message       string `json:"message"`
	Err           error  `json:"-"`
}

// NewFetchError records err for the given pair.
func NewFetchError(walletAddress, chainID string, err error) FetchError {
	return FetchError{WalletAddress: walletAddress, ChainID: chainID, Message: err.Error(), Err: err}
}

// String renders the error in the form surfaced to callers.
// Unsupported chains are reported without the wallet prefix.
func (e FetchError) String() string {
	if errors.Is(e.Err, ErrUnsupportedChain) {
		return e.Message
	}
	return fmt.Sprintf("Failed to fetch NFTs for wallet %s on %s: %s", e.WalletAddress, e.ChainID, e.Message)
}
