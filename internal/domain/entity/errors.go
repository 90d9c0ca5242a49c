package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAddress is returned when a wallet address is not 0x followed by 40 hex digits.
	ErrInvalidAddress = errors.New("Invalid Ethereum address")
	// ErrRequestTimeout is returned when a single provider request exceeds its timeout.
	ErrRequestTimeout = errors.New("Request timed out")
	// ErrMissingAPIKey is returned when no provider API key is configured.
	ErrMissingAPIKey = errors.New("Alchemy API key is not configured")
	// ErrUnsupportedChain is returned for chain ids absent from the registry.
	ErrUnsupportedChain = errors.New("Unsupported blockchain")
	// ErrInvalidTokenID is returned for an empty token id.
	ErrInvalidTokenID = errors.New("tokenId cannot be empty")
	// ErrUnexpectedSchema marks a provider page without an ownedNfts list. It stops
	// pagination but is never surfaced as a pair failure.
	ErrUnexpectedSchema = errors.New("unexpected provider response schema")
)

// APIError is a non-2xx response from the NFT provider.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API request failed: %d - %s", e.StatusCode, e.Body)
}
