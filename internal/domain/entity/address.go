package entity

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsValidWalletAddress reports whether address is "0x" followed by exactly 40 hex digits.
// Hex case is not checked, so non-checksummed addresses are accepted.
func IsValidWalletAddress(address string) bool {
	return strings.HasPrefix(address, "0x") && common.IsHexAddress(address)
}
