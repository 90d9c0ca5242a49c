package walletloader

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"nft_grinder/internal/domain/entity"
)

const DefaultWalletFilePath = "data/wallets.txt"

// WalletFileLoader loads wallet addresses from a text file, one address per line.
type WalletFileLoader struct {
	filePath   string
	loggerInfo func(msg string, args ...any)
}

// NewWalletFileLoader creates a new WalletFileLoader. An empty path uses DefaultWalletFilePath.
func NewWalletFileLoader(filePath string, loggerInfo func(msg string, args ...any)) *WalletFileLoader {
	if filePath == "" {
		filePath = DefaultWalletFilePath
	}
	return &WalletFileLoader{
		filePath:   filePath,
		loggerInfo: loggerInfo,
	}
}

// GetWallets reads wallet addresses from the configured file path.
// Blank lines and lines starting with # are ignored; invalid addresses are skipped
// and duplicates (case-insensitive) keep their first occurrence.
func (l *WalletFileLoader) GetWallets() ([]string, error) {
	file, err := os.Open(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wallet file %s: %w", l.filePath, err)
	}
	defer file.Close()

	var wallets []string
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !entity.IsValidWalletAddress(line) {
			l.logInfo("Skipping invalid wallet address format", "file", l.filePath, "line_number", lineNum, "address", line)
			continue
		}
		key := strings.ToLower(line)
		if _, dup := seen[key]; dup {
			l.logInfo("Skipping duplicate wallet address", "file", l.filePath, "line_number", lineNum, "address", line)
			continue
		}
		seen[key] = struct{}{}
		wallets = append(wallets, line)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning wallet file %s: %w", l.filePath, err)
	}

	l.logInfo("Wallets loaded successfully from file", "count", len(wallets), "path", l.filePath)
	return wallets, nil
}

func (l *WalletFileLoader) logInfo(msg string, args ...any) {
	if l.loggerInfo != nil {
		l.loggerInfo(msg, args...)
	}
}
