package service

import (
	"context"
	"sync"

	"nft_grinder/internal/domain/entity"
	alchemy "nft_grinder/internal/entity"
)

// nopLogger discards everything.
type nopLogger struct{}

func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

type pageCall struct {
	chainID string
	owner   string
	pageKey string
	size    int
}

// fakeAlchemyClient serves scripted pages keyed by owner.
type fakeAlchemyClient struct {
	mu       sync.Mutex
	calls    []pageCall
	pages    map[string][]*alchemy.OwnedNFTsPage
	errs     map[string]error
	metadata *alchemy.OwnedNFT
	metaErr  error
	metaHits int
}

func (f *fakeAlchemyClient) GetNFTsForOwner(ctx context.Context, chain entity.ChainDescriptor, apiKey, owner, pageKey string, pageSize int) (*alchemy.OwnedNFTsPage, error) {
	f.mu.Lock()
	n := 0
	for _, c := range f.calls {
		if c.owner == owner && c.chainID == chain.ID {
			n++
		}
	}
	f.calls = append(f.calls, pageCall{chainID: chain.ID, owner: owner, pageKey: pageKey, size: pageSize})
	f.mu.Unlock()

	if err, ok := f.errs[owner]; ok {
		return nil, err
	}
	pages := f.pages[owner]
	if n >= len(pages) {
		return &alchemy.OwnedNFTsPage{HasOwnedNfts: true}, nil
	}
	return pages[n], nil
}

func (f *fakeAlchemyClient) GetNFTMetadata(ctx context.Context, chain entity.ChainDescriptor, apiKey, contractAddress, tokenID string) (*alchemy.OwnedNFT, error) {
	f.mu.Lock()
	f.metaHits++
	f.mu.Unlock()
	if f.metaErr != nil {
		return nil, f.metaErr
	}
	return f.metadata, nil
}

func (f *fakeAlchemyClient) callsFor(owner string) []pageCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []pageCall
	for _, c := range f.calls {
		if c.owner == owner {
			out = append(out, c)
		}
	}
	return out
}

func records(ids ...string) []alchemy.OwnedNFT {
	out := make([]alchemy.OwnedNFT, 0, len(ids))
	for _, id := range ids {
		out = append(out, alchemy.OwnedNFT{
			TokenID:  alchemy.FlexString(id),
			Contract: alchemy.Contract{Address: "0xc0ffee"},
		})
	}
	return out
}

func page(key string, ids ...string) *alchemy.OwnedNFTsPage {
	return &alchemy.OwnedNFTsPage{OwnedNfts: records(ids...), PageKey: key, HasOwnedNfts: true}
}
