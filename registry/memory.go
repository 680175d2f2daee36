package registry

import (
	"context"
	"crypto"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lineupzk/lineup-go/tree/mt"
	"github.com/lineupzk/lineup-go/types"
)

// InMemory is a map backed implementation of PlayerRegistry and
// TeamRegistry. All operations run under a single RW mutex so every read
// observes a consistent snapshot, no authorization check can see a
// mid-transfer state.
type InMemory struct {
	mu        sync.RWMutex
	players   map[types.TokenID]*PlayerToken
	mintOrder []types.TokenID
	approvals map[common.Address]map[common.Address]bool
	teams     map[types.TokenID]*TeamToken
	teamSeq   types.TokenID
	uriFunc   func(types.ContentID) string
}

var (
	_ PlayerRegistry = (*InMemory)(nil)
	_ TeamRegistry   = (*InMemory)(nil)
)

// NewInMemory creates an empty registry. The uriFunc renders a content
// hash into the token metadata URI, nil for no URI resolution.
func NewInMemory(uriFunc func(types.ContentID) string) *InMemory {
	return &InMemory{
		players:   map[types.TokenID]*PlayerToken{},
		approvals: map[common.Address]map[common.Address]bool{},
		teams:     map[types.TokenID]*TeamToken{},
		uriFunc:   uriFunc,
	}
}

func (r *InMemory) MintPlayer(_ context.Context, owner common.Address, id types.TokenID, contentHash types.ContentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.players[id]; ok {
		return fmt.Errorf("minting player %s: %w", id, ErrAlreadyMinted)
	}
	r.players[id] = &PlayerToken{ID: id, Owner: owner, ContentHash: contentHash}
	r.mintOrder = append(r.mintOrder, id)
	return nil
}

func (r *InMemory) OwnerOf(_ context.Context, id types.TokenID) (common.Address, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[id]
	if !ok {
		return common.Address{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return p.Owner, nil
}

func (r *InMemory) IsApprovedForAll(_ context.Context, owner, operator common.Address) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.approvals[owner][operator], nil
}

func (r *InMemory) SetApprovalForAll(_ context.Context, owner, operator common.Address, approved bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m, ok := r.approvals[owner]
	if !ok {
		m = map[common.Address]bool{}
		r.approvals[owner] = m
	}
	if approved {
		m[operator] = true
	} else {
		delete(m, operator)
	}
	return nil
}

func (r *InMemory) Transfer(_ context.Context, from, to common.Address, id types.TokenID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.players[id]
	if !ok {
		return fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	if p.Owner != from {
		return fmt.Errorf("transferring player %s: %w", id, ErrNotOwner)
	}
	p.Owner = to
	return nil
}

func (r *InMemory) ContentHash(_ context.Context, id types.TokenID) (types.ContentID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.players[id]
	if !ok {
		return types.ContentID{}, fmt.Errorf("player %s: %w", id, ErrNotFound)
	}
	return p.ContentHash, nil
}

func (r *InMemory) URI(ctx context.Context, id types.TokenID) (string, error) {
	contentHash, err := r.ContentHash(ctx, id)
	if err != nil {
		return "", err
	}
	if r.uriFunc == nil {
		return "", nil
	}
	return r.uriFunc(contentHash), nil
}

func (r *InMemory) BalanceOf(_ context.Context, owner common.Address) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n uint64
	for _, p := range r.players {
		if p.Owner == owner {
			n++
		}
	}
	return n, nil
}

func (r *InMemory) TotalSupply(_ context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return uint64(len(r.mintOrder)), nil
}

func (r *InMemory) TokenByIndex(_ context.Context, index uint64) (types.TokenID, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index >= uint64(len(r.mintOrder)) {
		return 0, fmt.Errorf("token index %d: %w", index, ErrNotFound)
	}
	return r.mintOrder[index], nil
}

func (r *InMemory) MintTeam(_ context.Context, owner common.Address, roster types.Roster, contentID types.ContentID) (types.TokenID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := r.teamSeq
	r.teamSeq++
	r.teams[id] = &TeamToken{ID: id, Owner: owner, Roster: roster, ContentID: contentID}
	return id, nil
}

func (r *InMemory) TeamByID(_ context.Context, id types.TokenID) (*TeamToken, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.teams[id]
	if !ok {
		return nil, fmt.Errorf("team %s: %w", id, ErrNotFound)
	}
	return t.Copy(), nil
}

func (r *InMemory) TotalTeams(_ context.Context) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return uint64(len(r.teams)), nil
}

// StateRoot returns the Merkle root over all token records, players in
// mint order followed by teams in id order. Nil for an empty registry.
func (r *InMemory) StateRoot(_ context.Context) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var leaves []mt.Data
	for _, id := range r.mintOrder {
		leaves = append(leaves, r.players[id])
	}
	for id := types.TokenID(0); id < r.teamSeq; id++ {
		leaves = append(leaves, r.teams[id])
	}
	tree, err := mt.New(crypto.SHA256, leaves)
	if err != nil {
		return nil, fmt.Errorf("building state tree: %w", err)
	}
	return tree.GetRootHash(), nil
}
