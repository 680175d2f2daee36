package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lineupzk/lineup-go/registry"
	"github.com/lineupzk/lineup-go/types"
)

var (
	// ErrApprovalRequired - the caller has not granted the builder
	// blanket delegation in the player registry. User actionable, the
	// caller must approve the builder's operator address first.
	ErrApprovalRequired = errors.New("player approval required")
	// ErrUnauthorized - the caller neither owns nor is delegated for a
	// specific roster entry.
	ErrUnauthorized = errors.New("caller is not authorized for the player")
)

// Authorizer composes read-only registry queries into the two
// authorization checks of the team assembly protocol. It has no state of
// its own and never writes to the registry.
type Authorizer struct {
	players  registry.PlayerReader
	operator common.Address
}

// NewAuthorizer creates an authorizer reading from the given player
// ledger. The operator is the builder's own identity in the delegation
// relation.
func NewAuthorizer(players registry.PlayerReader, operator common.Address) *Authorizer {
	return &Authorizer{players: players, operator: operator}
}

/*
IsAuthorized reports whether the caller may use the player token when
forming a team: the caller is the owner, or the owner has blanket
delegated to the caller. A registry lookup failure (including unknown
token id) propagates to the caller.
*/
func (a *Authorizer) IsAuthorized(ctx context.Context, id types.TokenID, caller common.Address) (bool, error) {
	owner, err := a.players.OwnerOf(ctx, id)
	if err != nil {
		return false, fmt.Errorf("reading owner of player %s: %w", id, err)
	}
	if owner == caller {
		return true, nil
	}
	approved, err := a.players.IsApprovedForAll(ctx, owner, caller)
	if err != nil {
		return false, fmt.Errorf("reading delegation of player %s owner: %w", id, err)
	}
	return approved, nil
}

/*
CheckApproval fails with ErrApprovalRequired unless the caller has
blanket approved the builder's operator address. This gate is distinct
from per-token authorization: it guarantees the builder never holds or
moves player tokens without the caller's explicit consent.
*/
func (a *Authorizer) CheckApproval(ctx context.Context, caller common.Address) error {
	approved, err := a.players.IsApprovedForAll(ctx, caller, a.operator)
	if err != nil {
		return fmt.Errorf("reading delegation from %s: %w", caller, err)
	}
	if !approved {
		return fmt.Errorf("%w from owner %s", ErrApprovalRequired, caller)
	}
	return nil
}
