/*
Package registry defines the player and team token ledgers: ownership,
approve-all delegation, minting and enumeration. The team building core
only ever reads this state, it never mutates ownership or delegation.
*/
package registry

import (
	"context"
	"errors"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lineupzk/lineup-go/types"
)

var (
	// ErrNotFound - the referenced token id has not been minted.
	ErrNotFound = errors.New("token not found")
	// ErrAlreadyMinted - minting with an id that is already taken.
	ErrAlreadyMinted = errors.New("token already minted")
	// ErrNotOwner - transfer attempted by someone who is not the owner.
	ErrNotOwner = errors.New("not the owner of the token")
	// ErrClosed - operation on a closed registry.
	ErrClosed = errors.New("registry is closed")
)

type (
	// PlayerReader is the read-only view of the player ledger the team
	// building core depends on.
	PlayerReader interface {
		// OwnerOf returns the owner of the player token, ErrNotFound if
		// the id has not been minted.
		OwnerOf(ctx context.Context, id types.TokenID) (common.Address, error)
		// IsApprovedForAll reports whether the owner has granted the
		// operator blanket delegation over all of their player tokens.
		IsApprovedForAll(ctx context.Context, owner, operator common.Address) (bool, error)
	}

	// PlayerRegistry is the full player ledger.
	PlayerRegistry interface {
		PlayerReader

		// MintPlayer creates a player token with a caller chosen id.
		// Fails with ErrAlreadyMinted when the id is taken. Anyone may
		// mint any unused id, no scarcity is enforced at this layer.
		MintPlayer(ctx context.Context, owner common.Address, id types.TokenID, contentHash types.ContentID) error
		// Transfer moves the token to a new owner. The from address must
		// be the current owner.
		Transfer(ctx context.Context, from, to common.Address, id types.TokenID) error
		// SetApprovalForAll grants or revokes blanket delegation from
		// owner to operator.
		SetApprovalForAll(ctx context.Context, owner, operator common.Address, approved bool) error
		// ContentHash returns the opaque 32 byte content hash the token
		// was minted with.
		ContentHash(ctx context.Context, id types.TokenID) (types.ContentID, error)
		// URI resolves the metadata URI of the token.
		URI(ctx context.Context, id types.TokenID) (string, error)
		// BalanceOf returns the number of player tokens the owner holds.
		BalanceOf(ctx context.Context, owner common.Address) (uint64, error)
		// TotalSupply returns the number of minted player tokens.
		TotalSupply(ctx context.Context) (uint64, error)
		// TokenByIndex enumerates minted ids in mint order.
		TokenByIndex(ctx context.Context, index uint64) (types.TokenID, error)
	}

	// TeamRegistry records attested teams. MintTeam must only be called
	// after the proof gate has accepted the roster.
	TeamRegistry interface {
		// MintTeam records a new team token with a registry assigned id
		// and returns that id. The roster is recorded verbatim and never
		// re-validated.
		MintTeam(ctx context.Context, owner common.Address, roster types.Roster, contentID types.ContentID) (types.TokenID, error)
		// TeamByID returns the recorded team, ErrNotFound if absent.
		TeamByID(ctx context.Context, id types.TokenID) (*TeamToken, error)
		// TotalTeams returns the number of recorded teams.
		TotalTeams(ctx context.Context) (uint64, error)
	}
)
