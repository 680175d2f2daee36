package registry

import (
	"context"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/require"

	"github.com/lineupzk/lineup-go/types"
)

var (
	alice = common.HexToAddress("0x1111111111111111111111111111111111111111")
	bob   = common.HexToAddress("0x2222222222222222222222222222222222222222")
)

func Test_InMemory_MintPlayer(t *testing.T) {
	ctx := context.Background()

	t.Run("mint and query", func(t *testing.T) {
		r := NewInMemory(nil)
		contentHash := types.ContentID{1, 2, 3}
		require.NoError(t, r.MintPlayer(ctx, alice, 7, contentHash))

		owner, err := r.OwnerOf(ctx, 7)
		require.NoError(t, err)
		require.Equal(t, alice, owner)

		ch, err := r.ContentHash(ctx, 7)
		require.NoError(t, err)
		require.Equal(t, contentHash, ch)
	})

	t.Run("colliding id fails", func(t *testing.T) {
		r := NewInMemory(nil)
		require.NoError(t, r.MintPlayer(ctx, alice, 7, types.ContentID{}))
		err := r.MintPlayer(ctx, bob, 7, types.ContentID{})
		require.ErrorIs(t, err, ErrAlreadyMinted)

		// first mint stands
		owner, err := r.OwnerOf(ctx, 7)
		require.NoError(t, err)
		require.Equal(t, alice, owner)
	})

	t.Run("distinct ids always succeed", func(t *testing.T) {
		r := NewInMemory(nil)
		require.NoError(t, r.MintPlayer(ctx, alice, 1, types.ContentID{}))
		require.NoError(t, r.MintPlayer(ctx, bob, 2, types.ContentID{}))

		n, err := r.TotalSupply(ctx)
		require.NoError(t, err)
		require.EqualValues(t, 2, n)
	})

	t.Run("unknown id", func(t *testing.T) {
		r := NewInMemory(nil)
		_, err := r.OwnerOf(ctx, 404)
		require.ErrorIs(t, err, ErrNotFound)
	})
}

func Test_InMemory_Approvals(t *testing.T) {
	ctx := context.Background()
	r := NewInMemory(nil)

	ok, err := r.IsApprovedForAll(ctx, alice, bob)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.SetApprovalForAll(ctx, alice, bob, true))
	ok, err = r.IsApprovedForAll(ctx, alice, bob)
	require.NoError(t, err)
	require.True(t, ok)

	// relation is directional
	ok, err = r.IsApprovedForAll(ctx, bob, alice)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, r.SetApprovalForAll(ctx, alice, bob, false))
	ok, err = r.IsApprovedForAll(ctx, alice, bob)
	require.NoError(t, err)
	require.False(t, ok)
}

func Test_InMemory_Transfer(t *testing.T) {
	ctx := context.Background()
	r := NewInMemory(nil)
	require.NoError(t, r.MintPlayer(ctx, alice, 1, types.ContentID{}))

	t.Run("not the owner", func(t *testing.T) {
		require.ErrorIs(t, r.Transfer(ctx, bob, bob, 1), ErrNotOwner)
	})

	t.Run("unknown token", func(t *testing.T) {
		require.ErrorIs(t, r.Transfer(ctx, alice, bob, 404), ErrNotFound)
	})

	t.Run("owner transfers", func(t *testing.T) {
		require.NoError(t, r.Transfer(ctx, alice, bob, 1))
		owner, err := r.OwnerOf(ctx, 1)
		require.NoError(t, err)
		require.Equal(t, bob, owner)
	})
}

func Test_InMemory_Enumeration(t *testing.T) {
	ctx := context.Background()
	r := NewInMemory(nil)
	require.NoError(t, r.MintPlayer(ctx, alice, 5, types.ContentID{}))
	require.NoError(t, r.MintPlayer(ctx, alice, 3, types.ContentID{}))
	require.NoError(t, r.MintPlayer(ctx, bob, 9, types.ContentID{}))

	// mint order, not id order
	id, err := r.TokenByIndex(ctx, 0)
	require.NoError(t, err)
	require.EqualValues(t, 5, id)
	id, err = r.TokenByIndex(ctx, 1)
	require.NoError(t, err)
	require.EqualValues(t, 3, id)

	_, err = r.TokenByIndex(ctx, 3)
	require.ErrorIs(t, err, ErrNotFound)

	n, err := r.BalanceOf(ctx, alice)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func Test_InMemory_Teams(t *testing.T) {
	ctx := context.Background()
	r := NewInMemory(nil)
	roster := types.Roster{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}
	contentID := types.ContentID{0xAA}

	id1, err := r.MintTeam(ctx, alice, roster, contentID)
	require.NoError(t, err)
	id2, err := r.MintTeam(ctx, bob, roster, contentID)
	require.NoError(t, err)
	require.Equal(t, id1+1, id2)

	team, err := r.TeamByID(ctx, id1)
	require.NoError(t, err)
	require.Equal(t, roster, team.Roster)
	require.Equal(t, contentID, team.ContentID)
	require.Equal(t, alice, team.Owner)

	_, err = r.TeamByID(ctx, 404)
	require.ErrorIs(t, err, ErrNotFound)

	n, err := r.TotalTeams(ctx)
	require.NoError(t, err)
	require.EqualValues(t, 2, n)
}

func Test_InMemory_StateRoot(t *testing.T) {
	ctx := context.Background()

	t.Run("empty registry", func(t *testing.T) {
		r := NewInMemory(nil)
		root, err := r.StateRoot(ctx)
		require.NoError(t, err)
		require.Nil(t, root)
	})

	t.Run("root changes with state", func(t *testing.T) {
		r := NewInMemory(nil)
		require.NoError(t, r.MintPlayer(ctx, alice, 1, types.ContentID{}))
		root1, err := r.StateRoot(ctx)
		require.NoError(t, err)
		require.NotEmpty(t, root1)

		require.NoError(t, r.MintPlayer(ctx, bob, 2, types.ContentID{}))
		root2, err := r.StateRoot(ctx)
		require.NoError(t, err)
		require.NotEqual(t, root1, root2)

		require.NoError(t, r.Transfer(ctx, bob, alice, 2))
		root3, err := r.StateRoot(ctx)
		require.NoError(t, err)
		require.NotEqual(t, root2, root3)
	})

	t.Run("same state same root", func(t *testing.T) {
		build := func() *InMemory {
			r := NewInMemory(nil)
			require.NoError(t, r.MintPlayer(ctx, alice, 1, types.ContentID{1}))
			require.NoError(t, r.MintPlayer(ctx, bob, 2, types.ContentID{2}))
			_, err := r.MintTeam(ctx, alice, types.Roster{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}, types.ContentID{3})
			require.NoError(t, err)
			return r
		}
		root1, err := build().StateRoot(ctx)
		require.NoError(t, err)
		root2, err := build().StateRoot(ctx)
		require.NoError(t, err)
		require.Equal(t, root1, root2)
	})
}
