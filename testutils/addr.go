// Package testutils provides shared test fixtures: addresses, content
// ids, player metadata and verifier stubs.
package testutils

import (
	"crypto/rand"
	"testing"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lineupzk/lineup-go/types"
)

// Addr returns a deterministic address, every byte set to the seed.
// Seed zero is not allowed (the zero address means "no address").
func Addr(seed byte) common.Address {
	if seed == 0 {
		panic("address seed cannot be zero")
	}
	var a common.Address
	for i := range a {
		a[i] = seed
	}
	return a
}

func RandomAddress(t *testing.T) common.Address {
	t.Helper()
	var a common.Address
	if _, err := rand.Read(a[:]); err != nil {
		t.Fatal("failed to generate address:", err)
	}
	return a
}

func RandomContentID(t *testing.T) types.ContentID {
	t.Helper()
	var c types.ContentID
	if _, err := rand.Read(c[:]); err != nil {
		t.Fatal("failed to generate content id:", err)
	}
	return c
}

// SequentialRoster returns the roster {first, first+1, ...}.
func SequentialRoster(first types.TokenID) types.Roster {
	var r types.Roster
	for i := range r {
		r[i] = first + types.TokenID(i)
	}
	return r
}
