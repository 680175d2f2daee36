/*
Package team implements the team assembly protocol: the canonical
journal codec, the authorization checks over the player registry and the
builder that accepts an externally proven roster and records the team.
*/
package team

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi"

	"github.com/lineupzk/lineup-go/hash"
	"github.com/lineupzk/lineup-go/types"
)

/*
Journal is the claim the proving program commits to: the team content id
and the ordered roster. It exists only during verification, its digest is
the value checked against the seal.

The encoding is the ABI static tuple (bytes32 contentID, uint256[11]
roster), 384 bytes. It must match the proving program byte for byte -
any divergence silently breaks soundness of every future proof.
*/
type Journal struct {
	ContentID types.ContentID
	Roster    types.Roster
}

var journalArgs abi.Arguments

func init() {
	// type construction only fails on a malformed type string
	contentIDType, err := abi.NewType("bytes32", "", nil)
	if err != nil {
		panic(fmt.Errorf("initializing journal content id type: %w", err))
	}
	rosterType, err := abi.NewType(fmt.Sprintf("uint256[%d]", types.RosterSize), "", nil)
	if err != nil {
		panic(fmt.Errorf("initializing journal roster type: %w", err))
	}
	journalArgs = abi.Arguments{
		{Name: "contentID", Type: contentIDType},
		{Name: "roster", Type: rosterType},
	}
}

/*
Encode returns the canonical journal encoding. Roster order is preserved
and duplicate entries are kept as is, the codec never normalizes.
*/
func (j Journal) Encode() ([]byte, error) {
	var roster [types.RosterSize]*big.Int
	for i, id := range j.Roster {
		roster[i] = new(big.Int).SetUint64(uint64(id))
	}
	data, err := journalArgs.Pack([32]byte(j.ContentID), roster)
	if err != nil {
		return nil, fmt.Errorf("encoding journal: %w", err)
	}
	return data, nil
}

// Digest returns the SHA256 digest of the canonical encoding, the value
// the seal is verified against.
func (j Journal) Digest() ([32]byte, error) {
	var digest [32]byte
	data, err := j.Encode()
	if err != nil {
		return digest, err
	}
	copy(digest[:], hash.Sum256(data))
	return digest, nil
}
