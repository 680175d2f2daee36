package registry

import (
	"crypto"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lineupzk/lineup-go/hash"
	"github.com/lineupzk/lineup-go/types"
)

type PlayerToken struct {
	_           struct{}        `cbor:",toarray"`
	ID          types.TokenID   `json:"id,string"`
	Owner       common.Address  `json:"owner"`
	ContentHash types.ContentID `json:"contentHash"` // opaque reference to off-chain metadata, not interpreted
}

type TeamToken struct {
	_         struct{}        `cbor:",toarray"`
	ID        types.TokenID   `json:"id,string"`
	Owner     common.Address  `json:"owner"`
	Roster    types.Roster    `json:"roster"`    // recorded exactly as attested, order significant
	ContentID types.ContentID `json:"contentId"` // opaque reference to off-chain team metadata
}

func (p *PlayerToken) Write(hasher hash.Hasher) {
	hasher.Write(p)
}

func (p *PlayerToken) Copy() *PlayerToken {
	if p == nil {
		return nil
	}
	return &PlayerToken{
		ID:          p.ID,
		Owner:       p.Owner,
		ContentHash: p.ContentHash,
	}
}

// Hash returns the CBOR hash of the record, the registry state root is a
// Merkle root over these.
func (p *PlayerToken) Hash(hashAlgorithm crypto.Hash) ([]byte, error) {
	hasher := hash.New(hashAlgorithm.New())
	p.Write(hasher)
	return hasher.Sum()
}

func (t *TeamToken) Write(hasher hash.Hasher) {
	hasher.Write(t)
}

func (t *TeamToken) Copy() *TeamToken {
	if t == nil {
		return nil
	}
	return &TeamToken{
		ID:        t.ID,
		Owner:     t.Owner,
		Roster:    t.Roster,
		ContentID: t.ContentID,
	}
}

func (t *TeamToken) Hash(hashAlgorithm crypto.Hash) ([]byte, error) {
	hasher := hash.New(hashAlgorithm.New())
	t.Write(hasher)
	return hasher.Sum()
}
