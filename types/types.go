// Package types defines the protocol scalar types shared by the registry,
// the journal codec and the team builder.
package types

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"

	"github.com/lineupzk/lineup-go/types/hex"
)

// RosterSize is the number of players in a team. The proving program is
// built for exactly this roster width, it is not configurable.
const RosterSize = 11

type (
	// TokenID identifies a player or a team token. On the wire (in the
	// journal) it is widened to a 32 byte big endian word to match the
	// uint256 view of the proving program.
	TokenID uint64

	// Roster is the ordered list of player ids claimed to compose a team.
	// Order is part of the attested claim. Fixed length so a wrong roster
	// size is a compile error, not a runtime check.
	Roster [RosterSize]TokenID

	// ContentID is an opaque 32 byte reference to off-chain metadata
	// (player content hash or team content id). Never interpreted by
	// this module, only carried and encoded.
	ContentID [32]byte

	// ImageID identifies the exact build of the proving program a seal
	// must have been produced by. Changing the program is a breaking
	// protocol change and requires a new ImageID constant.
	ImageID [32]byte
)

// Word returns the id as a 32 byte big endian word (the journal encoding
// of a single roster entry).
func (id TokenID) Word() [32]byte {
	var w [32]byte
	new(big.Int).SetUint64(uint64(id)).FillBytes(w[:])
	return w
}

func (id TokenID) String() string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseTokenID parses a base 10 token id.
func ParseTokenID(s string) (TokenID, error) {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid token id %q: %w", s, err)
	}
	return TokenID(v), nil
}

// ParseRoster parses a comma separated list of exactly RosterSize token ids.
func ParseRoster(s string) (Roster, error) {
	var r Roster
	parts := strings.Split(s, ",")
	if len(parts) != RosterSize {
		return r, fmt.Errorf("roster must list exactly %d player ids, got %d", RosterSize, len(parts))
	}
	for i, p := range parts {
		id, err := ParseTokenID(p)
		if err != nil {
			return r, fmt.Errorf("roster entry %d: %w", i, err)
		}
		r[i] = id
	}
	return r, nil
}

func (r Roster) String() string {
	parts := make([]string, len(r))
	for i, id := range r {
		parts[i] = id.String()
	}
	return strings.Join(parts, ",")
}

func (c ContentID) MarshalText() ([]byte, error) {
	return hex.Encode(c[:]), nil
}

func (c *ContentID) UnmarshalText(src []byte) error {
	b, err := hex.Decode(src)
	if err != nil {
		return err
	}
	if len(b) != len(c) {
		return fmt.Errorf("content id must be %d bytes, got %d", len(c), len(b))
	}
	copy(c[:], b)
	return nil
}

func (c ContentID) String() string {
	return hex.Bytes(c[:]).String()
}

// ParseContentID parses a 0x-prefixed hex encoded 32 byte content id.
func ParseContentID(s string) (ContentID, error) {
	var c ContentID
	if err := c.UnmarshalText([]byte(s)); err != nil {
		return c, err
	}
	return c, nil
}

func (i ImageID) MarshalText() ([]byte, error) {
	return hex.Encode(i[:]), nil
}

func (i *ImageID) UnmarshalText(src []byte) error {
	b, err := hex.Decode(src)
	if err != nil {
		return err
	}
	if len(b) != len(i) {
		return fmt.Errorf("image id must be %d bytes, got %d", len(i), len(b))
	}
	copy(i[:], b)
	return nil
}

func (i ImageID) String() string {
	return hex.Bytes(i[:]).String()
}
