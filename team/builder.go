package team

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/ethereum/go-ethereum/common"

	"github.com/lineupzk/lineup-go/registry"
	"github.com/lineupzk/lineup-go/types"
	"github.com/lineupzk/lineup-go/verifier"
)

// ImageIDV1 identifies the pinned build of the team assembly proving
// program. Changing the program is a breaking protocol change and
// requires a new constant; seals issued against the old build verify
// only if the old id is still configured.
var ImageIDV1 = types.ImageID{
	0x4c, 0x9f, 0x11, 0xe2, 0x7a, 0x5b, 0xd0, 0x33,
	0x86, 0x41, 0xfa, 0x09, 0x6e, 0xcd, 0x52, 0x18,
	0xb3, 0x70, 0x2f, 0x94, 0x0c, 0xe8, 0x65, 0xaf,
	0xd1, 0x3a, 0x87, 0x5e, 0x29, 0xbc, 0x44, 0xf6,
}

// Config carries the builder's immutable collaborators, all required.
type Config struct {
	Players  registry.PlayerReader
	Teams    registry.TeamRegistry
	Verifier verifier.Verifier
	Operator common.Address // builder's identity in the delegation relation
	ImageID  types.ImageID  // proving program build the seals must come from
}

func (c Config) isValid() error {
	if c.Players == nil {
		return errors.New("player registry is required")
	}
	if c.Teams == nil {
		return errors.New("team registry is required")
	}
	if c.Verifier == nil {
		return errors.New("proof verifier is required")
	}
	if c.Operator == (common.Address{}) {
		return errors.New("operator address is required")
	}
	if c.ImageID == (types.ImageID{}) {
		return errors.New("image id is required")
	}
	return nil
}

// Builder runs the team assembly protocol. It reads the player ledger,
// delegates proof acceptance to the verifier and records accepted teams.
type Builder struct {
	// serializes build requests so no authorization check observes a
	// mid-build state; embedders must not transfer players concurrently
	// with a build
	mu sync.Mutex

	auth     *Authorizer
	teams    registry.TeamRegistry
	verifier verifier.Verifier
	imageID  types.ImageID
}

func New(cfg Config) (*Builder, error) {
	if err := cfg.isValid(); err != nil {
		return nil, fmt.Errorf("invalid builder configuration: %w", err)
	}
	return &Builder{
		auth:     NewAuthorizer(cfg.Players, cfg.Operator),
		teams:    cfg.Teams,
		verifier: cfg.Verifier,
		imageID:  cfg.ImageID,
	}, nil
}

/*
BuildTeam runs the three gates of the assembly protocol in order and on
success records the team with the exact submitted roster and content id,
returning the new team token id.

 1. the caller must have blanket approved the builder's operator address
    (ErrApprovalRequired otherwise);
 2. the caller must own or be delegated for every roster entry, checked
    in roster order, first failure wins (ErrUnauthorized naming the
    entry, registry.ErrNotFound for an unminted id);
 3. the seal must verify against the digest of the canonical journal
    under the configured image id (verifier.ErrProofRejected otherwise).

Any gate failure aborts the call with nothing recorded. Gates run
cheapest first so unauthorized requests never reach the verifier.
*/
func (b *Builder) BuildTeam(ctx context.Context, caller common.Address, roster types.Roster, contentID types.ContentID, seal []byte) (types.TokenID, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err := b.auth.CheckApproval(ctx, caller); err != nil {
		return 0, err
	}

	for i, id := range roster {
		ok, err := b.auth.IsAuthorized(ctx, id, caller)
		if err != nil {
			return 0, err
		}
		if !ok {
			return 0, fmt.Errorf("roster entry %d: %w %s", i, ErrUnauthorized, id)
		}
	}

	journal := Journal{ContentID: contentID, Roster: roster}
	digest, err := journal.Digest()
	if err != nil {
		return 0, err
	}
	if err := b.verifier.Verify(ctx, seal, b.imageID, digest); err != nil {
		return 0, fmt.Errorf("verifying team seal: %w", err)
	}

	id, err := b.teams.MintTeam(ctx, caller, roster, contentID)
	if err != nil {
		return 0, fmt.Errorf("recording team: %w", err)
	}
	return id, nil
}
