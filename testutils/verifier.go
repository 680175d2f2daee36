package testutils

import (
	"context"
	"fmt"

	"github.com/lineupzk/lineup-go/types"
	"github.com/lineupzk/lineup-go/verifier"
)

// StubVerifier accepts seals for explicitly registered claims only,
// ignoring the seal bytes. Records the number of Verify calls so tests
// can assert the verifier was (not) reached.
type StubVerifier struct {
	imageID  types.ImageID
	accepted map[[32]byte]bool
	Calls    int
}

var _ verifier.Verifier = (*StubVerifier)(nil)

func NewStubVerifier(imageID types.ImageID) *StubVerifier {
	return &StubVerifier{imageID: imageID, accepted: map[[32]byte]bool{}}
}

// AcceptDigest registers a journal digest the stub will accept.
func (v *StubVerifier) AcceptDigest(digest [32]byte) *StubVerifier {
	v.accepted[digest] = true
	return v
}

func (v *StubVerifier) Verify(_ context.Context, seal []byte, imageID types.ImageID, journalDigest [32]byte) error {
	v.Calls++
	if imageID != v.imageID {
		return fmt.Errorf("%w: unexpected image id %s", verifier.ErrProofRejected, imageID)
	}
	if !v.accepted[journalDigest] {
		return fmt.Errorf("%w: digest does not match any proven journal", verifier.ErrProofRejected)
	}
	return nil
}
