/*
Package verifier defines the proof acceptance interface the team builder
delegates to. A verifier is a pure acceptance function over (seal, image
id, journal digest), it holds no state about rosters or tokens.
*/
package verifier

import (
	"context"
	"errors"

	"github.com/lineupzk/lineup-go/types"
)

// ErrProofRejected - the seal did not verify against the image id and
// journal digest. Could be a tampered seal, a proof over a different
// roster or content id, or a prover/verifier codec mismatch. Not
// retryable without regenerating the proof.
var ErrProofRejected = errors.New("proof rejected")

type Verifier interface {
	// Verify accepts or rejects the seal. Nil return means the proving
	// program identified by imageID produced a journal with the given
	// digest. Any failure is reported as wrapped ErrProofRejected.
	Verify(ctx context.Context, seal []byte, imageID types.ImageID, journalDigest [32]byte) error
}
