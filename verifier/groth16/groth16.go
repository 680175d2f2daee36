package groth16

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/frontend"

	"github.com/lineupzk/lineup-go/types"
	"github.com/lineupzk/lineup-go/verifier"
)

// Verifier accepts Groth16 seals against an injected verifying key. It
// implements verifier.Verifier.
type Verifier struct {
	vk groth16.VerifyingKey
}

var _ verifier.Verifier = (*Verifier)(nil)

func NewVerifier(vk groth16.VerifyingKey) *Verifier {
	return &Verifier{vk: vk}
}

// ReadVerifyingKey deserializes a BN254 verifying key, ie one written by
// WriteVerifyingKey or exported by the proving toolchain.
func ReadVerifyingKey(r io.Reader) (groth16.VerifyingKey, error) {
	vk := groth16.NewVerifyingKey(ecc.BN254)
	if _, err := vk.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading verifying key: %w", err)
	}
	return vk, nil
}

func WriteVerifyingKey(w io.Writer, vk groth16.VerifyingKey) error {
	if _, err := vk.WriteTo(w); err != nil {
		return fmt.Errorf("writing verifying key: %w", err)
	}
	return nil
}

/*
Verify deserializes the seal as a BN254 Groth16 proof and checks it
against the public claim (imageID, journalDigest). Every failure mode -
malformed seal, wrong claim, proof under a different key - is reported
as wrapped verifier.ErrProofRejected.
*/
func (v *Verifier) Verify(_ context.Context, seal []byte, imageID types.ImageID, journalDigest [32]byte) error {
	proof := groth16.NewProof(ecc.BN254)
	if _, err := proof.ReadFrom(bytes.NewReader(seal)); err != nil {
		return fmt.Errorf("%w: malformed seal: %w", verifier.ErrProofRejected, err)
	}

	w, err := frontend.NewWitness(claimAssignment(imageID, journalDigest), ecc.BN254.ScalarField(), frontend.PublicOnly())
	if err != nil {
		return fmt.Errorf("%w: building public witness: %w", verifier.ErrProofRejected, err)
	}

	if err := groth16.Verify(proof, v.vk, w); err != nil {
		return fmt.Errorf("%w: %w", verifier.ErrProofRejected, err)
	}
	return nil
}
