/*
Package groth16 implements the proof verifier over Groth16 seals on the
BN254 curve. The public statement of a seal is the claim (image id,
journal digest), each 32 byte value split into two 128 bit halves so it
fits the scalar field.

The package also ships the claim binding circuit and a prover for it, so
a deployment can run a trusted attestor proving flow end to end without
the zkVM toolchain. A production deployment loads the verifying key of
the real proving program instead.
*/
package groth16

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	mimcfr "github.com/consensys/gnark-crypto/ecc/bn254/fr/mimc"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/std/hash/mimc"

	"github.com/lineupzk/lineup-go/types"
)

// ClaimCircuit binds the public claim halves to a MiMC digest the
// attestor commits to. The claim layout (two halves per 32 byte value,
// image id first) must not change, it is the wire contract with every
// issued seal.
type ClaimCircuit struct {
	ImageID       [2]frontend.Variable `gnark:",public"`
	JournalDigest [2]frontend.Variable `gnark:",public"`

	Binding frontend.Variable `gnark:",secret"`
}

func (c *ClaimCircuit) Define(api frontend.API) error {
	h, err := mimc.NewMiMC(api)
	if err != nil {
		return err
	}
	h.Write(c.ImageID[0], c.ImageID[1], c.JournalDigest[0], c.JournalDigest[1])
	api.AssertIsEqual(c.Binding, h.Sum())
	return nil
}

// claimHalves splits the claim into the four 128 bit public inputs, big
// endian, image id halves first.
func claimHalves(imageID types.ImageID, journalDigest [32]byte) [4]*big.Int {
	return [4]*big.Int{
		new(big.Int).SetBytes(imageID[:16]),
		new(big.Int).SetBytes(imageID[16:]),
		new(big.Int).SetBytes(journalDigest[:16]),
		new(big.Int).SetBytes(journalDigest[16:]),
	}
}

func claimAssignment(imageID types.ImageID, journalDigest [32]byte) *ClaimCircuit {
	halves := claimHalves(imageID, journalDigest)
	return &ClaimCircuit{
		ImageID:       [2]frontend.Variable{halves[0], halves[1]},
		JournalDigest: [2]frontend.Variable{halves[2], halves[3]},
	}
}

// claimBinding computes the MiMC binding of the claim on the host side,
// matching the in-circuit hash (each half written as a field element).
func claimBinding(imageID types.ImageID, journalDigest [32]byte) *big.Int {
	h := mimcfr.NewMiMC()
	for _, half := range claimHalves(imageID, journalDigest) {
		var e fr.Element
		e.SetBigInt(half)
		b := e.Bytes()
		h.Write(b[:])
	}
	return new(big.Int).SetBytes(h.Sum(nil))
}
