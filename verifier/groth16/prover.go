package groth16

import (
	"bytes"
	"fmt"
	"io"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark/backend/groth16"
	"github.com/consensys/gnark/constraint"
	"github.com/consensys/gnark/frontend"
	"github.com/consensys/gnark/frontend/cs/r1cs"

	"github.com/lineupzk/lineup-go/types"
)

// Prover issues seals for the claim binding circuit. This is the trusted
// attestor ("dev mode") counterpart of Verifier, not the zkVM prover.
type Prover struct {
	pk  groth16.ProvingKey
	ccs constraint.ConstraintSystem
}

// Setup compiles the claim circuit and runs the Groth16 key ceremony.
// Returns the prover and the matching verifying key.
func Setup() (*Prover, groth16.VerifyingKey, error) {
	ccs, err := compile()
	if err != nil {
		return nil, nil, err
	}
	pk, vk, err := groth16.Setup(ccs)
	if err != nil {
		return nil, nil, fmt.Errorf("groth16 setup: %w", err)
	}
	return &Prover{pk: pk, ccs: ccs}, vk, nil
}

// NewProver creates a prover from a previously generated proving key.
func NewProver(pk groth16.ProvingKey) (*Prover, error) {
	ccs, err := compile()
	if err != nil {
		return nil, err
	}
	return &Prover{pk: pk, ccs: ccs}, nil
}

func compile() (constraint.ConstraintSystem, error) {
	ccs, err := frontend.Compile(ecc.BN254.ScalarField(), r1cs.NewBuilder, &ClaimCircuit{})
	if err != nil {
		return nil, fmt.Errorf("compiling claim circuit: %w", err)
	}
	return ccs, nil
}

// Attest produces a seal for the claim (imageID, journalDigest).
func (p *Prover) Attest(imageID types.ImageID, journalDigest [32]byte) ([]byte, error) {
	assignment := claimAssignment(imageID, journalDigest)
	assignment.Binding = claimBinding(imageID, journalDigest)

	w, err := frontend.NewWitness(assignment, ecc.BN254.ScalarField())
	if err != nil {
		return nil, fmt.Errorf("building witness: %w", err)
	}
	proof, err := groth16.Prove(p.ccs, p.pk, w)
	if err != nil {
		return nil, fmt.Errorf("proving claim: %w", err)
	}

	buf := bytes.Buffer{}
	if _, err := proof.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serializing seal: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteKey serializes the prover's proving key.
func (p *Prover) WriteKey(w io.Writer) error {
	return WriteProvingKey(w, p.pk)
}

// ReadProvingKey deserializes a BN254 proving key.
func ReadProvingKey(r io.Reader) (groth16.ProvingKey, error) {
	pk := groth16.NewProvingKey(ecc.BN254)
	if _, err := pk.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("reading proving key: %w", err)
	}
	return pk, nil
}

func WriteProvingKey(w io.Writer, pk groth16.ProvingKey) error {
	if _, err := pk.WriteTo(w); err != nil {
		return fmt.Errorf("writing proving key: %w", err)
	}
	return nil
}
