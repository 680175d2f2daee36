package groth16

import (
	"bytes"
	"context"
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lineupzk/lineup-go/types"
	"github.com/lineupzk/lineup-go/verifier"
)

func Test_AttestAndVerify(t *testing.T) {
	ctx := context.Background()
	prover, vk, err := Setup()
	require.NoError(t, err)
	v := NewVerifier(vk)

	imageID := types.ImageID(sha256.Sum256([]byte("program")))
	digest := sha256.Sum256([]byte("journal"))

	seal, err := prover.Attest(imageID, digest)
	require.NoError(t, err)
	require.NotEmpty(t, seal)

	t.Run("valid seal accepted", func(t *testing.T) {
		require.NoError(t, v.Verify(ctx, seal, imageID, digest))
	})

	t.Run("different digest rejected", func(t *testing.T) {
		other := sha256.Sum256([]byte("other journal"))
		err := v.Verify(ctx, seal, imageID, other)
		require.ErrorIs(t, err, verifier.ErrProofRejected)
	})

	t.Run("different image id rejected", func(t *testing.T) {
		other := types.ImageID(sha256.Sum256([]byte("other program")))
		err := v.Verify(ctx, seal, other, digest)
		require.ErrorIs(t, err, verifier.ErrProofRejected)
	})

	t.Run("malformed seal rejected", func(t *testing.T) {
		err := v.Verify(ctx, []byte{1, 2, 3}, imageID, digest)
		require.ErrorIs(t, err, verifier.ErrProofRejected)
	})

	t.Run("tampered seal rejected", func(t *testing.T) {
		tampered := bytes.Clone(seal)
		tampered[0] ^= 0xFF
		err := v.Verify(ctx, tampered, imageID, digest)
		require.ErrorIs(t, err, verifier.ErrProofRejected)
	})
}

func Test_KeySerialization(t *testing.T) {
	prover, vk, err := Setup()
	require.NoError(t, err)

	imageID := types.ImageID{1}
	digest := [32]byte{2}
	seal, err := prover.Attest(imageID, digest)
	require.NoError(t, err)

	t.Run("verifying key round trip", func(t *testing.T) {
		buf := bytes.Buffer{}
		require.NoError(t, WriteVerifyingKey(&buf, vk))
		vk2, err := ReadVerifyingKey(&buf)
		require.NoError(t, err)
		require.NoError(t, NewVerifier(vk2).Verify(context.Background(), seal, imageID, digest))
	})

	t.Run("proving key round trip", func(t *testing.T) {
		buf := bytes.Buffer{}
		require.NoError(t, WriteProvingKey(&buf, prover.pk))
		pk2, err := ReadProvingKey(&buf)
		require.NoError(t, err)
		prover2, err := NewProver(pk2)
		require.NoError(t, err)
		seal2, err := prover2.Attest(imageID, digest)
		require.NoError(t, err)
		require.NoError(t, NewVerifier(vk).Verify(context.Background(), seal2, imageID, digest))
	})
}

func Test_claimBinding_matchesCircuit(t *testing.T) {
	// Attest computes the secret binding on the host, the circuit
	// recomputes it with the in-circuit MiMC. A successful proof over a
	// random claim shows the two implementations agree.
	prover, vk, err := Setup()
	require.NoError(t, err)

	imageID := types.ImageID(sha256.Sum256([]byte("a")))
	digest := sha256.Sum256([]byte("b"))
	seal, err := prover.Attest(imageID, digest)
	require.NoError(t, err)
	require.NoError(t, NewVerifier(vk).Verify(context.Background(), seal, imageID, digest))
}
