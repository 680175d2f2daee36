package hash

import (
	"crypto"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Hash(t *testing.T) {
	t.Run("value is encoded to cbor", func(t *testing.T) {
		v := tokenRecord{ID: 42, Owner: [20]byte{0xAA, 0x01}, ContentHash: []byte{9, 8, 7}}

		h := New(crypto.SHA256.New())
		h.Write(v)
		h1, err := h.Sum()
		require.NoError(t, err)
		require.NotEmpty(t, h1)

		// encode the record manually and hash using WriteRaw - must
		// get the same hash value
		buf, err := encoderMode.Marshal(v)
		require.NoError(t, err)
		h.Reset()
		h.WriteRaw(buf)
		h2, err := h.Sum()
		require.NoError(t, err)
		require.Equal(t, h1, h2)

		// a record under a different owner must hash differently
		v.Owner[0]++
		h.Reset()
		h.Write(v)
		h2, err = h.Sum()
		require.NoError(t, err)
		require.NotEqual(t, h1, h2)
	})

	t.Run("encoding error", func(t *testing.T) {
		h := New(crypto.SHA256.New())
		h.Write(uint64(1))
		h.Write(failingRecord{}) // should cause error
		h.Write(uint64(3))
		_, err := h.Sum()
		require.EqualError(t, err, `no canonical form`)

		// Reset clears the sticky error
		h.Reset()
		h.Write(uint64(1))
		_, err = h.Sum()
		require.NoError(t, err)
	})
}

// tokenRecord has the shape of a registry token record (the hasher's
// main consumer): array encoded, fixed size owner, opaque hash bytes.
type tokenRecord struct {
	_           struct{} `cbor:",toarray"`
	ID          uint64
	Owner       [20]byte
	ContentHash []byte
}

type failingRecord struct{}

func (failingRecord) MarshalCBOR() ([]byte, error) {
	return nil, fmt.Errorf("no canonical form")
}
