/*
Package cbor provides CBOR encoding/decoding functions.

It's a thin wrapper for github.com/fxamacker/cbor/v2, the reason for
having it is to make sure we use the same encoding options everywhere:
registry records, seal files and hashed values must all serialize
deterministically.
*/
package cbor

import (
	"io"

	"github.com/fxamacker/cbor/v2"
)

var encMode cbor.EncMode

/*
Set Core Deterministic Encoding as standard. See <https://www.rfc-editor.org/rfc/rfc8949.html#name-deterministically-encoded-c>.
*/
func cborEncoder() (_ cbor.EncMode, err error) {
	if encMode != nil {
		return encMode, nil
	}
	if encMode, err = cbor.CoreDetEncOptions().EncMode(); err != nil {
		return nil, err
	}
	return encMode, nil
}

func Marshal(v any) ([]byte, error) {
	enc, err := cborEncoder()
	if err != nil {
		return nil, err
	}
	return enc.Marshal(v)
}

func Unmarshal(data []byte, v any) error {
	return cbor.Unmarshal(data, v)
}

func GetEncoder(w io.Writer) (*cbor.Encoder, error) {
	enc, err := cborEncoder()
	if err != nil {
		return nil, err
	}
	return enc.NewEncoder(w), nil
}

func Encode(w io.Writer, v any) error {
	enc, err := GetEncoder(w)
	if err != nil {
		return err
	}
	return enc.Encode(v)
}

func GetDecoder(r io.Reader) *cbor.Decoder {
	return cbor.NewDecoder(r)
}

func Decode(r io.Reader, v any) error {
	return GetDecoder(r).Decode(v)
}
