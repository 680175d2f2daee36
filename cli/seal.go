package cli

import (
	"fmt"
	"os"

	"github.com/lineupzk/lineup-go/cbor"
	"github.com/lineupzk/lineup-go/types"
)

// sealFile is the on-disk envelope of a seal: the proving program build
// it was issued for plus the opaque proof bytes, CBOR encoded. Carrying
// the image id lets `team build` reject a stale seal with a clear error
// instead of a generic verification failure.
type sealFile struct {
	_       struct{} `cbor:",toarray"`
	ImageID types.ImageID
	Seal    []byte
}

func writeSealFile(path string, imageID types.ImageID, seal []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("creating seal file: %w", err)
	}
	if err := cbor.Encode(f, sealFile{ImageID: imageID, Seal: seal}); err != nil {
		f.Close()
		return fmt.Errorf("encoding seal file: %w", err)
	}
	return f.Close()
}

func readSealFile(path string) (*sealFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening seal file: %w", err)
	}
	defer f.Close()

	env := &sealFile{}
	if err := cbor.Decode(f, env); err != nil {
		return nil, fmt.Errorf("decoding seal file: %w", err)
	}
	return env, nil
}
