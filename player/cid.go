package player

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/lineupzk/lineup-go/types"
)

/*
FileStats is the result of adding a metadata document to the content
addressed store: the CIDv0 of the single UnixFS block wrapping it, plus
block accounting.
*/
type FileStats struct {
	CID    []byte // multihash bytes (0x12 0x20 || digest)
	Blocks int
	Bytes  uint64
}

// ContentHash returns the 32 byte digest part of the CID, the value a
// player token is minted with.
func (s FileStats) ContentHash() types.ContentID {
	var c types.ContentID
	copy(c[:], s.CID[2:])
	return c
}

// String renders the CIDv0 in base58 ("Qm...").
func (s FileStats) String() string {
	return base58.Encode(s.CID)
}

// URI renders the CID as an ipfs URI, the token metadata URI.
func (s FileStats) URI() string {
	return "ipfs://" + s.String()
}

/*
ComputeCID wraps the document in a single block UnixFS file node (dag-pb)
and returns its CIDv0: the SHA256 multihash of the encoded block. The
document must fit one chunk (256 KiB), larger files would need a
multi-block layout the protocol does not use.
*/
func ComputeCID(data []byte) (FileStats, error) {
	if len(data) > 256*1024 {
		return FileStats{}, fmt.Errorf("document of %d bytes exceeds a single %d byte chunk", len(data), 256*1024)
	}
	block := wrapUnixFS(data)
	digest := sha256.Sum256(block)
	cid := append([]byte{0x12, 0x20}, digest[:]...) // sha2-256, 32 bytes
	return FileStats{CID: cid, Blocks: 1, Bytes: uint64(len(block))}, nil
}

// CID computes the content identifier of the canonical metadata JSON.
func (p *Player) CID() (FileStats, error) {
	data, err := p.CanonicalJSON()
	if err != nil {
		return FileStats{}, err
	}
	return ComputeCID(data)
}

// FormatURI renders a minted content hash back into the token metadata
// URI (the inverse of FileStats.ContentHash for the URI part).
func FormatURI(contentHash types.ContentID) string {
	cid := append([]byte{0x12, 0x20}, contentHash[:]...)
	return "ipfs://" + base58.Encode(cid)
}

/*
wrapUnixFS encodes the dag-pb block of a single chunk UnixFS file:

	PBNode{Data: UnixFS{Type: File, Data: data, FileSize: len(data)}}

Hand rolled protobuf, the two messages are tiny and fixed shape.
*/
func wrapUnixFS(data []byte) []byte {
	// UnixFS Data message: Type=2 (File), Data, FileSize
	inner := []byte{0x08, 0x02} // field 1 varint, File
	inner = appendBytesField(inner, 0x12, data)
	inner = append(inner, 0x18) // field 3 varint
	inner = binary.AppendUvarint(inner, uint64(len(data)))

	// PBNode: Data field only, no links
	return appendBytesField(nil, 0x0a, inner)
}

func appendBytesField(buf []byte, tag byte, v []byte) []byte {
	buf = append(buf, tag)
	buf = binary.AppendUvarint(buf, uint64(len(v)))
	return append(buf, v...)
}
