/*
Package hex implements hex encoding with 0x prefix, the canonical text
representation of byte strings in this module (identifiers, content hashes,
seals in config files and CLI output).
*/
package hex

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Bytes is a byte slice which marshals to/from 0x-prefixed hex.
type Bytes []byte

func Encode(b []byte) []byte {
	result := make([]byte, len(b)*2+2)
	copy(result, `0x`)
	hex.Encode(result[2:], b)
	return result
}

func Decode(src []byte) ([]byte, error) {
	s := strings.TrimPrefix(strings.TrimSpace(string(src)), "0x")
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("hex string of odd length: %d", len(s))
	}
	return hex.DecodeString(s)
}

func (b Bytes) MarshalText() ([]byte, error) {
	return Encode(b), nil
}

func (b *Bytes) UnmarshalText(src []byte) error {
	res, err := Decode(src)
	if err == nil {
		*b = res
	}
	return err
}

func (b Bytes) String() string {
	return string(Encode(b))
}
