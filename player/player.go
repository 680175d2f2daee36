/*
Package player models the off-chain player metadata and derives its
content identifiers. The content hash a player token is minted with is
the digest of the IPFS CID of the canonical metadata JSON, so the
proving program can recompute it from the same document.
*/
package player

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// Player is the metadata document behind a player token. Field order is
// the canonical serialization order, do not reorder.
type Player struct {
	Name            string      `json:"name"`
	JerseyNumber    uint8       `json:"jersey_number"`
	Description     string      `json:"description"`
	ExternalURL     string      `json:"external_url"`
	Image           string      `json:"image"`
	Tier            uint8       `json:"tier"`
	OverallRating   Number      `json:"overall_rating"`
	SkillMultiplier Number      `json:"skill_multiplier"`
	Skill           Skill       `json:"skill"`
	Attributes      []Attribute `json:"attributes"`
}

/*
Number is a float field of the metadata document. The canonical
serialization keeps a decimal point on integral values ("94.0", never
"94") and writes exponents without a plus sign or zero padding - the
rendering the original metadata pipeline produced, which the CIDs of
already minted tokens are bound to. encoding/json's default float
rendering drops the ".0" and would silently change every content hash.
*/
type Number float64

func (n Number) MarshalJSON() ([]byte, error) {
	f := float64(n)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return nil, fmt.Errorf("metadata number must be finite, got %v", f)
	}
	abs := math.Abs(f)
	if f == 0 || (abs >= 1e-5 && abs < 1e16) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}
		return []byte(s), nil
	}
	mant, exp, _ := strings.Cut(strconv.FormatFloat(f, 'e', -1, 64), "e")
	sign := ""
	if exp = strings.TrimPrefix(exp, "+"); strings.HasPrefix(exp, "-") {
		sign, exp = "-", exp[1:]
	}
	return []byte(mant + "e" + sign + strings.TrimLeft(exp, "0")), nil
}

type Skill struct {
	Speed       uint8 `json:"speed"`
	Shooting    uint8 `json:"shooting"`
	Passing     uint8 `json:"passing"`
	Dribbling   uint8 `json:"dribbling"`
	Defense     uint8 `json:"defense"`
	Physical    uint8 `json:"physical"`
	GoalTending uint8 `json:"goal_tending"`
}

type Attribute struct {
	DisplayType string `json:"display_type"`
	TraitType   string `json:"trait_type"`
	Value       Number `json:"value"`
}

/*
CanonicalJSON returns the canonical serialization of the metadata:
compact, struct field order, no HTML escaping. The CID is computed over
exactly these bytes, any other rendering of the document does not
identify the same player.
*/
func (p *Player) CanonicalJSON() ([]byte, error) {
	buf := bytes.Buffer{}
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(p); err != nil {
		return nil, fmt.Errorf("serializing player metadata: %w", err)
	}
	// the encoder terminates the stream with a newline which is not
	// part of the document
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Load reads a player metadata document from a JSON file.
func Load(path string) (*Player, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading player metadata: %w", err)
	}
	p := &Player{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing player metadata: %w", err)
	}
	return p, nil
}
