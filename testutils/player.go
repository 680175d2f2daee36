package testutils

import (
	"testing"

	"github.com/lineupzk/lineup-go/player"
	"github.com/lineupzk/lineup-go/types"
)

// TestPlayer returns a complete player metadata fixture.
func TestPlayer(name string, jersey uint8) *player.Player {
	return &player.Player{
		Name:            name,
		JerseyNumber:    jersey,
		Description:     "test player",
		ExternalURL:     "https://example.com/" + name,
		Image:           "https://example.com/" + name + ".jpg",
		Tier:            1,
		OverallRating:   80,
		SkillMultiplier: 1,
		Skill: player.Skill{
			Speed:     70,
			Shooting:  70,
			Passing:   70,
			Dribbling: 70,
			Defense:   70,
			Physical:  70,
		},
		Attributes: []player.Attribute{
			{DisplayType: "Physical", TraitType: "Height", Value: 180},
		},
	}
}

// PlayerContentHash derives the mintable content hash of a test player.
func PlayerContentHash(t *testing.T, p *player.Player) types.ContentID {
	t.Helper()
	stats, err := p.CID()
	if err != nil {
		t.Fatal("failed to compute player CID:", err)
	}
	return stats.ContentHash()
}
