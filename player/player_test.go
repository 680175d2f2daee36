package player

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_Load(t *testing.T) {
	t.Run("round trip through canonical form", func(t *testing.T) {
		p := testPlayer()
		data, err := p.CanonicalJSON()
		require.NoError(t, err)

		path := filepath.Join(t.TempDir(), "player.json")
		require.NoError(t, os.WriteFile(path, data, 0600))

		p2, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, p, p2)

		// reloaded document has the same CID
		s1, err := p.CID()
		require.NoError(t, err)
		s2, err := p2.CID()
		require.NoError(t, err)
		require.Equal(t, s1.CID, s2.CID)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.ErrorContains(t, err, "reading player metadata")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0600))
		_, err := Load(path)
		require.ErrorContains(t, err, "parsing player metadata")
	})
}
