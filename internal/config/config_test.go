package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lunarlabs/redpocket/internal/money"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.hcl"))
	require.NoError(t, err)

	assert.Equal(t, "You", cfg.Game.UserName)
	assert.Equal(t, []string{"Xiao Ming", "Auntie May", "Uncle Chen"}, cfg.Roster())
	assert.Equal(t, 8.88, cfg.Game.PotMin)
	assert.Equal(t, 38.88, cfg.Game.PotMax)
	assert.Len(t, cfg.Game.Regions, 4)
}

func TestLoadMergesOverDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "game.hcl")
	src := `
game {
  user_name = "Mei"
  pot_min   = 5.00
  pot_max   = 10.00
  regions   = ["Vietnam"]
}

member "Cousin Lily" {
  persona = "studious"
}

member "Grandpa Wu" {}

server {
  address = ":9999"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Mei", cfg.Game.UserName)
	assert.Equal(t, []string{"Cousin Lily", "Grandpa Wu"}, cfg.Roster())
	assert.Equal(t, []string{"Cousin Lily (studious)", "Grandpa Wu"}, cfg.Personas())
	assert.Equal(t, []string{"Vietnam"}, cfg.Game.Regions)
	assert.Equal(t, ":9999", cfg.Server.Address)

	// Untouched settings keep their defaults.
	assert.Equal(t, 0.50, cfg.Game.ShareFloor)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
}

func TestLoadRejectsInvalidPotRange(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "game.hcl")
	src := `
game {
  pot_min = 20.00
  pot_max = 10.00
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pot_max")
}

func TestLoadRejectsMalformedHCL(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "game.hcl")
	require.NoError(t, os.WriteFile(path, []byte("game { this is not hcl"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestSessionConfigConvertsDollarsToCents(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	sc := cfg.SessionConfig(42)

	assert.Equal(t, money.FromCents(888), sc.PotMin)
	assert.Equal(t, money.FromCents(3888), sc.PotMax)
	assert.Equal(t, money.FromCents(50), sc.ShareFloor)
	assert.Equal(t, int64(42), sc.Seed)
	assert.Equal(t, []string{"Xiao Ming", "Auntie May", "Uncle Chen"}, sc.Roster)
}
