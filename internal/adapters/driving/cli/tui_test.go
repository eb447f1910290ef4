package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTUICmd_Use(t *testing.T) {
	assert.Equal(t, "dashboard", tuiCmd.Use)
	assert.Contains(t, tuiCmd.Aliases, "tui")
}

func TestTUICmd_Long(t *testing.T) {
	assert.Contains(t, tuiCmd.Long, "interactive terminal dashboard")
	assert.Contains(t, tuiCmd.Long, "Controls:")
}

func TestTUICmd_FindByAlias(t *testing.T) {
	cmd, _, err := rootCmd.Find([]string{"tui"})
	assert.NoError(t, err)
	assert.Equal(t, tuiCmd, cmd)
}
