package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "notes", cmd.Use)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"register", "login", "logout", "whoami", "list", "add", "show", "edit", "delete", "tags", "health"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)

	require.NotNil(t, cmd.PersistentFlags().Lookup("api-url"))
	require.NotNil(t, cmd.PersistentFlags().Lookup("token-file"))
}

func TestAPIURLFromEnvironment(t *testing.T) {
	t.Setenv("NOTES_API_URL", "http://notes.internal:8080")
	cmd := NewRootCommand()
	assert.Equal(t, "http://notes.internal:8080", cmd.PersistentFlags().Lookup("api-url").DefValue)
}

func TestEditCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	editCmd, _, err := cmd.Find([]string{"edit"})
	require.NoError(t, err)

	for _, name := range []string{"title", "description", "tags", "date", "clear-date"} {
		assert.NotNil(t, editCmd.Flags().Lookup(name), "edit should have --%s", name)
	}
}
