// Package cli implements the notes command-line client.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const defaultAPIURL = "http://localhost:5000"

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose   bool
	Format    string // "text" | "json" | "yaml"
	APIURL    string
	TokenFile string
}

// NewRootCommand creates the root command of the notes CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	apiURL := os.Getenv("NOTES_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}

	cmd := &cobra.Command{
		Use:           "notes",
		Short:         "Personal notes from the terminal",
		Long:          "Register, sign in and manage your notes on a notes API server.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !isValidFormat(opts.Format) {
				return NewExitError(ExitCommandError, fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, ValidFormats))
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "output format (text|json|yaml)")
	cmd.PersistentFlags().StringVar(&opts.APIURL, "api-url", apiURL, "notes API base URL (env NOTES_API_URL)")
	cmd.PersistentFlags().StringVar(&opts.TokenFile, "token-file", "", "session file (default $XDG_CONFIG_HOME/notes/session.json)")

	cmd.AddCommand(NewRegisterCommand(opts))
	cmd.AddCommand(NewLoginCommand(opts))
	cmd.AddCommand(NewLogoutCommand(opts))
	cmd.AddCommand(NewWhoamiCommand(opts))
	cmd.AddCommand(NewListCommand(opts))
	cmd.AddCommand(NewAddCommand(opts))
	cmd.AddCommand(NewShowCommand(opts))
	cmd.AddCommand(NewEditCommand(opts))
	cmd.AddCommand(NewDeleteCommand(opts))
	cmd.AddCommand(NewTagsCommand(opts))
	cmd.AddCommand(NewHealthCommand(opts))

	return cmd
}

func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}
