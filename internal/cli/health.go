package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func NewHealthCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, rootOpts)
			if err != nil {
				return err
			}

			msg, err := a.client.Health(cmd.Context())
			if err != nil {
				return apiFailure("health", err)
			}

			data := map[string]string{"server": rootOpts.APIURL, "message": msg}
			return a.out.Success(data, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "%s: %s\n", rootOpts.APIURL, msg)
				return err
			})
		},
	}
}
