package cli

import "github.com/spf13/cobra"

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse",
		Short: "Browse sessions and book rooms interactively",
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := a.authedClient(cmd.Context())
			if err != nil {
				return err
			}
			return apiError(a.browse(cmd.Context(), c))
		},
	}
}
