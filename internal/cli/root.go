// Package cli implements the collab-booking command tree.
package cli

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/example/collab-booking/internal/config"
)

func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(wireApp(viper.New()))
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "collab-booking",
		Short:        "Book collaboration rooms for today's sessions",
		Long:         "collab-booking runs the room booking server and lets you log in, browse today's sessions, and book collaboration rooms from the terminal.",
		SilenceUsage: true,
	}

	v := a.viper
	rootCmd.PersistentFlags().String("server", "", "booking server URL (env COLLAB_SERVER, default http://localhost:8080)")
	rootCmd.PersistentFlags().String("token-file", "", "path of the stored login token (env COLLAB_TOKEN_FILE)")
	_ = v.BindPFlag(config.KeyServer, rootCmd.PersistentFlags().Lookup("server"))
	_ = v.BindPFlag(config.KeyTokenFile, rootCmd.PersistentFlags().Lookup("token-file"))

	rootCmd.AddCommand(
		newVersionCmd(),
		newServeCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newWhoamiCmd(a),
		newSessionsCmd(a),
		newRoomsCmd(a),
		newBookCmd(a),
		newBookingsCmd(a),
		newBrowseCmd(a),
	)

	return rootCmd
}
