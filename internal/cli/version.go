package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCmd crea el comando version.
func NewVersionCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Muestra la versión",
		RunE: func(cmd *cobra.Command, args []string) error {
			v := app.versionInfo
			if v.Version == "" {
				v.Version = "dev"
			}
			if v.Commit == "" {
				v.Commit = "unknown"
			}
			if v.Date == "" {
				v.Date = "unknown"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "bbctl version %s\n", v.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "commit: %s\n", v.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "built: %s\n", v.Date)
			return nil
		},
	}
}
