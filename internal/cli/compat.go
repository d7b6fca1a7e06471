package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jhoicas/bloodbank-api/internal/application/dto"
	"github.com/jhoicas/bloodbank-api/internal/application/requests"
)

type compatRow struct {
	BloodType      string   `yaml:"blood_type"`
	CanReceiveFrom []string `yaml:"can_receive_from"`
	CanDonateTo    []string `yaml:"can_donate_to"`
}

// NewCompatCmd crea el comando compat [blood_type].
func NewCompatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "compat [blood_type]",
		Short: "Muestra la tabla de compatibilidad o la fila de un grupo",
		Example: `  bbctl compat
  bbctl compat "AB-"
  bbctl compat o+ -o yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			asYAML, err := app.wantsYAML()
			if err != nil {
				return err
			}

			var rows []dto.CompatibilityResponse
			if len(args) == 1 {
				one, err := requests.Compatibility(args[0])
				if err != nil {
					return fmt.Errorf("grupo sanguíneo %q: %w", args[0], err)
				}
				rows = []dto.CompatibilityResponse{*one}
			} else {
				rows = requests.CompatibilityTable()
			}

			if asYAML {
				out := make([]compatRow, len(rows))
				for i, r := range rows {
					out[i] = compatRow(r)
				}
				return writeYAML(cmd.OutOrStdout(), out)
			}

			w := cmd.OutOrStdout()
			for _, r := range rows {
				fmt.Fprintf(w, "%-4s recibe de: %-24s dona a: %s\n",
					r.BloodType, strings.Join(r.CanReceiveFrom, " "), strings.Join(r.CanDonateTo, " "))
			}
			return nil
		},
	}
}
