// Package cli implementa bbctl, la herramienta de línea de comandos para evaluar
// compatibilidad y asignaciones sin levantar la API.
package cli

import (
	"github.com/spf13/cobra"
)

// VersionInfo datos de compilación inyectados por ldflags.
type VersionInfo struct {
	Version string
	Commit  string
	Date    string
}

// App aplicación CLI con sus comandos registrados.
type App struct {
	rootCmd *cobra.Command

	// output: text o yaml
	output string

	versionInfo VersionInfo
}

// New crea la aplicación CLI.
func New() *App {
	app := &App{}
	app.setupRootCmd()
	return app
}

// Execute ejecuta el comando raíz.
func (a *App) Execute() error {
	return a.rootCmd.Execute()
}

// SetVersion fija la información que muestra el comando version.
func (a *App) SetVersion(version, commit, date string) {
	a.versionInfo = VersionInfo{Version: version, Commit: commit, Date: date}
}

// RootCmd expone el comando raíz (tests).
func (a *App) RootCmd() *cobra.Command {
	return a.rootCmd
}

func (a *App) setupRootCmd() {
	a.rootCmd = &cobra.Command{
		Use:   "bbctl",
		Short: "Herramientas offline del banco de sangre",
		Long: `bbctl consulta la tabla de compatibilidad ABO/Rh y ejecuta el asignador
sobre un snapshot de inventario en YAML, sin base de datos.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	a.rootCmd.PersistentFlags().StringVarP(&a.output, "output", "o", "text",
		"Formato de salida: text o yaml")

	a.rootCmd.AddCommand(
		NewCompatCmd(a),
		NewMatchCmd(a),
		NewVersionCmd(a),
	)
}
