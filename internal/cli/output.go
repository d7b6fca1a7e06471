package cli

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

func (a *App) wantsYAML() (bool, error) {
	switch a.output {
	case "", "text":
		return false, nil
	case "yaml":
		return true, nil
	}
	return false, fmt.Errorf("formato de salida desconocido %q (text|yaml)", a.output)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("codificar yaml: %w", err)
	}
	return enc.Close()
}
