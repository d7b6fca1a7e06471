package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jhoicas/bloodbank-api/internal/domain/entity"
	"github.com/jhoicas/bloodbank-api/internal/domain/matching"
)

// Snapshot inventario leído desde YAML. El orden de units se respeta tal cual
// (se asume ya ordenado por vencimiento).
//
//	units:
//	  - id: u-1
//	    blood_type: O-
//	    quantity_units: 2
//	    status: available
type Snapshot struct {
	Units []SnapshotUnit `yaml:"units"`
}

// SnapshotUnit unidad del snapshot. status vacío equivale a available.
type SnapshotUnit struct {
	ID            string `yaml:"id"`
	BloodType     string `yaml:"blood_type"`
	QuantityUnits int    `yaml:"quantity_units"`
	Status        string `yaml:"status"`
}

type matchResult struct {
	BloodType         string   `yaml:"blood_type"`
	UnitsNeeded       int      `yaml:"units_needed"`
	Outcome           string   `yaml:"outcome"`
	RequestStatus     string   `yaml:"request_status"`
	AvailableQuantity int      `yaml:"available_quantity"`
	CompatibleTypes   []string `yaml:"compatible_types"`
	MatchedUnitIDs    []string `yaml:"matched_unit_ids"`
}

// LoadSnapshot lee y valida un snapshot de inventario.
func LoadSnapshot(path string) ([]entity.InventoryUnit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("leer snapshot: %w", err)
	}
	return ParseSnapshot(data)
}

// ParseSnapshot decodifica el YAML y lo convierte en unidades de inventario.
func ParseSnapshot(data []byte) ([]entity.InventoryUnit, error) {
	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("snapshot yaml: %w", err)
	}
	units := make([]entity.InventoryUnit, 0, len(snap.Units))
	for i, u := range snap.Units {
		bt, err := entity.ParseBloodType(u.BloodType)
		if err != nil {
			return nil, fmt.Errorf("unidad %d (%s): %w", i, u.ID, err)
		}
		status := entity.UnitStatus(strings.ToLower(strings.TrimSpace(u.Status)))
		if status == "" {
			status = entity.UnitStatusAvailable
		}
		if !status.Valid() {
			return nil, fmt.Errorf("unidad %d (%s): estado desconocido %q", i, u.ID, u.Status)
		}
		if u.QuantityUnits < 0 {
			return nil, fmt.Errorf("unidad %d (%s): quantity_units negativo", i, u.ID)
		}
		id := u.ID
		if id == "" {
			id = fmt.Sprintf("unit-%d", i+1)
		}
		units = append(units, entity.InventoryUnit{
			ID:            id,
			BloodType:     bt,
			QuantityUnits: u.QuantityUnits,
			Status:        status,
		})
	}
	return units, nil
}

// NewMatchCmd crea el comando match.
func NewMatchCmd(app *App) *cobra.Command {
	var (
		inventoryPath string
		bloodType     string
		unitsNeeded   int
	)

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Ejecuta el asignador sobre un snapshot de inventario",
		Example: `  bbctl match --inventory snapshot.yaml --blood-type A+ --units 3
  bbctl match -i snapshot.yaml -b AB- -n 1 -o yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			asYAML, err := app.wantsYAML()
			if err != nil {
				return err
			}
			if unitsNeeded < 1 {
				return errors.New("--units debe ser mayor que cero")
			}
			bt, err := entity.ParseBloodType(bloodType)
			if err != nil {
				return fmt.Errorf("--blood-type %q: %w", bloodType, err)
			}
			snapshot, err := LoadSnapshot(inventoryPath)
			if err != nil {
				return err
			}

			alloc, err := matching.Allocate(bt, unitsNeeded, snapshot)
			if err != nil {
				return err
			}

			res := matchResult{
				BloodType:         bt.String(),
				UnitsNeeded:       unitsNeeded,
				Outcome:           string(alloc.Outcome),
				RequestStatus:     string(alloc.Outcome.RequestStatus()),
				AvailableQuantity: alloc.AvailableQuantity,
				MatchedUnitIDs:    alloc.MatchedUnitIDs,
			}
			for _, t := range alloc.CompatibleTypes {
				res.CompatibleTypes = append(res.CompatibleTypes, t.String())
			}

			if asYAML {
				return writeYAML(cmd.OutOrStdout(), res)
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "solicitud:      %d x %s\n", res.UnitsNeeded, res.BloodType)
			fmt.Fprintf(w, "compatibles:    %s\n", strings.Join(res.CompatibleTypes, " "))
			fmt.Fprintf(w, "disponible:     %d\n", res.AvailableQuantity)
			fmt.Fprintf(w, "resultado:      %s\n", res.Outcome)
			fmt.Fprintf(w, "unidades:       %s\n", strings.Join(res.MatchedUnitIDs, " "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&inventoryPath, "inventory", "i", "", "Snapshot de inventario en YAML")
	cmd.Flags().StringVarP(&bloodType, "blood-type", "b", "", "Grupo sanguíneo del receptor")
	cmd.Flags().IntVarP(&unitsNeeded, "units", "n", 1, "Unidades solicitadas")
	_ = cmd.MarkFlagRequired("inventory")
	_ = cmd.MarkFlagRequired("blood-type")

	return cmd
}
