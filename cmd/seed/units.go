package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

// parseUnits lee code,name,municipality,province desde un CSV en Windows-1252.
// La primera fila es encabezado; filas sin código o nombre se omiten.
func parseUnits(r io.Reader) ([]entity.AdministrativeUnit, error) {
	cr := csv.NewReader(transform.NewReader(r, charmap.Windows1252.NewDecoder()))
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("leer CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil
	}

	seen := make(map[string]bool)
	var units []entity.AdministrativeUnit
	for _, rec := range records[1:] {
		if len(rec) < 2 {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(rec[0]))
		name := strings.TrimSpace(rec[1])
		if code == "" || name == "" || seen[code] {
			continue
		}
		seen[code] = true
		u := entity.AdministrativeUnit{
			ID:   "unit-" + strings.ToLower(code),
			Code: code,
			Name: name,
		}
		if len(rec) > 2 {
			u.Municipality = strings.TrimSpace(rec[2])
		}
		if len(rec) > 3 {
			u.Province = strings.TrimSpace(rec[3])
		}
		units = append(units, u)
	}
	return units, nil
}

// writeUnitsMigration escribe una migración goose idempotente (upsert por código).
func writeUnitsMigration(w io.Writer, units []entity.AdministrativeUnit) error {
	var b strings.Builder
	b.WriteString("-- +goose Up\n")
	b.WriteString("-- Unidades administrativas (RHU y estaciones de barangay)\n")
	if len(units) > 0 {
		b.WriteString("INSERT INTO administrative_units (id, code, name, municipality, province) VALUES\n")
		for i, u := range units {
			fmt.Fprintf(&b, "  ('%s', '%s', '%s', '%s', '%s')", escapeSQL(u.ID), escapeSQL(u.Code),
				escapeSQL(u.Name), escapeSQL(u.Municipality), escapeSQL(u.Province))
			if i < len(units)-1 {
				b.WriteString(",\n")
			} else {
				b.WriteString("\n")
			}
		}
		b.WriteString("ON CONFLICT (code) DO UPDATE SET name = EXCLUDED.name,\n")
		b.WriteString("  municipality = EXCLUDED.municipality, province = EXCLUDED.province;\n")
	}
	b.WriteString("\n-- +goose Down\n")
	if len(units) > 0 {
		codes := make([]string, len(units))
		for i, u := range units {
			codes[i] = "'" + escapeSQL(u.Code) + "'"
		}
		fmt.Fprintf(&b, "DELETE FROM administrative_units WHERE code IN (%s);\n", strings.Join(codes, ", "))
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
