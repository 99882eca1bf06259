package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
)

func TestParseUnits_DecodesWindows1252(t *testing.T) {
	// 0xF1 es ñ en Windows-1252.
	raw := []byte("code,name,municipality,province\n" +
		"bhs-pb,BHS Pe\xf1ablanca,Pe\xf1ablanca,Cagayan\n" +
		"RHU1, Rural Health Unit I ,Pe\xf1ablanca,Cagayan\n" +
		"BHS-PB,Duplicado,,\n" +
		",Sin codigo,,\n")

	units, err := parseUnits(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, units, 2)

	assert.Equal(t, entity.AdministrativeUnit{
		ID:           "unit-bhs-pb",
		Code:         "BHS-PB",
		Name:         "BHS Peñablanca",
		Municipality: "Peñablanca",
		Province:     "Cagayan",
	}, units[0])
	assert.Equal(t, "Rural Health Unit I", units[1].Name)
}

func TestParseUnits_HeaderOnly(t *testing.T) {
	units, err := parseUnits(strings.NewReader("code,name\n"))
	require.NoError(t, err)
	assert.Empty(t, units)
}

func TestWriteUnitsMigration(t *testing.T) {
	var buf bytes.Buffer
	err := writeUnitsMigration(&buf, []entity.AdministrativeUnit{
		{ID: "unit-bhs-sta", Code: "BHS-STA", Name: "BHS Sta. Ana", Municipality: "O'Brien", Province: "Cagayan"},
		{ID: "unit-rhu1", Code: "RHU1", Name: "Rural Health Unit I"},
	})
	require.NoError(t, err)

	sql := buf.String()
	assert.True(t, strings.HasPrefix(sql, "-- +goose Up\n"))
	assert.Contains(t, sql, "('unit-bhs-sta', 'BHS-STA', 'BHS Sta. Ana', 'O''Brien', 'Cagayan'),\n")
	assert.Contains(t, sql, "('unit-rhu1', 'RHU1', 'Rural Health Unit I', '', '')\n")
	assert.Contains(t, sql, "ON CONFLICT (code) DO UPDATE")
	assert.Contains(t, sql, "DELETE FROM administrative_units WHERE code IN ('BHS-STA', 'RHU1');")
}
