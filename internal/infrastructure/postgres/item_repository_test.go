package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

func TestItemWhere_CategoryIgnoresCase(t *testing.T) {
	w := itemWhere(repository.ItemFilter{Category: " Antibiotic ", SubType: "supplied"})

	assert.Equal(t, " WHERE lower(category) = lower($1) AND sub_type = $2", w.sql())
	assert.Equal(t, []any{"Antibiotic", "supplied"}, w.args)
	assert.Equal(t, " ORDER BY code", itemListOrder)
}

func TestItemWhere_Search(t *testing.T) {
	w := itemWhere(repository.ItemFilter{Search: "PARA"})

	assert.Equal(t, " WHERE (lower(code) LIKE $1 OR lower(name) LIKE $1 OR lower(category) LIKE $1)", w.sql())
	assert.Equal(t, []any{"%para%"}, w.args)
}
