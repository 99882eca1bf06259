package postgres

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

func TestWhere_NumbersPlaceholdersInOrder(t *testing.T) {
	var w where
	w.add("(lower(code) LIKE ? OR lower(name) LIKE ?)", like("  Para "))
	w.add("sub_type = ?", "donated")

	assert.Equal(t, " WHERE (lower(code) LIKE $1 OR lower(name) LIKE $1) AND sub_type = $2", w.sql())
	assert.Equal(t, []any{"%para%", "donated"}, w.args)

	suffix, args := w.page(repository.Page{Limit: 20, Offset: 40})
	assert.Equal(t, " LIMIT $3 OFFSET $4", suffix)
	assert.Equal(t, []any{"%para%", "donated", 20, 40}, args)
	assert.Len(t, w.args, 2, "page must not grow the filter args")
}

func TestWhere_EmptyAndUnlimited(t *testing.T) {
	var w where
	assert.Equal(t, "", w.sql())

	suffix, args := w.page(repository.Page{})
	assert.Equal(t, " LIMIT $1 OFFSET $2", suffix)
	assert.Nil(t, args[0], "LIMIT NULL returns every row")
	assert.Equal(t, 0, args[1])
}

func TestWrap_MapsPgErrors(t *testing.T) {
	assert.NoError(t, wrap("op", nil))
	assert.ErrorIs(t, wrap("get item", pgx.ErrNoRows), domain.ErrNotFound)

	dup := wrap("insert item", &pgconn.PgError{Code: "23505"})
	assert.ErrorIs(t, dup, domain.ErrDuplicate)
	assert.Contains(t, dup.Error(), "insert item")

	other := wrap("list items", errors.New("boom"))
	assert.EqualError(t, other, "list items: boom")
}

func TestExpiryCutoff(t *testing.T) {
	manila := time.FixedZone("PHT", 8*3600)
	cases := []struct {
		at   time.Time
		want string
	}{
		{time.Date(2026, 3, 10, 0, 0, 0, 0, manila), "2026-03-10"},
		{time.Date(2026, 3, 10, 9, 30, 0, 0, manila), "2026-03-11"},
		{time.Date(2026, 12, 31, 23, 59, 0, 0, manila), "2027-01-01"},
	}
	for _, tc := range cases {
		t.Run(fmt.Sprint(tc.at), func(t *testing.T) {
			assert.Equal(t, tc.want, expiryCutoff(tc.at).Format("2006-01-02"))
		})
	}
}
