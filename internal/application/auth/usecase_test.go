package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/application/auth"
	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	appinv "github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/lock"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/memory"
	"github.com/jhoicas/rhu-inventory-api/pkg/jwt"
)

const testSecret = "test-secret-key"

func newAuthUseCase(t *testing.T) *auth.AuthUseCase {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	clock := ports.FixedClock{T: time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC)}
	ledger := appinv.NewLedgerUseCase(appinv.LedgerDeps{
		Tx: memory.NewTxRunner(store), Locker: lock.NewLocal(), Clock: clock,
		Batches: repos.Batches, Ledger: repos.Transactions, Adjustments: repos.Adjustments,
	})
	require.NoError(t, memory.SeedDemo(context.Background(), store, ledger))
	return auth.NewAuthUseCase(store.Users(), store.Units(), clock, auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "rhu-inventory-test",
	})
}

func TestLogin_IssuesTokenWithSession(t *testing.T) {
	uc := newAuthUseCase(t)

	out, err := uc.Login(context.Background(), dto.LoginRequest{Username: " Pharmacist ", Password: memory.DemoPassword})
	require.NoError(t, err)
	assert.Equal(t, "user-pharmacist", out.User.ID)
	assert.Contains(t, out.Capabilities, "inventory:adjust")
	assert.NotContains(t, out.Capabilities, "users:manage")

	claims, err := jwt.Parse(testSecret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, "user-pharmacist", claims.UserID)
	assert.Equal(t, entity.RolePharmacist, claims.Role)
	assert.Equal(t, "unit-rhu", claims.UnitID)
}

func TestLogin_SameErrorForUnknownUserAndWrongPassword(t *testing.T) {
	uc := newAuthUseCase(t)

	_, err := uc.Login(context.Background(), dto.LoginRequest{Username: "ghost", Password: "whatever1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "wrong-password"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegisterUser(t *testing.T) {
	uc := newAuthUseCase(t)
	ctx := context.Background()

	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Username: "MidwifeA", Password: "s3cure-pass", Name: "Carmen Aquino", Role: entity.RoleMedicalStaff, UnitID: "unit-bhs-tabon",
	})
	require.NoError(t, err)
	assert.Equal(t, "midwifea", u.Username)
	assert.Equal(t, entity.UserActive, u.Status)

	login, err := uc.Login(ctx, dto.LoginRequest{Username: "midwifea", Password: "s3cure-pass"})
	require.NoError(t, err)
	assert.Equal(t, []string{"inventory:read", "patients:read", "patients:write"}, login.Capabilities)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "midwifeA", Password: "another-pass", Role: entity.RoleMedicalStaff})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	cases := map[string]dto.RegisterRequest{
		"username": {Password: "long-enough", Role: entity.RoleAdmin},
		"password": {Username: "x", Password: "short", Role: entity.RoleAdmin},
		"role":     {Username: "x", Password: "long-enough", Role: "janitor"},
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := uc.RegisterUser(ctx, in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
		})
	}

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "y", Password: "long-enough", Role: entity.RoleAdmin, UnitID: "unit-x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMenu_HidesWhatTheRoleCannotUse(t *testing.T) {
	uc := newAuthUseCase(t)

	keys := func(role string) []string {
		var out []string
		for _, it := range uc.Menu(role).Items {
			out = append(out, it.Key)
		}
		return out
	}
	assert.Equal(t, []string{"dashboard", "patients", "inventory", "procurement", "reports", "users"}, keys(entity.RoleAdmin))
	assert.Equal(t, []string{"dashboard", "patients", "inventory"}, keys(entity.RoleMedicalStaff))
	assert.Equal(t, []string{"dashboard"}, keys("visitor"))

	nurse := uc.Menu(entity.RoleMedicalStaff).Items[2]
	require.Len(t, nurse.Children, 2)
	assert.Equal(t, "inventory.items", nurse.Children[0].Key)
	assert.Equal(t, "inventory.ledger", nurse.Children[1].Key)

	me := uc.Me("user-nurse", entity.RoleMedicalStaff, "unit-rhu")
	assert.Equal(t, []string{"inventory:read", "patients:read", "patients:write"}, me.Capabilities)
}
