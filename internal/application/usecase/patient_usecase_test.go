package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	appinv "github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/application/usecase"
	"github.com/jhoicas/rhu-inventory-api/internal/domain"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/lock"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/memory"
)

func newPatientUseCase(t *testing.T) *usecase.PatientUseCase {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repositories()
	tx := memory.NewTxRunner(store)
	clock := ports.FixedClock{T: time.Date(2026, time.October, 15, 8, 0, 0, 0, time.UTC)}
	ledger := appinv.NewLedgerUseCase(appinv.LedgerDeps{
		Tx: tx, Locker: lock.NewLocal(), Clock: clock,
		Batches: repos.Batches, Ledger: repos.Transactions, Adjustments: repos.Adjustments,
	})
	require.NoError(t, memory.SeedDemo(context.Background(), store, ledger))
	return usecase.NewPatientUseCase(repos.Patients, tx, clock)
}

func TestPatientCreate_AssignsNextNumber(t *testing.T) {
	uc := newPatientUseCase(t)

	p, err := uc.Create(context.Background(), dto.CreatePatientRequest{
		FirstName: "Pedro", LastName: "Garcia", Sex: "m", BirthDate: "1958-07-04", Barangay: "Tabon",
	})
	require.NoError(t, err)
	assert.Equal(t, "PT-2026-0003", p.PatientNumber)
	assert.Equal(t, "Garcia, Pedro", p.FullName)
	assert.Equal(t, "M", p.Sex)
	assert.Equal(t, "1958-07-04", p.BirthDate)

	manual, err := uc.Create(context.Background(), dto.CreatePatientRequest{PatientNumber: "LEGACY-17", LastName: "Ramos"})
	require.NoError(t, err)
	assert.Equal(t, "LEGACY-17", manual.PatientNumber)
	assert.Equal(t, "Ramos", manual.FullName)

	_, err = uc.Create(context.Background(), dto.CreatePatientRequest{PatientNumber: "PT-2026-0001", LastName: "Dup"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestPatientCreate_Validation(t *testing.T) {
	uc := newPatientUseCase(t)
	cases := map[string]dto.CreatePatientRequest{
		"last_name":  {FirstName: "NoLast"},
		"sex":        {LastName: "X", Sex: "unknown"},
		"birth_date": {LastName: "X", BirthDate: "04/07/1958"},
	}
	for field, in := range cases {
		t.Run(field, func(t *testing.T) {
			_, err := uc.Create(context.Background(), in)
			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, field, verr.Field)
		})
	}
}

func TestPatientUpdate_KeepsNumber(t *testing.T) {
	uc := newPatientUseCase(t)
	contact := "0917-555-0101"
	empty := " "

	p, err := uc.Update(context.Background(), "patient-2", dto.UpdatePatientRequest{Contact: &contact})
	require.NoError(t, err)
	assert.Equal(t, "PT-2026-0002", p.PatientNumber)
	assert.Equal(t, contact, p.Contact)

	_, err = uc.Update(context.Background(), "patient-2", dto.UpdatePatientRequest{LastName: &empty})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = uc.Update(context.Background(), "nobody", dto.UpdatePatientRequest{Contact: &contact})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPatientList_Search(t *testing.T) {
	uc := newPatientUseCase(t)

	out, err := uc.List(context.Background(), dto.PatientListRequest{Search: "mendoza"})
	require.NoError(t, err)
	require.Len(t, out.Patients, 1)
	assert.Equal(t, "PT-2026-0002", out.Patients[0].PatientNumber)

	out, err = uc.List(context.Background(), dto.PatientListRequest{Barangay: "Poblacion"})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Page.Total)

	out, err = uc.List(context.Background(), dto.PatientListRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Page.Total)
	assert.Equal(t, 20, out.Page.Limit)
}
