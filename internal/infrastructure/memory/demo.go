package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	appinv "github.com/jhoicas/rhu-inventory-api/internal/application/inventory"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/repository"
)

// DemoPassword is the password of every seeded demo account.
const DemoPassword = "rhu-demo-2026"

var demoUnits = []entity.AdministrativeUnit{
	{ID: "unit-rhu", Code: "RHU-01", Name: "Rural Health Unit I", Municipality: "San Isidro", Province: "Nueva Ecija"},
	{ID: "unit-bhs-poblacion", Code: "BHS-POB", Name: "BHS Poblacion", Municipality: "San Isidro", Province: "Nueva Ecija"},
	{ID: "unit-bhs-malapit", Code: "BHS-MAL", Name: "BHS Malapit", Municipality: "San Isidro", Province: "Nueva Ecija"},
	{ID: "unit-bhs-tabon", Code: "BHS-TAB", Name: "BHS Tabon", Municipality: "San Isidro", Province: "Nueva Ecija"},
}

var demoUsers = []struct{ username, name, role string }{
	{"admin", "System Administrator", entity.RoleAdmin},
	{"pharmacist", "Maria Santos, RPh", entity.RolePharmacist},
	{"storekeeper", "Jose Reyes", entity.RoleStorekeeper},
	{"procurement", "Ana Cruz", entity.RoleProcurement},
	{"nurse", "Liza Bautista, RN", entity.RoleMedicalStaff},
}

type demoBatch struct {
	lot       string
	qty       int64
	expiresIn int // days from seeding
	supplier  string
	cost      string
}

var demoItems = []struct {
	item    entity.InventoryItem
	batches []demoBatch
}{
	{
		item: entity.InventoryItem{ID: "item-paracetamol", Code: "MED-001", Name: "Paracetamol 500mg", Category: "Analgesic", SubType: entity.SubTypeSupplied, Unit: "tablet", ReorderLevel: 500},
		batches: []demoBatch{
			{"PCM-2401", 800, 400, "Unilab", "1.20"},
			{"PCM-2407", 1200, 620, "Unilab", "1.15"},
		},
	},
	{
		item: entity.InventoryItem{ID: "item-amoxicillin", Code: "MED-002", Name: "Amoxicillin 500mg", Category: "Antibiotic", SubType: entity.SubTypeSupplied, Unit: "capsule", ReorderLevel: 300},
		batches: []demoBatch{
			{"AMX-2312", 150, 90, "Pascual Laboratories", "3.50"},
			{"AMX-2405", 600, 500, "Pascual Laboratories", "3.40"},
		},
	},
	{
		item: entity.InventoryItem{ID: "item-ors", Code: "MED-003", Name: "Oral Rehydration Salts", Category: "Electrolyte", SubType: entity.SubTypeDonated, Unit: "sachet", ReorderLevel: 200},
		batches: []demoBatch{
			{"ORS-2209", 40, -20, "DOH Regional Office", "0"},
			{"ORS-2406", 300, 365, "DOH Regional Office", "0"},
		},
	},
	{
		item: entity.InventoryItem{ID: "item-metformin", Code: "MED-004", Name: "Metformin 500mg", Category: "Antidiabetic", SubType: entity.SubTypeSupplied, Unit: "tablet", ReorderLevel: 400},
		batches: []demoBatch{
			{"MET-2403", 250, 540, "Ritemed", "2.10"},
		},
	},
	{
		item: entity.InventoryItem{ID: "item-losartan", Code: "MED-005", Name: "Losartan 50mg", Category: "Antihypertensive", SubType: entity.SubTypeDonated, Unit: "tablet", ReorderLevel: 300},
		batches: []demoBatch{
			{"LOS-2402", 900, 700, "PhilHealth Konsulta", "0"},
		},
	},
	{
		item: entity.InventoryItem{ID: "item-gauze", Code: "SUP-001", Name: "Sterile Gauze Pad 4x4", Category: "Medical Supply", SubType: entity.SubTypeSupplied, Unit: "pack", ReorderLevel: 50},
		batches: []demoBatch{
			{"GZ-2311", 120, 900, "Medline", "45.00"},
		},
	},
	{
		item: entity.InventoryItem{ID: "item-syringe", Code: "SUP-002", Name: "Disposable Syringe 3mL", Category: "Medical Supply", SubType: entity.SubTypeSupplied, Unit: "piece", ReorderLevel: 200},
	},
}

var demoPatients = []entity.Patient{
	{ID: "patient-1", PatientNumber: "PT-2026-0001", FirstName: "Juan", LastName: "Dela Cruz", Sex: "M", Barangay: "Poblacion", PhilHealthNo: "12-345678901-2"},
	{ID: "patient-2", PatientNumber: "PT-2026-0002", FirstName: "Rosa", LastName: "Mendoza", Sex: "F", Barangay: "Malapit"},
}

// SeedDemo loads the demo catalogue: units, staff accounts, items with stock and a few patients.
// Stock enters through the ledger so every batch has its receiving entry.
func SeedDemo(ctx context.Context, s *Store, ledger *appinv.LedgerUseCase) error {
	now := ledger.Now()
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed: hash password: %w", err)
	}

	err = s.update(func(st *state) error {
		for _, u := range demoUnits {
			st.units[u.ID] = u
		}
		for _, u := range demoUsers {
			st.users["user-"+u.username] = entity.User{
				ID:           "user-" + u.username,
				Username:     u.username,
				PasswordHash: string(hash),
				Name:         u.name,
				Role:         u.role,
				UnitID:       "unit-rhu",
				Status:       entity.UserActive,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
		}
		for _, d := range demoItems {
			it := d.item
			it.CreatedAt, it.UpdatedAt = now, now
			st.items[it.ID] = it
		}
		for _, p := range demoPatients {
			p.CreatedAt, p.UpdatedAt = now, now
			st.patients[p.ID] = p
		}
		st.sequences[repository.SeqPatient] = int64(len(demoPatients))
		return nil
	})
	if err != nil {
		return fmt.Errorf("seed: base data: %w", err)
	}

	for _, d := range demoItems {
		for _, b := range d.batches {
			receipt := appinv.Receipt{
				ItemID:       d.item.ID,
				LotNumber:    b.lot,
				Quantity:     b.qty,
				ExpiryDate:   dateOnly(now.AddDate(0, 0, b.expiresIn)),
				ReceivedDate: now.AddDate(0, -6, 0),
				Supplier:     b.supplier,
				Location:     "Main Pharmacy",
				UnitCost:     decimal.RequireFromString(b.cost),
				TxType:       entity.TxTypeWarehouseReceiving,
				PerformedBy:  "user-admin",
				Reference:    "OPENING",
				Remarks:      "opening balance",
			}
			err := ledger.WithItems(ctx, []string{d.item.ID}, func(r ports.TxRepos) error {
				_, _, err := ledger.ReceiveTx(ctx, r, receipt)
				return err
			})
			if err != nil {
				return fmt.Errorf("seed: receive %s/%s: %w", d.item.Code, b.lot, err)
			}
		}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
