// seed prepara datos iniciales de la base:
//
//	go run ./cmd/seed units [ruta/units.csv]   genera la migración con las unidades administrativas
//	go run ./cmd/seed admin <usuario> <password> [unit_id]   crea un administrador en Postgres
//
// El CSV de unidades viene del registro provincial, exportado en Windows-1252 con columnas
// code,name,municipality,province. Escribe internal/infrastructure/postgres/migrations/00002_seed_units.sql.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jhoicas/rhu-inventory-api/internal/application/auth"
	"github.com/jhoicas/rhu-inventory-api/internal/application/dto"
	"github.com/jhoicas/rhu-inventory-api/internal/application/ports"
	"github.com/jhoicas/rhu-inventory-api/internal/domain/entity"
	"github.com/jhoicas/rhu-inventory-api/internal/infrastructure/postgres"
	"github.com/jhoicas/rhu-inventory-api/pkg/config"
)

func main() {
	if len(os.Args) < 2 {
		usage()
	}
	var err error
	switch os.Args[1] {
	case "units":
		csvPath := "units.csv"
		if len(os.Args) > 2 {
			csvPath = os.Args[2]
		}
		err = seedUnits(csvPath)
	case "admin":
		if len(os.Args) < 4 {
			usage()
		}
		unitID := ""
		if len(os.Args) > 4 {
			unitID = os.Args[4]
		}
		err = seedAdmin(os.Args[2], os.Args[3], unitID)
	default:
		usage()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed %s: %v\n", os.Args[1], err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "uso: seed units [units.csv] | seed admin <usuario> <password> [unit_id]")
	os.Exit(2)
}

func seedUnits(csvPath string) error {
	f, err := os.Open(csvPath)
	if err != nil {
		return fmt.Errorf("abrir CSV: %w", err)
	}
	defer f.Close()

	units, err := parseUnits(f)
	if err != nil {
		return err
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "00002_seed_units.sql")
	out, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("crear archivo: %w", err)
	}
	defer out.Close()

	if err := writeUnitsMigration(out, units); err != nil {
		return err
	}
	fmt.Printf("Generado %s: %d unidades\n", outPath, len(units))
	return nil
}

func seedAdmin(username, password, unitID string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()

	uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), postgres.NewUnitRepository(pool),
		ports.ZoneClock{Loc: cfg.App.Location()}, auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Username: username,
		Password: password,
		Name:     "Administrator",
		Role:     entity.RoleAdmin,
		UnitID:   unitID,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Administrador %s creado (id %s)\n", user.Username, user.ID)
	return nil
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}
