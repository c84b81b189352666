package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
)

var defaultSectors = []string{
	"Usinagem",
	"Montagem",
	"Qualidade",
	"Manutenção",
}

// typeWithRule agrupa o tipo de equipamento com a regra de calibração padrão.
type typeWithRule struct {
	Name           string
	IntervalMonths int
	WarnDays       int
}

var defaultTypes = []typeWithRule{
	{"Paquímetro", 12, 30},
	{"Micrômetro", 12, 30},
	{"Manômetro", 6, 15},
	{"Balança", 12, 30},
	{"Termômetro", 6, 15},
	{"Trena", 24, 30},
}

// SeedCatalogs cria setores, tipos de equipamento e regras de calibração
// padrão. Idempotente: registros existentes são mantidos.
func SeedCatalogs(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("Semeando catálogos...")

	for _, name := range defaultSectors {
		if _, err := db.Exec(ctx,
			"INSERT INTO sectors (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", name); err != nil {
			log.Fatalf("falha ao semear setor %q: %v", name, err)
		}
	}

	for _, t := range defaultTypes {
		if err := seedTypeWithRule(ctx, db, t); err != nil {
			log.Fatalf("falha ao semear tipo %q: %v", t.Name, err)
		}
	}

	log.Println("Catálogos semeados.")
}

func seedTypeWithRule(ctx context.Context, db *pgxpool.Pool, t typeWithRule) error {
	if _, err := db.Exec(ctx,
		"INSERT INTO equipment_types (name) VALUES ($1) ON CONFLICT (name) DO NOTHING", t.Name); err != nil {
		return err
	}

	var typeID uint64
	if err := db.QueryRow(ctx,
		"SELECT id FROM equipment_types WHERE name = $1", t.Name).Scan(&typeID); err != nil {
		return fmt.Errorf("tipo %q não encontrado após inserção: %w", t.Name, err)
	}

	_, err := db.Exec(ctx, `
		INSERT INTO calibration_rules (equipment_type_id, interval_months, warn_days)
		VALUES ($1, $2, $3)
		ON CONFLICT (equipment_type_id) DO NOTHING`,
		typeID, t.IntervalMonths, t.WarnDays)
	return err
}
