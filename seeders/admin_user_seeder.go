package seeders

import (
	"context"
	"errors"
	"log"
	"os"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/wFerrazdev/gestao-calibracao-sub000/internal/authz"
)

// SeedAdminUser cria o usuário administrador inicial, já aprovado. A senha
// vem de ADMIN_SEED_PASSWORD; sem a variável o seeder aborta em vez de gravar
// uma senha padrão.
func SeedAdminUser(db *pgxpool.Pool) {
	ctx := context.Background()
	email := getenvDefault("ADMIN_SEED_EMAIL", "admin@sub000.com.br")

	var existingID uint64
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&existingID)
	if err == nil {
		log.Printf("Usuário administrador %s já existe (id=%d), pulando.", email, existingID)
		return
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		log.Fatalf("falha ao verificar usuário administrador: %v", err)
	}

	password := os.Getenv("ADMIN_SEED_PASSWORD")
	if password == "" {
		log.Fatal("ADMIN_SEED_PASSWORD não definida; defina a variável antes de semear o administrador")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("falha ao gerar hash da senha: %v", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO users (name, email, password_hash, role, approved)
		VALUES ($1, $2, $3, $4, TRUE)`,
		"Administrador", email, string(hash), authz.RoleAdmin)
	if err != nil {
		log.Fatalf("falha ao criar usuário administrador: %v", err)
	}

	log.Printf("Usuário administrador %s criado.", email)
}

func getenvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
