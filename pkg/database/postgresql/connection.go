package postgresql

import (
	"context"
	"database/sql"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

func ConnectDB(dsn string) *pgxpool.Pool {
	dbpool, err := pgxpool.New(context.Background(), dsn)
	if err != nil {
		log.Fatalf("Erro ao criar o pool de conexões com o banco: %v", err)
	}

	if err := dbpool.Ping(context.Background()); err != nil {
		log.Fatalf("Não foi possível pingar o banco: %v", err)
	}

	log.Println("Conectado ao PostgreSQL")
	return dbpool
}

// RunMigrations aplica as migrações goose pendentes antes da aplicação subir.
// O goose trabalha sobre database/sql, então abrimos uma conexão separada via
// driver stdlib do pgx só para isso.
func RunMigrations(dsn string, dir string) error {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, dir)
}
