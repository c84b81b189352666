package main

import (
	"flag"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/config"
	"github.com/wFerrazdev/gestao-calibracao-sub000/pkg/database/postgresql"
	"github.com/wFerrazdev/gestao-calibracao-sub000/seeders"
)

func main() {
	runCatalogs := flag.Bool("catalogs", false, "Semear setores, tipos de equipamento e regras de calibração")
	runAdmin := flag.Bool("admin", false, "Criar o usuário administrador inicial")
	runAll := flag.Bool("all", false, "Executar todos os seeders")
	flag.Parse()

	if !*runCatalogs && !*runAdmin && !*runAll {
		log.Println("Nenhum seeder selecionado.")
		flag.PrintDefaults()
		log.Println("Exemplo: go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	dbPool := postgresql.ConnectDB(cfg.Postgres.DSN)
	defer dbPool.Close()

	if *runAll || *runCatalogs {
		seeders.SeedCatalogs(dbPool)
	}
	if *runAll || *runAdmin {
		seeders.SeedAdminUser(dbPool)
	}

	log.Println("Seeders concluídos.")
}
