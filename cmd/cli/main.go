package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/lynq-cli/internal/buildinfo"
	"github.com/dmitrijs2005/lynq-cli/internal/client/cli"
	"github.com/dmitrijs2005/lynq-cli/internal/client/client"
	"github.com/dmitrijs2005/lynq-cli/internal/client/config"
	"github.com/dmitrijs2005/lynq-cli/internal/client/services"
	"github.com/dmitrijs2005/lynq-cli/internal/client/session"
	"github.com/dmitrijs2005/lynq-cli/internal/client/storage"
	"github.com/dmitrijs2005/lynq-cli/internal/filex"
	"github.com/dmitrijs2005/lynq-cli/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr)

	cfg.DataDir, err = filex.EnsureDataDir(cfg.DataDir)
	if err != nil {
		log.Fatalf("error creating data dir: %v", err)
	}
	db, err := storage.OpenSQLite(ctx, cfg.DatabasePath())
	if err != nil {
		log.Fatalf("error initializing database: %v", err)
	}
	defer db.Close()

	apiClient := client.NewHTTPClient(cfg.APIBaseURL, cfg.RequestTimeout, client.WithLogger(logger))
	sessions := session.NewManager(storage.NewMemoryStore(), storage.NewSQLiteStore(db))
	as := services.NewAuthService(apiClient, sessions, services.WithLogger(logger))

	app := cli.NewApp(cfg, as, logger)
	app.Run(ctx)

}
