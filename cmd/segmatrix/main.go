package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/salesops/segmatrix/internal/cli"
	"github.com/salesops/segmatrix/internal/config"
	"github.com/salesops/segmatrix/internal/db"
	"github.com/salesops/segmatrix/internal/logger"
	"github.com/salesops/segmatrix/internal/repository"
	"github.com/salesops/segmatrix/internal/service"
	"github.com/salesops/segmatrix/internal/warehouse"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Store path: env var or default ~/.segmatrix/segmatrix.db
	storePath := cfg.StorePath
	if storePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		storePath = filepath.Join(home, ".segmatrix", "segmatrix.db")
	}

	onDone, err := logger.Setup(cfg.LogPath, cfg.LogCleanupMaxAge)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer onDone()

	database, err := db.OpenDB(storePath)
	if err != nil {
		return fmt.Errorf("opening matrix store: %w", err)
	}
	defer database.Close()

	matrixRepo := repository.NewSQLiteMatrixRepo(database)

	app := &cli.App{
		Matrices:  service.NewMatrixService(matrixRepo),
		Classify:  service.NewClassifyService(matrixRepo, cfg.BatchSize),
		OutputDir: cfg.OutputDir,
	}

	// The warehouse connection is opened on demand; only batch runs use it.
	app.WarehouseSource = func() (cli.BatchSource, error) {
		return warehouse.Connect(cfg)
	}

	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
