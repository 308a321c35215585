package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/storage"
	"github.com/julianstephens/studyplan/internal/storage/postgres"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing data before initialization."`
	Source string `help:"Source database path or connection string to copy events and exams from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force || c.Source != "" {
		if err := ctx.CheckUnlocked(); err != nil {
			return err
		}
	}

	_, isPostgres := ctx.Store.(*postgres.Store)
	if c.Force && !isPostgres {
		dbPath := ctx.Store.GetConfigPath()
		// Don't delete if it's the source (user error protection)
		if c.Source != "" {
			absDbPath, err := filepath.Abs(dbPath)
			if err == nil {
				dbPath = absDbPath
			}
			absSource, err := filepath.Abs(c.Source)
			if err == nil && absSource == dbPath {
				return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
			}
		}
		if _, err := os.Stat(dbPath); err == nil {
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing database: %w", err)
			}
			if err := os.Remove(dbPath); err != nil {
				return fmt.Errorf("failed to delete existing database: %w", err)
			}
			fmt.Printf("Deleted existing database at: %s\n", dbPath)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing database: %w", err)
		}
	}

	if err := ctx.InitStore(); err != nil {
		return err
	}

	// A shared database cannot be deleted, so --force empties the collections.
	if c.Force && isPostgres && c.Source == "" {
		if err := ctx.Planner.Import(nil, nil); err != nil {
			return fmt.Errorf("failed to reset collections: %w", err)
		}
		fmt.Println("Cleared existing events and exams")
	}
	fmt.Printf("Initialized studyplan storage at: %s\n", ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Copying data from: %s\n", postgres.MaskPassword(c.Source))
		if err := c.copyData(ctx); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}
	return nil
}

func (c *InitCmd) copyData(ctx *cli.Context) error {
	source, err := storage.Open(c.Source)
	if err != nil {
		return err
	}
	if err := source.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer source.Close()

	repo := storage.NewRepository(source)
	events := repo.LoadEvents()
	exams := repo.LoadExams()
	if err := ctx.Planner.Import(events, exams); err != nil {
		return err
	}
	fmt.Printf("  Copied %d events\n", len(events))
	fmt.Printf("  Copied %d exams\n", len(exams))
	return nil
}
