package data

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/backup"
	"github.com/julianstephens/studyplan/internal/cli"
)

type ImportCmd struct {
	File string `arg:"" help:"Snapshot file, as a path or a file name in the backup directory."`
	Yes  bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ImportCmd) Run(ctx *cli.Context) error {
	if err := ctx.CheckUnlocked(); err != nil {
		return err
	}

	path, err := backup.NewManager(ctx.BackupDir).Resolve(c.File)
	if err != nil {
		return err
	}

	// Decode fully before touching any state, so a bad file changes nothing.
	events, exams, err := backup.ReadFile(path)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	if !c.Yes {
		fmt.Println("⚠️  WARNING: This overwrites all current events and exams.")
		fmt.Printf("\nImport from: %s (%d events, %d exams)\n", path, len(events), len(exams))
		confirmed, err := ctx.Confirm("")
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Import cancelled.")
			return nil
		}
	}

	if err := ctx.Planner.Import(events, exams); err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Printf("✓ Imported %d events and %d exams\n", len(events), len(exams))
	return nil
}
