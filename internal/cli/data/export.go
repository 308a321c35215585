package data

import (
	"fmt"

	"github.com/julianstephens/studyplan/internal/backup"
	"github.com/julianstephens/studyplan/internal/cli"
)

type ExportCmd struct {
	Out string `short:"o" help:"Write the snapshot to this file instead of the backup directory." type:"path"`
}

func (c *ExportCmd) Run(ctx *cli.Context) error {
	events, exams := ctx.Planner.Snapshot()
	snap := backup.NewSnapshot(events, exams, ctx.Planner.Now())

	path := c.Out
	if path == "" {
		var err error
		path, err = backup.NewManager(ctx.BackupDir).WithClock(ctx.Planner.Now).Export(snap)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
	} else if err := backup.ExportTo(path, snap); err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	fmt.Printf("✓ Exported %d events and %d exams to %s\n", len(snap.Events), len(snap.Exams), path)
	return nil
}
