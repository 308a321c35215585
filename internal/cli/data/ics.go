package data

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/ics"
)

type IcsCmd struct {
	Out string `short:"o" help:"Output .ics file. Use - for stdout." required:""`
}

func (c *IcsCmd) Run(ctx *cli.Context) error {
	events, exams := ctx.Planner.Snapshot()

	if c.Out == "-" {
		return ics.Write(os.Stdout, events, exams, ctx.Planner.Now())
	}

	if err := os.MkdirAll(filepath.Dir(c.Out), 0700); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	f, err := os.OpenFile(c.Out, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create calendar file: %w", err)
	}
	if err := ics.Write(f, events, exams, ctx.Planner.Now()); err != nil {
		f.Close()
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	fmt.Printf("✓ Wrote %d events and %d exams to %s\n", len(events), len(exams), c.Out)
	return nil
}
