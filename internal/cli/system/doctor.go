package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/studyplan/internal/backup"
	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/lock"
	"github.com/julianstephens/studyplan/internal/migration"
	"github.com/julianstephens/studyplan/internal/utils"
	"github.com/julianstephens/studyplan/internal/validation"
)

// schemaReporter is implemented by the SQL backends.
type schemaReporter interface {
	SchemaStatus() (migration.Status, error)
}

type check struct {
	name     string
	run      func(ctx *cli.Context) error
	needsDB  bool
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Stored collections", run: checkCollections, needsDB: true},
	{name: "Data validation", run: checkValidation, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Session lock", run: checkLock, warnOnly: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return errors.New("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	sr, ok := ctx.Store.(schemaReporter)
	if !ok {
		// The JSON store has no schema
		return nil
	}
	status, err := sr.SchemaStatus()
	if err != nil {
		return err
	}
	if status.Current > status.Latest {
		return fmt.Errorf("database schema version %d is newer than supported version %d", status.Current, status.Latest)
	}
	if n := status.Pending(); n > 0 {
		return fmt.Errorf("%d migrations pending (at version %d of %d)", n, status.Current, status.Latest)
	}
	return nil
}

// checkCollections reports entries the repository would silently treat as empty.
func checkCollections(ctx *cli.Context) error {
	for _, key := range []string{constants.EventsKey, constants.ExamsKey} {
		raw, ok, err := ctx.Store.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", key, err)
		}
		if !ok {
			continue
		}
		var items []json.RawMessage
		if err := json.Unmarshal([]byte(raw), &items); err != nil {
			return fmt.Errorf("%s is not a JSON list: %w", key, err)
		}
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	v := validation.New()
	var problems []string

	seen := make(map[string]bool)
	for _, e := range ctx.Repo.LoadEvents() {
		if seen[e.ID.String()] {
			problems = append(problems, fmt.Sprintf("duplicate event ID %s", e.ID))
		}
		seen[e.ID.String()] = true
		if r := v.ValidateEvent(e); r.HasProblems() {
			problems = append(problems, fmt.Sprintf("event %s: %v", e.ID, r.Err()))
		}
	}

	seen = make(map[string]bool)
	for _, x := range ctx.Repo.LoadExams() {
		if seen[x.ID.String()] {
			problems = append(problems, fmt.Sprintf("duplicate exam ID %s", x.ID))
		}
		seen[x.ID.String()] = true
		if r := v.ValidateExam(x); r.HasProblems() {
			problems = append(problems, fmt.Sprintf("exam %s: %v", x.ID, r.Err()))
		}
	}

	if len(problems) > 0 {
		return fmt.Errorf("%d problems: %v", len(problems), problems)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.BackupDir)
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'studyplan export'")
	}
	return nil
}

func checkLock(ctx *cli.Context) error {
	if err := lock.Check(ctx.ConfigDir); err != nil {
		return err
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Config != nil && !utils.ValidateTimezone(ctx.Config.Timezone) {
		return fmt.Errorf("configured timezone %q is unknown", ctx.Config.Timezone)
	}
	return nil
}
