package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/julianstephens/studyplan/internal/cli"
	"github.com/julianstephens/studyplan/internal/cli/data"
	"github.com/julianstephens/studyplan/internal/cli/events"
	"github.com/julianstephens/studyplan/internal/cli/exams"
	"github.com/julianstephens/studyplan/internal/cli/system"
	"github.com/julianstephens/studyplan/internal/cli/views"
	"github.com/julianstephens/studyplan/internal/config"
	"github.com/julianstephens/studyplan/internal/constants"
	"github.com/julianstephens/studyplan/internal/errors"
	"github.com/julianstephens/studyplan/internal/logger"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"string" env:"STUDYPLAN_CONFIG" default:"${config_file}"`
	DB      string `name:"db" help:"Database target: a SQLite file, a .json file or a PostgreSQL connection string without credentials. Overrides the config file." env:"STUDYPLAN_DB"`
	Debug   bool   `help:"Log debug output to stderr." env:"STUDYPLAN_DEBUG"`

	Init   system.InitCmd   `cmd:"" help:"Initialize studyplan storage."`
	Doctor system.DoctorCmd `cmd:"" help:"Run health checks and diagnostics."`
	Tui    system.TuiCmd    `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Event  struct {
		Add         events.EventAddCmd         `cmd:"" help:"Add an event."`
		List        events.EventListCmd        `cmd:"" help:"List events."`
		Delete      events.EventDeleteCmd      `cmd:"" help:"Delete an event."`
		Occurrences events.EventOccurrencesCmd `cmd:"" help:"Show the dates a repeating event falls on."`
	} `cmd:"" help:"Manage lectures, labs and other events."`
	Exam struct {
		Add    exams.ExamAddCmd    `cmd:"" help:"Add an exam."`
		List   exams.ExamListCmd   `cmd:"" help:"List exams and progress."`
		Delete exams.ExamDeleteCmd `cmd:"" help:"Delete an exam."`
	} `cmd:"" help:"Manage exams."`
	Calendar views.CalendarCmd `cmd:"" help:"Print a month calendar."`
	Stats    views.StatsCmd    `cmd:"" help:"Show dashboard statistics."`
	Export   data.ExportCmd    `cmd:"" help:"Export all data to a JSON snapshot."`
	Import   data.ImportCmd    `cmd:"" help:"Replace all data with a JSON snapshot."`
	Backup   struct {
		List data.BackupListCmd `cmd:"" help:"List snapshots in the backup directory." default:"1"`
	} `cmd:"" help:"Inspect backups."`
	Ics     data.IcsCmd `cmd:"" help:"Write events and exams as an iCalendar file."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a PostgreSQL connection string in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show the stored connection string with the password masked."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Remove the stored connection string."`
		Status system.KeyringStatusCmd `cmd:"" help:"Report whether the OS keyring is usable."`
	} `cmd:"" help:"Manage the database connection string in the OS keyring."`
}

// Commands that manage storage themselves and must not require a loaded store.
var skipLoad = map[string]bool{
	"init":    true,
	"doctor":  true,
	"keyring": true,
}

func main() {
	// A missing .env file is fine.
	_ = godotenv.Load()

	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Study planner for medical students: lectures, labs, exams and progress"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	cfg, err := config.Load(CLI.Config)
	if cfg == nil {
		errors.Fatal(err)
	}
	configDir := filepath.Dir(config.ExpandPath(CLI.Config))

	if lerr := logger.Init(logger.Config{Debug: CLI.Debug || cfg.Debug, ConfigDir: configDir}); lerr != nil {
		errors.Fatal(lerr)
	}
	if err != nil {
		logger.Warn("Could not write default config", "path", CLI.Config, "error", err)
	}

	target, trusted := cli.ResolveTarget(CLI.DB, cfg)
	store, err := cli.OpenStore(target, trusted)
	if err != nil {
		errors.Fatal(err)
	}
	defer store.Close()

	appCtx, err := cli.NewContext(store, cfg, configDir)
	if err != nil {
		errors.Fatal(err)
	}

	if !skipLoad[topLevelCommand(ctx)] {
		if err := appCtx.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// topLevelCommand is the first word of the selected command, e.g. "event"
// for "event add".
func topLevelCommand(ctx *kong.Context) string {
	if ctx.Selected() == nil {
		return ""
	}
	node := ctx.Selected()
	for node.Parent != nil && node.Parent.Type == kong.CommandNode {
		node = node.Parent
	}
	return node.Name
}
