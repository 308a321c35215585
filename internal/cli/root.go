package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/studyplan/internal/backup"
	"github.com/julianstephens/studyplan/internal/config"
	"github.com/julianstephens/studyplan/internal/keyring"
	"github.com/julianstephens/studyplan/internal/lock"
	"github.com/julianstephens/studyplan/internal/logger"
	"github.com/julianstephens/studyplan/internal/planner"
	"github.com/julianstephens/studyplan/internal/storage"
	"github.com/julianstephens/studyplan/internal/storage/postgres"
	"github.com/julianstephens/studyplan/internal/utils"
)

type Context struct {
	Store     storage.Provider
	Repo      *storage.Repository
	Planner   *planner.Planner
	Config    *config.Config
	ConfigDir string
	BackupDir string
	Location  *time.Location

	// In feeds confirmation prompts; nil means os.Stdin.
	In io.Reader
}

// NewContext wires a store and configuration together. The planner is only
// available after Load.
func NewContext(store storage.Provider, cfg *config.Config, configDir string) (*Context, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	cfg.Normalize()
	loc, err := utils.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return &Context{
		Store:     store,
		Repo:      storage.NewRepository(store),
		Config:    cfg,
		ConfigDir: config.ExpandPath(configDir),
		BackupDir: config.ExpandPath(cfg.BackupDir),
		Location:  loc,
	}, nil
}

// Load opens the store and initializes the planner from it.
func (c *Context) Load() error {
	if err := c.Store.Load(); err != nil {
		return err
	}
	return c.initPlanner()
}

// InitStore creates the schema (or file) and initializes the planner.
func (c *Context) InitStore() error {
	if err := c.Store.Init(); err != nil {
		return err
	}
	return c.initPlanner()
}

// initPlanner builds the planner on top of an already opened store.
func (c *Context) initPlanner() error {
	loc := c.Location
	if loc == nil {
		loc = time.Local
	}
	c.Planner = planner.New(c.Repo,
		planner.WithClock(func() time.Time { return time.Now().In(loc) }),
		planner.WithSeedSamples(c.Config.ShouldSeed()),
		planner.WithUpcomingLimit(c.Config.UpcomingLimit),
	)
	if err := c.Planner.Initialize(); err != nil {
		return fmt.Errorf("failed to initialize planner: %w", err)
	}
	return nil
}

// PerformAutomaticBackup exports a rotated snapshot and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	if c.Planner == nil {
		return
	}
	events, exams := c.Planner.Snapshot()
	mgr := backup.NewManager(c.BackupDir).WithClock(c.Planner.Now)
	if _, err := mgr.AutoExport(backup.NewSnapshot(events, exams, c.Planner.Now())); err != nil {
		// Log warning but don't interrupt user workflow
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// CheckUnlocked fails with lock.ErrLocked while a TUI session holds the data.
func (c *Context) CheckUnlocked() error {
	return lock.Check(c.ConfigDir)
}

// Confirm prints prompt followed by "Continue? [y/N]: " and reads the answer.
func (c *Context) Confirm(prompt string) (bool, error) {
	if prompt != "" {
		fmt.Println(prompt)
	}
	fmt.Print("Continue? [y/N]: ")

	in := c.In
	if in == nil {
		in = os.Stdin
	}
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		if err == io.EOF {
			fmt.Println()
			return false, nil
		}
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes", nil
}

// ResolveTarget picks the database target. An explicit flag wins, then a
// connection string from the environment or OS keyring, then the config file.
// trusted reports whether the target came from a secret source, where an
// embedded password is allowed.
func ResolveTarget(flag string, cfg *config.Config) (target string, trusted bool) {
	if strings.TrimSpace(flag) != "" {
		return flag, false
	}
	if connStr, source, ok := keyring.ResolveConnectionString(); ok {
		logger.Debug("Using connection string", "source", source)
		return connStr, true
	}
	if cfg != nil && cfg.Database != "" {
		return cfg.Database, false
	}
	return config.DefaultConfig().Database, false
}

// OpenStore turns a resolved target into a provider.
func OpenStore(target string, trusted bool) (storage.Provider, error) {
	if trusted && postgres.IsConnString(target) {
		return postgres.New(target), nil
	}
	if !postgres.IsConnString(target) {
		target = config.ExpandPath(target)
	}
	return storage.Open(target)
}
