package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"chinook/internal/notify"
	"chinook/internal/services"
	"chinook/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config   *shared.Config
	logger   *log.Logger
	output   io.Writer
	notifier *notify.Manager
	db       *sql.DB
	catalog  services.Catalog
	library  services.PlaylistManager
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config *shared.Config
	Logger *log.Logger
	Output io.Writer
	DB     *sql.DB
}

// NewRunner creates a new Runner with the provided configuration.
// When DB is nil the store is opened lazily on first use, so commands
// like setup can run before a database file exists.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}

	r := &Runner{
		config:   opts.Config,
		logger:   opts.Logger,
		output:   opts.Output,
		notifier: notify.NewManager(),
	}
	if opts.DB != nil {
		r.attach(opts.DB)
	}
	return r
}

// SetLogger swaps the runner's logger and propagates it through a fresh
// service wiring on the same store.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
	if r.db != nil {
		r.attach(r.db)
	}
}

// attach wires the domain services around an open store.
func (r *Runner) attach(db *sql.DB) {
	r.db = db
	r.catalog = services.NewArtistService(db, r.logger)
	r.library = services.NewPlaylistService(db, r.notifier, r.logger)
}

// connect opens the configured store on first use.
func (r *Runner) connect() error {
	if r.db != nil {
		return nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	r.attach(db)
	return nil
}

// Close releases the store if one was opened.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, artistsCommand, playlistsCommand, favoritesCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// resolveUser picks the acting user from the --user flag, falling back
// to the configured default.
func (r *Runner) resolveUser(cmd *cli.Command) (string, error) {
	if user := cmd.String("user"); user != "" {
		return user, nil
	}
	if r.config.App.DefaultUser != "" {
		return r.config.App.DefaultUser, nil
	}
	return "", fmt.Errorf("%w: pass --user or set app.default_user in config", shared.ErrMissingUserID)
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
