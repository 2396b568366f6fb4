package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/christophertwo/aella/internal/config"
	"github.com/christophertwo/aella/internal/database"
	"github.com/christophertwo/aella/internal/tui"
	"github.com/christophertwo/aella/internal/util"
)

var errNoTerminal = errors.New("aella needs an interactive terminal; use --export for headless runs")

type cliOptions struct {
	configPath  string
	dataDir     string
	dbPath      string
	logFile     string
	logLevel    string
	pageSize    int
	seed        int
	importPath  string
	exportPath  string
	writeConfig bool
	version     bool
}

func parseFlags(args []string, stderr io.Writer) (cliOptions, error) {
	var o cliOptions
	fs := pflag.NewFlagSet(config.AppName, pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", config.DefaultConfigPath(), "path to the TOML config file")
	fs.StringVar(&o.dataDir, "data-dir", "", "directory for the database and log file")
	fs.StringVar(&o.dbPath, "db", "", "path to the SQLite database")
	fs.StringVar(&o.logFile, "log-file", "", "path to the log file")
	fs.StringVar(&o.logLevel, "log-level", "", "log level: debug, info, warn or error")
	fs.IntVar(&o.pageSize, "page-size", 0, "projects loaded per page")
	fs.IntVar(&o.seed, "seed", 0, "insert N sample projects before starting")
	fs.StringVar(&o.importPath, "import", "", "import a YAML snapshot before starting")
	fs.StringVar(&o.exportPath, "export", "", "write a YAML snapshot to this path and exit")
	fs.BoolVar(&o.writeConfig, "write-config", false, "write the effective settings to --config and exit")
	fs.BoolVarP(&o.version, "version", "v", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.seed < 0 {
		return o, fmt.Errorf("--seed must not be negative, got %d", o.seed)
	}
	return o, nil
}

// applyFlags layers explicit flags over s. A new --data-dir moves the
// database and log file with it unless those are given too.
func applyFlags(s config.Settings, o cliOptions) (config.Settings, error) {
	if o.dataDir != "" && o.dataDir != s.DataDir {
		s.DataDir = o.dataDir
		if o.dbPath == "" {
			s.DBPath = ""
		}
		if o.logFile == "" {
			s.LogFile = ""
		}
	}
	if o.dbPath != "" {
		s.DBPath = o.dbPath
	}
	if o.logFile != "" {
		s.LogFile = o.logFile
	}
	if o.logLevel != "" {
		s.LogLevel = o.logLevel
	}
	if o.pageSize != 0 {
		s.PageSize = o.pageSize
	}
	return s.Normalize()
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return 0
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}
	if opts.version {
		fmt.Fprintf(stdout, "%s %s (%s, built %s)\n", config.AppName, tui.AppVersion, tui.GitCommit, tui.BuildTime)
		return 0
	}
	if err := start(ctx, opts, stdout); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func start(ctx context.Context, opts cliOptions, stdout io.Writer) error {
	settings, err := config.LoadSettings(opts.configPath)
	if err != nil {
		return err
	}
	settings, err = applyFlags(settings, opts)
	if err != nil {
		return err
	}
	if opts.writeConfig {
		if err := config.SaveSettings(opts.configPath, settings); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Wrote %s\n", opts.configPath)
		return nil
	}

	logger, closer, err := util.NewLogger(settings.LogFile, settings.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	db, err := database.Open(ctx, settings.DBPath, database.WithLogger(logger))
	if err != nil {
		return err
	}
	defer func() {
		util.LogError(logger, "close database", db.Close())
	}()
	logger.Info("starting", "version", tui.AppVersion, "db", db.Path())

	if opts.seed > 0 {
		if err := db.SeedProjects(ctx, opts.seed); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Seeded %d projects\n", opts.seed)
	}
	if opts.importPath != "" {
		data, err := os.ReadFile(opts.importPath)
		if err != nil {
			return fmt.Errorf("read import file: %w", err)
		}
		if err := db.ImportYAML(ctx, data); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Imported %s\n", opts.importPath)
	}
	if opts.exportPath != "" {
		if err := db.ExportYAML(ctx, opts.exportPath); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "Exported to %s\n", opts.exportPath)
		return nil
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTerminal
	}

	prefs := tui.DefaultPreferences()
	prefs.SearchDelay = config.ClampSearchDelay(settings.SearchDebounce())
	model := tui.NewMainModel(ctx, db, tui.Options{
		Logger:      logger,
		PageSize:    settings.PageSize,
		Preferences: prefs,
		ReportsDir:  util.ReportsDir(config.AppName),
	})
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}
