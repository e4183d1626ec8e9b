// Command ls-starmap is a stellar cartography engine: an HTTP API, a terminal
// map viewer and headless reports over a catalog of nearby stars.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-starmap/internal/catalog"
	"github.com/litescript/ls-starmap/internal/config"
	"github.com/litescript/ls-starmap/internal/logging"
	"github.com/litescript/ls-starmap/internal/state"
	"github.com/litescript/ls-starmap/internal/version"
)

// rootOptions holds global CLI flags.
type rootOptions struct {
	configPath  string
	catalogPath string
	logLevel    string
	logFormat   string
}

// app carries initialized dependencies through the command tree.
type app struct {
	opts  rootOptions
	cfg   *config.Config
	log   *logging.Logger
	state *state.Manager
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	a := &app{}

	cmd := &cobra.Command{
		Use:     "ls-starmap",
		Short:   "Stellar cartography: octants, territories, habitable zones",
		Version: version.Version,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.init(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := cmd.PersistentFlags()
	pf.StringVarP(&a.opts.configPath, "config", "c", "", "config file path (default: $STARMAP_CONFIG or ./starmap.yaml)")
	pf.StringVar(&a.opts.catalogPath, "catalog", "", "YAML catalog file (default: built-in nearby stars)")
	pf.StringVar(&a.opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&a.opts.logFormat, "log-format", "", "log format (console, json)")

	cmd.AddCommand(
		newServeCommand(a),
		newViewCommand(a),
		newStarCommand(a),
		newTerritoryCommand(a),
		newExportCommand(a),
		newVersionCommand(),
	)
	return cmd
}

// init loads configuration, builds the logger and state manager and applies
// the initial catalog.
func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.Load(a.opts.configPath)
	if err != nil {
		return err
	}
	if a.opts.logLevel != "" {
		cfg.Log.Level = a.opts.logLevel
	}
	if a.opts.logFormat != "" {
		cfg.Log.Format = a.opts.logFormat
	}
	if a.opts.catalogPath != "" {
		cfg.Catalog.File = a.opts.catalogPath
	}
	a.cfg = cfg

	a.log = logging.NewWithFormat(
		logging.ParseLevel(cfg.Log.Level),
		logging.ParseFormat(cfg.Log.Format),
		cmd.ErrOrStderr(),
	)

	a.state, err = state.NewManager(state.Config{
		OctantRadius: cfg.Octant.Radius,
		Territory:    cfg.Territory,
		MaxEvents:    cfg.Catalog.EventBuffer,
	}, a.log)
	if err != nil {
		return fmt.Errorf("state manager: %w", err)
	}

	cat, err := a.loadCatalog()
	if err != nil {
		return err
	}
	return a.state.Update(cat)
}

func (a *app) loadCatalog() (*catalog.Catalog, error) {
	if a.cfg.Catalog.File == "" {
		a.log.Debug("using built-in catalog")
		return catalog.Default(a.cfg.Catalog.DefaultLuminosity)
	}
	a.log.Debug("loading catalog from %s", a.cfg.Catalog.File)
	return catalog.LoadFile(a.cfg.Catalog.File, a.cfg.Catalog.DefaultLuminosity)
}

// watchCatalog reloads the catalog file into the state manager on change.
// It is a no-op for the built-in catalog.
func (a *app) watchCatalog() (func() error, error) {
	path := a.cfg.Catalog.File
	if path == "" {
		a.log.Warn("--watch has no effect with the built-in catalog")
		return func() error { return nil }, nil
	}
	log := a.log.With("catalog", path)
	return catalog.WatchFile(path, a.cfg.Catalog.DefaultLuminosity, func(cat *catalog.Catalog, err error) {
		if err != nil {
			a.state.RecordError(err)
			return
		}
		if err := a.state.Update(cat); err != nil {
			log.Warn("catalog reload rejected: %v", err)
			return
		}
		log.Info("catalog reloaded")
	})
}
