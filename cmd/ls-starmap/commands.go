package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-starmap/internal/api"
	"github.com/litescript/ls-starmap/internal/report"
	"github.com/litescript/ls-starmap/internal/ui"
	"github.com/litescript/ls-starmap/internal/version"
)

func newServeCommand(a *app) *cobra.Command {
	var (
		addr  string
		watch bool
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the JSON API and Prometheus metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if watch {
				unwatch, err := a.watchCatalog()
				if err != nil {
					return err
				}
				defer unwatch()
			}

			srvCfg := a.cfg.Server
			if addr != "" {
				srvCfg.Addr = addr
			}
			srv := api.NewServer(a.state, a.log, version.Version, srvCfg)
			return srv.ListenAndServe(ctx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides server.addr)")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the catalog file when it changes")
	return cmd
}

func newViewCommand(a *app) *cobra.Command {
	var watch bool
	cmd := &cobra.Command{
		Use:   "view",
		Short: "Open the terminal map viewer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				return errors.New("view needs an interactive terminal; try `star`, `territory` or `export`")
			}

			if watch {
				unwatch, err := a.watchCatalog()
				if err != nil {
					return err
				}
				defer unwatch()
			}

			// Log lines would corrupt the alternate screen
			a.log.SetOutput(io.Discard)

			p := tea.NewProgram(ui.New(a.state), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("running viewer: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "reload the catalog file when it changes")
	return cmd
}

func newStarCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "star <name>",
		Short:   "Print the detail card for a catalog star",
		Example: `  ls-starmap star "Alpha Centauri"`,
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := a.state.Snapshot().Star(strings.Join(args, " "))
			if err != nil {
				return err
			}
			report.WriteStarCard(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func newTerritoryCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "territory",
		Aliases: []string{"territories"},
		Short:   "Print the synthesized territories as a table",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			report.WriteTerritoryTable(cmd.OutOrStdout(), a.state.Snapshot(), time.Now().UTC())
			return nil
		},
	}
}

func newExportCommand(a *app) *cobra.Command {
	var (
		output   string
		geometry bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stars, octants and territories as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			export, err := report.ExportSnapshot(a.state.Snapshot(), time.Now().UTC(), geometry)
			if err != nil {
				return err
			}

			if output == "-" {
				return export.WriteJSON(cmd.OutOrStdout())
			}

			f, err := os.Create(output)
			if err != nil {
				return fmt.Errorf("create %s: %w", output, err)
			}
			if err := export.WriteJSON(f); err != nil {
				f.Close()
				return fmt.Errorf("write %s: %w", output, err)
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("close %s: %w", output, err)
			}
			a.log.Info("snapshot exported to %s", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file (- for stdout)")
	cmd.Flags().BoolVar(&geometry, "geometry", false, "include territory wireframes and connection lines")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ls-starmap v%s\n", version.Version)
		},
	}
}
