package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/LISSConsulting/LISSTech.Marquee/internal/config"
	"github.com/LISSConsulting/LISSTech.Marquee/internal/selector"
)

// ioStreams bundles a command's standard streams so tests can swap them.
type ioStreams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func streams(cmd *cobra.Command) ioStreams {
	return ioStreams{in: cmd.InOrStdin(), out: cmd.OutOrStdout(), errOut: cmd.ErrOrStderr()}
}

func selectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Open the menu and print the selected item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			style, _ := cmd.Flags().GetString("style")
			noTUI, _ := cmd.Flags().GetBool("no-tui")
			configPath, _ := cmd.Flags().GetString("config")

			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}

			ctx, cancel := signalContext()
			defer cancel()

			return executeSelect(ctx, selectParams{
				dir:        dir,
				configPath: configPath,
				style:      style,
				noTUI:      noTUI,
			}, streams(cmd))
		},
	}
	cmd.Flags().String("style", "", "menu style: preview or list (default from config)")
	cmd.Flags().Bool("no-tui", false, "read keys from stdin, one per line, and print events instead of opening the TUI")
	return cmd
}

func replCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Line shell: 'select' opens the menu, 'exit' leaves",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			cfg, err := loadConfig(configPath, dir)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext()
			defer cancel()

			s := streams(cmd)
			in := selector.NewLineKeySource(s.in)
			defer func() { _ = in.Close() }()
			return runREPL(ctx, in, s.out, headlessSelect(cfg, dir, in, s))
		},
	}
}

func statusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the last selector session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			taskID, _ := cmd.Flags().GetUint64("task")
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			return showStatus(dir, cmd.OutOrStdout(), taskID)
		},
	}
	cmd.Flags().Uint64("task", 0, "print the events logged while this preview task was live")
	return cmd
}

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Scaffold marquee.toml and the .marquee state directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			created, err := config.ScaffoldProject(dir)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatScaffoldResult(created))
			return nil
		},
	}
}

func itemsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "items",
		Short: "List the configured menu items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")

			dir, err := os.Getwd()
			if err != nil {
				return fmt.Errorf("get working directory: %w", err)
			}
			cfg, err := loadConfig(configPath, dir)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatItems(cfg.Items))
			return nil
		},
	}
}
