package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/fpsync/internal/version"
	"github.com/arthur-debert/fpsync/pkg/config"
	"github.com/arthur-debert/fpsync/pkg/core"
	"github.com/arthur-debert/fpsync/pkg/logging"
	"github.com/arthur-debert/fpsync/pkg/paths"
	"github.com/arthur-debert/fpsync/pkg/style"
)

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	var (
		verbosity  int
		configPath string
		dryRun     bool
		debug      bool
		verbose    bool
	)

	rootCmd := &cobra.Command{
		Use:   "fpsync",
		Short: "Synchronize configured directory pairs over rsync",
		Long: `fpsync synchronizes sets of directories between this machine and a
remote host by driving rsync from a declarative config file. Push with
"up", pull with "down", or reconcile both ways without deletions with
"sync".`,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	// Global flags
	rootCmd.PersistentFlags().CountVarP(&verbosity, "log-level", "v", "Increase log verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: first of "+paths.ConfigCandidates()[0]+", "+paths.ConfigCandidates()[1]+")")
	rootCmd.PersistentFlags().BoolVar(&dryRun, "dry-run", false, "Forward rsync's dry-run flag, transferring nothing")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Print constructed commands without executing them")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Print each command before executing it")

	runMode := func(cmd *cobra.Command, mode core.Mode) error {
		report, err := core.Run(core.Options{
			Mode:       mode,
			DryRun:     dryRun,
			Debug:      debug,
			Verbose:    verbose,
			ConfigPath: configPath,
		})
		if err != nil {
			// Fatal diagnostics: missing config, missing required
			// path, hook failure. Print styled and exit non-zero.
			fmt.Fprintln(cmd.ErrOrStderr(), style.Error(err.Error(), style.Colorized(os.Stderr)))
			return err
		}
		log.Debug().Int("commands", len(report.Results)).Str("config", report.ConfigPath).Msg("Run complete")
		return nil
	}

	rootCmd.AddCommand(newUpCmd(runMode))
	rootCmd.AddCommand(newDownCmd(runMode))
	rootCmd.AddCommand(newSyncCmd(runMode))
	rootCmd.AddCommand(newInitCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func newUpCmd(runMode func(*cobra.Command, core.Mode) error) *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Push local changes to the remote side",
		Long: `Push every configured directory pair from local to remote. Files
missing locally are deleted on the remote.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(cmd, core.ModeUp)
		},
	}
}

func newDownCmd(runMode func(*cobra.Command, core.Mode) error) *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Pull remote changes to the local side",
		Long: `Pull every configured directory pair from remote to local. Files
missing remotely are deleted locally.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(cmd, core.ModeDown)
		},
	}
}

func newSyncCmd(runMode func(*cobra.Command, core.Mode) error) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Reconcile both sides without deleting anything",
		Long: `Run an up pass and then a down pass over every pair, neither one
deleting files. The down pass can overwrite what the up pass wrote;
this is a two-pass reconciliation, not a merge.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMode(cmd, core.ModeSync)
		},
	}
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Write a starter config file",
		Long:  `Write a commented starter configuration to ` + paths.DefaultConfigPath() + `.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := paths.DefaultConfigPath()
			if err := config.WriteScaffold(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote starter config to %s\n", path)
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fpsync version %s\n", version.Version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", version.Commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", version.Date)
		},
	}
}
