// Package core drives a synchronization run: resolve configuration,
// check required paths, run hooks, and execute one rsync command per
// directory pair in the requested direction(s).
package core

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/fpsync/pkg/config"
	"github.com/arthur-debert/fpsync/pkg/errors"
	"github.com/arthur-debert/fpsync/pkg/executor"
	"github.com/arthur-debert/fpsync/pkg/logging"
	"github.com/arthur-debert/fpsync/pkg/paths"
	"github.com/arthur-debert/fpsync/pkg/rsync"
	"github.com/arthur-debert/fpsync/pkg/style"
)

// Mode is the requested run direction: push, pull, or a two-pass
// non-destructive reconciliation.
type Mode int

const (
	// ModeUp pushes local changes to the remote side
	ModeUp Mode = iota
	// ModeDown pulls remote changes to the local side
	ModeDown
	// ModeSync runs an Up pass then a Down pass, neither deleting
	ModeSync
)

// String returns the mode name
func (m Mode) String() string {
	switch m {
	case ModeUp:
		return "up"
	case ModeDown:
		return "down"
	case ModeSync:
		return "sync"
	default:
		return "unknown"
	}
}

// ParseMode parses a CLI mode argument
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(s) {
	case "up":
		return ModeUp, nil
	case "down":
		return ModeDown, nil
	case "sync":
		return ModeSync, nil
	default:
		return ModeUp, fmt.Errorf("unknown mode: %s", s)
	}
}

// Options holds everything a run needs. One immutable value threaded
// through every call; nothing here is ambient process state.
type Options struct {
	Mode       Mode
	DryRun     bool
	Debug      bool
	Verbose    bool
	ConfigPath string

	// Stdout and Stderr default to the process streams
	Stdout io.Writer
	Stderr io.Writer

	// Colorized defaults to terminal detection on stdout
	Colorized *bool
}

// Report summarizes a completed run. Per-command exit codes are data
// here, never run failures.
type Report struct {
	ConfigPath string
	Results    []executor.Result
}

// Run executes a full synchronization run. It returns an error only
// for the fatal cases: missing config, parse/validation failure, a
// missing required path, or a failing hook. Transfer commands that
// exit non-zero are logged and reported but do not fail the run.
func Run(opts Options) (*Report, error) {
	logger := logging.GetLogger("core")

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}
	colorized := stdout == os.Stdout && style.Colorized(os.Stdout)
	if opts.Colorized != nil {
		colorized = *opts.Colorized
	}

	// NotStarted -> ConfigResolved
	configPath, err := config.Resolve(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("phase", "config-resolved").Str("path", configPath).Msg("Phase complete")

	// ConfigResolved -> PrereqsChecked
	if err := checkRequiredPaths(cfg.MustExist); err != nil {
		return nil, err
	}
	logger.Debug().Str("phase", "prereqs-checked").Msg("Phase complete")

	runner := executor.New(executor.Options{
		Verbose:   opts.Verbose,
		Debug:     opts.Debug,
		Colorized: colorized,
		Stdout:    stdout,
		Stderr:    stderr,
	})

	// PrereqsChecked -> StartupHookRan
	if cfg.AtStartup != "" {
		if err := runner.RunHook("at_startup", cfg.AtStartup); err != nil {
			return nil, err
		}
	}
	logger.Debug().Str("phase", "startup-hook-ran").Msg("Phase complete")

	// StartupHookRan -> Updating
	report := &Report{ConfigPath: configPath}
	switch opts.Mode {
	case ModeUp:
		report.Results = runPass(cfg, rsync.Up, false, opts, runner, stdout)
	case ModeDown:
		report.Results = runPass(cfg, rsync.Down, false, opts, runner, stdout)
	case ModeSync:
		// Two-pass reconciliation, no deletions either way. The Down
		// pass can overwrite what the Up pass just wrote; that
		// asymmetry is long-standing, not a merge.
		report.Results = runPass(cfg, rsync.Up, true, opts, runner, stdout)
		report.Results = append(report.Results, runPass(cfg, rsync.Down, true, opts, runner, stdout)...)
	}
	logger.Debug().Str("phase", "updating").Int("commands", len(report.Results)).Msg("Phase complete")

	// Updating -> ExitHookRan, regardless of per-command exit codes
	if cfg.AtExit != "" {
		if err := runner.RunHook("at_exit", cfg.AtExit); err != nil {
			return nil, err
		}
	}
	logger.Debug().Str("phase", "exit-hook-ran").Msg("Phase complete")

	return report, nil
}

// runPass builds and executes one command per entry, in config order
func runPass(cfg *config.Config, direction rsync.Direction, noDelete bool, opts Options, runner *executor.Executor, stdout io.Writer) []executor.Result {
	logger := logging.GetLogger("core")
	buildOpts := rsync.BuildOptions{
		DryRun:   opts.DryRun,
		NoDelete: noDelete,
		Program:  cfg.RsyncProgram,
	}

	results := make([]executor.Result, 0, len(cfg.Entries))
	for _, entry := range cfg.Entries {
		fmt.Fprintln(stdout, style.Separator(fmt.Sprintf("%s  %s <-> %s", direction, entry.Local, entry.Remote)))

		cmd := rsync.Build(entry, direction, buildOpts)
		result := runner.Run(cmd)
		if result.ExitCode != 0 && !result.Skipped {
			logger.Warn().
				Int("exitCode", result.ExitCode).
				Str("local", entry.Local).
				Msg("Transfer command exited non-zero, continuing")
		}
		results = append(results, result)
	}
	return results
}

// checkRequiredPaths stats every must_exist path after expansion and
// fails on the first missing one, before any hook or command runs.
func checkRequiredPaths(required []string) error {
	for _, raw := range required {
		expanded := paths.Expand(raw)
		if _, err := os.Stat(expanded); err != nil {
			return errors.Newf(errors.ErrRequiredPath, "required path missing: %s", expanded).
				WithDetail("configured", raw)
		}
	}
	return nil
}
