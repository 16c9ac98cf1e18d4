// Package executor spawns the commands the orchestrator hands it:
// rsync invocations as argument vectors and hook command lines via
// the shell. Exit codes are captured as data, never turned into
// errors for transfer commands.
package executor

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/rs/zerolog"

	"github.com/arthur-debert/fpsync/pkg/errors"
	"github.com/arthur-debert/fpsync/pkg/logging"
	"github.com/arthur-debert/fpsync/pkg/rsync"
	"github.com/arthur-debert/fpsync/pkg/style"
)

// Options configures an Executor. Verbose echoes each command before
// running it; Debug prints without spawning anything. Both come from
// the run options, not ambient state.
type Options struct {
	Verbose   bool
	Debug     bool
	Colorized bool

	// Stdout and Stderr default to the process streams; tests inject
	// buffers here.
	Stdout io.Writer
	Stderr io.Writer

	// Logger defaults to the executor component logger
	Logger *zerolog.Logger
}

// Result is the typed outcome of one spawned command. Non-zero exit
// codes are reported here and logged, but the run never fails because
// of them.
type Result struct {
	Command  string
	ExitCode int
	Duration time.Duration
	Skipped  bool
}

// Executor runs commands sequentially, one to completion before the
// next begins.
type Executor struct {
	verbose   bool
	debug     bool
	colorized bool
	stdout    io.Writer
	stderr    io.Writer
	logger    zerolog.Logger
}

// New creates an executor from options
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Executor{
		verbose:   opts.Verbose,
		debug:     opts.Debug,
		colorized: opts.Colorized,
		stdout:    stdout,
		stderr:    stderr,
		logger:    logger,
	}
}

// Run spawns one transfer command. In debug mode nothing is spawned
// and the result is marked skipped. rsync's stdout passes through the
// itemize highlight filter; stderr and stdin are inherited.
func (e *Executor) Run(cmd rsync.Command) Result {
	start := time.Now()
	cmdline := cmd.String()

	if e.verbose || e.debug {
		fmt.Fprintln(e.stdout, style.Command(cmdline, e.colorized))
	}

	if e.debug {
		e.logger.Debug().Str("command", cmdline).Msg("Debug mode, command not executed")
		return Result{Command: cmdline, Skipped: true}
	}

	filter := style.NewItemizeFilter(e.stdout, e.colorized)

	proc := exec.Command(cmd.Program(), cmd.Args()...)
	proc.Stdin = os.Stdin
	proc.Stdout = filter
	proc.Stderr = e.stderr

	err := proc.Run()
	_ = filter.Flush()

	result := Result{
		Command:  cmdline,
		Duration: time.Since(start),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
		} else {
			// Spawn failure (program missing, permissions). Still not
			// fatal for the run, matching the transfer-command policy.
			result.ExitCode = -1
			e.logger.Warn().Err(err).Str("command", cmdline).Msg("Failed to spawn command")
		}
	}

	e.logger.Debug().
		Str("command", cmdline).
		Int("exitCode", result.ExitCode).
		Dur("duration", result.Duration).
		Msg("Command finished")
	return result
}

// RunHook executes a lifecycle hook command line through the ambient
// shell. Hooks are user-trusted commands from the config, so the
// shell is the right interpreter for them. Unlike transfer commands,
// hook failures are errors and abort the run.
func (e *Executor) RunHook(name, cmdline string) error {
	if e.verbose || e.debug {
		fmt.Fprintln(e.stdout, style.Command(cmdline, e.colorized))
	}
	if e.debug {
		e.logger.Debug().Str("hook", name).Msg("Debug mode, hook not executed")
		return nil
	}

	proc := exec.Command("sh", "-c", cmdline)
	proc.Stdin = os.Stdin
	proc.Stdout = e.stdout
	proc.Stderr = e.stderr

	if err := proc.Run(); err != nil {
		return errors.Wrapf(err, errors.ErrHookFailure, "%s hook failed", name)
	}

	e.logger.Debug().Str("hook", name).Msg("Hook finished")
	return nil
}
