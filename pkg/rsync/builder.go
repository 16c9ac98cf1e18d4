package rsync

import (
	"github.com/arthur-debert/fpsync/pkg/config"
	"github.com/arthur-debert/fpsync/pkg/paths"
)

// DefaultProgram is spawned when the config does not override
// rsync_program.
const DefaultProgram = "rsync"

// BuildOptions are the per-run knobs the builder honors. NoDelete is
// set for both passes of sync mode; DryRun is forwarded straight to
// rsync.
type BuildOptions struct {
	DryRun   bool
	NoDelete bool
	Program  string
	LogFile  string
}

// Build assembles the rsync invocation for one entry in one
// direction. It is a pure function of its inputs: identical inputs
// yield identical commands. Malformed entries produce degenerate
// commands, not errors; config validation keeps those out of real
// runs.
func Build(entry config.Entry, direction Direction, opts BuildOptions) Command {
	program := opts.Program
	if program == "" {
		program = DefaultProgram
	}
	logFile := opts.LogFile
	if logFile == "" {
		logFile = paths.TransferLogPath()
	}

	source, destination := endpoints(entry, direction)

	args := []string{"--archive"}
	if !opts.NoDelete {
		args = append(args, "--delete")
	}
	args = append(args, "--log-file="+logFile)

	if entry.ExcludeFrom != "" {
		args = append(args, "--exclude-from="+paths.Expand(entry.ExcludeFrom))
	}

	if opts.DryRun {
		args = append(args, "--dry-run")
	}
	args = append(args, "--itemize-changes")

	args = append(args, sourceArgs(source, entry.Targets)...)
	args = append(args, destination)

	return Command{program: program, args: args}
}

// endpoints picks source and destination for the direction. Local
// paths are expanded here; remote host:path specs pass through
// untouched, tilde expansion on that side belongs to the remote
// shell.
func endpoints(entry config.Entry, direction Direction) (source, destination string) {
	local := paths.Expand(entry.Local)
	if direction == Up {
		return local, entry.Remote
	}
	return entry.Remote, local
}

// sourceArgs emits the source path arguments.
//
// A remote source with multiple targets becomes a single argument of
// the form host:'base/a base/b ' so rsync opens one connection for
// all of them instead of one per target. The exact shape, trailing
// space per target included, matches long-standing behavior and is
// not robust for targets containing spaces or quotes.
func sourceArgs(source string, targets []string) []string {
	host, base, remote := paths.SplitRemote(source)
	if remote && len(targets) > 1 {
		blob := host + ":'"
		for _, target := range targets {
			blob += joinTarget(base, target) + " "
		}
		blob += "'"
		return []string{blob}
	}

	args := make([]string, 0, len(targets))
	for _, target := range targets {
		args = append(args, joinTarget(source, target))
	}
	return args
}

func joinTarget(base, target string) string {
	if base == "" {
		return target
	}
	return base + "/" + target
}
