package rsync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/fpsync/pkg/config"
	"github.com/arthur-debert/fpsync/pkg/rsync"
)

func buildOpts() rsync.BuildOptions {
	return rsync.BuildOptions{
		Program: "rsync",
		LogFile: "/home/u/.fpsync.log",
	}
}

func TestBuildLocalSourceOneArgPerTarget(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"notes", "papers", "drafts"},
	}

	cmd := rsync.Build(entry, rsync.Up, buildOpts())

	args := cmd.Args()
	require.GreaterOrEqual(t, len(args), 4)
	// Sources keep config order, destination comes last
	assert.Equal(t, []string{
		"/home/u/docs/notes",
		"/home/u/docs/papers",
		"/home/u/docs/drafts",
		"srv:/backup/docs",
	}, args[len(args)-4:])
}

func TestBuildRemoteSourceCombinesTargets(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"a", "b"},
	}

	cmd := rsync.Build(entry, rsync.Down, buildOpts())

	args := cmd.Args()
	// One combined argument for both targets, then the destination
	assert.Equal(t, "srv:'/backup/docs/a /backup/docs/b '", args[len(args)-2])
	assert.Equal(t, "/home/u/docs", args[len(args)-1])

	for _, arg := range args[:len(args)-2] {
		assert.NotContains(t, arg, "/backup/docs/a", "targets must not appear as separate arguments")
	}
}

func TestBuildRemoteSourceSingleTargetStaysPlain(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"notes"},
	}

	cmd := rsync.Build(entry, rsync.Down, buildOpts())

	args := cmd.Args()
	assert.Equal(t, "srv:/backup/docs/notes", args[len(args)-2])
	assert.Equal(t, "/home/u/docs", args[len(args)-1])
}

func TestBuildDirectionSwap(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "/mnt/mirror/docs",
		Targets: []string{"notes"},
	}
	swapped := config.Entry{
		Local:   "/mnt/mirror/docs",
		Remote:  "/home/u/docs",
		Targets: []string{"notes"},
	}

	down := rsync.Build(entry, rsync.Down, buildOpts())
	up := rsync.Build(swapped, rsync.Up, buildOpts())

	assert.Equal(t, up.Args(), down.Args())
}

func TestBuildIdempotent(t *testing.T) {
	entry := config.Entry{
		Local:       "/home/u/docs",
		Remote:      "srv:/backup/docs",
		Targets:     []string{"a", "b"},
		ExcludeFrom: "/home/u/.fpsync-exclude",
	}
	opts := buildOpts()
	opts.DryRun = true

	first := rsync.Build(entry, rsync.Up, opts)
	second := rsync.Build(entry, rsync.Up, opts)

	assert.Equal(t, first.String(), second.String())
	assert.Equal(t, first.Args(), second.Args())
}

func TestBuildDeleteFlag(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"notes"},
	}

	tests := []struct {
		name     string
		noDelete bool
		want     bool
	}{
		{name: "default passes delete", noDelete: false, want: true},
		{name: "no-delete omits delete", noDelete: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := buildOpts()
			opts.NoDelete = tt.noDelete
			cmd := rsync.Build(entry, rsync.Up, opts)
			if tt.want {
				assert.Contains(t, cmd.Args(), "--delete")
			} else {
				assert.NotContains(t, cmd.Args(), "--delete")
			}
		})
	}
}

func TestBuildDryRunFlag(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"notes"},
	}

	opts := buildOpts()
	cmd := rsync.Build(entry, rsync.Up, opts)
	assert.NotContains(t, cmd.Args(), "--dry-run")

	opts.DryRun = true
	cmd = rsync.Build(entry, rsync.Up, opts)
	assert.Contains(t, cmd.Args(), "--dry-run")
}

func TestBuildAlwaysItemizes(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"notes"},
	}

	cmd := rsync.Build(entry, rsync.Up, buildOpts())
	assert.Contains(t, cmd.Args(), "--itemize-changes")
}

func TestBuildExcludeFrom(t *testing.T) {
	entry := config.Entry{
		Local:       "/home/u/docs",
		Remote:      "srv:/backup/docs",
		Targets:     []string{"notes"},
		ExcludeFrom: "/home/u/.fpsync-exclude",
	}

	cmd := rsync.Build(entry, rsync.Up, buildOpts())
	assert.Contains(t, cmd.Args(), "--exclude-from=/home/u/.fpsync-exclude")

	entry.ExcludeFrom = ""
	cmd = rsync.Build(entry, rsync.Up, buildOpts())
	for _, arg := range cmd.Args() {
		assert.NotContains(t, arg, "--exclude-from")
	}
}

func TestBuildExcludeFromExpandsEnv(t *testing.T) {
	t.Setenv("FPSYNC_TEST_DIR", "/opt/fpsync")

	entry := config.Entry{
		Local:       "/home/u/docs",
		Remote:      "srv:/backup/docs",
		Targets:     []string{"notes"},
		ExcludeFrom: "$FPSYNC_TEST_DIR/exclude.txt",
	}

	cmd := rsync.Build(entry, rsync.Up, buildOpts())
	assert.Contains(t, cmd.Args(), "--exclude-from=/opt/fpsync/exclude.txt")
}

func TestBuildLogFile(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"notes"},
	}

	cmd := rsync.Build(entry, rsync.Up, buildOpts())
	assert.Contains(t, cmd.Args(), "--log-file=/home/u/.fpsync.log")
}

// Full command shape for the push scenario: source under the local
// root, remote destination last, no exclude, no dry-run.
func TestBuildUpScenario(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"notes"},
	}

	cmd := rsync.Build(entry, rsync.Up, buildOpts())

	assert.Equal(t, "rsync", cmd.Program())
	assert.Equal(t, []string{
		"--archive",
		"--delete",
		"--log-file=/home/u/.fpsync.log",
		"--itemize-changes",
		"/home/u/docs/notes",
		"srv:/backup/docs",
	}, cmd.Args())
}

func TestBuildProgramOverride(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"notes"},
	}

	opts := buildOpts()
	opts.Program = "/usr/local/bin/rsync3"
	cmd := rsync.Build(entry, rsync.Up, opts)
	assert.Equal(t, "/usr/local/bin/rsync3", cmd.Program())

	opts.Program = ""
	cmd = rsync.Build(entry, rsync.Up, opts)
	assert.Equal(t, rsync.DefaultProgram, cmd.Program())
}

func TestCommandStringQuotesSpacedArgs(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/my docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"notes"},
	}

	cmd := rsync.Build(entry, rsync.Up, buildOpts())
	assert.Contains(t, cmd.String(), "'/home/u/my docs/notes'")
}

func TestCommandStringKeepsRemoteBlobQuoting(t *testing.T) {
	entry := config.Entry{
		Local:   "/home/u/docs",
		Remote:  "srv:/backup/docs",
		Targets: []string{"a", "b"},
	}

	cmd := rsync.Build(entry, rsync.Down, buildOpts())
	assert.Contains(t, cmd.String(), "srv:'/backup/docs/a /backup/docs/b '")
}
