package config

import (
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/arthur-debert/fpsync/pkg/errors"
)

const scaffoldHeader = `# fpsync configuration.
#
# must_exist lists paths that have to be present before any
# synchronization runs (mount points, external drives, ...).
# Each [[entry]] is one local/remote directory pair; targets are
# relative paths beneath the source root.
# at_startup / at_exit are optional shell commands run around the sync.

`

// scaffold is the starter configuration written by fpsync init
var scaffold = Config{
	MustExist: []string{"~"},
	Entries: []Entry{
		{
			Local:   "~/docs",
			Remote:  "backup-host:/backup/docs",
			Targets: []string{"notes", "papers"},
		},
	},
}

// WriteScaffold writes a commented starter configuration to path.
// It refuses to clobber an existing file.
func WriteScaffold(path string) error {
	if _, err := os.Stat(path); err == nil {
		return errors.Newf(errors.ErrFileAccess, "config file already exists: %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to create config directory for %s", path)
	}

	body, err := toml.Marshal(scaffold)
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to marshal starter config")
	}

	content := append([]byte(scaffoldHeader), body...)
	if err := os.WriteFile(path, content, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "failed to write config file %s", path)
	}
	return nil
}
