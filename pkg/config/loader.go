package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	ktoml "github.com/knadh/koanf/parsers/toml"
	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/fpsync/pkg/errors"
	"github.com/arthur-debert/fpsync/pkg/logging"
	"github.com/arthur-debert/fpsync/pkg/paths"
)

// EnvPrefix selects which environment variables override config keys,
// e.g. FPSYNC_RSYNC_PROGRAM for rsync_program.
const EnvPrefix = "FPSYNC_"

// defaults are the built-in settings merged below any file values
var defaults = map[string]interface{}{
	"rsync_program": "rsync",
}

// Resolve finds the configuration file to load. An explicit override
// must exist; otherwise the first existing default candidate wins.
func Resolve(override string) (string, error) {
	if override != "" {
		expanded := paths.Expand(override)
		if _, err := os.Stat(expanded); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigNotFound, "config file not found: %s", expanded)
		}
		return expanded, nil
	}

	candidates := paths.ConfigCandidates()
	for _, candidate := range candidates {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", errors.Newf(errors.ErrConfigNotFound,
		"no config file found, looked for: %s", strings.Join(candidates, ", "))
}

// Load reads and decodes the configuration at path. TOML is the
// native format; .yaml/.yml override paths are parsed as YAML.
func Load(path string) (*Config, error) {
	logger := logging.GetLogger("config")

	k := koanf.New(".")
	if err := k.Load(confmap.Provider(defaults, "."), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load built-in defaults")
	}

	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse config %s", path)
	}

	// Environment overrides are merged last
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load environment overrides")
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				// must_exist may be a bare string or a list
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to decode config %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("entries", len(cfg.Entries)).
		Int("mustExist", len(cfg.MustExist)).
		Msg("Configuration loaded")
	return &cfg, nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return kyaml.Parser()
	default:
		return ktoml.Parser()
	}
}
