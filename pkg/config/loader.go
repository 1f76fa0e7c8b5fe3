package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/talss89/envtmpl/pkg/errors"
	"github.com/talss89/envtmpl/pkg/paths"
)

// EnvPrefix marks environment variables that override configuration.
// ENVTMPL_RENDER_DRY_RUN sets render.dry_run.
const EnvPrefix = "ENVTMPL_"

// Options select the files and overrides Load uses.
type Options struct {
	// ConfigFile replaces the project file lookup. It must exist.
	ConfigFile string
	// WorkDir is searched for a project file. Defaults to ".".
	WorkDir string
	// Paths locates the user config file. Defaults to paths.New().
	Paths *paths.Paths
	// Overrides are dotted keys set from the command line.
	Overrides map[string]interface{}
}

// Load builds the configuration from every layer in precedence order.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")

	// 1. Built-in defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultConfig}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to load built-in defaults")
	}

	// 2. User config
	p := opts.Paths
	if p == nil {
		p = paths.New()
	}
	if userPath := p.UserConfigPath(); fileExists(userPath) {
		if err := loadFile(k, userPath); err != nil {
			return nil, err
		}
	}

	// 3. Project config, or the file given with --config
	projectPath := opts.ConfigFile
	if projectPath != "" {
		projectPath = paths.ExpandHome(projectPath)
		if !fileExists(projectPath) {
			return nil, errors.Newf(errors.ErrConfigLoad, "config file %s does not exist", projectPath).
				WithDetail("path", projectPath)
		}
	} else {
		workDir := opts.WorkDir
		if workDir == "" {
			workDir = "."
		}
		projectPath = paths.FindProjectConfig(workDir)
	}
	if projectPath != "" {
		if err := loadFile(k, projectPath); err != nil {
			return nil, err
		}
	}

	// 4. Environment
	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
		return strings.Replace(key, "_", ".", 1)
	}), nil)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
	}

	// 5. Command line
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply command line overrides")
		}
	}

	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigValid, "failed to decode configuration")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func loadFile(k *koanf.Koanf, path string) error {
	if err := k.Load(file.Provider(path), parserFor(path)); err != nil {
		return errors.Wrapf(err, errors.ErrConfigLoad, "failed to load config from %s", path).
			WithDetail("path", path)
	}
	return nil
}

func parserFor(path string) koanf.Parser {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Parser()
	default:
		return toml.Parser()
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
