package configs

import (
	"encoding/json"
	"os"
	"path/filepath"
	"webook-smoke/internal/util"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	zlog "github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

const DefaultConfigPath = "/configs/config.yaml"

type ServiceConfig struct {
	Components ComponentsConfig `yaml:"use_components"`
	Server     ServerConfig     `yaml:"server"`
	Smoke      SmokeConfig      `yaml:"smoke"`
	Logs       LogConfig        `yaml:"logs"`
	Database   DatabaseConfig   `yaml:"database"`
}

var config ServiceConfig

type ConfigureForTestingFunc func(*ServiceConfig)

var configureForTesting ConfigureForTestingFunc

func SetConfigureForTestingFunc(configureForTestingFunc ConfigureForTestingFunc) {
	configureForTesting = configureForTestingFunc
}

// LoadConfig fills the global config from CONFIG_PATH (or the default path)
// and panics if an explicitly requested file can't be used.
func LoadConfig() {
	// .env is optional, real environment wins
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		zlog.Warn().Err(err).Msg("failed to load .env")
	}

	cfg_path, explicit := os.LookupEnv("CONFIG_PATH")
	if !explicit || cfg_path == "" {
		cfg_path = DefaultConfigPath
	}

	full_cfg_path, err := resolveConfigPath(cfg_path)
	switch {
	case err == nil:
	case !explicit && os.IsNotExist(errors.Cause(err)):
		zlog.Warn().Str("path", cfg_path).Msg("config file not found, using defaults")
		full_cfg_path = ""
	default:
		zlog.Err(err).Str("path", cfg_path).Msg("failed to resolve config path")
		panic(err)
	}

	loaded, err := Parse(full_cfg_path)
	if err != nil {
		zlog.Err(err).Msg("failed to parse config")
		panic(err)
	}
	config = *loaded

	if configureForTesting != nil {
		configureForTesting(&config)
	}

	s, err := json.Marshal(config)
	if err == nil {
		zlog.Debug().RawJSON("config", s).Msg("config loaded")
	}
}

// Parse reads a config file on top of the defaults. An empty path yields the
// defaults alone.
func Parse(path string) (*ServiceConfig, error) {
	var cfg ServiceConfig
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "apply config defaults")
	}

	if path == "" {
		return &cfg, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read config file %s", path)
	}

	if err = yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, errors.Wrapf(err, "unmarshal config file %s", path)
	}

	return &cfg, nil
}

// resolveConfigPath looks for the file under the project root first, then
// takes the path as given.
func resolveConfigPath(cfg_path string) (string, error) {
	if root, err := util.GetProjectRoot(); err == nil {
		candidate, err := filepath.Abs(filepath.Join(root, cfg_path))
		if err == nil {
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
	}

	full, err := filepath.Abs(cfg_path)
	if err != nil {
		return "", errors.Wrap(err, "make config path absolute")
	}
	if _, err := os.Stat(full); err != nil {
		return "", errors.WithStack(err)
	}
	return full, nil
}
