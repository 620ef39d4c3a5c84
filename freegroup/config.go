package freegroup

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config gathers the knobs of a freegroup session.  It can be loaded from a .toml or .yaml file.
type Config struct {
	Catalog CatalogOpts `toml:"catalog" yaml:"catalog"`
	Orbit   OrbitConfig `toml:"orbit"   yaml:"orbit"`
	Redis   RedisConfig `toml:"redis"   yaml:"redis"`
	Log     LogOpts     `toml:"log"     yaml:"log"`
}

// OrbitConfig bounds a level orbit search.
type OrbitConfig struct {
	MaxNodes int  `toml:"max_nodes" yaml:"max_nodes"` // 0 means unbounded
	Verbose  bool `toml:"verbose"   yaml:"verbose"`   // report parent and move for each node
}

// RedisConfig locates a shared signature set.  An empty Addr disables it.
type RedisConfig struct {
	Addr string `toml:"addr" yaml:"addr"`
	Key  string `toml:"key"  yaml:"key"`
	DB   int    `toml:"db"   yaml:"db"`
}

// LogOpts configures klog.
type LogOpts struct {
	Verbosity int  `toml:"verbosity" yaml:"verbosity"`
	UseColor  bool `toml:"use_color" yaml:"use_color"`
}

func DefaultConfig() Config {
	return Config{
		Redis: RedisConfig{
			Key: "freegroup:seen",
		},
		Log: LogOpts{
			Verbosity: 2,
			UseColor:  true,
		},
	}
}

// LoadConfig reads the given file over DefaultConfig(), choosing the decoder by file extension.
func LoadConfig(pathname string) (Config, error) {
	cfg := DefaultConfig()

	buf, err := os.ReadFile(pathname)
	if err != nil {
		return cfg, errors.Wrapf(err, "reading config %q", pathname)
	}

	switch strings.ToLower(filepath.Ext(pathname)) {
	case ".toml":
		err = toml.Unmarshal(buf, &cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(buf, &cfg)
	default:
		return cfg, errors.Wrapf(ErrBadConfig, "unrecognized config extension %q", pathname)
	}
	if err != nil {
		return cfg, errors.Wrapf(ErrBadConfig, "%q: %v", pathname, err)
	}

	if err = cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// OrbitOpts returns the orbit search bounds of this config.  The caller supplies Seen.
func (cfg *Config) OrbitOpts() OrbitOpts {
	return OrbitOpts{
		Verbose:  cfg.Orbit.Verbose,
		MaxNodes: cfg.Orbit.MaxNodes,
	}
}

func (cfg *Config) Validate() error {
	if cfg.Orbit.MaxNodes < 0 {
		return errors.Wrap(ErrBadConfig, "orbit.max_nodes must be >= 0")
	}
	if cfg.Log.Verbosity < 0 {
		return errors.Wrap(ErrBadConfig, "log.verbosity must be >= 0")
	}
	if cfg.Redis.Addr != "" && cfg.Redis.Key == "" {
		return errors.Wrap(ErrBadConfig, "redis.key required when redis.addr is set")
	}
	if cfg.Catalog.ReadOnly && cfg.Catalog.DbPathName == "" {
		return errors.Wrap(ErrBadConfig, "catalog.read_only requires catalog.db_path")
	}
	return nil
}
