// internal/config/config.go
//
// Package config holds run settings decoded by viper from flags, SITEOUT_*
// environment variables (optionally seeded from a .env file) and an optional
// siteout.yaml.
package config

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "SITEOUT"
	ConfigName = "siteout"
	// EnvFile in the working directory is loaded into the environment
	// before lookup. Variables already set are not overridden.
	EnvFile = ".env"
)

// Scorer names.
const (
	ScorerBuiltin = "builtin"
	ScorerPatser  = "patser"
	ScorerNone    = "none"
)

// Config is the union of the shared and per-command settings.
type Config struct {
	// catalog
	MotifFiles  []string `mapstructure:"motifs"`
	Motifs      []string `mapstructure:"motif"`
	PWM         []string `mapstructure:"pwm"`
	PValue      float64  `mapstructure:"pvalue"`
	Pseudocount float64  `mapstructure:"pseudocount"`
	Cutoff      float64  `mapstructure:"cutoff"`
	// CutoffSet is true when a cutoff was given explicitly.
	CutoffSet bool `mapstructure:"-"`

	// composition
	GC           float64 `mapstructure:"gc"`
	BackgroundGC float64 `mapstructure:"background-gc"`

	// engine
	Seed        int64 `mapstructure:"seed"`
	MaxRounds   int   `mapstructure:"max-rounds"`
	ZoneCeiling int   `mapstructure:"zone-ceiling"`

	// scorer
	Scorer        string        `mapstructure:"scorer"`
	PatserPath    string        `mapstructure:"patser-path"`
	PatserArgs    []string      `mapstructure:"patser-args"`
	PatserKeep    bool          `mapstructure:"patser-keep"`
	ScorerTimeout time.Duration `mapstructure:"scorer-timeout"`
	MaxLnP        float64       `mapstructure:"max-lnp"`

	// output
	Output  string `mapstructure:"output"`
	Name    string `mapstructure:"name"`
	Quiet   bool   `mapstructure:"quiet"`
	Verbose bool   `mapstructure:"verbose"`

	// per command
	Design   string   `mapstructure:"design"`
	Sequence string   `mapstructure:"sequence"`
	Protect  []string `mapstructure:"protect"`
	Length   int      `mapstructure:"length"`

	// ConfigFile is the file settings were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

// Load binds fs to a fresh viper instance, reads the config file (explicit
// path, else siteout.yaml in the working directory or $HOME/.config/siteout)
// and decodes everything into a Config. Precedence: flag > env > file >
// flag default.
func Load(fs *pflag.FlagSet, explicitFile string) (Config, error) {
	if err := godotenv.Load(EnvFile); err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return Config{}, fmt.Errorf("read %s: %w", EnvFile, err)
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, err
	}

	if explicitFile != "" {
		v.SetConfigFile(explicitFile)
	} else {
		v.SetConfigName(ConfigName)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigName))
		}
	}
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if explicitFile != "" || !errors.As(err, &nf) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.CutoffSet = v.IsSet("cutoff")
	c.ConfigFile = v.ConfigFileUsed()
	return c, nil
}

// Validate checks ranges and enumerations shared by all commands.
func (c Config) Validate() error {
	switch {
	case c.GC < 0 || c.GC > 1:
		return fmt.Errorf("--gc must be in [0,1], got %v", c.GC)
	case c.BackgroundGC <= 0 || c.BackgroundGC >= 1:
		return fmt.Errorf("--background-gc must be in (0,1), got %v", c.BackgroundGC)
	case c.PValue <= 0 || c.PValue > 1:
		return fmt.Errorf("--pvalue must be in (0,1], got %v", c.PValue)
	case c.Pseudocount < 0:
		return errors.New("--pseudocount must be ≥ 0")
	case c.MaxRounds < 1:
		return errors.New("--max-rounds must be ≥ 1")
	case c.ZoneCeiling < 1:
		return errors.New("--zone-ceiling must be ≥ 1")
	case c.ScorerTimeout <= 0:
		return errors.New("--scorer-timeout must be > 0")
	case c.MaxLnP > 0:
		return fmt.Errorf("--max-lnp must be ≤ 0, got %v", c.MaxLnP)
	case c.Quiet && c.Verbose:
		return errors.New("--quiet conflicts with --verbose")
	}
	switch c.Scorer {
	case ScorerBuiltin, ScorerPatser, ScorerNone:
	default:
		return fmt.Errorf("invalid --scorer %q (builtin | patser | none)", c.Scorer)
	}
	return nil
}
