// Package config loads trackview settings from a TOML file and the
// environment. Env var overrides use prefix TRACKVIEW_.
package config

import (
	stderrs "errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirkon/errors"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Scheduler SchedulerConfig
	Log       LogConfig
	Browser   BrowserConfig
	Tracks    []TrackConfig
}

// SchedulerConfig sizes the shared load pool.
type SchedulerConfig struct {
	Workers int
	Queue   int
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string
}

// BrowserConfig holds the startup view.
type BrowserConfig struct {
	Genome string   // FASTA used for the contig table
	Locus  string   // initial locus, whole first contig when empty
	Split  []string // extra loci opened as split panels
}

// TrackConfig declares one GC-content track.
type TrackConfig struct {
	Name      string
	Fasta     string
	Group     string
	Bins      int
	Autoscale bool
}

// Load reads configuration from path (or $TRACKVIEW_CONFIG, or
// ~/.config/trackview/config.toml) and the environment. A missing file is
// not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	v.SetDefault("scheduler.workers", 5)
	v.SetDefault("scheduler.queue", 64)
	v.SetDefault("log.level", "warn")
	v.SetDefault("browser.genome", "")
	v.SetDefault("browser.locus", "")

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv("TRACKVIEW_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "trackview"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TRACKVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !stderrs.As(err, &notFound) && !os.IsNotExist(err) {
			return Config{}, errors.Wrap(err, "read config").Str("config-path", path)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, errors.Wrap(err, "unmarshal config")
	}
	if c.Scheduler.Workers < 1 {
		return Config{}, errors.New("scheduler.workers must be ≥ 1").Int("workers", c.Scheduler.Workers)
	}
	for i, t := range c.Tracks {
		if t.Fasta == "" {
			return Config{}, errors.New("track without fasta").Int("track-index", i)
		}
		if t.Name == "" {
			c.Tracks[i].Name = filepath.Base(t.Fasta)
		}
	}
	return c, nil
}
