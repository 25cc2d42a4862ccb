package parallel

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment variables read by LoadConfig,
// e.g. STREAMABLE_MAX_WORKERS.
const EnvPrefix = "STREAMABLE"

var ErrInvalidConfig = errors.New("invalid executor config")

// Config tunes an Executor.
type Config struct {
	// Upper bound of concurrently running workers.
	MaxWorkers int `mapstructure:"max_workers"`
	// A worker considers splitting its work at most once per SplitInterval.
	SplitInterval time.Duration `mapstructure:"split_interval"`
	// Work with smaller size estimate is never split.
	SplitThreshold int64 `mapstructure:"split_threshold"`
	// Number of elements moved out of a sequential source per split.
	BatchSize int `mapstructure:"batch_size"`
}

func DefaultConfig() Config {
	return Config{
		MaxWorkers:     runtime.NumCPU() + 2,
		SplitInterval:  50 * time.Millisecond,
		SplitThreshold: 10_000,
		BatchSize:      1 << 10,
	}
}

func (c Config) Validate() error {
	switch {
	case c.MaxWorkers < 1:
		return fmt.Errorf("%w: max_workers must be at least 1, got %d", ErrInvalidConfig, c.MaxWorkers)
	case c.SplitInterval < 0:
		return fmt.Errorf("%w: split_interval must not be negative, got %s", ErrInvalidConfig, c.SplitInterval)
	case c.SplitThreshold < 0:
		return fmt.Errorf("%w: split_threshold must not be negative, got %d", ErrInvalidConfig, c.SplitThreshold)
	case c.BatchSize < 1:
		return fmt.Errorf("%w: batch_size must be at least 1, got %d", ErrInvalidConfig, c.BatchSize)
	}

	return nil
}

// LoadConfig reads Config from v, falling back to environment and DefaultConfig.
// A nil v reads environment only.
func LoadConfig(v *viper.Viper) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	defaults := DefaultConfig()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("max_workers", defaults.MaxWorkers)
	v.SetDefault("split_interval", defaults.SplitInterval)
	v.SetDefault("split_threshold", defaults.SplitThreshold)
	v.SetDefault("batch_size", defaults.BatchSize)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding executor config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
