package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "INVENTORY"
	configName = "inventory"

	DefaultFile              = "inventory.json"
	DefaultLowStockThreshold = 5
)

type Config struct {
	// File is the path of the JSON file backing the inventory.
	File              string `mapstructure:"file"`
	LowStockThreshold int    `mapstructure:"low_stock_threshold"`
	Log               Log    `mapstructure:"log"`
}

func (c Config) String() string {
	return fmt.Sprintf("file=%s, low_stock_threshold=%d, log.level=%s, log.format=%s",
		c.File, c.LowStockThreshold, c.Log.Level, c.Log.Format)
}

// New returns a viper instance with the defaults set and environment variables
// (INVENTORY_FILE, INVENTORY_LOG_LEVEL, ...) bound.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("file", DefaultFile)
	v.SetDefault("low_stock_threshold", DefaultLowStockThreshold)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.add_source", false)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadDotEnv loads variables from dotenv files into the process environment.
// Missing files are ignored and variables already set are not overridden.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration into v and decodes it.
//
// When configFile is empty, inventory.yaml is looked up in the working directory and
// in $HOME/.config/inventory; not finding one is fine. An explicit configFile must exist.
func Load(v *viper.Viper, configFile string) (Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.TextUnmarshallerHookFunc())); err != nil {
		return Config{}, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	c.File = strings.TrimSpace(c.File)
	if c.File == "" {
		return errors.New("inventory file path is not configured")
	}
	if c.LowStockThreshold < 0 {
		return fmt.Errorf("invalid low stock threshold: %d", c.LowStockThreshold)
	}
	return nil
}
