package store

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath = "~/.habit.db"
	defaultDays = 365
)

// Config tells the store where documents live and how big a grid is.
type Config interface {
	BasePath() string
	GridDays() int
}

// LoadConfig reads .habit.yaml from $HABIT_CONFIG_PATH or the working
// directory, with HABIT_* environment overrides.
func LoadConfig() (Config, error) {
	viper.SetDefault("path", defaultPath)
	viper.SetDefault("days", defaultDays)
	viper.SetConfigName(".habit") // .yaml is implicit
	viper.SetEnvPrefix("HABIT")
	viper.AutomaticEnv()

	if override := os.Getenv("HABIT_CONFIG_PATH"); override != "" {
		viper.AddConfigPath(override)
	}

	viper.AddConfigPath("./")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(viper.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	days := viper.GetInt("days")
	if days <= 0 {
		days = defaultDays
	}
	return &fileConfig{Path: path, Days: days}, nil
}

// ConfigFile reports the config file viper used, if any.
func ConfigFile() string {
	return viper.ConfigFileUsed()
}

// NewConfig builds a Config without consulting viper.
func NewConfig(path string, days int) Config {
	if days <= 0 {
		days = defaultDays
	}
	return &fileConfig{Path: path, Days: days}
}

type fileConfig struct {
	Path string `json:"path"`
	Days int    `json:"days"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) GridDays() int {
	return f.Days
}
