package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	defaultPath     = "~/.storyboard"
	defaultDebounce = 2 * time.Second
)

// Config locates local storage and tunes the editor session.
type Config interface {
	BasePath() string
	Debounce() time.Duration
	HistoryLimit() int
	LogLevel() string
}

// LoadConfig reads .storyboard.yaml from $STORYBOARD_CONFIG_PATH or the working
// directory, with STORYBOARD_* environment overrides. A missing file is not an
// error.
func LoadConfig() (Config, error) {
	v := viper.New()
	v.SetDefault("path", defaultPath)
	v.SetDefault("debounce", defaultDebounce)
	v.SetDefault("history_limit", 0)
	v.SetDefault("log_level", "info")
	v.SetConfigName(".storyboard") // .yaml is implicit
	v.SetEnvPrefix("STORYBOARD")
	v.AutomaticEnv()

	if override := os.Getenv("STORYBOARD_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("store: read config: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	debounce := v.GetDuration("debounce")
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	return &fileConfig{
		Path:          path,
		DebounceDelay: debounce,
		Limit:         v.GetInt("history_limit"),
		Level:         v.GetString("log_level"),
	}, nil
}

type fileConfig struct {
	Path          string        `json:"path"`
	DebounceDelay time.Duration `json:"debounce"`
	Limit         int           `json:"historyLimit"`
	Level         string        `json:"logLevel"`
}

func (f *fileConfig) BasePath() string {
	return f.Path
}

func (f *fileConfig) Debounce() time.Duration {
	return f.DebounceDelay
}

func (f *fileConfig) HistoryLimit() int {
	return f.Limit
}

func (f *fileConfig) LogLevel() string {
	return f.Level
}
