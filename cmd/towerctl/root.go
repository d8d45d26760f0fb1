package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	controltower "github.com/towerops/controltower"
)

// fileConfig is the on-disk shape of ~/.config/towerctl/config.yaml.
type fileConfig struct {
	BackendURL   string `yaml:"backend_url"`
	AssistantURL string `yaml:"assistant_url"`
	Session      struct {
		Backend     string `yaml:"backend"`
		FilePath    string `yaml:"file_path"`
		RedisAddr   string `yaml:"redis_addr"`
		RedisPrefix string `yaml:"redis_prefix"`
	} `yaml:"session"`
}

var (
	flagConfig     string
	flagBackendURL string
	flagAssistant  string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "towerctl",
	Short:         "Logistics Control Tower terminal client",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default: $XDG_CONFIG_HOME/towerctl/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagBackendURL, "backend-url", "", "backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagAssistant, "assistant-url", "", "assistant base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "debug logging")
}

func loadFileConfig() (fileConfig, error) {
	var fc fileConfig

	path := flagConfig
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return fc, err
		}
		path = filepath.Join(dir, "towerctl", "config.yaml")
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return fc, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return fc, nil
}

func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if flagVerbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).
		With().Timestamp().Logger()
}

// buildGuard assembles the guard from config file plus flag overrides and
// resolves persisted session state.
func buildGuard(cmd *cobra.Command) (*controltower.Guard, error) {
	fc, err := loadFileConfig()
	if err != nil {
		return nil, err
	}

	backendURL := fc.BackendURL
	if flagBackendURL != "" {
		backendURL = flagBackendURL
	}
	if backendURL == "" {
		return nil, errors.New("no backend URL: set backend_url in config or pass --backend-url")
	}

	assistantURL := fc.AssistantURL
	if flagAssistant != "" {
		assistantURL = flagAssistant
	}

	b := controltower.New().
		WithBackendURL(backendURL).
		WithAssistantURL(assistantURL).
		WithLogger(newLogger()).
		WithMetricsEnabled(true)

	switch fc.Session.Backend {
	case "redis":
		client := redis.NewClient(&redis.Options{Addr: fc.Session.RedisAddr})
		b = b.WithRedis(client)
		if fc.Session.RedisPrefix != "" {
			b = b.WithRedisPrefix(fc.Session.RedisPrefix)
		}
	default:
		if fc.Session.FilePath != "" {
			b = b.WithSessionFile(fc.Session.FilePath)
		}
	}

	guard, err := b.Build()
	if err != nil {
		return nil, err
	}

	if err := guard.Initialize(cmd.Context()); err != nil {
		return nil, err
	}
	return guard, nil
}

// requireSession builds the guard and refuses to continue without a login.
func requireSession(cmd *cobra.Command) (*controltower.Guard, error) {
	guard, err := buildGuard(cmd)
	if err != nil {
		return nil, err
	}
	if !guard.IsAuthenticated() {
		guard.Close()
		return nil, errors.New("not logged in: run 'towerctl login' first")
	}
	return guard, nil
}
