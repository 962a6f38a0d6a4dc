// Package config loads the server configuration. Sources, lowest precedence
// first: built-in defaults, an optional YAML file, CHESS_* environment
// variables, command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Server ServerConfig      `yaml:"server"`
	Clock  model.TimeControl `yaml:"clock"`
	Log    LogConfig         `yaml:"log"`
}

type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	TickInterval   time.Duration `yaml:"tick_interval"`
}

type LogConfig struct {
	Development bool `yaml:"development"`
}

func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":3000",
			AllowedOrigins: []string{"http://localhost:5173"},
			TickInterval:   time.Second,
		},
		Clock: model.DefaultTimeControl,
	}
}

// Load builds the configuration from args (without the program name) and
// the environment as seen through getenv.
func Load(args []string, getenv func(string) string) (Config, error) {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	configPath := fs.String("config", getenv("CHESS_CONFIG"), "path to a YAML config file")
	addr := fs.String("addr", "", "listen address")
	initial := fs.Int("clock-initial", 0, "starting time per side in seconds")
	increment := fs.Int("clock-increment", 0, "increment per move in seconds")
	dev := fs.Bool("dev", false, "development logging")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Default()
	if *configPath != "" {
		if err := cfg.loadFile(*configPath); err != nil {
			return Config{}, err
		}
	}
	if err := cfg.applyEnv(getenv); err != nil {
		return Config{}, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Server.Addr = *addr
		case "clock-initial":
			cfg.Clock.Initial = *initial
		case "clock-increment":
			cfg.Clock.Increment = *increment
		case "dev":
			cfg.Log.Development = *dev
		}
	})

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(getenv func(string) string) error {
	if v := getenv("CHESS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := getenv("CHESS_ALLOWED_ORIGINS"); v != "" {
		c.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := getenv("CHESS_CLOCK_INITIAL"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHESS_CLOCK_INITIAL: %w", err)
		}
		c.Clock.Initial = n
	}
	if v := getenv("CHESS_CLOCK_INCREMENT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("CHESS_CLOCK_INCREMENT: %w", err)
		}
		c.Clock.Increment = n
	}
	if v := getenv("CHESS_LOG_DEVELOPMENT"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("CHESS_LOG_DEVELOPMENT: %w", err)
		}
		c.Log.Development = b
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is empty"))
	}
	if c.Server.TickInterval <= 0 {
		errs = append(errs, errors.New("server.tick_interval must be positive"))
	}
	if c.Clock.Initial <= 0 {
		errs = append(errs, errors.New("clock.initial must be positive"))
	}
	if c.Clock.Increment < 0 {
		errs = append(errs, errors.New("clock.increment must not be negative"))
	}
	return errors.Join(errs...)
}
