// Package config loads the bot's TOML configuration.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	mdwerror "github.com/msto63/chatbot/foundation/core/error"
	"github.com/msto63/chatbot/foundation/core/log"
	"github.com/msto63/chatbot/foundation/utils/stringx"
	"github.com/msto63/chatbot/pkg/bot"
)

// EnvConfigPath names the environment variable holding the config file path
const EnvConfigPath = "CHATBOT_CONFIG"

// Config holds the complete application configuration
type Config struct {
	General GeneralConfig `toml:"general"`
	Bot     BotConfig     `toml:"bot"`
	Modules ModulesConfig `toml:"modules"`
	Quote   QuoteConfig   `toml:"quote"`
	Console ConsoleConfig `toml:"console"`
}

// GeneralConfig holds general application settings
type GeneralConfig struct {
	Name      string `toml:"name"`
	DataDir   string `toml:"data_dir"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// BotConfig holds the bot's identity on the chat network
type BotConfig struct {
	Nick          string   `toml:"nick"`
	CommandPrefix string   `toml:"command_prefix"`
	Owners        []string `toml:"owners"`
}

// ModulesConfig selects the modules loaded at startup
type ModulesConfig struct {
	// Enabled lists module names; empty loads every built-in module
	Enabled  []string `toml:"enabled"`
	LoadMode string   `toml:"load_mode"`
}

// QuoteConfig holds quotation storage settings
type QuoteConfig struct {
	Database string `toml:"database"`
}

// ConsoleConfig holds the websocket console settings
type ConsoleConfig struct {
	Host         string   `toml:"host"`
	Port         int      `toml:"port"`
	ReadTimeout  Duration `toml:"read_timeout"`
	WriteTimeout Duration `toml:"write_timeout"`
}

// Duration wraps time.Duration for TOML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns a configuration with every default applied
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load loads configuration from a TOML file
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, configError(nil, "config file not found").WithDetail("path", path)
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, configError(err, "failed to parse config").WithDetail("path", path)
	}

	cfg.applyDefaults()
	cfg.expandEnvVars()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFromEnv loads configuration from CHATBOT_CONFIG or the first default
// location that exists
func LoadFromEnv() (*Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		defaultPaths := []string{
			"./configs/chatbot.toml",
			"./chatbot.toml",
			filepath.Join(os.Getenv("HOME"), ".config/chatbot/config.toml"),
		}
		for _, p := range defaultPaths {
			if _, err := os.Stat(p); err == nil {
				path = p
				break
			}
		}
	}

	if path == "" {
		return nil, configError(nil, fmt.Sprintf("no config file found, set %s or create configs/chatbot.toml", EnvConfigPath))
	}

	return Load(path)
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// General
	if c.General.Name == "" {
		c.General.Name = "chatbot"
	}
	if c.General.DataDir == "" {
		c.General.DataDir = "./data"
	}
	if c.General.LogLevel == "" {
		c.General.LogLevel = "info"
	}
	if c.General.LogFormat == "" {
		c.General.LogFormat = "text"
	}

	// Bot
	if c.Bot.Nick == "" {
		c.Bot.Nick = "chatbot"
	}
	if c.Bot.CommandPrefix == "" {
		c.Bot.CommandPrefix = "!"
	}

	// Modules
	if c.Modules.LoadMode == "" {
		c.Modules.LoadMode = bot.LoadAdd.String()
	}

	// Quote
	if c.Quote.Database == "" {
		c.Quote.Database = filepath.Join(c.General.DataDir, "quotes.db")
	}

	// Console
	if c.Console.Host == "" {
		c.Console.Host = "127.0.0.1"
	}
	if c.Console.Port == 0 {
		c.Console.Port = 8090
	}
	if c.Console.ReadTimeout.Duration == 0 {
		c.Console.ReadTimeout.Duration = 120 * time.Second
	}
	if c.Console.WriteTimeout.Duration == 0 {
		c.Console.WriteTimeout.Duration = 30 * time.Second
	}
}

// expandEnvVars expands environment variables in path values
func (c *Config) expandEnvVars() {
	c.General.DataDir = os.ExpandEnv(c.General.DataDir)
	c.Quote.Database = os.ExpandEnv(c.Quote.Database)
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if stringx.IsBlank(c.Bot.Nick) {
		return configError(nil, "bot.nick must not be blank")
	}
	if stringx.ContainsWhitespace(c.Bot.Nick) {
		return configError(nil, "bot.nick must not contain whitespace").WithDetail("nick", c.Bot.Nick)
	}
	if stringx.ContainsWhitespace(c.Bot.CommandPrefix) {
		return configError(nil, "bot.command_prefix must not contain whitespace").
			WithDetail("command_prefix", c.Bot.CommandPrefix)
	}
	if _, err := bot.ParseLoadMode(c.Modules.LoadMode); err != nil {
		return configError(err, "invalid modules.load_mode")
	}
	if _, err := log.ParseLevel(c.General.LogLevel); err != nil {
		return configError(err, "invalid general.log_level")
	}
	if _, err := log.ParseFormat(c.General.LogFormat); err != nil {
		return configError(err, "invalid general.log_format")
	}
	if c.Console.Port < 0 || c.Console.Port > 65535 {
		return configError(nil, "console.port out of range").WithDetail("port", c.Console.Port)
	}
	return nil
}

// LoadMode returns the configured load mode. Validate has already
// rejected unknown values.
func (c *Config) LoadMode() bot.LoadMode {
	mode, _ := bot.ParseLoadMode(c.Modules.LoadMode)
	return mode
}

// ConsoleAddress returns the listen address of the websocket console
func (c *Config) ConsoleAddress() string {
	return net.JoinHostPort(c.Console.Host, strconv.Itoa(c.Console.Port))
}

// Owners returns the configured owners without blank entries
func (c *Config) Owners() []string {
	owners := make([]string, 0, len(c.Bot.Owners))
	for _, o := range c.Bot.Owners {
		if o = strings.TrimSpace(o); o != "" {
			owners = append(owners, o)
		}
	}
	return owners
}

func configError(cause error, message string) *mdwerror.Error {
	if cause == nil {
		return mdwerror.New(message).WithCode(mdwerror.CodeConfigError)
	}
	return mdwerror.Wrap(cause, message).WithCode(mdwerror.CodeConfigError)
}
