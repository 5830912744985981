package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/atomicstack/snek-console/internal/app"
	"gopkg.in/yaml.v3"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	File    string
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

// fileConfig mirrors the optional YAML file. Pointer fields distinguish an
// absent key from a zero value.
type fileConfig struct {
	URL          *string `yaml:"url"`
	Session      *string `yaml:"session"`
	HistoryDB    *string `yaml:"history_db"`
	HistoryLimit *int    `yaml:"history_limit"`
	Width        *int    `yaml:"width"`
	Height       *int    `yaml:"height"`
	Footer       *bool   `yaml:"footer"`
	Verbose      *bool   `yaml:"verbose"`
	Trace        *bool   `yaml:"trace"`
	LogFile      *string `yaml:"log_file"`
}

const (
	envURL          = "SNEK_CONSOLE_URL"
	envSession      = "SNEK_CONSOLE_SESSION"
	envHistoryDB    = "SNEK_CONSOLE_HISTORY_DB"
	envHistoryLimit = "SNEK_CONSOLE_HISTORY_LIMIT"
	envWidth        = "SNEK_CONSOLE_WIDTH"
	envHeight       = "SNEK_CONSOLE_HEIGHT"
	envShowFooter   = "SNEK_CONSOLE_FOOTER"
	envVerbose      = "SNEK_CONSOLE_VERBOSE"
	envTrace        = "SNEK_CONSOLE_TRACE"
	envLogFile      = "SNEK_CONSOLE_LOG_FILE"
	envConfigFile   = "SNEK_CONSOLE_CONFIG"
)

const (
	DefaultURL          = "ws://localhost:6499/sktk"
	DefaultSession      = "main"
	DefaultHistoryLimit = 1000
)

// LoadArgs parses configuration from CLI arguments and environment
// variables, reading the YAML file named by --config or SNEK_CONSOLE_CONFIG.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	path := envOrDefault(env, envConfigFile, "")
	if p, ok := scanConfigFlag(args); ok {
		path = p
	}
	file, err := readFile(path)
	if err != nil {
		return Config{}, err
	}

	fs := flag.NewFlagSet("snek-console", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	endpoint := fs.String("url", envOrDefault(env, envURL, fileString(file.URL, DefaultURL)), "WebSocket endpoint of the evaluation host")
	session := fs.String("session", envOrDefault(env, envSession, fileString(file.Session, DefaultSession)), "session name passed to the host")
	historyDB := fs.String("history-db", envOrDefault(env, envHistoryDB, fileString(file.HistoryDB, "")), "SQLite file for persistent history (empty disables it)")
	historyLimit := fs.Int("history-limit", envOrInt(env, envHistoryLimit, fileInt(file.HistoryLimit, DefaultHistoryLimit)), "number of persisted history entries loaded at startup")
	width := fs.Int("width", envOrInt(env, envWidth, fileInt(file.Width, 0)), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, fileInt(file.Height, 0)), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, fileBool(file.Footer, false)), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, fileBool(file.Trace, false)), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, fileBool(file.Verbose, false)), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, fileString(file.LogFile, "")), "path to the log file")
	fs.String("config", path, "optional YAML configuration file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			URL:          *endpoint,
			Session:      *session,
			HistoryDB:    *historyDB,
			HistoryLimit: *historyLimit,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		File: path,
		Flags: map[string]string{
			"url":          *endpoint,
			"session":      *session,
			"historyDB":    *historyDB,
			"historyLimit": strconv.Itoa(*historyLimit),
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
			"config":       path,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// scanConfigFlag finds --config ahead of the real parse so the file can
// supply defaults for every other flag.
func scanConfigFlag(args []string) (string, bool) {
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			break
		}
		name := strings.TrimLeft(arg, "-")
		if name == arg {
			continue
		}
		if value, ok := strings.CutPrefix(name, "config="); ok {
			return value, true
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1], true
		}
	}
	return "", false
}

func readFile(path string) (fileConfig, error) {
	var file fileConfig
	if path == "" {
		return file, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return file, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return file, nil
}

func fileString(v *string, fallback string) string {
	if v == nil {
		return fallback
	}
	return *v
}

func fileInt(v *int, fallback int) int {
	if v == nil {
		return fallback
	}
	return *v
}

func fileBool(v *bool, fallback bool) bool {
	if v == nil {
		return fallback
	}
	return *v
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	u, err := url.Parse(cfg.App.URL)
	if err != nil {
		return fmt.Errorf("invalid url %q: %w", cfg.App.URL, err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return fmt.Errorf("url scheme must be ws or wss (got %q)", u.Scheme)
	}
	if strings.TrimSpace(cfg.App.Session) == "" {
		return fmt.Errorf("session name must not be empty")
	}
	if cfg.App.HistoryLimit < 0 {
		return fmt.Errorf("history-limit must be >= 0 (got %d)", cfg.App.HistoryLimit)
	}
	return nil
}
