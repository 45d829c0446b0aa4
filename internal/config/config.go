// Package config reads process settings from the environment. A .env file
// next to the binary is honoured through godotenv.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// Config holds everything the server and CLI need at startup.
type Config struct {
	Port         string
	GinMode      string
	ContentFile  string // empty selects the embedded default content
	ContentWatch bool

	LogLevel  string
	LogFormat string
	LogSalt   string

	ContactSubmitDelay time.Duration
}

// Defaults mirror what the site ran with before configuration existed.
const (
	DefaultPort               = "8080"
	DefaultLogLevel           = "info"
	DefaultLogFormat          = "text"
	DefaultContactSubmitDelay = 2000 * time.Millisecond
)

// Load builds a Config from the current environment and validates it.
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read parses the environment without validating the result, so callers
// can apply flag overrides first and call Validate themselves.
func Read() (*Config, error) {
	cfg := &Config{
		Port:        getenv("PORT", DefaultPort),
		GinMode:     getenv("GIN_MODE", gin.DebugMode),
		ContentFile: os.Getenv("CONTENT_FILE"),
		LogLevel:    strings.ToLower(getenv("LOG_LEVEL", DefaultLogLevel)),
		LogFormat:   strings.ToLower(getenv("LOG_FORMAT", DefaultLogFormat)),
		LogSalt:     os.Getenv("LOG_SALT"),
	}

	if raw := os.Getenv("CONTENT_WATCH"); raw != "" {
		watch, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("CONTENT_WATCH: %w", err)
		}
		cfg.ContentWatch = watch
	}

	cfg.ContactSubmitDelay = DefaultContactSubmitDelay
	if raw := os.Getenv("CONTACT_SUBMIT_DELAY_MS"); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("CONTACT_SUBMIT_DELAY_MS: %w", err)
		}
		cfg.ContactSubmitDelay = time.Duration(ms) * time.Millisecond
	}

	// Salt for hashing client IPs in logs; a fresh one per process unless pinned.
	if cfg.LogSalt == "" {
		cfg.LogSalt = randomSalt()
	}
	return cfg, nil
}

// LoadFile loads the given .env files into the environment, without
// overriding variables that are already set, and then calls Load.
func LoadFile(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil {
		return nil, fmt.Errorf("error loading env file: %w", err)
	}
	return Load()
}

// Validate rejects values the server cannot start with.
func (c *Config) Validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid PORT %q", c.Port)
	}
	switch c.GinMode {
	case gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return fmt.Errorf("invalid GIN_MODE %q", c.GinMode)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid LOG_FORMAT %q: must be text or json", c.LogFormat)
	}
	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal", "panic":
	default:
		return fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	if c.ContactSubmitDelay < 0 {
		return fmt.Errorf("invalid CONTACT_SUBMIT_DELAY_MS: negative")
	}
	if c.ContentWatch && c.ContentFile == "" {
		return fmt.Errorf("CONTENT_WATCH requires CONTENT_FILE")
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func randomSalt() string {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		// crypto/rand does not fail on supported platforms
		panic(fmt.Sprintf("failed to generate log salt: %v", err))
	}
	return hex.EncodeToString(bytes)
}
