package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"github.com/ukaji3/imagepanel-go/pkg/imagepanel"
	"github.com/ukaji3/imagepanel-go/pkg/imagepanel/models"
)

// Environment variables read at startup. Flags take precedence.
const (
	envAddr     = "IMAGEPANEL_ADDR"
	envLogLevel = "IMAGEPANEL_LOG_LEVEL"
	envOptions  = "IMAGEPANEL_OPTIONS"
	envVariant  = "IMAGEPANEL_VARIANT"
)

const (
	defaultAddr     = ":8080"
	defaultLogLevel = "info"
)

type config struct {
	Addr        string
	LogLevel    string
	OptionsPath string
	Variant     string
}

// loadConfig reads envFile into the process environment, if it exists, and
// collects the settings. Variables already set are not overridden.
func loadConfig(envFile string) (config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	return config{
		Addr:        getenv(envAddr, defaultAddr),
		LogLevel:    getenv(envLogLevel, defaultLogLevel),
		OptionsPath: os.Getenv(envOptions),
		Variant:     os.Getenv(envVariant),
	}, nil
}

// applyFlags overrides settings with the flags the user passed explicitly.
func (c *config) applyFlags(flags *pflag.FlagSet) {
	override := func(name string, dst *string) {
		if f := flags.Lookup(name); f != nil && f.Changed {
			*dst = f.Value.String()
		}
	}
	override("addr", &c.Addr)
	override("log-level", &c.LogLevel)
	override("options", &c.OptionsPath)
	override("variant", &c.Variant)
}

// options loads the options file, or the defaults when none is configured,
// and applies the variant override.
func (c config) options() (imagepanel.Options, error) {
	opts := imagepanel.DefaultOptions()
	if c.OptionsPath != "" {
		loaded, err := imagepanel.LoadOptions(c.OptionsPath)
		if err != nil {
			return opts, err
		}
		opts = loaded
	}

	if c.Variant != "" {
		opts.Variant = models.Variant(strings.ToLower(c.Variant))
		if err := imagepanel.Validate(opts); err != nil {
			return opts, err
		}
	}
	return opts, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", s)
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
