package driver

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"dolphin/interpreter-go/pkg/runtime"
)

// Settings holds user configuration for the dolphin CLI and REPL.
type Settings struct {
	Path               string
	Shell              string
	Prompt             string
	ContinuationPrompt string
	HistoryFile        string
	StrictPrint        bool
	LogLevel           string
	Color              ColorMode
}

// ColorMode controls colored error output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"
	ColorAlways ColorMode = "always"
	ColorNever  ColorMode = "never"
)

// Format is a settings file encoding.
type Format int

const (
	FormatYAML Format = iota
	FormatTOML
)

func (f Format) String() string {
	if f == FormatTOML {
		return "toml"
	}
	return "yaml"
}

// SettingsFileNames are searched, in order, in each directory.
var SettingsFileNames = []string{"dolphin.yml", "dolphin.yaml", "dolphin.toml"}

// ErrSettingsNotFound is returned by FindSettings when no file exists.
var ErrSettingsNotFound = errors.New("settings file not found")

// DefaultSettings returns the built-in configuration.
func DefaultSettings() *Settings {
	return &Settings{
		Shell:              runtime.DefaultShell,
		Prompt:             "dolphin> ",
		ContinuationPrompt: "...> ",
		LogLevel:           "warn",
		Color:              ColorAuto,
	}
}

// ValidationError aggregates settings validation failures.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "settings: invalid configuration"
	}
	var b strings.Builder
	b.WriteString("settings validation failed")
	if e.Path != "" {
		b.WriteString(" for ")
		b.WriteString(e.Path)
	}
	b.WriteString(":")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

type settingsFile struct {
	Shell              *string `yaml:"shell" toml:"shell"`
	Prompt             *string `yaml:"prompt" toml:"prompt"`
	ContinuationPrompt *string `yaml:"continuation_prompt" toml:"continuation_prompt"`
	HistoryFile        *string `yaml:"history_file" toml:"history_file"`
	StrictPrint        *bool   `yaml:"strict_print" toml:"strict_print"`
	LogLevel           *string `yaml:"log_level" toml:"log_level"`
	Color              *string `yaml:"color" toml:"color"`
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	default:
		return FormatYAML
	}
}

// LoadSettings parses a settings file. Fields the file omits keep their
// defaults; unknown keys are rejected.
func LoadSettings(path string) (*Settings, error) {
	if path == "" {
		return nil, fmt.Errorf("settings: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("settings: resolve %s: %w", path, err)
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("settings: open %s: %w", absPath, err)
	}

	format := detectFormat(absPath)
	raw, err := decodeSettings(content, format)
	if err != nil {
		return nil, fmt.Errorf("settings: parse %s as %s: %w", absPath, format, err)
	}

	settings := DefaultSettings()
	settings.Path = absPath
	raw.applyTo(settings)
	if err := settings.validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

func decodeSettings(content []byte, format Format) (settingsFile, error) {
	var raw settingsFile
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(content), &raw)
		if err != nil {
			return raw, err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, key := range undecoded {
				keys = append(keys, key.String())
			}
			sort.Strings(keys)
			return raw, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
		}
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return raw, err
		}
	}
	return raw, nil
}

func (f settingsFile) applyTo(s *Settings) {
	if f.Shell != nil {
		s.Shell = strings.TrimSpace(*f.Shell)
	}
	if f.Prompt != nil {
		s.Prompt = *f.Prompt
	}
	if f.ContinuationPrompt != nil {
		s.ContinuationPrompt = *f.ContinuationPrompt
	}
	if f.HistoryFile != nil {
		s.HistoryFile = expandHome(strings.TrimSpace(*f.HistoryFile))
	}
	if f.StrictPrint != nil {
		s.StrictPrint = *f.StrictPrint
	}
	if f.LogLevel != nil {
		s.LogLevel = strings.ToLower(strings.TrimSpace(*f.LogLevel))
	}
	if f.Color != nil {
		s.Color = ColorMode(strings.ToLower(strings.TrimSpace(*f.Color)))
	}
}

func (s *Settings) validate() error {
	errs := ValidationError{Path: s.Path}
	if s.Prompt == "" {
		errs.Issues = append(errs.Issues, "prompt must not be empty")
	}
	if s.ContinuationPrompt == "" {
		errs.Issues = append(errs.Issues, "continuation_prompt must not be empty")
	}
	if _, ok := parseLevel(s.LogLevel); !ok {
		errs.Issues = append(errs.Issues, fmt.Sprintf("log_level %q must be one of debug, info, warn, error", s.LogLevel))
	}
	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		errs.Issues = append(errs.Issues, fmt.Sprintf("color %q must be one of auto, always, never", s.Color))
	}
	if len(errs.Issues) > 0 {
		return &errs
	}
	return nil
}

// SlogLevel converts LogLevel for the structured logger.
func (s *Settings) SlogLevel() slog.Level {
	level, _ := parseLevel(s.LogLevel)
	return level
}

func parseLevel(name string) (slog.Level, bool) {
	switch name {
	case "debug":
		return slog.LevelDebug, true
	case "info":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	}
	return slog.LevelWarn, false
}

// FindSettings walks from start up to the filesystem root looking for a
// settings file, then falls back to the user's home directory.
func FindSettings(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve start directory %q: %w", start, err)
	}
	if info, statErr := os.Stat(dir); statErr == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}
	for {
		if path, err := settingsIn(dir); path != "" || err != nil {
			return path, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	if home, err := os.UserHomeDir(); err == nil && home != "" {
		if path, err := settingsIn(home); path != "" || err != nil {
			return path, err
		}
	}
	return "", ErrSettingsNotFound
}

func settingsIn(dir string) (string, error) {
	for _, name := range SettingsFileNames {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", err
		}
	}
	return "", nil
}

// ResolveSettings loads settings from explicit, else $DOLPHIN_CONFIG, else
// the first file FindSettings locates from start. Without any file the
// defaults are returned.
func ResolveSettings(explicit, start string) (*Settings, error) {
	if explicit != "" {
		return LoadSettings(explicit)
	}
	if env := strings.TrimSpace(os.Getenv("DOLPHIN_CONFIG")); env != "" {
		return LoadSettings(env)
	}
	path, err := FindSettings(start)
	if errors.Is(err, ErrSettingsNotFound) {
		return DefaultSettings(), nil
	}
	if err != nil {
		return nil, err
	}
	return LoadSettings(path)
}

func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
