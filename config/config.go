package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/pelletier/go-toml/v2"

	"github.com/dshills/lineedit/autosuggest"
	"github.com/dshills/lineedit/buffer"
	"github.com/dshills/lineedit/clipboard"
	"github.com/dshills/lineedit/completion"
	"github.com/dshills/lineedit/editor"
	"github.com/dshills/lineedit/history"
	"github.com/dshills/lineedit/validate"
)

// Config is the TOML-backed buffer configuration.
type Config struct {
	Multiline           bool   `toml:"multiline"`
	HistorySearch       bool   `toml:"history_search"`
	CompleteWhileTyping bool   `toml:"complete_while_typing"`
	MaxUndo             int    `toml:"max_undo"`
	InputMode           string `toml:"input_mode"`

	History    HistoryConfig    `toml:"history"`
	Clipboard  ClipboardConfig  `toml:"clipboard"`
	Editor     EditorConfig     `toml:"editor"`
	Validator  ValidatorConfig  `toml:"validator"`
	Suggest    SuggestConfig    `toml:"suggest"`
	Completion CompletionConfig `toml:"completion"`
}

// HistoryConfig selects the history backend.
type HistoryConfig struct {
	// Backend is "memory", "file", or "sqlite".
	Backend string `toml:"backend"`
	// Path is the file or database path for the file and sqlite backends.
	Path string `toml:"path"`
	// Watch reloads a file backend when another process appends to it.
	Watch bool `toml:"watch"`
}

// ClipboardConfig selects the clipboard backend.
type ClipboardConfig struct {
	// Backend is "memory" or "system".
	Backend string `toml:"backend"`
}

// EditorConfig configures the external editor.
type EditorConfig struct {
	Enabled bool   `toml:"enabled"`
	Command string `toml:"command"`
	Suffix  string `toml:"suffix"`
}

// ValidatorConfig points at an optional Lua validation script.
type ValidatorConfig struct {
	LuaScript string `toml:"lua_script"`
}

// SuggestConfig configures auto-suggestion.
type SuggestConfig struct {
	// Source is "none", "history", or "ai".
	Source string `toml:"source"`
	// Model overrides the AI model name.
	Model string `toml:"model"`
}

// CompletionConfig configures the word completer.
type CompletionConfig struct {
	Words      []string `toml:"words"`
	Fuzzy      bool     `toml:"fuzzy"`
	IgnoreCase bool     `toml:"ignore_case"`
	WrapAround bool     `toml:"wrap_around"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		HistorySearch: true,
		MaxUndo:       1000,
		InputMode:     "insert",
		History:       HistoryConfig{Backend: "memory"},
		Clipboard:     ClipboardConfig{Backend: "memory"},
		Suggest:       SuggestConfig{Source: "history"},
		Completion:    CompletionConfig{WrapAround: true},
	}
}

// Load reads configuration from a TOML file, applies LINEEDIT_* environment
// overrides, and returns the result. A missing file is not an error; the
// defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays LINEEDIT_* environment variables onto the config.
func (c *Config) applyEnv() {
	if v := os.Getenv("LINEEDIT_HISTORY_FILE"); v != "" {
		c.History.Backend = "file"
		c.History.Path = v
	}
	if v := os.Getenv("LINEEDIT_EDITOR"); v != "" {
		c.Editor.Enabled = true
		c.Editor.Command = v
	}
	if v := os.Getenv("LINEEDIT_MULTILINE"); v != "" {
		c.Multiline = parseBool(v, c.Multiline)
	}
	if v := os.Getenv("LINEEDIT_HISTORY_SEARCH"); v != "" {
		c.HistorySearch = parseBool(v, c.HistorySearch)
	}
	if v := os.Getenv("LINEEDIT_SUGGEST"); v != "" {
		c.Suggest.Source = v
	}
}

func parseBool(s string, fallback bool) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return b
}

// Resources holds collaborators that need closing when the buffer is done.
type Resources struct {
	closers []func() error
}

// Close releases all held resources, returning the first error.
func (r *Resources) Close() error {
	var first error
	for _, fn := range r.closers {
		if err := fn(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (r *Resources) add(fn func() error) { r.closers = append(r.closers, fn) }

// Options converts the configuration into buffer options, constructing the
// configured collaborators. The returned Resources must be closed after the
// buffer is no longer used.
func (c *Config) Options() ([]buffer.Option, *Resources, error) {
	res := &Resources{}
	opts := []buffer.Option{
		buffer.WithMultiline(c.Multiline),
		buffer.WithHistorySearch(c.HistorySearch),
		buffer.WithCompleteWhileTyping(c.CompleteWhileTyping),
	}
	if c.MaxUndo > 0 {
		opts = append(opts, buffer.WithMaxUndoEntries(c.MaxUndo))
	}

	switch strings.ToLower(c.InputMode) {
	case "", "insert":
	case "overwrite":
		opts = append(opts, buffer.WithInputMode(buffer.ModeOverwrite))
	case "navigation":
		opts = append(opts, buffer.WithInputMode(buffer.ModeNavigation))
	default:
		res.Close()
		return nil, nil, fmt.Errorf("unknown input mode %q", c.InputMode)
	}

	hist, err := c.buildHistory(res)
	if err != nil {
		res.Close()
		return nil, nil, err
	}
	opts = append(opts, buffer.WithHistory(hist))

	switch strings.ToLower(c.Clipboard.Backend) {
	case "", "memory":
		opts = append(opts, buffer.WithClipboard(clipboard.NewInMemory()))
	case "system":
		sys, err := clipboard.NewSystem()
		if err != nil {
			res.Close()
			return nil, nil, fmt.Errorf("opening system clipboard: %w", err)
		}
		opts = append(opts, buffer.WithClipboard(sys))
	default:
		res.Close()
		return nil, nil, fmt.Errorf("unknown clipboard backend %q", c.Clipboard.Backend)
	}

	if c.Editor.Enabled {
		opts = append(opts, buffer.WithEditor(&editor.External{
			Command: c.Editor.Command,
			Suffix:  c.Editor.Suffix,
		}))
	}

	if c.Validator.LuaScript != "" {
		script, err := os.ReadFile(c.Validator.LuaScript)
		if err != nil {
			res.Close()
			return nil, nil, fmt.Errorf("reading validator script: %w", err)
		}
		lv, err := validate.NewLuaValidator(string(script))
		if err != nil {
			res.Close()
			return nil, nil, fmt.Errorf("loading validator script %s: %w", c.Validator.LuaScript, err)
		}
		res.add(func() error { lv.Close(); return nil })
		opts = append(opts, buffer.WithValidator(lv))
	}

	switch strings.ToLower(c.Suggest.Source) {
	case "", "none":
	case "history":
		opts = append(opts, buffer.WithAutoSuggest(autosuggest.NewFromHistory(hist)))
	case "ai":
		ai := autosuggest.NewAI(anthropic.NewClient())
		if c.Suggest.Model != "" {
			ai.SetModel(anthropic.Model(c.Suggest.Model))
		}
		opts = append(opts, buffer.WithAutoSuggest(ai))
	default:
		res.Close()
		return nil, nil, fmt.Errorf("unknown suggestion source %q", c.Suggest.Source)
	}

	if len(c.Completion.Words) > 0 {
		if c.Completion.Fuzzy {
			opts = append(opts, buffer.WithCompleter(completion.NewFuzzyWordCompleter(c.Completion.Words)))
		} else {
			opts = append(opts, buffer.WithCompleter(completion.NewWordCompleter(c.Completion.Words, c.Completion.IgnoreCase)))
		}
	}
	opts = append(opts, buffer.WithCompletionWrapAround(c.Completion.WrapAround))

	return opts, res, nil
}

func (c *Config) buildHistory(res *Resources) (history.History, error) {
	switch strings.ToLower(c.History.Backend) {
	case "", "memory":
		return history.NewMemory(), nil

	case "file":
		if c.History.Path == "" {
			return nil, fmt.Errorf("history backend %q needs a path", c.History.Backend)
		}
		f, err := history.NewFile(c.History.Path)
		if err != nil {
			return nil, fmt.Errorf("opening history file: %w", err)
		}
		if c.History.Watch {
			if err := f.Watch(func() {}); err != nil {
				f.Close()
				return nil, fmt.Errorf("watching history file: %w", err)
			}
		}
		res.add(f.Close)
		return f, nil

	case "sqlite":
		if c.History.Path == "" {
			return nil, fmt.Errorf("history backend %q needs a path", c.History.Backend)
		}
		db, err := history.NewSQLite(c.History.Path)
		if err != nil {
			return nil, fmt.Errorf("opening history database: %w", err)
		}
		res.add(db.Close)
		return db, nil

	default:
		return nil, fmt.Errorf("unknown history backend %q", c.History.Backend)
	}
}
