package app

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"

	"easygame/internal/logging"

	"github.com/BurntSushi/toml"
)

// Config holds the host settings. Values come from defaults, then an optional
// TOML file, then command-line flags.
type Config struct {
	Scene     string            `toml:"scene"`
	Scale     int               `toml:"scale"`
	TPS       int               `toml:"tps"`
	Seed      int64             `toml:"seed"`
	Unbounded bool              `toml:"unbounded"`
	ShowHUD   bool              `toml:"show_hud"`
	HUDWidth  int               `toml:"hud_width"`
	Params    map[string]string `toml:"params"`

	ArtManifest string `toml:"art_manifest"`
	LevelDir    string `toml:"level_dir"`
	ScriptDir   string `toml:"script_dir"`

	LogFile string         `toml:"log_file"`
	Logging logging.Config `toml:"logging"`
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		Scene:     "crab",
		Scale:     1,
		TPS:       60,
		Seed:      42,
		ShowHUD:   true,
		HUDWidth:  220,
		Params:    map[string]string{},
		LevelDir:  "assets/levels",
		ScriptDir: "assets/scripts",
		Logging:   logging.DefaultConfig(),
	}
}

// LoadFile reads a TOML file over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := NewConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Params == nil {
		cfg.Params = map[string]string{}
	}
	return cfg, nil
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scene, "scene", c.Scene, "scene to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for scene reset")
	fs.BoolVar(&c.Unbounded, "unbounded", c.Unbounded, "let actors leave the world")
	fs.BoolVar(&c.ShowHUD, "hud", c.ShowHUD, "show the parameter panel")
	fs.StringVar(&c.ArtManifest, "art", c.ArtManifest, "art manifest (empty for built-in sprites)")
	fs.StringVar(&c.LevelDir, "levels", c.LevelDir, "level directory")
	fs.StringVar(&c.ScriptDir, "scripts", c.ScriptDir, "lua script directory")
	fs.StringVar(&c.LogFile, "log-file", c.LogFile, "write logs to this file")
	fs.StringVar(&c.Logging.Level, "log-level", c.Logging.Level, "log level")
	fs.StringVar(&c.Logging.Format, "log-format", c.Logging.Format, "log format: console or json")
	fs.Func("param", "scene parameter key=value (repeatable)", func(v string) error {
		key, value, ok := strings.Cut(v, "=")
		if !ok || key == "" {
			return fmt.Errorf("want key=value, got %q", v)
		}
		if c.Params == nil {
			c.Params = map[string]string{}
		}
		c.Params[key] = value
		return nil
	})
}

// ParamList renders Params as sorted key=value pairs.
func (c *Config) ParamList() []string {
	out := make([]string, 0, len(c.Params))
	for k, v := range c.Params {
		out = append(out, k+"="+v)
	}
	sort.Strings(out)
	return out
}

// Parse builds a Config from args. A -config flag names a TOML file that is
// loaded before the remaining flags are applied, wherever it appears.
func Parse(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := NewConfig()
	if path := configPath(args); path != "" {
		loaded, err := LoadFile(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	fs.String("config", "", "TOML config file")
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return cfg, nil
}

func configPath(args []string) string {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return ""
		}
		name := strings.TrimLeft(a, "-")
		if name == a {
			continue
		}
		if v, ok := strings.CutPrefix(name, "config="); ok {
			return v
		}
		if name == "config" && i+1 < len(args) {
			return args[i+1]
		}
	}
	return ""
}
