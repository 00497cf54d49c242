package config

import (
	"os"
	"path/filepath"
	"strings"

	"codeberg.org/mutker/vitalchart/internal/errors"
	"codeberg.org/mutker/vitalchart/internal/logger"
	"codeberg.org/mutker/vitalchart/internal/render"
	"codeberg.org/mutker/vitalchart/internal/scale"
	"codeberg.org/mutker/vitalchart/internal/surface"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultEnvPrefix = "VITALCHART"
	DefaultLogLevel  = "warning"
	DefaultDatabase  = "/var/lib/vitalchart/samples.db"
	DefaultListen    = "127.0.0.1:8080"

	configName = "vitalchart"
	configType = "toml"
)

type Config struct {
	Width        int    `mapstructure:"width"`
	Height       int    `mapstructure:"height"`
	MarginTop    int    `mapstructure:"margin_top"`
	MarginRight  int    `mapstructure:"margin_right"`
	MarginBottom int    `mapstructure:"margin_bottom"`
	MarginLeft   int    `mapstructure:"margin_left"`
	Timezone     string `mapstructure:"timezone"`
	Locale       string `mapstructure:"locale"`
	ConnectGaps  bool   `mapstructure:"connect_gaps"`
	XTicks       int    `mapstructure:"x_ticks"`
	Format       string `mapstructure:"format"`
	Database     string `mapstructure:"database"`
	Listen       string `mapstructure:"listen"`
	LogLevel     string `mapstructure:"log_level"`
	Debug        bool   `mapstructure:"debug"`
	Verbose      bool   `mapstructure:"verbose"`
}

// flagKeys maps flag names onto config keys.
var flagKeys = map[string]string{
	"width":         "width",
	"height":        "height",
	"margin-top":    "margin_top",
	"margin-right":  "margin_right",
	"margin-bottom": "margin_bottom",
	"margin-left":   "margin_left",
	"timezone":      "timezone",
	"locale":        "locale",
	"connect-gaps":  "connect_gaps",
	"x-ticks":       "x_ticks",
	"format":        "format",
	"database":      "database",
	"listen":        "listen",
	"log-level":     "log_level",
	"debug":         "debug",
	"verbose":       "verbose",
}

func setDefaults(v *viper.Viper) {
	m := scale.DefaultMargins
	v.SetDefault("width", render.DefaultWidth)
	v.SetDefault("height", render.DefaultHeight)
	v.SetDefault("margin_top", int(m.Top))
	v.SetDefault("margin_right", int(m.Right))
	v.SetDefault("margin_bottom", int(m.Bottom))
	v.SetDefault("margin_left", int(m.Left))
	v.SetDefault("timezone", render.DefaultTimezone)
	v.SetDefault("locale", render.DefaultLocale)
	v.SetDefault("connect_gaps", false)
	v.SetDefault("x_ticks", scale.DefaultXTickCount)
	v.SetDefault("format", surface.FormatPNG)
	v.SetDefault("database", DefaultDatabase)
	v.SetDefault("listen", DefaultListen)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("debug", false)
	v.SetDefault("verbose", false)
}

// RegisterFlags adds the configuration flags to fs. Flags not given on the
// command line do not override file or environment values.
func RegisterFlags(fs *pflag.FlagSet) {
	m := scale.DefaultMargins
	fs.Int("width", render.DefaultWidth, "Chart width in pixels")
	fs.Int("height", render.DefaultHeight, "Chart height in pixels")
	fs.Int("margin-top", int(m.Top), "Top margin in pixels")
	fs.Int("margin-right", int(m.Right), "Right margin in pixels")
	fs.Int("margin-bottom", int(m.Bottom), "Bottom margin in pixels")
	fs.Int("margin-left", int(m.Left), "Left margin in pixels")
	fs.String("timezone", render.DefaultTimezone, "IANA timezone for time labels")
	fs.String("locale", render.DefaultLocale, "Locale for number formatting")
	fs.Bool("connect-gaps", false, "Bridge gaps with a line instead of gap markers")
	fs.Int("x-ticks", scale.DefaultXTickCount, "Number of time axis ticks")
	fs.StringP("format", "f", surface.FormatPNG, "Output format (png, svg, json)")
	fs.String("database", DefaultDatabase, "Path to the sample database")
	fs.String("listen", DefaultListen, "Listen address of the HTTP service")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.Bool("debug", false, "Enable debug logging")
	fs.Bool("verbose", false, "Enable verbose logging")
}

// Load reads configuration from defaults, the config file, the environment
// and the flags in fs, in increasing order of precedence. fs may be nil.
func Load(fs *pflag.FlagSet, opts ...Option) (*Config, error) {
	errFactory := errors.New()

	o := options{envPrefix: DefaultEnvPrefix}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, errFactory.Wrap(ErrInvalidConfig, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(o.envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	configPath := o.configPath
	if configPath == "" {
		configPath = os.Getenv(o.envPrefix + "_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		v.SetConfigType(configType)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join("/etc", configName))
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", configName))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, errFactory.Wrap(ErrReadConfig, err)
		}
		logger.Debug().Msg("No config file found, using defaults")
	} else {
		logger.Debug().Str("path", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	if fs != nil {
		for name, key := range flagKeys {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return nil, errFactory.WithData(ErrBindFlags, name)
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errFactory.Wrap(ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks dimensions, output format and log level.
func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Width <= 0 || c.Height <= 0 || c.Width > render.MaxWidth || c.Height > render.MaxHeight {
		return errFactory.WithData(ErrInvalidDimensions, struct {
			Width  int
			Height int
		}{
			Width:  c.Width,
			Height: c.Height,
		})
	}
	if c.MarginLeft < 0 || c.MarginRight < 0 || c.MarginTop < 0 || c.MarginBottom < 0 ||
		c.MarginLeft+c.MarginRight >= c.Width || c.MarginTop+c.MarginBottom >= c.Height {
		return errFactory.WithMessage(ErrInvalidDimensions, "margins leave no plot area")
	}
	if c.XTicks < 2 || c.XTicks > scale.MaxXTickCount {
		return errFactory.WithData(ErrInvalidConfig, struct {
			Field string
			Value int
		}{
			Field: "x_ticks",
			Value: c.XTicks,
		})
	}
	if !surface.IsValidFormat(c.Format) {
		return errFactory.WithData(ErrInvalidFormat, c.Format)
	}
	if !LogLevel(c.LogLevel).IsValid() {
		return errFactory.WithData(ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

// Margins returns the configured margins.
func (c *Config) Margins() scale.Margins {
	return scale.Margins{
		Top:    float64(c.MarginTop),
		Right:  float64(c.MarginRight),
		Bottom: float64(c.MarginBottom),
		Left:   float64(c.MarginLeft),
	}
}

// View returns a ViewState carrying the configured chart settings.
func (c *Config) View() render.ViewState {
	return render.ViewState{
		Timezone:    c.Timezone,
		Locale:      c.Locale,
		ConnectGaps: c.ConnectGaps,
		Width:       c.Width,
		Height:      c.Height,
		Margins:     c.Margins(),
		XTickCount:  c.XTicks,
	}
}

func (c *Config) GetLogLevel() string     { return c.LogLevel }
func (c *Config) GetDatabasePath() string { return c.Database }
func (c *Config) GetListenAddr() string   { return c.Listen }
func (c *Config) GetFormat() string       { return c.Format }
func (c *Config) IsDebug() bool           { return c.Debug }
func (c *Config) IsVerbose() bool         { return c.Verbose }
