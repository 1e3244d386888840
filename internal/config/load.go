package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Settings is the runtime configuration read from file, environment and flags.
type Settings struct {
	Language string         `mapstructure:"language"` // Falls back to DefaultLanguage when unknown
	Output   string         `mapstructure:"output"`   // table, json or yaml
	Workers  int            `mapstructure:"workers"`  // Parallel contact charts, 1..MaxWorkers
	Server   ServerSettings `mapstructure:"server"`
	Source   SourceSettings `mapstructure:"source"`
}

// ServerSettings configures the local HTTP server.
type ServerSettings struct {
	Port           string `mapstructure:"port"`
	RefreshMinutes int    `mapstructure:"refresh_minutes"`
}

// SourceSettings locates the vCard contacts. The password lives in the keyring.
type SourceSettings struct {
	Mode      string `mapstructure:"mode"`
	LocalPath string `mapstructure:"local_path"`
	WebURL    string `mapstructure:"web_url"`
	WebUser   string `mapstructure:"web_user"`
}

// NewViper returns a viper instance with the search paths, environment
// binding and defaults applied. Callers may bind flags before Load.
func NewViper(cfgFile string) *viper.Viper {
	v := viper.New()

	// An explicit --config must exist; the search path may come up empty.
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType(ConfigType)
		v.AddConfigPath(ConfigPathCwd)
		v.AddConfigPath(ConfigPathHome)
	}

	// NUMEROLOGY_SERVER_PORT maps to server.port.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	return v
}

// setDefaults registers every key so AutomaticEnv can resolve it during
// Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault(KeyLanguage, DefaultLanguage)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyWorkers, DefaultWorkers)
	v.SetDefault(KeyServerPort, DefaultPort)
	v.SetDefault(KeyServerRefresh, DefaultRefreshMin)
	v.SetDefault(KeySourceMode, SourceModeNone)
	v.SetDefault(KeySourceLocal, "")
	v.SetDefault(KeySourceURL, "")
	v.SetDefault(KeySourceUser, "")
}

// Load reads the configuration file if any, then unmarshals and validates.
// A missing file is not an error.
func Load(v *viper.Viper) (*Settings, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
		slog.Debug(MsgConfigMissing, LogKeyComponent, CompConfig)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}

	slog.Debug(MsgConfigLoaded,
		LogKeyComponent, CompConfig,
		LogKeyFile, v.ConfigFileUsed(),
		LogKeyMode, s.Source.Mode,
	)
	return &s, nil
}

// Validate checks value ranges that viper cannot express.
func (s *Settings) Validate() error {
	if !slices.Contains(OutputFormats, s.Output) {
		return fmt.Errorf("%s: %q", ErrOutputFormat, s.Output)
	}
	if s.Workers < 1 || s.Workers > MaxWorkers {
		return errors.New(ErrWorkers)
	}
	if err := ValidatePort(s.Server.Port); err != nil {
		return err
	}

	switch s.Source.Mode {
	case SourceModeNone:
	case SourceModeLocal:
		if s.Source.LocalPath == "" {
			return errors.New(ErrLocalPathEmpty)
		}
	case SourceModeWeb:
		if s.Source.WebURL == "" {
			return errors.New(ErrWebURLEmpty)
		}
	default:
		return fmt.Errorf("%s: %q", ErrModeUnsupport, s.Source.Mode)
	}
	return nil
}

// ValidatePort checks that port is a number in the TCP range.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
