package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Settings is the user configuration, read from an optional YAML file and
// GO_REMINDER_* environment variables.
type Settings struct {
	DataDir string         `mapstructure:"data_dir" yaml:"data_dir"`
	Strict  bool           `mapstructure:"strict" yaml:"strict"`
	Color   string         `mapstructure:"color" yaml:"color"`
	Log     LogSettings    `mapstructure:"log" yaml:"log"`
	Server  ServerSettings `mapstructure:"server" yaml:"server"`
	VCard   VCardSettings  `mapstructure:"vcard" yaml:"vcard"`
}

// LogSettings controls the optional rotating log file.
type LogSettings struct {
	File       string `mapstructure:"file" yaml:"file"`
	Level      string `mapstructure:"level" yaml:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups" yaml:"max_backups"`
}

// ServerSettings configures the ICS feed server.
type ServerSettings struct {
	Addr    string `mapstructure:"addr" yaml:"addr"`
	Refresh string `mapstructure:"refresh" yaml:"refresh"` // cron spec
}

// VCardSettings points at an optional remote vCard collection. The password
// is never stored here; it lives in the OS keyring.
type VCardSettings struct {
	URL  string `mapstructure:"url" yaml:"url"`
	User string `mapstructure:"user" yaml:"user"`
}

// Defaults returns the built-in configuration.
func Defaults() *Settings {
	return &Settings{
		DataDir: DefaultDataDir,
		Strict:  DefaultStrict,
		Color:   DefaultColor,
		Log: LogSettings{
			Level:      DefaultLogLevel,
			MaxSizeMB:  DefaultLogMaxSizeMB,
			MaxBackups: DefaultLogMaxBackups,
		},
		Server: ServerSettings{
			Addr:    DefaultAddr,
			Refresh: DefaultRefresh,
		},
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrConfigWrite, err)
	}
	return filepath.Join(home, ".config", ConfigDirName, ConfigName+"."+ConfigType), nil
}

// Load reads the settings. An explicit path must exist; without one the
// usual locations are searched and a missing file means defaults.
func Load(path string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(ConfigName)
		v.SetConfigType(ConfigType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", ConfigDirName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	log := slog.With(LogKeyComponent, CompConfig)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
		log.Debug(MsgConfigDefault)
	} else {
		log.Debug(MsgConfigLoaded, LogKeyFile, v.ConfigFileUsed())
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrConfigInvalid, err)
	}
	return &s, nil
}

func setDefaults(v *viper.Viper) {
	d := Defaults()
	v.SetDefault("data_dir", d.DataDir)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("color", d.Color)
	v.SetDefault("log.file", d.Log.File)
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.max_size_mb", d.Log.MaxSizeMB)
	v.SetDefault("log.max_backups", d.Log.MaxBackups)
	v.SetDefault("server.addr", d.Server.Addr)
	v.SetDefault("server.refresh", d.Server.Refresh)
	v.SetDefault("vcard.url", d.VCard.URL)
	v.SetDefault("vcard.user", d.VCard.User)
}

// Validate checks values that would otherwise fail late.
func (s *Settings) Validate() error {
	if strings.TrimSpace(s.DataDir) == "" {
		return errors.New(ErrDataDirEmpty)
	}
	switch s.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%s: %q", ErrColorMode, s.Color)
	}
	if _, err := s.Log.SlogLevel(); err != nil {
		return err
	}
	if _, err := cron.ParseStandard(s.Server.Refresh); err != nil {
		return fmt.Errorf("%s: %w", ErrRefreshSchedule, err)
	}
	return nil
}

// SlogLevel parses Level ("debug", "info", "warn", "error").
func (l LogSettings) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo, err
	}
	return level, nil
}

// WriteDefault writes the default settings as YAML to path. An existing
// file is only replaced when force is set.
func WriteDefault(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s: %s", ErrConfigExists, path)
	}
	data, err := yaml.Marshal(Defaults())
	if err != nil {
		return fmt.Errorf("%s: %w", ErrConfigWrite, err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, DirPermUserRWX); err != nil {
			return fmt.Errorf("%s: %w", ErrConfigWrite, err)
		}
	}
	if err := os.WriteFile(path, data, FilePermUserRW); err != nil {
		return fmt.Errorf("%s: %w", ErrConfigWrite, err)
	}
	slog.Info(MsgConfigWritten, LogKeyComponent, CompConfig, LogKeyFile, path)
	return nil
}
