package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

const (
	FileName  = "config.json"
	EnvPrefix = "CHECKOUT"
)

const (
	KeyConfigPath     = "config"
	KeyStrict         = "strict"
	KeyPort           = "port"
	KeyStaticDir      = "static-dir"
	KeyGatewayTimeout = "gateway-timeout"
	KeyLogLevel       = "log-level"
)

// Options are the process settings. They never come from the merchant config file.
type Options struct {
	ConfigPath     string
	Strict         bool
	Port           string        `validate:"required"`
	StaticDir      string
	GatewayTimeout time.Duration `validate:"gt=0"`
	LogLevel       string        `validate:"oneof=debug info warn error dpanic panic fatal"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStrict, false)
	v.SetDefault(KeyPort, "3000")
	v.SetDefault(KeyStaticDir, filepath.Join(executableDir(), "public"))
	v.SetDefault(KeyGatewayTimeout, 15*time.Second)
	v.SetDefault(KeyLogLevel, "info")
}

func LoadOptions(v *viper.Viper) (Options, error) {
	opts := Options{
		ConfigPath:     v.GetString(KeyConfigPath),
		Strict:         v.GetBool(KeyStrict),
		Port:           v.GetString(KeyPort),
		StaticDir:      v.GetString(KeyStaticDir),
		GatewayTimeout: v.GetDuration(KeyGatewayTimeout),
		LogLevel:       v.GetString(KeyLogLevel),
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}

	return opts, nil
}

// Validate checks the process settings. The merchant config is never validated.
func (o Options) Validate() error {
	err := validator.New().Struct(o)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return fmt.Errorf("invalid option %s: failed on %q", errs[0].Field(), errs[0].Tag())
	}

	return err
}

// ListenAddr accepts both "3000" and ":3000" style ports.
func (o Options) ListenAddr() string {
	if o.Port == "" || o.Port[0] == ':' {
		return o.Port
	}
	return ":" + o.Port
}

// SearchPaths lists candidate config files in lookup order.
func (o Options) SearchPaths() []string {
	if o.ConfigPath != "" {
		return []string{o.ConfigPath}
	}

	dir := executableDir()
	paths := []string{
		filepath.Join(dir, FileName),
		filepath.Join(filepath.Dir(dir), FileName),
	}

	if wd, err := os.Getwd(); err == nil && wd != dir {
		paths = append(paths, filepath.Join(wd, FileName))
	}

	return paths
}

func executableDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}

	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}

	return filepath.Dir(exe)
}
