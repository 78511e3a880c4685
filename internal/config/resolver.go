package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/Behyna/pix-checkout/pkg/misticpay"
	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	EnvClientID     = "MISTICPAY_CLIENT_ID"
	EnvClientSecret = "MISTICPAY_CLIENT_SECRET"
)

// Resolve picks the merchant config. A local file replaces the environment
// config entirely. When the file is missing or unreadable, hybrid mode falls back
// to the environment and strict mode fails.
func Resolve(opts Options, logger *zap.Logger) (*Config, error) {
	paths := opts.SearchPaths()

	path, found := locate(paths)
	if !found {
		if opts.Strict {
			return nil, fmt.Errorf("%w: searched %s", ErrConfigNotFound, strings.Join(paths, ", "))
		}

		logger.Info("Local config not found, using environment",
			zap.Strings("searched", paths))

		return FromEnvironment()
	}

	cfg, err := FromFile(path)
	if err != nil {
		if opts.Strict {
			return nil, err
		}

		logger.Warn("Could not read local config, using environment",
			zap.String("path", path),
			zap.Error(err))

		return FromEnvironment()
	}

	logger.Info("Local config loaded", zap.String("path", path))

	return cfg, nil
}

// FromFile reads a JSON config file. The shape is not validated: missing keys stay
// empty and an amount that is not a number is left at zero.
func FromFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}

	cfg := &Config{source: SourceLocalFile, path: path}
	if err := v.Unmarshal(cfg, viper.DecodeHook(decodeHooks())); err != nil {
		return nil, &LoadError{Path: path, Cause: err}
	}

	return cfg, nil
}

// FromEnvironment builds the config used when no local file is available:
// credentials from the environment, everything else hardcoded.
func FromEnvironment() (*Config, error) {
	v := viper.New()

	v.SetDefault("misticpay.apiBaseUrl", misticpay.DefaultBaseURL)
	v.SetDefault("misticpay.clientId", "")
	v.SetDefault("misticpay.clientSecret", "")
	v.SetDefault("payment.amount", DefaultAmount.String())
	v.SetDefault("payment.description", DefaultDescription)
	v.SetDefault("payment.payerName", DefaultPayerName)
	v.SetDefault("payment.payerCpf", DefaultPayerDocument)

	if err := v.BindEnv("misticpay.clientId", EnvClientID); err != nil {
		return nil, err
	}
	if err := v.BindEnv("misticpay.clientSecret", EnvClientSecret); err != nil {
		return nil, err
	}

	cfg := &Config{source: SourceEnvironment}
	if err := v.Unmarshal(cfg, viper.DecodeHook(decodeHooks())); err != nil {
		return nil, fmt.Errorf("failed to build environment config: %w", err)
	}

	return cfg, nil
}

func locate(paths []string) (string, bool) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}

	return "", false
}

func decodeHooks() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		stringToDecimalHookFunc(),
	)
}

// stringToDecimalHookFunc never fails: values that are not numbers decode to a
// zero amount, which the dispatcher replaces with DefaultAmount.
func stringToDecimalHookFunc() mapstructure.DecodeHookFuncType {
	decimalType := reflect.TypeOf(decimal.Decimal{})

	return func(f reflect.Type, t reflect.Type, data any) (any, error) {
		if t != decimalType {
			return data, nil
		}

		switch value := data.(type) {
		case decimal.Decimal:
			return value, nil
		case string:
			amount, err := decimal.NewFromString(strings.TrimSpace(value))
			if err != nil {
				return decimal.Decimal{}, nil
			}
			return amount, nil
		case float64:
			return decimal.NewFromFloat(value), nil
		case float32:
			return decimal.NewFromFloat32(value), nil
		case int:
			return decimal.NewFromInt(int64(value)), nil
		case int64:
			return decimal.NewFromInt(value), nil
		default:
			return decimal.Decimal{}, nil
		}
	}
}
