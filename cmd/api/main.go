package main

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/Behyna/pix-checkout/internal/api"
	v1 "github.com/Behyna/pix-checkout/internal/api/v1"
	"github.com/Behyna/pix-checkout/internal/config"
	"github.com/Behyna/pix-checkout/internal/metrics"
	"github.com/Behyna/pix-checkout/internal/service"
	"github.com/Behyna/pix-checkout/pkg/httpclient"
	"github.com/Behyna/pix-checkout/pkg/misticpay"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

var version = "dev"

const systemMetricsInterval = 15 * time.Second

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:          "pix-checkout",
		Short:        "Creates PIX transactions on MisticPay for the checkout page",
		Version:      version,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := config.LoadOptions(v)
			if err != nil {
				return err
			}
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.String(config.KeyConfigPath, "", "path to config.json (default: next to the binary, then one level up)")
	flags.Bool(config.KeyStrict, false, "fail startup when the local config file is missing or unreadable")
	flags.String(config.KeyPort, "3000", "listen port, also read from PORT")
	flags.String(config.KeyStaticDir, "", "directory served at / (default: public next to the binary)")
	flags.Duration(config.KeyGatewayTimeout, 15*time.Second, "timeout for calls to the payment gateway")
	flags.String(config.KeyLogLevel, "info", "log level")

	config.SetDefaults(v)
	v.SetEnvPrefix(config.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	cobra.CheckErr(v.BindEnv(config.KeyPort, config.EnvPrefix+"_PORT", "PORT"))
	cobra.CheckErr(v.BindPFlags(flags))

	return cmd
}

func run(opts config.Options) error {
	app := fx.New(
		fx.Supply(opts),
		fx.Provide(
			newLogger,
			newRegistry,
			newMetrics,
			config.Resolve,
			newGateway,
			service.NewTransactionService,
			v1.NewHandler,
			api.NewFiberApp,
			metrics.NewSystemCollector,
		),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger}
		}),
		fx.Invoke(startCollector, startServer),
	)

	if err := app.Err(); err != nil {
		return err
	}

	app.Run()
	return nil
}

func newLogger(opts config.Options) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()

	level, err := zap.ParseAtomicLevel(opts.LogLevel)
	if err != nil {
		return nil, err
	}
	cfg.Level = level

	return cfg.Build()
}

func newRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

func newMetrics(reg *prometheus.Registry) *metrics.Metrics {
	return metrics.NewMetrics(reg)
}

func newGateway(cfg *config.Config, opts config.Options) misticpay.Gateway {
	gatewayConfig := cfg.MisticPay
	if gatewayConfig.Timeout <= 0 {
		gatewayConfig.Timeout = opts.GatewayTimeout
	}

	return misticpay.NewGateway(gatewayConfig, httpclient.NewHTTPClient(gatewayConfig.Timeout))
}

func startCollector(collector *metrics.SystemCollector, lc fx.Lifecycle) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			collector.Start(systemMetricsInterval, version)
			return nil
		},
		OnStop: func(ctx context.Context) error {
			collector.Stop()
			return nil
		},
	})
}

func startServer(app *fiber.App, handler *v1.Handler, reg *prometheus.Registry, cfg *config.Config,
	opts config.Options, m *metrics.Metrics, logger *zap.Logger, lc fx.Lifecycle) {
	api.SetupRoutes(app, handler, reg, opts.StaticDir)
	m.SetConfigSource(string(cfg.Source()))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			logger.Info("Starting server",
				zap.String("addr", opts.ListenAddr()),
				zap.String("configSource", string(cfg.Source())),
				zap.Bool("strict", opts.Strict),
				zap.Bool("credentialsConfigured", cfg.MisticPay.HasCredentials()))

			go func() {
				if err := app.Listen(opts.ListenAddr()); err != nil {
					logger.Error("Server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})
}
