package config

import (
	"github.com/Behyna/pix-checkout/pkg/misticpay"
	"github.com/shopspring/decimal"
)

const (
	DefaultDescription   = "Taxa de Serviço"
	DefaultPayerName     = "Cliente"
	DefaultPayerDocument = "00000000000"
)

var DefaultAmount = decimal.RequireFromString("21.67")

type Source string

const (
	SourceLocalFile   Source = "local_file"
	SourceEnvironment Source = "environment"
)

// Config is the merchant configuration. It is resolved once at startup and
// only read afterwards.
type Config struct {
	MisticPay misticpay.Config `mapstructure:"misticpay"`
	Payment   Payment          `mapstructure:"payment"`

	source Source
	path   string
}

type Payment struct {
	Amount        decimal.Decimal `mapstructure:"amount"`
	Description   string          `mapstructure:"description"`
	PayerName     string          `mapstructure:"payerName"`
	PayerDocument string          `mapstructure:"payerCpf"`
}

func (c *Config) Source() Source {
	return c.source
}

// Path is the local file the configuration was read from, empty for environment configs.
func (c *Config) Path() string {
	return c.path
}
