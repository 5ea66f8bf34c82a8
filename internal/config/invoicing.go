package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// InvoicingConfig carries tenant-independent invoicing policy defaults.
// Values only apply where a tenant has no explicit setting of its own.
type InvoicingConfig struct {
	DefaultPrefix string `mapstructure:"defaultPrefix"`
	// SequencePadWidth is the minimum zero-padded width of the counter
	// segment in minted invoice numbers. Numbers above the width keep
	// their natural length.
	SequencePadWidth int    `mapstructure:"sequencePadWidth"`
	Declaration      string `mapstructure:"declaration"`
}

func DefaultInvoicingConfig() InvoicingConfig {
	return InvoicingConfig{
		DefaultPrefix:    "INV",
		SequencePadWidth: 3,
		Declaration:      "We declare that this invoice shows the actual price of the goods described and that all particulars are true and correct.",
	}
}

// InvoicingConfigHolder exposes the current invoicing policy and hot-reloads
// it when the backing file changes. Reads are lock-free.
type InvoicingConfigHolder struct {
	current atomic.Value // holds InvoicingConfig
}

// NewStaticInvoicingConfigHolder wraps a fixed config, without file watching.
func NewStaticInvoicingConfigHolder(cfg InvoicingConfig) *InvoicingConfigHolder {
	holder := &InvoicingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewInvoicingConfigHolder() (*InvoicingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("invoicing")
	v.SetConfigType("yml")
	v.AddConfigPath("/var/lib/billforge/config")
	v.AddConfigPath("/etc/billforge")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BILLFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultInvoicingConfig()
	v.SetDefault("invoicing.defaultPrefix", defaults.DefaultPrefix)
	v.SetDefault("invoicing.sequencePadWidth", defaults.SequencePadWidth)
	v.SetDefault("invoicing.declaration", defaults.Declaration)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg InvoicingConfig
	if err := v.UnmarshalKey("invoicing", &cfg); err != nil {
		return nil, err
	}
	if err := validateInvoicingConfig(cfg); err != nil {
		return nil, err
	}

	holder := &InvoicingConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated InvoicingConfig
		if err := v.UnmarshalKey("invoicing", &updated); err != nil {
			log.Printf("[invoicing-config] reload failed: %v", err)
			return
		}
		if err := validateInvoicingConfig(updated); err != nil {
			log.Printf("[invoicing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[invoicing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *InvoicingConfigHolder) Get() InvoicingConfig {
	return h.current.Load().(InvoicingConfig)
}

func validateInvoicingConfig(cfg InvoicingConfig) error {
	if strings.TrimSpace(cfg.DefaultPrefix) == "" {
		return errors.New("invoicing.defaultPrefix cannot be empty")
	}
	// Invoice numbers are pinned to at least three counter digits so the
	// text format stays parseable; narrower padding is a config mistake.
	if cfg.SequencePadWidth < 3 {
		return errors.New("invoicing.sequencePadWidth must be at least 3")
	}
	return nil
}
