package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// CatalogEntry declares one product or service tracked by the report engine.
type CatalogEntry struct {
	Name string `mapstructure:"name"`
	// Kind is "product" (matched on product_name) or "service" (matched on
	// service_name).
	Kind string `mapstructure:"kind"`
	// DebitOnly restricts the entry to DR rows, counting only the sender
	// leg of a transfer.
	DebitOnly bool `mapstructure:"debitOnly"`
	// ExcludeFeeCollections drops rows whose ucp_name mentions a fee, so
	// fee-collection transactions are not counted as user activity.
	ExcludeFeeCollections bool `mapstructure:"excludeFeeCollections"`
}

// ActivityThresholds holds the per-period minimum transaction counts for a
// user to be classified active.
type ActivityThresholds struct {
	Weekly  int `mapstructure:"weekly"`
	Monthly int `mapstructure:"monthly"`
	Rolling int `mapstructure:"rolling"`
}

// ReportConfig is the reload-able portion of the report engine configuration.
type ReportConfig struct {
	Catalog    []CatalogEntry     `mapstructure:"catalog"`
	Thresholds ActivityThresholds `mapstructure:"thresholds"`
}

func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Catalog: []CatalogEntry{
			{Name: "Internal Wallet Transfer", Kind: "product", DebitOnly: true, ExcludeFeeCollections: true},
			{Name: "Cash Power", Kind: "product"},
			{Name: "Bank To Wallet", Kind: "product"},
			{Name: "Wallet To Bank", Kind: "product"},
			{Name: "Merchant Payment", Kind: "product"},
			{Name: "Cash In", Kind: "product"},
			{Name: "Cash Out", Kind: "product"},
			{Name: "Airtime Topup", Kind: "service", DebitOnly: true},
		},
		Thresholds: ActivityThresholds{Weekly: 2, Monthly: 10, Rolling: 2},
	}
}

// ReportConfigHolder serves the current ReportConfig and hot-reloads it when
// the backing file changes.
type ReportConfigHolder struct {
	current atomic.Value // holds ReportConfig
}

func NewReportConfigHolder() (*ReportConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("reporting")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/bd-dashboard")
	v.AddConfigPath(".")

	v.SetEnvPrefix("BDDASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultReportConfig()
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		v.SetDefault("reporting.catalog", defaults.Catalog)
		v.SetDefault("reporting.thresholds", defaults.Thresholds)
	}

	cfg := defaults
	if err := v.UnmarshalKey("reporting", &cfg); err != nil {
		return nil, err
	}
	if err := validateReportConfig(cfg); err != nil {
		return nil, err
	}

	holder := &ReportConfigHolder{}
	holder.current.Store(cfg)

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		updated := DefaultReportConfig()
		if err := v.UnmarshalKey("reporting", &updated); err != nil {
			log.Printf("[report-config] reload failed: %v", err)
			return
		}
		if err := validateReportConfig(updated); err != nil {
			log.Printf("[report-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[report-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

// Get returns the current config, falling back to defaults when the holder
// was never loaded from a file.
func (h *ReportConfigHolder) Get() ReportConfig {
	if cfg, ok := h.current.Load().(ReportConfig); ok {
		return cfg
	}
	return DefaultReportConfig()
}

func validateReportConfig(cfg ReportConfig) error {
	if len(cfg.Catalog) == 0 {
		return errors.New("reporting.catalog cannot be empty")
	}
	for _, entry := range cfg.Catalog {
		if strings.TrimSpace(entry.Name) == "" {
			return errors.New("reporting.catalog entry name cannot be empty")
		}
		switch entry.Kind {
		case "product", "service":
		default:
			return errors.New("reporting.catalog entry kind must be product or service")
		}
	}
	if cfg.Thresholds.Weekly <= 0 || cfg.Thresholds.Monthly <= 0 || cfg.Thresholds.Rolling <= 0 {
		return errors.New("reporting.thresholds must be positive")
	}
	return nil
}
