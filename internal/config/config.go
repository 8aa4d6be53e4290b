package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/kbirkholm/kollekt/internal/common"
)

// Grouping modes for excluded-entry ledger rows.
const (
	GroupingEffective = "effective"
	GroupingRaw       = "raw"
)

// Config is the application configuration, loaded through viper from the
// config file, KOLLEKT_* environment variables and flags.
type Config struct {
	// LedgerPath is the gift ledger workbook.
	LedgerPath  string `mapstructure:"ledger_path"`
	LedgerSheet string `mapstructure:"ledger_sheet"`

	// CollectionPath is the daily collection ledger workbook.
	CollectionPath  string `mapstructure:"collection_path"`
	CollectionSheet string `mapstructure:"collection_sheet"`

	// RegistryPath is the address registry workbook.
	RegistryPath  string `mapstructure:"registry_path"`
	RegistrySheet string `mapstructure:"registry_sheet"`

	// ExclusionsPath is the exclusion-keyword file, one keyword per line.
	ExclusionsPath string `mapstructure:"exclusions_path"`

	// ReportDir receives the per-day report files.
	ReportDir string `mapstructure:"report_dir"`

	// NonInteractive disables the registry arbitration prompts.
	NonInteractive bool `mapstructure:"non_interactive"`

	// ExcludedGrouping picks the date excluded entries are grouped under:
	// "effective" for the posting date, "raw" for the calendar date.
	ExcludedGrouping string `mapstructure:"excluded_grouping"`

	// WriteXLSX and WritePDF toggle the per-day report renderers.
	WriteXLSX bool `mapstructure:"write_xlsx"`
	WritePDF  bool `mapstructure:"write_pdf"`

	// NonMemberAddresses extends the built-in bank drop list.
	NonMemberAddresses []string `mapstructure:"non_member_addresses"`
}

// SetDefaults registers the configuration defaults on viper.
func SetDefaults() {
	viper.SetDefault("ledger_sheet", "Sheet1")
	viper.SetDefault("collection_sheet", "Sheet1")
	viper.SetDefault("registry_sheet", "Sheet1")
	viper.SetDefault("report_dir", ".")
	viper.SetDefault("excluded_grouping", GroupingEffective)
	viper.SetDefault("write_xlsx", true)
	viper.SetDefault("write_pdf", false)
}

// Load unmarshals and validates the configuration from viper.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidConfig, err)
	}

	cfg.LedgerPath = ExpandPath(cfg.LedgerPath)
	cfg.CollectionPath = ExpandPath(cfg.CollectionPath)
	cfg.RegistryPath = ExpandPath(cfg.RegistryPath)
	cfg.ExclusionsPath = ExpandPath(cfg.ExclusionsPath)
	cfg.ReportDir = ExpandPath(cfg.ReportDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.ExcludedGrouping {
	case GroupingEffective, GroupingRaw:
	default:
		return fmt.Errorf("%w: excluded_grouping must be %q or %q, got %q",
			common.ErrInvalidConfig, GroupingEffective, GroupingRaw, c.ExcludedGrouping)
	}
	return nil
}
