// Package config loads application configuration from an optional YAML file,
// defaults and PTC_ environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/viper"

	"ptcmobile/logging"
	"ptcmobile/services"
)

// EnvPrefix prefixes every environment override, e.g. PTC_LOGGER_LEVEL.
const EnvPrefix = "PTC"

// Config holds all application configuration
type Config struct {
	Company   services.CompanyProfile `mapstructure:"company"`
	Logger    logging.Config          `mapstructure:"logger"`
	Workspace WorkspaceConfig         `mapstructure:"workspace"`
	Metrics   MetricsConfig           `mapstructure:"metrics"`
}

// WorkspaceConfig controls the in-memory invoice workspaces.
type WorkspaceConfig struct {
	IdleTTL       time.Duration `mapstructure:"idle_ttl"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
	CookieName    string        `mapstructure:"cookie_name"`
}

// MetricsConfig controls the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration. An empty path skips the config file; a path that
// cannot be read is an error.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values. Every key needs a default
// so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	company := services.DefaultCompanyProfile()
	v.SetDefault("company.name", company.Name)
	v.SetDefault("company.tagline", company.Tagline)
	v.SetDefault("company.address", company.Address)
	v.SetDefault("company.pan", company.PAN)
	v.SetDefault("company.bank_name", company.BankName)
	v.SetDefault("company.account_no", company.AccountNo)
	v.SetDefault("company.ifsc", company.IFSC)
	v.SetDefault("company.branch", company.Branch)
	v.SetDefault("company.interest_terms", company.InterestTerms)
	v.SetDefault("company.payment_terms", company.PaymentTerms)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "console")

	v.SetDefault("workspace.idle_ttl", 2*time.Hour)
	v.SetDefault("workspace.sweep_interval", 5*time.Minute)
	v.SetDefault("workspace.cookie_name", "invoice_session")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Company),
		validation.Field(&c.Logger),
		validation.Field(&c.Workspace),
		validation.Field(&c.Metrics),
	)
}

// Validate implements validation.Validatable.
func (w WorkspaceConfig) Validate() error {
	return validation.ValidateStruct(&w,
		validation.Field(&w.IdleTTL, validation.Min(time.Duration(0))),
		validation.Field(&w.SweepInterval, validation.Required, validation.Min(time.Second)),
		validation.Field(&w.CookieName, validation.Required),
	)
}

// Validate implements validation.Validatable.
func (m MetricsConfig) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Path, validation.When(m.Enabled,
			validation.Required,
			validation.By(func(value any) error {
				if s, _ := value.(string); !strings.HasPrefix(s, "/") {
					return fmt.Errorf("must start with /")
				}
				return nil
			}),
		)),
	)
}
