// Package config loads the service configuration from the environment, an optional .env file
// and an optional YAML reports file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	reporting "creator-finance/internal/reporting/domain"
	"creator-finance/internal/reporting/interfaces"
)

// Config is the process configuration shared by the API server and reportctl.
type Config struct {
	DatabaseURL       string
	HTTPAddr          string
	JWTSecret         string
	Currency          string
	PlatformName      string
	Location          *time.Location
	AMQPURL           string
	AMQPExchange      string
	LogLevel          string
	LogFormat         string
	MigrateOnStart    bool
	DBMaxOpenConns    int
	DBMaxIdleConns    int
	DBConnMaxLifetime time.Duration
	ShutdownTimeout   time.Duration

	Policy   reporting.Policy
	Render   interfaces.RenderOptions
	Schedule ScheduleConfig
}

// ScheduleConfig configures the month-close job.
type ScheduleConfig struct {
	Enabled  bool     `yaml:"enabled"`
	Spec     string   `yaml:"spec"`
	Subjects []string `yaml:"subjects"`
}

// PolicyConfig is the YAML form of the calculation policy. Rates are decimal strings.
type PolicyConfig struct {
	RevenueDeductionRate      string `yaml:"revenue_deduction_rate"`
	MarketingExpenseShare     string `yaml:"marketing_expense_share"`
	AdminExpenseShare         string `yaml:"admin_expense_share"`
	TaxRate                   string `yaml:"tax_rate"`
	CampaignWindowPaddingDays *int   `yaml:"campaign_window_padding_days"`
	CampaignMatchUnattributed *bool  `yaml:"campaign_match_unattributed"`
}

// ReportsFile is the layout of the REPORTS_CONFIG file.
type ReportsFile struct {
	Policy   PolicyConfig             `yaml:"policy"`
	Render   interfaces.RenderOptions `yaml:"render"`
	Schedule ScheduleConfig           `yaml:"schedule"`
}

// Load reads .env (outside production), the environment and REPORTS_CONFIG.
func Load() (Config, error) {
	if !strings.EqualFold(os.Getenv("ENV"), "production") {
		envPath := getenvDefault("ENV_FILE", ".env")
		if err := godotenv.Load(envPath); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("config: load %s: %w", envPath, err)
		}
	}
	return FromEnv()
}

// FromEnv builds the configuration from the current environment.
func FromEnv() (Config, error) {
	cfg := Config{
		DatabaseURL:       getenvDefault("DATABASE_URL", getenvDefault("PG_DSN", "")),
		HTTPAddr:          getenvDefault("HTTP_ADDR", ":8080"),
		JWTSecret:         getenvDefault("AUTH_JWT_SECRET", getenvDefault("JWT_SECRET", "")),
		Currency:          getenvDefault("CURRENCY", "USD"),
		PlatformName:      getenvDefault("PLATFORM_NAME", ""),
		AMQPURL:           getenvDefault("AMQP_URL", ""),
		AMQPExchange:      getenvDefault("AMQP_EXCHANGE", "reports"),
		LogLevel:          getenvDefault("LOG_LEVEL", "info"),
		LogFormat:         getenvDefault("LOG_FORMAT", "text"),
		MigrateOnStart:    getenvBool("MIGRATE_ON_START", false),
		DBMaxOpenConns:    getenvIntDefault("DB_MAX_OPEN_CONNS", 20),
		DBMaxIdleConns:    getenvIntDefault("DB_MAX_IDLE_CONNS", 5),
		DBConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		ShutdownTimeout:   getenvDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		Policy:            reporting.DefaultPolicy(),
		Render:            interfaces.DefaultRenderOptions(),
		Schedule: ScheduleConfig{
			Enabled:  getenvBool("MONTH_CLOSE_ENABLED", false),
			Spec:     getenvDefault("MONTH_CLOSE_SPEC", ""),
			Subjects: splitCSV(getenvDefault("MONTH_CLOSE_SUBJECTS", "")),
		},
	}

	loc, err := time.LoadLocation(getenvDefault("REPORT_TIMEZONE", "UTC"))
	if err != nil {
		return cfg, fmt.Errorf("config: REPORT_TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if path := os.Getenv("REPORTS_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := cfg.applyReportsFile(data); err != nil {
			return cfg, fmt.Errorf("config: %s: %w", path, err)
		}
	}

	cfg.Policy.Currency = cfg.Currency
	if cfg.PlatformName != "" {
		cfg.Render.PlatformName = cfg.PlatformName
	}
	if err := cfg.Policy.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyReportsFile(data []byte) error {
	var file ReportsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return err
	}
	if err := file.Policy.apply(&c.Policy); err != nil {
		return err
	}
	if file.Render.PlatformName != "" {
		c.Render.PlatformName = file.Render.PlatformName
	}
	if file.Render.Disclaimer != "" {
		c.Render.Disclaimer = file.Render.Disclaimer
	}
	if file.Render.Confidentiality != "" {
		c.Render.Confidentiality = file.Render.Confidentiality
	}
	if file.Schedule.Enabled {
		c.Schedule.Enabled = true
	}
	if file.Schedule.Spec != "" {
		c.Schedule.Spec = file.Schedule.Spec
	}
	if len(file.Schedule.Subjects) > 0 {
		c.Schedule.Subjects = file.Schedule.Subjects
	}
	return nil
}

func (p PolicyConfig) apply(policy *reporting.Policy) error {
	rates := []struct {
		name  string
		value string
		dst   *decimal.Decimal
	}{
		{"revenue_deduction_rate", p.RevenueDeductionRate, &policy.RevenueDeductionRate},
		{"marketing_expense_share", p.MarketingExpenseShare, &policy.MarketingExpenseShare},
		{"admin_expense_share", p.AdminExpenseShare, &policy.AdminExpenseShare},
		{"tax_rate", p.TaxRate, &policy.TaxRate},
	}
	for _, rate := range rates {
		if strings.TrimSpace(rate.value) == "" {
			continue
		}
		parsed, err := decimal.NewFromString(strings.TrimSpace(rate.value))
		if err != nil {
			return fmt.Errorf("%w: %s: %v", reporting.ErrInvalidPolicy, rate.name, err)
		}
		*rate.dst = parsed
	}
	if p.CampaignWindowPaddingDays != nil {
		policy.CampaignWindowPaddingDays = *p.CampaignWindowPaddingDays
	}
	if p.CampaignMatchUnattributed != nil {
		policy.CampaignMatchUnattributed = *p.CampaignMatchUnattributed
	}
	return nil
}

// MonthCloseSubjects parses schedule subjects written as "kind:id".
func (c Config) MonthCloseSubjects() ([]reporting.Subject, error) {
	subjects := make([]reporting.Subject, 0, len(c.Schedule.Subjects))
	for _, raw := range c.Schedule.Subjects {
		kind, id, ok := strings.Cut(strings.TrimSpace(raw), ":")
		if !ok {
			return nil, fmt.Errorf("%w: month close subject %q must be kind:id", reporting.ErrInvalidSubjectKind, raw)
		}
		subject, err := reporting.NewSubject(id, reporting.SubjectKind(strings.TrimSpace(kind)))
		if err != nil {
			return nil, err
		}
		subjects = append(subjects, subject)
	}
	return subjects, nil
}

func getenvDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getenvIntDefault(key string, fallback int) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvBool(key string, fallback bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(val)
	if err != nil {
		return fallback
	}
	return parsed
}

func splitCSV(value string) []string {
	if value == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
