package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App         App         `mapstructure:",squash"`
	Server      Server      `mapstructure:",squash"`
	Database    Database    `mapstructure:",squash"`
	Auth        Auth        `mapstructure:",squash"`
	Calendar    Calendar    `mapstructure:",squash"`
	CRM         CRM         `mapstructure:",squash"`
	Mailer      Mailer      `mapstructure:",squash"`
	Maintenance Maintenance `mapstructure:",squash"`
	SecretKey   string      `mapstructure:"secret_key"`
}

type App struct {
	LogLevel string         `mapstructure:"log_level"`
	Env      string         `mapstructure:"app_env"`
	Timezone string         `mapstructure:"app_timezone"`
	Location *time.Location `mapstructure:"-"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

type Auth struct {
	TokenTTLHours int `mapstructure:"auth_token_ttl_hours"`
}

type Calendar struct {
	BaseURL          string   `mapstructure:"calendar_base_url"`
	CalendarID       string   `mapstructure:"calendar_id"`
	AccessToken      string   `mapstructure:"calendar_access_token"`
	WorkdayStart     int      `mapstructure:"calendar_workday_start"`
	WorkdayEnd       int      `mapstructure:"calendar_workday_end"`
	SlotMinutes      int      `mapstructure:"calendar_slot_minutes"`
	MinNoticeMinutes int      `mapstructure:"calendar_min_notice_minutes"`
	Workdays         []string `mapstructure:"calendar_workdays"`
}

type CRM struct {
	WebhookURL    string `mapstructure:"crm_webhook_url"`
	WebhookSecret string `mapstructure:"crm_webhook_secret"`
	Enabled       bool   `mapstructure:"crm_enabled"`
}

type Mailer struct {
	ResendAPIKey string `mapstructure:"resend_api_key"`
	From         string `mapstructure:"mail_from"`
	TeamAddress  string `mapstructure:"mail_team_address"`
}

type Maintenance struct {
	CronSchedule  string `mapstructure:"maintenance_cron"`
	Enabled       bool   `mapstructure:"maintenance_enabled"`
	RetentionDays int    `mapstructure:"analytics_retention_days"`
}

var weekdayNames = map[string]time.Weekday{
	"sun": time.Sunday,
	"mon": time.Monday,
	"tue": time.Tuesday,
	"wed": time.Wednesday,
	"thu": time.Thursday,
	"fri": time.Friday,
	"sat": time.Saturday,
}

// WorkdaySet resolves the configured workday names (mon, tue, ...).
func (c Calendar) WorkdaySet() (map[time.Weekday]bool, error) {
	days := make(map[time.Weekday]bool, len(c.Workdays))
	for _, name := range c.Workdays {
		day, ok := weekdayNames[shortDay(name)]
		if !ok {
			return nil, fmt.Errorf("unknown workday %q", name)
		}
		days[day] = true
	}
	return days, nil
}

func shortDay(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if len(name) > 3 {
		name = name[:3]
	}
	return name
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_TIMEZONE", "Asia/Dubai")
	viper.SetDefault("LOG_LEVEL", "debug")

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/property_leads?sslmode=disable")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("SECRET_KEY", "your_secret_key")
	viper.SetDefault("AUTH_TOKEN_TTL_HOURS", 24)

	viper.SetDefault("CALENDAR_BASE_URL", "https://www.googleapis.com/calendar/v3")
	viper.SetDefault("CALENDAR_ID", "primary")
	viper.SetDefault("CALENDAR_ACCESS_TOKEN", "")
	viper.SetDefault("CALENDAR_WORKDAY_START", 10)
	viper.SetDefault("CALENDAR_WORKDAY_END", 18)
	viper.SetDefault("CALENDAR_SLOT_MINUTES", 60)
	viper.SetDefault("CALENDAR_MIN_NOTICE_MINUTES", 60)
	viper.SetDefault("CALENDAR_WORKDAYS", "mon,tue,wed,thu,fri")

	viper.SetDefault("CRM_WEBHOOK_URL", "")
	viper.SetDefault("CRM_WEBHOOK_SECRET", "")
	viper.SetDefault("CRM_ENABLED", false)

	viper.SetDefault("RESEND_API_KEY", "")
	viper.SetDefault("MAIL_FROM", "Consultancy <noreply@example.com>")
	viper.SetDefault("MAIL_TEAM_ADDRESS", "")

	viper.SetDefault("MAINTENANCE_CRON", "0 2 * * *") // every day at 02:00
	viper.SetDefault("MAINTENANCE_ENABLED", true)
	viper.SetDefault("ANALYTICS_RETENTION_DAYS", 365)
}

func NewConfig() (*Config, error) {
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("using environment variables only (viper could not read .env): ", err)
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	if err := config.finalize(); err != nil {
		return nil, err
	}

	return config, nil
}

// finalize derives computed fields and rejects unusable settings.
func (c *Config) finalize() error {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return errors.Wrapf(err, "invalid APP_TIMEZONE %q", c.App.Timezone)
	}
	c.App.Location = loc

	if c.Calendar.WorkdayStart < 0 || c.Calendar.WorkdayEnd > 24 || c.Calendar.WorkdayStart >= c.Calendar.WorkdayEnd {
		return fmt.Errorf("invalid workday hours %d-%d", c.Calendar.WorkdayStart, c.Calendar.WorkdayEnd)
	}
	if c.Calendar.SlotMinutes <= 0 {
		return fmt.Errorf("CALENDAR_SLOT_MINUTES must be positive")
	}
	if _, err := c.Calendar.WorkdaySet(); err != nil {
		return err
	}
	if c.Auth.TokenTTLHours <= 0 {
		c.Auth.TokenTTLHours = 24
	}

	c.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		c.Database.Driver,
		c.Database.User,
		c.Database.Password,
		c.Database.URL,
	)

	return nil
}

func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("could not resolve working directory: ", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info(".env loaded from ", location)
			return
		}
	}

	logrus.Debug("no .env file found, relying on process environment")
}
