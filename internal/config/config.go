package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Webhook WebhookConfig `yaml:"webhook" mapstructure:"webhook"`
	Auth    AuthConfig    `yaml:"auth" mapstructure:"auth"`
	Server  ServerConfig  `yaml:"server" mapstructure:"server"`
	Upload  UploadConfig  `yaml:"upload" mapstructure:"upload"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
}

// WebhookConfig holds the three automation backend endpoints. They change
// per client deployment, so they are configuration, not constants.
type WebhookConfig struct {
	GetLeadsURL   string `yaml:"get_leads_url" mapstructure:"get_leads_url"`
	UpdateLeadURL string `yaml:"update_lead_url" mapstructure:"update_lead_url"`
	UploadURL     string `yaml:"upload_url" mapstructure:"upload_url"`
	TimeoutSecs   int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// AuthConfig holds console login settings. Password may be plaintext or a
// bcrypt hash (a $2a$ / $2b$ / $2y$ prefix selects hash verification).
type AuthConfig struct {
	Email        string `yaml:"email" mapstructure:"email"`
	Password     string `yaml:"password" mapstructure:"password"`
	JWTSecret    string `yaml:"jwt_secret" mapstructure:"jwt_secret"`
	SessionHours int    `yaml:"session_hours" mapstructure:"session_hours"`
}

// ServerConfig configures the console server.
type ServerConfig struct {
	Port            int      `yaml:"port" mapstructure:"port"`
	AllowedOrigins  []string `yaml:"allowed_origins" mapstructure:"allowed_origins"`
	LoginRatePerMin int      `yaml:"login_rate_per_min" mapstructure:"login_rate_per_min"`
}

// UploadConfig configures upload and template handling.
type UploadConfig struct {
	TemplateFilename string `yaml:"template_filename" mapstructure:"template_filename"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("STELLAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	for key, val := range Defaults() {
		v.SetDefault(key, val)
	}

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// Defaults returns every configuration default keyed by viper path, shared
// by Load and the config init command.
func Defaults() map[string]any {
	return map[string]any{
		// Empty-string defaults keep env-only overrides visible to Unmarshal.
		"webhook.get_leads_url":     "",
		"webhook.update_lead_url":   "",
		"webhook.upload_url":        "",
		"auth.email":                "",
		"auth.password":             "",
		"auth.jwt_secret":           "",
		"webhook.timeout_secs":      30,
		"auth.session_hours":        168, // 7 days
		"server.port":               8080,
		"server.allowed_origins":    []string{"*"},
		"server.login_rate_per_min": 10,
		"upload.template_filename":  "leads-template.csv",
		"log.level":                 "info",
		"log.format":                "json",
	}
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
