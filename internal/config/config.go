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
	DataForSEO DataForSEOConfig `yaml:"dataforseo" mapstructure:"dataforseo"`
	Settings   SettingsConfig   `yaml:"settings" mapstructure:"settings"`
	Report     ReportConfig     `yaml:"report" mapstructure:"report"`
	Server     ServerConfig     `yaml:"server" mapstructure:"server"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
}

// DataForSEOConfig holds DataForSEO API credentials and query parameters.
type DataForSEOConfig struct {
	Login        string  `yaml:"login" mapstructure:"login"`
	Password     string  `yaml:"password" mapstructure:"password"`
	BaseURL      string  `yaml:"base_url" mapstructure:"base_url"`
	LocationCode int     `yaml:"location_code" mapstructure:"location_code"`
	LanguageCode string  `yaml:"language_code" mapstructure:"language_code"`
	Limit        int     `yaml:"limit" mapstructure:"limit"`
	TimeoutSecs  int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxCost      float64 `yaml:"max_cost" mapstructure:"max_cost"`
}

// SettingsConfig locates the user settings file.
type SettingsConfig struct {
	Path         string `yaml:"path" mapstructure:"path"`
	TargetDomain string `yaml:"target_domain" mapstructure:"target_domain"`
}

// ReportConfig names the spreadsheet outputs.
type ReportConfig struct {
	Output         string `yaml:"output" mapstructure:"output"`
	FilteredOutput string `yaml:"filtered_output" mapstructure:"filtered_output"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" mapstructure:"port"`
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
	v.SetEnvPrefix("CONTENTGAP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Unprefixed names shared with the DataForSEO tooling.
	for key, env := range map[string]string{
		"dataforseo.login":       "DATAFORSEO_LOGIN",
		"dataforseo.password":    "DATAFORSEO_PASSWORD",
		"settings.target_domain": "TARGET_DOMAIN",
	} {
		prefixed := "CONTENTGAP_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", env)
		}
	}

	// Defaults
	v.SetDefault("dataforseo.base_url", "https://api.dataforseo.com/v3")
	v.SetDefault("dataforseo.location_code", 2208)
	v.SetDefault("dataforseo.language_code", "da")
	v.SetDefault("dataforseo.limit", 1000)
	v.SetDefault("dataforseo.timeout_secs", 120)
	v.SetDefault("dataforseo.max_cost", 0.0)
	v.SetDefault("settings.path", "settings.json")
	v.SetDefault("settings.target_domain", "cosmolaser.dk")
	v.SetDefault("report.output", "content_gap_analysis.xlsx")
	v.SetDefault("report.filtered_output", "filtered_content_gap_analysis.xlsx")
	v.SetDefault("server.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

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

// Validate checks the configuration needed to call the DataForSEO API.
func (c *Config) Validate() error {
	var missing []string
	if c.DataForSEO.Login == "" {
		missing = append(missing, "dataforseo.login (DATAFORSEO_LOGIN)")
	}
	if c.DataForSEO.Password == "" {
		missing = append(missing, "dataforseo.password (DATAFORSEO_PASSWORD)")
	}
	if len(missing) > 0 {
		return eris.Errorf("config: missing required values: %s", strings.Join(missing, ", "))
	}
	if c.DataForSEO.Limit < 0 {
		return eris.New("config: dataforseo.limit must be >= 0")
	}
	if c.DataForSEO.MaxCost < 0 {
		return eris.New("config: dataforseo.max_cost must be >= 0")
	}
	return nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.DisableStacktrace = true
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
