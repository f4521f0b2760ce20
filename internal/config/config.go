// Package config loads application settings from defaults, an optional YAML
// file, an optional .env file and UPIQR_* environment variables, in that
// order of increasing precedence.
package config

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "UPIQR"

// Config holds all application configuration values.
type Config struct {
	// Port is also read from a bare PORT variable, like most PaaS hosts set it.
	Port        int    `yaml:"port" envconfig:"PORT"`
	GinMode     string `yaml:"gin_mode" envconfig:"GIN_MODE"`
	LogLevel    string `yaml:"log_level" envconfig:"LOG_LEVEL"`
	LogoPath    string `yaml:"logo_path" envconfig:"LOGO_PATH"`
	QREngine    string `yaml:"qr_engine" envconfig:"QR_ENGINE"`
	FontRegular string `yaml:"font_regular" envconfig:"FONT_REGULAR"`
	FontBold    string `yaml:"font_bold" envconfig:"FONT_BOLD"`
	StaticDir   string `yaml:"static_dir" envconfig:"STATIC_DIR"`
}

// Defaults returns a Config populated with default values.
func Defaults() *Config {
	return &Config{
		Port:      8080,
		GinMode:   "release",
		LogLevel:  "info",
		LogoPath:  "web/static/upi.svg",
		QREngine:  "yeqown",
		StaticDir: "web/static",
	}
}

// Load builds the configuration. A missing YAML file or .env file is not an
// error; a malformed one is.
func Load(path, envFile string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, errors.Wrapf(err, "parse config file %s", path)
			}
		case !os.IsNotExist(err):
			return nil, errors.Wrapf(err, "read config file %s", path)
		}
	}

	if envFile != "" {
		// Load never overwrites variables that are already set.
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return nil, errors.Wrapf(err, "load env file %s", envFile)
		}
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, errors.Wrap(err, "process environment")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks values that cannot be fixed up silently.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("invalid port %d", c.Port)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return errors.Wrap(err, "invalid log_level")
	}
	// gin.SetMode panics on anything else.
	switch c.GinMode {
	case "", gin.DebugMode, gin.ReleaseMode, gin.TestMode:
	default:
		return errors.Errorf("invalid gin_mode %q (want %s, %s or %s)", c.GinMode, gin.DebugMode, gin.ReleaseMode, gin.TestMode)
	}
	return nil
}

// NewLogger builds the application logger at the configured level.
func (c *Config) NewLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if lvl, err := logrus.ParseLevel(c.LogLevel); err == nil {
		log.SetLevel(lvl)
	}
	return log
}
