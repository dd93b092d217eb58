package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		DSN        string `mapstructure:"dsn"`
		Name       string `mapstructure:"name"`
		User       string `mapstructure:"user"`
		Password   string `mapstructure:"password"`
		Host       string `mapstructure:"host"`
		Port       int    `mapstructure:"port"`
		MaxConns   int32  `mapstructure:"max_conns"`
		LogQueries bool   `mapstructure:"log_queries"`
	} `mapstructure:"database"`

	Inference struct {
		HubURL         string        `mapstructure:"hub_url"`
		URL            string        `mapstructure:"url"`
		APIToken       string        `mapstructure:"api_token"`
		MaxLength      int           `mapstructure:"max_length"`
		MaxRetries     int           `mapstructure:"max_retries"`
		Timeout        time.Duration `mapstructure:"timeout"`
		EmotionModel   string        `mapstructure:"emotion_model"`
		GibberishModel string        `mapstructure:"gibberish_model"`
	} `mapstructure:"inference"`

	Server struct {
		Host            string        `mapstructure:"host"`
		Port            int           `mapstructure:"port"`
		ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
		GinMode         string        `mapstructure:"gin_mode"`
	} `mapstructure:"server"`

	CORS struct {
		AllowedOrigins []string `mapstructure:"allowed_origins"`
	} `mapstructure:"cors"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"log"`
}

// envBindings maps config keys to the environment variables the service has
// always been deployed with.
var envBindings = map[string]string{
	"database.dsn":              "DATABASE_URL",
	"database.name":             "DB_NAME",
	"database.user":             "DB_USER",
	"database.password":         "DB_PASSWORD",
	"database.host":             "DB_HOST",
	"database.port":             "DB_PORT",
	"database.max_conns":        "DB_MAX_CONNS",
	"database.log_queries":      "DB_LOG_QUERIES",
	"inference.hub_url":         "HF_HUB_URL",
	"inference.url":             "HF_INFERENCE_URL",
	"inference.api_token":       "HF_TOKEN",
	"inference.emotion_model":   "EMOTION_MODEL",
	"inference.gibberish_model": "GIBBERISH_MODEL",
	"server.host":               "HOST",
	"server.port":               "PORT",
	"server.gin_mode":           "GIN_MODE",
	"log.level":                 "LOG_LEVEL",
	"log.format":                "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	// pool_size 5 plus max_overflow 10 of the previous engine
	v.SetDefault("database.max_conns", 15)
	v.SetDefault("database.log_queries", false)

	v.SetDefault("inference.hub_url", "https://huggingface.co")
	v.SetDefault("inference.url", "https://api-inference.huggingface.co/models")
	v.SetDefault("inference.max_length", 512)
	v.SetDefault("inference.max_retries", 0)
	v.SetDefault("inference.timeout", 0)
	v.SetDefault("inference.emotion_model", "SamLowe/roberta-base-go_emotions")
	v.SetDefault("inference.gibberish_model", "wajidlinux99/gibberish-text-detector")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.gin_mode", "release")

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads config.yaml (or configFile when set), a .env file in the
// working directory, and the environment. Environment values win.
func LoadConfig(configFile string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("bind %s to %s: %w", key, env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || configFile != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}
	return &cfg, nil
}

// DatabaseDSN returns database.dsn when set, otherwise a postgresql:// URL
// assembled from the individual connection settings.
func (c *Config) DatabaseDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	if c.Database.Name == "" || c.Database.User == "" || c.Database.Host == "" || c.Database.Port == 0 {
		return ""
	}
	u := url.URL{
		Scheme: "postgresql",
		User:   url.UserPassword(c.Database.User, c.Database.Password),
		Host:   net.JoinHostPort(c.Database.Host, strconv.Itoa(c.Database.Port)),
		Path:   "/" + c.Database.Name,
	}
	return u.String()
}

// ListenAddr is the host:port the HTTP server binds to.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}
