package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Config struct {
	Addr      string
	Storage   string
	DB        DBConfig
	JWTSecret string
	TokenTTL  time.Duration
	LogLevel  string
	LogFormat string

	OTLPEndpoint string
	ServiceName  string
}

// LoadEnv подгружает .env, если он есть
func LoadEnv() {
	err := godotenv.Load()
	if err != nil {
		log.Println(".env file not found")
	}
}

// Load собирает конфигурацию: флаги > переменные окружения > значения по умолчанию.
// Имена ключей совпадают с именами переменных окружения в нижнем регистре (db_host -> DB_HOST).
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("storage", StorageMemory)
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "postgres")
	v.SetDefault("db_name", "newsfeed")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("token_ttl", 7*24*time.Hour)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")
	v.SetDefault("otel_service_name", "newsfeed")

	if flags != nil {
		// флаг --log-level соответствует ключу log_level
		var bindErr error
		flags.VisitAll(func(f *pflag.Flag) {
			if err := v.BindPFlag(strings.ReplaceAll(f.Name, "-", "_"), f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return nil, errors.Wrap(bindErr, "could not bind flags")
		}
	}

	cfg := &Config{
		Addr:    v.GetString("addr"),
		Storage: v.GetString("storage"),
		DB: DBConfig{
			Host:     v.GetString("db_host"),
			Port:     v.GetString("db_port"),
			User:     v.GetString("db_user"),
			Password: v.GetString("db_password"),
			Name:     v.GetString("db_name"),
			SSLMode:  v.GetString("db_sslmode"),
		},
		JWTSecret:    v.GetString("jwt_secret"),
		TokenTTL:     v.GetDuration("token_ttl"),
		LogLevel:     v.GetString("log_level"),
		LogFormat:    v.GetString("log_format"),
		OTLPEndpoint: v.GetString("otel_exporter_otlp_endpoint"),
		ServiceName:  v.GetString("otel_service_name"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		return errors.New("environment variable JWT_SECRET is not set")
	}
	if c.Storage != StorageMemory && c.Storage != StoragePostgres {
		return errors.Errorf("unknown storage type: %s", c.Storage)
	}
	if c.TokenTTL <= 0 {
		return errors.Errorf("token ttl must be positive, got %s", c.TokenTTL)
	}
	return nil
}
