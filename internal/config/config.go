package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// DefaultJWTSecret is used when JWT_SECRET is unset. It is refused in production.
const DefaultJWTSecret = "change-me"

// Config holds application level configuration loaded from environment variables
// and an optional config.yaml.
type Config struct {
	ServerPort  string `mapstructure:"server_port"`
	AppEnv      string `mapstructure:"app_env"`
	LogLevel    string `mapstructure:"log_level"`
	DBDriver    string `mapstructure:"db_driver"`
	DatabaseDSN string `mapstructure:"database_dsn"`
	RedisAddr   string `mapstructure:"redis_addr"`
	RedisDB     int    `mapstructure:"redis_db"`
	RedisPass   string `mapstructure:"redis_password"`
	JWTSecret   string `mapstructure:"jwt_secret"`
	SwaggerHost string `mapstructure:"swagger_host"`

	// CORSOrigins may send credentialed cross-origin requests. Empty disables CORS.
	CORSOrigins []string `mapstructure:"cors_origins"`

	// EnforceOwnership closes the open delete-post / create-comment routes.
	// Disable only for clients that depend on the old open behavior.
	EnforceOwnership bool `mapstructure:"enforce_ownership"`

	CloudinaryCloudName string `mapstructure:"cloudinary_cloud_name"`
	CloudinaryAPIKey    string `mapstructure:"cloudinary_api_key"`
	CloudinaryAPISecret string `mapstructure:"cloudinary_api_secret"`
	CloudinaryFolder    string `mapstructure:"cloudinary_folder"`
}

var keys = []string{
	"server_port", "app_env", "log_level", "db_driver", "database_dsn",
	"redis_addr", "redis_db", "redis_password", "jwt_secret", "swagger_host", "cors_origins",
	"enforce_ownership", "cloudinary_cloud_name", "cloudinary_api_key",
	"cloudinary_api_secret", "cloudinary_folder",
}

// Load builds Config from environment with sensible defaults.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about during Unmarshal.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	v.SetDefault("server_port", "8080")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("db_driver", "mysql")
	v.SetDefault("database_dsn", "user:password@tcp(localhost:3306)/blog?charset=utf8mb4&parseTime=True&loc=Local")
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_db", 0)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("enforce_ownership", true)
	v.SetDefault("cors_origins", []string{"http://localhost:3000"})
	v.SetDefault("cloudinary_folder", "blog")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// SecureCookies reports whether session cookies must carry the Secure flag.
func (c *Config) SecureCookies() bool {
	switch c.AppEnv {
	case "development", "test", "local":
		return false
	}
	return true
}

// ResolveJWTSecret returns the signing secret. It falls back to DefaultJWTSecret
// outside production and reports whether the fallback was used.
func (c *Config) ResolveJWTSecret() (secret string, fallback bool, err error) {
	if c.JWTSecret != "" {
		return c.JWTSecret, false, nil
	}
	if c.IsProduction() {
		return "", false, errors.New("JWT_SECRET must be set in production")
	}
	return DefaultJWTSecret, true, nil
}
