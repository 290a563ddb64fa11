// Package config handles application configuration loading and management.
package config

import (
	"errors"
	"log"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration.
type Config struct {
	// Application contains application-level settings
	Application ApplicationConfig `mapstructure:"application"`
	// Server contains HTTP server settings
	Server ServerConfig `mapstructure:"server"`
	// Infrastructure contains infrastructure connection settings
	Infrastructure InfrastructureConfig `mapstructure:"infrastructure"`
	// Security contains security-related settings
	Security SecurityConfig `mapstructure:"security"`
	// AuthProvider contains the external identity service settings
	AuthProvider AuthProviderConfig `mapstructure:"auth_provider"`
}

// ApplicationConfig holds the application-level configuration.
type ApplicationConfig struct {
	Name    string `mapstructure:"name"`
	Version string `mapstructure:"version"`
}

// ServerConfig holds the HTTP server configuration.
type ServerConfig struct {
	// Port specifies the port number the server will listen on
	Port int `mapstructure:"port"`
	// ReadTimeout defines the maximum duration for reading a request, in seconds
	ReadTimeout int `mapstructure:"read_timeout"`
	// WriteTimeout defines the maximum duration for writing a response, in seconds
	WriteTimeout int `mapstructure:"write_timeout"`
	// ShutdownTimeout defines how long graceful shutdown may take, in seconds
	ShutdownTimeout int `mapstructure:"shutdown_timeout"`
}

// InfrastructureConfig holds infrastructure connection settings.
type InfrastructureConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Kafka    KafkaConfig    `mapstructure:"kafka"`
}

// PostgresConfig holds the PostgreSQL database configuration.
type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	Schema   string `mapstructure:"schema"`
	SSLMode  string `mapstructure:"sslmode"`
	// MaxIdleConns specifies the maximum number of idle connections in the pool
	MaxIdleConns int `mapstructure:"max_idle_conns"`
	// MaxOpenConns specifies the maximum number of open connections
	MaxOpenConns int `mapstructure:"max_open_conns"`
	// ConnMaxIdleTime specifies how long a connection may sit idle, in minutes
	ConnMaxIdleTime int `mapstructure:"conn_max_idle_time"`
	// ConnMaxLifetime specifies how long a connection may be reused, in minutes
	ConnMaxLifetime int `mapstructure:"conn_max_lifetime"`
	// Debug enables query logging
	Debug bool `mapstructure:"debug"`
	// IsUseMigrate runs schema auto-migration at startup
	IsUseMigrate bool `mapstructure:"is_use_migrate"`
}

// RedisConfig holds the Redis cache configuration.
type RedisConfig struct {
	// Enabled toggles the city cache; when false reads go straight to postgres
	Enabled  bool     `mapstructure:"enabled"`
	Addrs    []string `mapstructure:"addrs"`
	Username string   `mapstructure:"username"`
	Password string   `mapstructure:"password"`
	DB       int      `mapstructure:"db"`
	PoolSize int      `mapstructure:"pool_size"`
}

// KafkaConfig holds the Kafka producer configuration.
type KafkaConfig struct {
	// Enabled toggles event publishing
	Enabled bool     `mapstructure:"enabled"`
	Brokers []string `mapstructure:"brokers"`
	Topics  Topics   `mapstructure:"topics"`
}

// Topics names the Kafka topics the service produces to.
type Topics struct {
	// CredentialDelivery receives issued-credential events for the
	// notification worker
	CredentialDelivery string `mapstructure:"credential_delivery"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	JWT        JWTConfig        `mapstructure:"jwt"`
	Encryption EncryptionConfig `mapstructure:"encryption"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
	// ExpiryMinutes is the access token lifetime
	ExpiryMinutes int `mapstructure:"expiry_minutes"`
}

// EncryptionConfig holds the credential vault settings.
type EncryptionConfig struct {
	// Secret is the master secret for the credential vault. A 64-hex-char
	// value is used as the raw key; anything else is stretched.
	Secret string `mapstructure:"secret"`
	// PasswordLength is the length of generated vendor passwords
	PasswordLength int `mapstructure:"password_length"`
}

// AuthProviderConfig holds the external identity service settings.
type AuthProviderConfig struct {
	BaseURL    string `mapstructure:"base_url"`
	ServiceKey string `mapstructure:"service_key"`
	// TimeoutSeconds bounds every admin API call
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// LoadConfig loads configuration from rental.yaml plus environment variables
// and defaults, then validates the required secrets.
func LoadConfig() (*Config, error) {
	viper.SetConfigName("rental")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("../configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("configs")

	viper.SetDefault("application.name", "Rental Service")
	viper.SetDefault("application.version", "1.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 15)
	viper.SetDefault("server.write_timeout", 15)
	viper.SetDefault("server.shutdown_timeout", 30)
	viper.SetDefault("infrastructure.postgres.host", "localhost")
	viper.SetDefault("infrastructure.postgres.port", 5432)
	// No defaults for user and password - they must be provided
	viper.SetDefault("infrastructure.postgres.dbname", "rental_db")
	viper.SetDefault("infrastructure.postgres.schema", "public")
	viper.SetDefault("infrastructure.postgres.sslmode", "disable")
	viper.SetDefault("infrastructure.postgres.max_idle_conns", 10)
	viper.SetDefault("infrastructure.postgres.max_open_conns", 100)
	viper.SetDefault("infrastructure.postgres.conn_max_idle_time", 5)
	viper.SetDefault("infrastructure.postgres.conn_max_lifetime", 60)
	viper.SetDefault("infrastructure.postgres.debug", false)
	viper.SetDefault("infrastructure.postgres.is_use_migrate", true)
	viper.SetDefault("infrastructure.redis.enabled", false)
	viper.SetDefault("infrastructure.redis.addrs", []string{"localhost:6379"})
	viper.SetDefault("infrastructure.redis.pool_size", 10)
	viper.SetDefault("infrastructure.kafka.enabled", false)
	viper.SetDefault("infrastructure.kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("infrastructure.kafka.topics.credential_delivery", "rental.credential.delivery")
	viper.SetDefault("security.jwt.issuer", "rental-service")
	viper.SetDefault("security.jwt.expiry_minutes", 60)
	viper.SetDefault("security.encryption.password_length", 16)
	viper.SetDefault("auth_provider.base_url", "http://localhost:9999")
	viper.SetDefault("auth_provider.timeout_seconds", 10)

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			log.Println("Config file not found, using environment variables and defaults")
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, err
	}

	if config.Security.Encryption.Secret == "" {
		return nil, errors.New("encryption secret is required")
	}
	if config.Security.JWT.Secret == "" {
		return nil, errors.New("jwt secret is required")
	}
	if config.Infrastructure.Postgres.User == "" {
		return nil, errors.New("database user is required")
	}
	if config.Infrastructure.Postgres.Password == "" {
		return nil, errors.New("database password is required")
	}
	if config.AuthProvider.ServiceKey == "" {
		return nil, errors.New("auth provider service key is required")
	}

	return &config, nil
}

// GetConfigPath returns the path of the loaded config file, if any.
func GetConfigPath() string {
	return viper.ConfigFileUsed()
}
