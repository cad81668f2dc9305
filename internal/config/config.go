package config

import (
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// KafkaConfig holds event publishing parameters. Publishing is optional;
// with Enabled false the service runs without a broker.
type KafkaConfig struct {
	Enabled bool
	Brokers []string
}

// ServerConfig holds all configuration for the main service.
type ServerConfig struct {
	Port     string
	AppEnv   string
	Database DatabaseConfig
	Kafka    KafkaConfig
}

// GatewayConfig holds all configuration for the validating gateway.
type GatewayConfig struct {
	Port      string
	AppEnv    string
	ServerURL string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix("SHAREIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadServer reads main service configuration from SHAREIT_* environment
// variables, with defaults suitable for local development.
func LoadServer() (*ServerConfig, error) {
	v := newViper()

	v.SetDefault("SERVER_PORT", "9090")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "shareit")
	v.SetDefault("DB_PASSWORD", "shareit")
	v.SetDefault("DB_NAME", "shareit")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("KAFKA_ENABLED", false)
	v.SetDefault("KAFKA_BROKERS", "localhost:9092")

	return &ServerConfig{
		Port:   ":" + v.GetString("SERVER_PORT"),
		AppEnv: v.GetString("APP_ENV"),
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			DBName:   v.GetString("DB_NAME"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Kafka: KafkaConfig{
			Enabled: v.GetBool("KAFKA_ENABLED"),
			Brokers: strings.Split(v.GetString("KAFKA_BROKERS"), ","),
		},
	}, nil
}

// LoadGateway reads gateway configuration from SHAREIT_* environment
// variables.
func LoadGateway() (*GatewayConfig, error) {
	v := newViper()

	v.SetDefault("GATEWAY_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVER_URL", "http://localhost:9090")

	return &GatewayConfig{
		Port:      ":" + v.GetString("GATEWAY_PORT"),
		AppEnv:    v.GetString("APP_ENV"),
		ServerURL: v.GetString("SERVER_URL"),
	}, nil
}
