package configs

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values. Everything is read once at startup
// and treated as read-only afterwards.
type Config struct {
	Port      string
	Env       string
	JWTSecret string
	JWTExpire time.Duration

	DatabaseURL      string
	PostgresUser     string
	PostgresPassword string
	PostgresHost     string
	PostgresPort     string
	PostgresDB       string

	RedisURL string

	StreamAPIKey    string
	StreamAPISecret string

	KafkaBrokers []string
	KafkaTopic   string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
}

var (
	ConfigInstance *Config
	once           sync.Once
)

// Load loads configuration from the .env file and the environment.
func Load() *Config {
	once.Do(func() {
		viper.SetConfigName(".env")
		viper.SetConfigType("env")
		viper.AddConfigPath(".")

		// Set defaults
		viper.SetDefault("LINGUA_PORT", "5002")
		viper.SetDefault("LINGUA_ENV", "development")
		viper.SetDefault("LINGUA_JWT_SECRET", "secret")
		viper.SetDefault("LINGUA_JWT_EXPIRE", "168h")
		viper.SetDefault("POSTGRES_USER", "postgres")
		viper.SetDefault("POSTGRES_PASSWORD", "password")
		viper.SetDefault("POSTGRES_HOST", "localhost")
		viper.SetDefault("POSTGRES_PORT", "5432")
		viper.SetDefault("POSTGRES_DB", "lingua")
		viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")
		viper.SetDefault("KAFKA_BROKERS", "")
		viper.SetDefault("KAFKA_TOPIC", "lingua.notifications")
		viper.SetDefault("MINIO_ENDPOINT", "")
		viper.SetDefault("MINIO_BUCKET", "avatars")
		viper.SetDefault("MINIO_USE_SSL", false)
		viper.AutomaticEnv()

		if err := viper.ReadInConfig(); err != nil {
			log.Printf("Warning: Error reading .env file: %v", err)
			log.Printf("Using environment variables and defaults")
		}

		expire, err := time.ParseDuration(viper.GetString("LINGUA_JWT_EXPIRE"))
		if err != nil {
			log.Fatal("Invalid LINGUA_JWT_EXPIRE format")
		}

		var brokers []string
		if raw := viper.GetString("KAFKA_BROKERS"); raw != "" {
			for _, b := range strings.Split(raw, ",") {
				brokers = append(brokers, strings.TrimSpace(b))
			}
		}

		ConfigInstance = &Config{
			Port:      viper.GetString("LINGUA_PORT"),
			Env:       viper.GetString("LINGUA_ENV"),
			JWTSecret: viper.GetString("LINGUA_JWT_SECRET"),
			JWTExpire: expire,

			DatabaseURL:      viper.GetString("DATABASE_URL"),
			PostgresUser:     viper.GetString("POSTGRES_USER"),
			PostgresPassword: viper.GetString("POSTGRES_PASSWORD"),
			PostgresHost:     viper.GetString("POSTGRES_HOST"),
			PostgresPort:     viper.GetString("POSTGRES_PORT"),
			PostgresDB:       viper.GetString("POSTGRES_DB"),

			RedisURL: viper.GetString("REDIS_URL"),

			StreamAPIKey:    viper.GetString("STREAM_API_KEY"),
			StreamAPISecret: viper.GetString("STREAM_API_SECRET"),

			KafkaBrokers: brokers,
			KafkaTopic:   viper.GetString("KAFKA_TOPIC"),

			MinIOEndpoint:  viper.GetString("MINIO_ENDPOINT"),
			MinIOAccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			MinIOSecretKey: viper.GetString("MINIO_SECRET_KEY"),
			MinIOBucket:    viper.GetString("MINIO_BUCKET"),
			MinIOUseSSL:    viper.GetBool("MINIO_USE_SSL"),
		}
	})
	return ConfigInstance
}

// IsProduction reports whether the service runs in production mode. It gates
// the secure flag on the session cookie.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
