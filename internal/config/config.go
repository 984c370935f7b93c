package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Logger     LoggerConfig
	Auth       AuthConfig
	Engine     EngineConfig
	Artifact   ArtifactConfig
	Events     EventsConfig
	Kubernetes KubernetesConfig
}

type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

type LoggerConfig struct {
	Level  string
	Format string
}

type AuthConfig struct {
	// APIKey guards /api/v1 when non-empty. Empty disables auth.
	APIKey string
}

type EngineConfig struct {
	Workers        int
	QueueSize      int
	PredictTimeout time.Duration
}

type ArtifactConfig struct {
	LocalDir   string
	S3Region   string
	S3Endpoint string
}

type EventsConfig struct {
	Enabled       bool
	NATSURL       string
	SubjectPrefix string
}

type KubernetesConfig struct {
	Enabled        bool
	InCluster      bool
	KubeConfigPath string
	Namespace      string
}

func Load() (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "predictions")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "json")
	v.SetDefault("AUTH_API_KEY", "")
	v.SetDefault("ENGINE_WORKERS", 4)
	v.SetDefault("ENGINE_QUEUE_SIZE", 256)
	v.SetDefault("ENGINE_PREDICT_TIMEOUT", "30s")
	v.SetDefault("ARTIFACT_LOCAL_DIR", "./artifacts")
	v.SetDefault("ARTIFACT_S3_REGION", "us-east-1")
	v.SetDefault("ARTIFACT_S3_ENDPOINT", "")
	v.SetDefault("EVENTS_ENABLED", false)
	v.SetDefault("EVENTS_NATS_URL", "nats://localhost:4222")
	v.SetDefault("EVENTS_SUBJECT_PREFIX", "predictions")
	v.SetDefault("K8S_ENABLED", false)
	v.SetDefault("K8S_IN_CLUSTER", false)
	v.SetDefault("K8S_KUBECONFIG", "")
	v.SetDefault("K8S_NAMESPACE", "model-serving")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durationOr(v.GetString("DB_CONN_MAX_LIFETIME"), 5*time.Minute),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
		Auth: AuthConfig{
			APIKey: v.GetString("AUTH_API_KEY"),
		},
		Engine: EngineConfig{
			Workers:        v.GetInt("ENGINE_WORKERS"),
			QueueSize:      v.GetInt("ENGINE_QUEUE_SIZE"),
			PredictTimeout: durationOr(v.GetString("ENGINE_PREDICT_TIMEOUT"), 30*time.Second),
		},
		Artifact: ArtifactConfig{
			LocalDir:   v.GetString("ARTIFACT_LOCAL_DIR"),
			S3Region:   v.GetString("ARTIFACT_S3_REGION"),
			S3Endpoint: v.GetString("ARTIFACT_S3_ENDPOINT"),
		},
		Events: EventsConfig{
			Enabled:       v.GetBool("EVENTS_ENABLED"),
			NATSURL:       v.GetString("EVENTS_NATS_URL"),
			SubjectPrefix: v.GetString("EVENTS_SUBJECT_PREFIX"),
		},
		Kubernetes: KubernetesConfig{
			Enabled:        v.GetBool("K8S_ENABLED"),
			InCluster:      v.GetBool("K8S_IN_CLUSTER"),
			KubeConfigPath: v.GetString("K8S_KUBECONFIG"),
			Namespace:      v.GetString("K8S_NAMESPACE"),
		},
	}

	return cfg, nil
}

func durationOr(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
