// Package config provides configuration structures and validation for the
// application. It handles environment-based configuration for all major
// components including the HTTP server, database connections, the goal
// completion notifier, and operational parameters.
package config

import (
	"errors"
	"strings"
	"time"
)

// Config holds the complete application configuration with settings for all
// components. Each field represents a major subsystem's configuration and is
// validated during application startup.
type Config struct {
	Application ApplicationConfig
	Logging     LoggingConfig
	Server      ServerConfig
	Postgres    PostgresConfig
	MongoDB     MongoDBConfig
	Notifier    NotifierConfig
	Kafka       KafkaConfig
	WorkerPool  WorkerPoolConfig
	Auth        AuthConfig
}

// ApplicationConfig contains general application configuration
type ApplicationConfig struct {
	Env  string
	Name string
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string
}

// ServerConfig contains HTTP server configuration settings
type ServerConfig struct {
	Port            int           // Port to listen on
	ShutdownTimeout time.Duration // Grace period for server shutdown
	ReadTimeout     time.Duration // Maximum duration for reading entire request
	WriteTimeout    time.Duration // Maximum duration for writing response
	IdleTimeout     time.Duration // Maximum duration to wait for next request
}

// PostgresConfig contains PostgreSQL configuration
type PostgresConfig struct {
	URL             string        // Database connection string
	MaxConns        int32         // Maximum number of open connections
	MinConns        int32         // Maximum number of idle connections
	ConnMaxLifetime time.Duration // Maximum lifetime of a connection
	ConnMaxIdleTime time.Duration // Maximum idle time of a connection
	MigrationsPath  string        // Path to migration files
}

// MongoDBConfig contains MongoDB configuration for the audit record store
type MongoDBConfig struct {
	URI             string
	Database        string
	Timeout         time.Duration
	MaxPoolSize     uint64
	MinPoolSize     uint64
	MaxConnIdleTime time.Duration
}

// NotifierConfig contains settings for the local goal-completion listener
type NotifierConfig struct {
	URL         string        // Listener address, e.g. ws://127.0.0.1:8787
	Subprotocol string        // Application sub-protocol identifier
	DialTimeout time.Duration // Maximum time to reach the listener
	Linger      time.Duration // Delay between send and close
}

// KafkaConfig contains settings for the optional goal-event mirror topic.
// Leaving Brokers empty disables publishing entirely.
type KafkaConfig struct {
	Brokers           string
	GoalEventsTopic   string
	NumPartitions     int
	ReplicationFactor int
	WriteTimeout      time.Duration
}

// Enabled reports whether the mirror publisher should be started.
func (c *KafkaConfig) Enabled() bool {
	return c.Brokers != ""
}

// WorkerPoolConfig contains notifier worker pool configuration
type WorkerPoolConfig struct {
	Size int // Maximum number of concurrent notification sends
}

// AuthConfig contains user resolution configuration. The identity provider
// itself is external; requests arrive with the authenticated principal in a
// header set by the identity proxy.
type AuthConfig struct {
	UserIDHeader    string
	DevFallbackUser bool // When true, requests with no principal use an arbitrary existing profile
}

// validate performs comprehensive validation of all configuration values,
// ensuring they meet minimum requirements and logical constraints
func (c *Config) validate() error {
	var validationErrors []string

	// Validate Server config
	if c.Server.Port <= 0 {
		validationErrors = append(validationErrors, "SERVER_PORT must be greater than 0")
	}
	if c.Server.ShutdownTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_SHUTDOWN_TIMEOUT must be greater than 0")
	}
	if c.Server.ReadTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_READ_TIMEOUT must be greater than 0")
	}
	if c.Server.WriteTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_WRITE_TIMEOUT must be greater than 0")
	}
	if c.Server.IdleTimeout <= 0 {
		validationErrors = append(validationErrors, "SERVER_IDLE_TIMEOUT must be greater than 0")
	}

	// Validate PostgreSQL config
	if c.Postgres.URL == "" {
		validationErrors = append(validationErrors, "POSTGRES_URL is required")
	}
	if c.Postgres.MaxConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONNS must be greater than 0")
	}
	if c.Postgres.MinConns <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MIN_CONNS must be greater than 0")
	}
	if c.Postgres.ConnMaxLifetime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_LIFETIME must be greater than 0")
	}
	if c.Postgres.ConnMaxIdleTime <= 0 {
		validationErrors = append(validationErrors, "POSTGRES_MAX_CONN_IDLE_TIME must be greater than 0")
	}

	// Validate MongoDB config
	if c.MongoDB.URI == "" {
		validationErrors = append(validationErrors, "MONGO_URI is required")
	}
	if c.MongoDB.Database == "" {
		validationErrors = append(validationErrors, "MONGO_DATABASE is required")
	}
	if c.MongoDB.Timeout <= 0 {
		validationErrors = append(validationErrors, "MONGO_TIMEOUT must be greater than 0")
	}
	if c.MongoDB.MaxPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_POOL_SIZE must be greater than 0")
	}
	if c.MongoDB.MinPoolSize <= 0 {
		validationErrors = append(validationErrors, "MONGO_MIN_POOL_SIZE must be greater than 0")
	}
	if c.MongoDB.MaxConnIdleTime <= 0 {
		validationErrors = append(validationErrors, "MONGO_MAX_CONN_IDLE_TIME must be greater than 0")
	}

	// Validate Notifier config
	if c.Notifier.URL == "" {
		validationErrors = append(validationErrors, "NOTIFIER_URL is required")
	}
	if c.Notifier.Subprotocol == "" {
		validationErrors = append(validationErrors, "NOTIFIER_SUBPROTOCOL is required")
	}
	if c.Notifier.DialTimeout <= 0 {
		validationErrors = append(validationErrors, "NOTIFIER_DIAL_TIMEOUT must be greater than 0")
	}
	if c.Notifier.Linger < 0 {
		validationErrors = append(validationErrors, "NOTIFIER_LINGER cannot be negative")
	}

	// Validate Kafka config only when the mirror publisher is enabled
	if c.Kafka.Enabled() {
		if c.Kafka.GoalEventsTopic == "" {
			validationErrors = append(validationErrors, "KAFKA_GOAL_EVENTS_TOPIC is required when KAFKA_BROKERS is set")
		}
		if c.Kafka.WriteTimeout <= 0 {
			validationErrors = append(validationErrors, "KAFKA_WRITE_TIMEOUT must be greater than 0")
		}
	}

	// Validate WorkerPool config
	if c.WorkerPool.Size <= 0 {
		validationErrors = append(validationErrors, "WORKER_POOL_SIZE must be greater than 0")
	}

	// Validate Auth config
	if c.Auth.UserIDHeader == "" {
		validationErrors = append(validationErrors, "AUTH_USER_ID_HEADER is required")
	}

	if len(validationErrors) > 0 {
		return errors.New(strings.Join(validationErrors, ", "))
	}

	return nil
}
