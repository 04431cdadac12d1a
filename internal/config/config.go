package config

import (
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/geohash"
	"github.com/spf13/viper"
)

// Config holds the configuration settings for the geohash service.
//
// Fields:
// - Env: The current environment (e.g., local, development, production).
// - Port: The port for the HTTP API and monitoring endpoints.
// - Precision: Number of geohash characters stored by the tagger.
// - Workers: The number of concurrent tagging workers.
// - Interval: The duration between tagging batches.
// - BatchSize: The maximum number of tasks fetched per batch.
// - Database: Configuration settings for the PostgreSQL database.
type Config struct {
	Env       string
	Port      int
	Precision int
	Workers   int
	Interval  time.Duration
	BatchSize int
	Database  PostgresConfig
}

// PostgresConfig struct holds the configuration details for connecting to a PostgreSQL database.
type PostgresConfig struct {
	Host     string // Host is the database server address.
	Port     string // Port is the database server port.
	User     string // User is the database user.
	Password string // Password is the database user's password.
	Name     string // Name is the name of the database.
}

// Enabled reports whether a database host was configured.
func (p PostgresConfig) Enabled() bool {
	return p.Host != ""
}

// MustLoad reads the configuration from the environment and, when GEOHASH_CONFIG names
// one, a YAML file. Environment variables take precedence over the file.
// It panics when a value cannot be parsed.
func MustLoad() *Config {
	v := viper.New()
	v.SetEnvPrefix("GEOHASH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("env", "production")
	v.SetDefault("port", "8080")
	v.SetDefault("precision", "9")
	v.SetDefault("workers", "4")
	v.SetDefault("interval", "1m")
	v.SetDefault("batch_size", "100")
	v.SetDefault("postgres.port", "5432")

	for key, env := range map[string]string{
		"postgres.host":     "DB_HOST",
		"postgres.port":     "DB_PORT",
		"postgres.user":     "DB_USERNAME",
		"postgres.password": "DB_PASSWORD",
		"postgres.db_name":  "DB_NAME",
	} {
		if err := v.BindEnv(key, env); err != nil {
			panic("failed to bind environment variable " + env)
		}
	}

	if path := v.GetString("config"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			panic("failed to read configuration file")
		}
	}

	interval, err := time.ParseDuration(v.GetString("interval"))
	if err != nil {
		panic("failed to parse interval from configuration")
	}

	port, err := strconv.Atoi(v.GetString("port"))
	if err != nil {
		panic("failed to parse port from configuration")
	}

	workers, err := strconv.Atoi(v.GetString("workers"))
	if err != nil || workers <= 0 {
		panic("failed to parse workers from configuration, must be a positive integer")
	}

	precision, err := strconv.Atoi(v.GetString("precision"))
	if err != nil || precision <= 0 || precision > geohash.MaxPrecision {
		panic("failed to parse precision from configuration, must be within 1..18")
	}

	batchSize, err := strconv.Atoi(v.GetString("batch_size"))
	if err != nil || batchSize <= 0 {
		panic("failed to parse batch size from configuration, must be a positive integer")
	}

	return &Config{
		Env:       v.GetString("env"),
		Port:      port,
		Precision: precision,
		Workers:   workers,
		Interval:  interval,
		BatchSize: batchSize,
		Database: PostgresConfig{
			Host:     v.GetString("postgres.host"),
			Port:     v.GetString("postgres.port"),
			User:     v.GetString("postgres.user"),
			Password: v.GetString("postgres.password"),
			Name:     v.GetString("postgres.db_name"),
		},
	}
}
