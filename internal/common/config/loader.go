// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads configuration from files and environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	v := viper.New()

	// Set config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	// Environment variable settings
	v.SetEnvPrefix("ADVISOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read base config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	// Load environment-specific config if specified
	env := os.Getenv("ADVISOR_ENV")
	if env == "" {
		env = "development"
	}

	envConfigFile := fmt.Sprintf("config.%s", env)
	v.SetConfigName(envConfigFile)
	if err := v.MergeInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to merge environment config: %w", err)
		}
	}

	// Unmarshal into config struct
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Apply defaults
	applyDefaults(&config)

	// Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// applyDefaults sets default values for configuration
func applyDefaults(config *Config) {
	if config.App.Name == "" {
		config.App.Name = "advisor-workers"
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}
	if config.App.Environment == "" {
		config.App.Environment = "development"
	}

	// Camunda defaults
	if config.Camunda.BrokerAddress == "" {
		config.Camunda.BrokerAddress = "localhost:26500"
	}
	if config.Camunda.MaxJobsActive == 0 {
		config.Camunda.MaxJobsActive = 32
	}
	if config.Camunda.Timeout == 0 {
		config.Camunda.Timeout = 30000
	}
	if config.Camunda.RequestTimeout == 0 {
		config.Camunda.RequestTimeout = 10000
	}

	// Database defaults
	if config.Database.Postgres.Host == "" {
		config.Database.Postgres.Host = "localhost"
	}
	if config.Database.Postgres.Port == 0 {
		config.Database.Postgres.Port = 5432
	}
	if config.Database.Postgres.Database == "" {
		config.Database.Postgres.Database = "advisor"
	}
	if config.Database.Postgres.User == "" {
		config.Database.Postgres.User = "advisor"
	}
	if config.Database.Postgres.MaxConnections == 0 {
		config.Database.Postgres.MaxConnections = 25
	}
	if config.Database.Postgres.MaxIdle == 0 {
		config.Database.Postgres.MaxIdle = 5
	}
	if config.Database.Postgres.SSLMode == "" {
		config.Database.Postgres.SSLMode = "disable"
	}

	if len(config.Database.Elasticsearch.Addresses) == 0 && config.Database.Elasticsearch.URL == "" {
		config.Database.Elasticsearch.Addresses = []string{"http://localhost:9200"}
	}
	if config.Database.Elasticsearch.Index == "" {
		config.Database.Elasticsearch.Index = "universities"
	}

	if config.Database.Redis.Address == "" {
		config.Database.Redis.Address = "localhost:6379"
	}

	// Engine defaults: these mirror the documented fallback policy for
	// recommendation generation.
	if len(config.Engine.DefaultCountries) == 0 {
		config.Engine.DefaultCountries = []string{"United States"}
	}
	if config.Engine.DefaultBudget == 0 {
		config.Engine.DefaultBudget = 30000
	}
	if config.Engine.DefaultRank == 0 {
		config.Engine.DefaultRank = 500
	}
	if config.Engine.PoolLimit == 0 {
		config.Engine.PoolLimit = 30
	}
	if config.Engine.CacheTTL == 0 {
		config.Engine.CacheTTL = 300
	}

	// Worker defaults
	if config.Workers == nil {
		config.Workers = make(map[string]WorkerConfig)
	}
	defaultWorkers := []string{
		"generate-recommendations",
		"search-universities",
		"submit-profile",
		"evaluate-profile-strength",
		"add-shortlist-entry",
		"remove-shortlist-entry",
		"lock-university",
		"unlock-university",
		"complete-application-task",
		"send-stage-notification",
	}
	for _, workerName := range defaultWorkers {
		if _, exists := config.Workers[workerName]; !exists {
			config.Workers[workerName] = WorkerConfig{
				Enabled:       true,
				MaxJobsActive: 10,
				Timeout:       30000,
				MaxRetries:    3,
			}
		}
	}

	// Notification defaults
	if config.Notifications.AWS.Region == "" {
		config.Notifications.AWS.Region = "us-east-1"
	}
	if config.Notifications.Email.FromEmail == "" {
		config.Notifications.Email.FromEmail = "noreply@advisor.local"
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}
	if config.Logging.Format == "" {
		config.Logging.Format = "json"
	}
	if config.Logging.Output == "" {
		config.Logging.Output = "stdout"
	}

	// Registry defaults
	if config.Registry.Path == "" {
		config.Registry.Path = "./configs/activity-registry.json"
	}
}

// validateConfig validates the configuration
func validateConfig(config *Config) error {
	if config.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda broker address is required")
	}

	if config.Database.Postgres.Host == "" {
		return fmt.Errorf("postgres host is required")
	}

	if config.Database.Postgres.Database == "" {
		return fmt.Errorf("postgres database name is required")
	}

	if config.Engine.DefaultBudget < 0 {
		return fmt.Errorf("engine default budget cannot be negative")
	}

	if config.Engine.PoolLimit <= 0 {
		return fmt.Errorf("engine pool limit must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLogLevels[config.Logging.Level] {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}

// GetDuration converts milliseconds from config to a time.Duration.
func GetDuration(ms int) time.Duration {
	return time.Duration(ms) * time.Millisecond
}

// GetWorkerConfig returns the configuration for a specific worker
func (c *Config) GetWorkerConfig(workerName string) (WorkerConfig, bool) {
	worker, exists := c.Workers[workerName]
	return worker, exists
}

// IsWorkerEnabled checks if a worker is enabled
func (c *Config) IsWorkerEnabled(workerName string) bool {
	worker, exists := c.Workers[workerName]
	return exists && worker.Enabled
}
