package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"logia/database"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken string
	GuildID      string

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// NATS servers for event forwarding; empty disables forwarding
	NATSServers string

	// Logging
	LogLevel string

	// Number of upcoming meetings shown on the overview
	UpcomingLimit int

	// Convocation letter settings
	LodgeName        string
	LodgeNumber      string
	LodgeInstalled   string
	GrandLodge       string
	Rite             string
	Orient           string
	WorshipfulMaster string
	Secretary        string
	MeetingTime      string
	TempleAddress    string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			if os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// load loads configuration from an optional .env file and the environment
func load() (*Config, error) {
	// Variables already set in the environment take precedence over the file
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	config := &Config{
		DiscordToken: os.Getenv("DISCORD_TOKEN"),
		GuildID:      os.Getenv("GUILD_ID"),

		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		NATSServers: os.Getenv("NATS_SERVERS"),

		LogLevel: getEnvWithDefault("LOG_LEVEL", "info"),

		UpcomingLimit: 3,

		LodgeName:        getEnvWithDefault("LODGE_NAME", "Caballeros Del Sol de Carabobo"),
		LodgeNumber:      getEnvWithDefault("LODGE_NUMBER", "269"),
		LodgeInstalled:   getEnvWithDefault("LODGE_INSTALLED", "23 de abril de 2022"),
		GrandLodge:       getEnvWithDefault("GRAND_LODGE", "Muy Respetable Gran Logia de la Republica de Venezuela"),
		Rite:             getEnvWithDefault("RITE", "R:.E:.A:.A:."),
		Orient:           getEnvWithDefault("ORIENT", "Valencia"),
		WorshipfulMaster: os.Getenv("WORSHIPFUL_MASTER"),
		Secretary:        os.Getenv("SECRETARY"),
		MeetingTime:      getEnvWithDefault("MEETING_TIME", "06:30 p m"),
		TempleAddress:    os.Getenv("TEMPLE_ADDRESS"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	if limit := os.Getenv("UPCOMING_LIMIT"); limit != "" {
		if parsedLimit, err := strconv.Atoi(limit); err == nil && parsedLimit > 0 {
			config.UpcomingLimit = parsedLimit
		}
	}

	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// ConfigureLogging applies the log level and picks the JSON formatter in production
func (c *Config) ConfigureLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.WithField("level", c.LogLevel).Warn("Unknown log level, using info")
		level = log.InfoLevel
	}
	log.SetLevel(level)

	if c.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:      "test",
		LogLevel:         "debug",
		UpcomingLimit:    3,
		LodgeName:        "Caballeros Del Sol de Carabobo",
		LodgeNumber:      "269",
		LodgeInstalled:   "23 de abril de 2022",
		GrandLodge:       "Muy Respetable Gran Logia de la Republica de Venezuela",
		Rite:             "R:.E:.A:.A:.",
		Orient:           "Valencia",
		WorshipfulMaster: "Venerable de Prueba",
		Secretary:        "Secretario de Prueba",
		MeetingTime:      "06:30 p m",
	}
}
