package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Config struct {
	AppPort   string
	PublicURL string

	// Remote CodeJarvis API (stats, reminders, accounts, auth)
	JarvisAPIURL string

	SessionSecret       []byte
	SessionCookieName   string
	SessionCookieSecure bool

	StorageDriver string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SQLitePath    string

	ExecutionQueueName   string
	ExecutionRunDelay    time.Duration
	ExecutionSubmitDelay time.Duration
	ExecutionJobTTL      time.Duration

	// ExecutionWorkerInline runs the worker inside the server process. Only
	// the redis driver can hand jobs to a separate cmd/worker process.
	ExecutionWorkerInline bool

	ShowQR bool
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		AppPort:               getEnv("APP_PORT", "8080"),
		JarvisAPIURL:          strings.TrimRight(getEnv("JARVIS_API_URL", "http://localhost:5000"), "/"),
		SessionSecret:         []byte(getEnv("SESSION_SECRET", "defaultsecret")),
		SessionCookieName:     getEnv("SESSION_COOKIE_NAME", "jarvis_session"),
		SessionCookieSecure:   getEnvAsBool("SESSION_COOKIE_SECURE", false),
		StorageDriver:         strings.ToLower(getEnv("STORAGE_DRIVER", StorageRedis)),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getEnvAsInt("REDIS_DB", 0),
		SQLitePath:            getEnv("SQLITE_PATH", "./data/codejarvis.db"),
		ExecutionQueueName:    getEnv("EXECUTION_QUEUE_NAME", "codespace_jobs_queue"),
		ExecutionRunDelay:     getEnvAsDuration("EXECUTION_RUN_DELAY", 2*time.Second),
		ExecutionSubmitDelay:  getEnvAsDuration("EXECUTION_SUBMIT_DELAY", 3*time.Second),
		ExecutionJobTTL:       getEnvAsDuration("EXECUTION_JOB_TTL", time.Hour),
		ExecutionWorkerInline: getEnvAsBool("EXECUTION_WORKER_INLINE", true),
		ShowQR:                getEnvAsBool("SHOW_QR", false),
	}
	AppConfig.PublicURL = strings.TrimRight(getEnv("PUBLIC_URL", "http://localhost:"+AppConfig.AppPort), "/")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go duration strings ("2s", "1h").
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if value, err := time.ParseDuration(valueStr); err == nil {
		return value
	}
	return fallback
}
