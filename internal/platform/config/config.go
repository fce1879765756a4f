package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	pstrings "privacyguard/pkg/platform/strings"
)

// Server captures process level configuration.
type Server struct {
	Addr            string
	Environment     string
	EncryptionKey   string
	AutoEncrypt     bool
	StrictConsent   bool
	JWTSigningKey   string
	ShutdownTimeout time.Duration

	PostgresDSN string
	Redis       RedisConfig
	Kafka       KafkaConfig
}

// RedisConfig holds connection settings for the retention cache. An empty URL
// disables Redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig holds settings for the audit event pipeline. No brokers means
// Kafka is not wired in this deployment.
type KafkaConfig struct {
	Brokers     []string
	TopicPrefix string
	Buffer      int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("PRIVACYGUARD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	environment := os.Getenv("PRIVACYGUARD_ENV")
	if environment == "" {
		environment = "development"
	}

	jwtSigningKey := os.Getenv("PRIVACYGUARD_JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	topicPrefix := os.Getenv("PRIVACYGUARD_AUDIT_TOPIC_PREFIX")
	if topicPrefix == "" {
		topicPrefix = "privacyguard.audit"
	}

	return Server{
		Addr:            addr,
		Environment:     environment,
		EncryptionKey:   os.Getenv("PRIVACYGUARD_ENCRYPTION_KEY"),
		AutoEncrypt:     envBool("PRIVACYGUARD_AUTO_ENCRYPT", true),
		StrictConsent:   envBool("PRIVACYGUARD_STRICT_CONSENT", false),
		JWTSigningKey:   jwtSigningKey,
		ShutdownTimeout: 10 * time.Second,
		PostgresDSN:     os.Getenv("PRIVACYGUARD_POSTGRES_DSN"),
		Redis: RedisConfig{
			URL:          os.Getenv("PRIVACYGUARD_REDIS_URL"),
			PoolSize:     envInt("PRIVACYGUARD_REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("PRIVACYGUARD_REDIS_MIN_IDLE", 2),
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		},
		Kafka: KafkaConfig{
			Brokers:     envList("PRIVACYGUARD_KAFKA_BROKERS"),
			TopicPrefix: topicPrefix,
			Buffer:      envInt("PRIVACYGUARD_AUDIT_BUFFER", 256),
		},
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envList(key string) []string {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	return pstrings.DedupeAndTrim(strings.Split(v, ","))
}
