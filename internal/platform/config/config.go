package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the server reads from the environment so main
// stays lean.
type Config struct {
	Addr        string
	DatabaseURL string
	Redis       RedisConfig
	Kafka       KafkaConfig

	// Onboarding
	CollectionTimeout time.Duration
	WebhookSecret     string
	StartURL          string

	// Collaborators
	Evolution EvolutionConfig
	DocAI     ServiceConfig
	Creci     ServiceConfig
	Asaas     ServiceConfig

	// Admin tokens for emoluments administration
	JWTSigningKey string
	JWTIssuer     string
}

// RedisConfig mirrors the connection knobs we expose for go-redis.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// KafkaConfig configures the optional audit sink. Empty seeds disable it.
type KafkaConfig struct {
	Seeds []string
	Topic string
}

// ServiceConfig is the base URL + credential pair shared by collaborator clients.
type ServiceConfig struct {
	BaseURL string
	Token   string
}

// EvolutionConfig configures the WhatsApp gateway client.
type EvolutionConfig struct {
	BaseURL  string
	APIKey   string
	Instance string
}

// FromEnv builds a Config from environment variables with development defaults.
func FromEnv() Config {
	return Config{
		Addr:        envOr("PRATICO_ADDR", ":8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     envInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: envInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  envDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  envDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: envDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Kafka: KafkaConfig{
			Seeds: splitNonEmpty(os.Getenv("KAFKA_SEEDS")),
			Topic: envOr("KAFKA_AUDIT_TOPIC", "pratico.onboarding.audit"),
		},
		CollectionTimeout: envDuration("COLLECTION_TIMEOUT", 60*time.Second),
		WebhookSecret:     os.Getenv("WEBHOOK_SECRET"),
		StartURL:          envOr("ONBOARDING_START_URL", "https://praticodocumentos.com.br/corretor"),
		Evolution: EvolutionConfig{
			BaseURL:  envOr("EVOLUTION_API_URL", "http://localhost:8081"),
			APIKey:   os.Getenv("EVOLUTION_API_KEY"),
			Instance: envOr("EVOLUTION_INSTANCE", "pratico-wpp"),
		},
		DocAI: ServiceConfig{
			BaseURL: os.Getenv("DOCAI_API_URL"),
			Token:   os.Getenv("DOCAI_API_TOKEN"),
		},
		Creci: ServiceConfig{
			BaseURL: os.Getenv("CRECI_API_URL"),
			Token:   os.Getenv("CRECI_API_TOKEN"),
		},
		Asaas: ServiceConfig{
			BaseURL: envOr("ASAAS_API_URL", "https://api.asaas.com/v3"),
			Token:   os.Getenv("ASAAS_API_KEY"),
		},
		JWTSigningKey: envOr("JWT_SIGNING_KEY", "dev-secret-key-change-in-production"),
		JWTIssuer:     envOr("JWT_ISSUER", "pratico"),
	}
}

func envOr(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}

func envInt(name string, fallback int) int {
	if v := os.Getenv(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(name string, fallback time.Duration) time.Duration {
	if v := os.Getenv(name); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitNonEmpty(csv string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			if part := csv[start:i]; part != "" {
				out = append(out, part)
			}
			start = i + 1
		}
	}
	return out
}
