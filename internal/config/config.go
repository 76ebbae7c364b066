package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	MongoURI       string
	MongoDatabase  string
	RedisAddr      string
	KafkaBrokers   []string
	KafkaTopicTask string
	UseKafka       bool
	CacheTTL       time.Duration
	HTTPPort       string
	ServiceName    string
	ServiceVersion string
}

func LoadConfig() *Config {
	getEnv := func(key, fallback string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return fallback
	}

	kafkaBrokers := strings.Split(getEnv("KAFKA_BROKERS", "localhost:9092"), ",")

	return &Config{
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DB", "taskdesk"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBrokers:   kafkaBrokers,
		KafkaTopicTask: getEnv("KAFKA_TOPIC", "task-events"),
		UseKafka:       getEnv("USE_KAFKA", "false") == "true",
		CacheTTL:       5 * time.Minute,
		HTTPPort:       getEnv("HTTP_PORT", "8080"),
		ServiceName:    "taskdesk-api",
		ServiceVersion: "1.0.0",
	}
}
