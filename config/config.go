package config

import "os"

type Config struct {
	RedisAddr string
	MongoURI  string
	HTTPPort  string
	LogLevel  string
}

func Load() *Config {
	return &Config{
		RedisAddr: getEnv("REDIS_ADDR", "localhost:6379"),
		MongoURI:  getEnv("MONGO_URI", "mongodb://localhost:27017"),
		HTTPPort:  getEnv("HTTP_PORT", "8080"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
