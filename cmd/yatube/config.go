package main

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/yatube-lab/backend/config"
)

func (s *srv) loadConfig() {
	s.configs = &config.Configs{
		Env:      getEnv("ENV", "local"),
		LogLevel: getEnv("LOG_LEVEL", "INFO"),
		Database: config.DatabaseConfigs{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			Host:       getEnv("MYSQL_HOST", "localhost"),
			Port:       getEnv("MYSQL_PORT", "3306"),
			Database:   getEnv("MYSQL_DATABASE", "yatube"),
			User:       getEnv("MYSQL_USER", "mysql"),
			Password:   getEnv("MYSQL_PASSWORD", "mysql"),
			SqlitePath: getEnv("SQLITE_PATH", "yatube.db"),
			LogLevel:   getEnv("DB_LOG_LEVEL", "SILENCE"),
		},
		ApiServer: config.APIServerConfigs{
			ServerConfigs: config.ServerConfigs{
				Host: getEnv("API_HOST", ""),
				Port: getEnv("API_PORT", "8000"),
				Cert: getEnv("SERVER_CERT", ""),
				Key:  getEnv("SERVER_KEY", ""),
			},
			PageSize:    parseInt(getEnv("PAGE_SIZE", "10")),
			AllowOrigin: parseList(getEnv("API_ALLOW_ORIGIN", "")),
		},
		Auth: config.AuthConfigs{
			TokenSecret: getEnv("TOKEN_SECRET", "token_secret"),
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: parseDuration(getEnv("ACCESS_TOKEN_DURATION", "336h")),
			},
			LoginURL: getEnv("LOGIN_URL", "/auth/login/"),
		},
		Session: config.SessionConfigs{
			Secret: getEnv("SESSION_SECRET", "session_secret"),
			Name:   getEnv("SESSION_NAME", "yatube_session"),
		},
		Storage: config.StorageConfigs{
			Backend: getEnv("STORAGE_BACKEND", "local"),
			S3: config.S3Configs{
				Region:         getEnv("STORAGE_REGION", "auto"),
				Endpoint:       getEnv("STORAGE_ENDPOINT", "http://localhost:9000"),
				PublicEndpoint: getEnv("STORAGE_PUBLIC_ENDPOINT", "http://localhost:9000"),
				AccessKey:      getEnv("STORAGE_ACCESS_KEY", "access_key"),
				SecretKey:      getEnv("STORAGE_SECRET_KEY", "secret_key"),
				Bucket:         getEnv("STORAGE_BUCKET", "yatube"),
				SSLDisabled:    parseBool(getEnv("STORAGE_SSL_DISABLED", "false")),
			},
			Local: config.LocalStorageConfigs{
				Root:      getEnv("MEDIA_ROOT", "media"),
				URLPrefix: getEnv("MEDIA_URL", "/media/"),
			},
		},
		File: config.FileConfigs{
			MaxSize:       parseInt(getEnv("MAX_UPLOAD_FILE", "2")),
			MaxImageWidth: uint(parseInt(getEnv("MAX_IMAGE_WIDTH", "960"))),
		},
		Cache: config.CacheConfigs{
			Backend:  getEnv("CACHE_BACKEND", "memory"),
			IndexTTL: parseDuration(getEnv("INDEX_CACHE_TTL", "300s")),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
	}
}

// loadConfigFile overrides the environment values with the ones in a toml
// file. Keys not present in the file keep their current value.
func (s *srv) loadConfigFile(file string) {
	if _, err := toml.DecodeFile(file, s.configs); err != nil {
		log.Fatalf("Cannot load config file %s: %v", file, err)
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}

	return fallback
}

func parseInt(s string) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("Cannot parse %q as an integer: %v", s, err)
	}

	return i
}

func parseDuration(s string) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("Cannot parse %q as a duration: %v", s, err)
	}

	return duration
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatalf("Cannot parse %q as a boolean: %v", s, err)
	}

	return b
}

func parseList(s string) []string {
	var result []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}

	return result
}
