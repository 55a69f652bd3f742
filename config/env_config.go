package config

import (
	"os"
	"strconv"
	"strings"
)

type EnvConfig struct {
	Server struct {
		Port string
	}
	Postgres struct {
		Host     string
		Database string
		Username string
		Password string
		Port     string
	}
	Redis struct {
		Enabled   bool
		Password  string
		Database  int
		RedisHost string
		RedisPort string
	}
	CORS struct {
		AllowDomains string
		GlobalDomain string
	}
	Upload struct {
		Dir            string
		PublicPath     string
		MaxFileSize    int64
		MaxFilesPerReq int
	}
	OTLP struct {
		Endpoint    string
		ServiceName string
	}
	Environment struct {
		Mode string
	}
}

func LoadEnvConfig() *EnvConfig {
	var config EnvConfig

	config.Server.Port = os.Getenv("APP_PORT")
	if config.Server.Port == "" {
		config.Server.Port = "4000"
	}

	// Postgres
	config.Postgres.Host = os.Getenv("POSTGRES_HOST")
	if config.Postgres.Host == "" {
		config.Postgres.Host = "localhost"
	}
	config.Postgres.Database = os.Getenv("POSTGRES_DB")
	if config.Postgres.Database == "" {
		config.Postgres.Database = "superheroes"
	}
	config.Postgres.Username = os.Getenv("POSTGRES_USER")
	if config.Postgres.Username == "" {
		config.Postgres.Username = "postgres"
	}
	config.Postgres.Password = os.Getenv("POSTGRES_PASSWORD")
	config.Postgres.Port = os.Getenv("POSTGRES_PORT")
	if config.Postgres.Port == "" {
		config.Postgres.Port = "5432"
	}

	// Redis cache is optional; the service runs without it.
	config.Redis.Enabled, _ = strconv.ParseBool(os.Getenv("REDIS_ENABLED"))
	config.Redis.Password = os.Getenv("REDIS_PASSWORD")
	config.Redis.Database, _ = strconv.Atoi(os.Getenv("REDIS_DB"))
	config.Redis.RedisHost = os.Getenv("REDIS_HOST")
	if config.Redis.RedisHost == "" {
		config.Redis.RedisHost = "localhost"
	}
	config.Redis.RedisPort = os.Getenv("REDIS_PORT")
	if config.Redis.RedisPort == "" {
		config.Redis.RedisPort = "6379"
	}

	config.CORS.AllowDomains = os.Getenv("ALLOWED_DOMAINS")
	config.CORS.GlobalDomain = os.Getenv("GLOBAL_DOMAIN")

	config.Upload.Dir = os.Getenv("UPLOAD_DIR")
	if config.Upload.Dir == "" {
		config.Upload.Dir = "uploads/superheroes"
	}
	config.Upload.PublicPath = os.Getenv("UPLOAD_PUBLIC_PATH")
	if config.Upload.PublicPath == "" {
		config.Upload.PublicPath = "/uploads/superheroes"
	}
	if sizeStr := os.Getenv("UPLOAD_MAX_FILE_SIZE"); sizeStr != "" {
		if size, err := strconv.ParseInt(sizeStr, 10, 64); err == nil {
			config.Upload.MaxFileSize = size
		}
	}
	if config.Upload.MaxFileSize == 0 {
		config.Upload.MaxFileSize = 5 * 1024 * 1024 // Default 5MB
	}
	config.Upload.MaxFilesPerReq, _ = strconv.Atoi(os.Getenv("UPLOAD_MAX_FILES"))
	if config.Upload.MaxFilesPerReq == 0 {
		config.Upload.MaxFilesPerReq = 5
	}

	// OTLP log export endpoint; empty means logs go to stdout only.
	// Remove protocol for the OpenTelemetry client to avoid duplicate protocols.
	endpoint := os.Getenv("OTLP_ENDPOINT")
	if strings.HasPrefix(endpoint, "https://") {
		endpoint = strings.TrimPrefix(endpoint, "https://")
	} else if strings.HasPrefix(endpoint, "http://") {
		endpoint = strings.TrimPrefix(endpoint, "http://")
	}
	config.OTLP.Endpoint = endpoint
	config.OTLP.ServiceName = os.Getenv("SERVICE_NAME")
	if config.OTLP.ServiceName == "" {
		config.OTLP.ServiceName = "superhero-catalog"
	}

	config.Environment.Mode = os.Getenv("DEPLOY_ENV")
	if config.Environment.Mode == "" {
		config.Environment.Mode = "development"
	}

	return &config
}
