package infra

import (
	"github.com/tdnghia/superhero-catalog/config"
)

type Infra struct {
	Postgres *PostgresClient
	Redis    *RedisClient
	Logger   *LoggerClient
	Images   *ImageProcessor
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	// Redis is an optional read cache; the service degrades to uncached reads.
	var redis *RedisClient
	if cfg.EnvConfig.Redis.Enabled {
		redis = InitRedisClient(cfg.EnvConfig)
		if redis == nil {
			panic("Failed to initialize Redis service")
		}
	}

	images := InitImageProcessor(cfg.EnvConfig, logger)
	if images == nil {
		panic("Failed to initialize image processor")
	}

	infraInstance = &Infra{
		Postgres: postgres,
		Redis:    redis,
		Logger:   logger,
		Images:   images,
	}

	return infraInstance
}
