package infra

import (
	"fmt"
	"log"

	"github.com/tdnghia/superhero-catalog/config"
	"github.com/tdnghia/superhero-catalog/entity"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type PostgresClient struct {
	DB *gorm.DB
}

func InitPostgresClient(cfg *config.EnvConfig) *PostgresClient {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Postgres.Host,
		cfg.Postgres.Username,
		cfg.Postgres.Password,
		cfg.Postgres.Database,
		cfg.Postgres.Port,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Postgres connection failed: %v", err)
	}

	if err := AutoMigrate(db); err != nil {
		log.Fatalf("Postgres migration failed: %v", err)
	}

	log.Println("Connected to Postgres:", cfg.Postgres.Host+":"+cfg.Postgres.Port)

	return &PostgresClient{DB: db}
}

// AutoMigrate creates or updates the catalog schema. Shared with the seed
// binary and the sqlite test databases.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&entity.Superhero{}, &entity.SuperheroImage{})
}
