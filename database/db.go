package database

import (
	"fmt"

	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/config"
	"github.com/Avinash-pradhan/Pradhan-Chemistry-Classes/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect(cfg *config.Config) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.PostgresHost, cfg.PostgresUser, cfg.PostgresPassword,
		cfg.PostgresDB, cfg.PostgresPort, cfg.PostgresSSLMode, cfg.PostgresTimeZone)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func Migrate() error {
	return DB.AutoMigrate(
		&models.Student{},
		&models.Batch{},
		&models.FeePlan{},
		&models.Notice{},
		&models.Admission{},
		&models.Payment{},
	)
}
