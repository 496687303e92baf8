package models

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/antonisbaro/Algorithmic-Trading-Time-Travel/config"
)

// DB is DBconnection
var DB *gorm.DB

// InitDB initializes DB
func InitDB() error {
	var err error

	DB, err = gorm.Open(sqlite.Open(config.Config.DBname), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return err
	}

	return DB.AutoMigrate(
		&Run{},
		&MoveRow{},
	)
}
