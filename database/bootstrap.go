package database

import (
	sqlite "github.com/glebarez/sqlite" // CGO-free driver
	"gorm.io/gorm"

	"agricopilot/entities"
	"agricopilot/pkg/logger"
)

func OpenSQLite(path string) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		logger.Log.Fatalf("open sqlite: %v", err)
	}

	if err := db.AutoMigrate(
		&entities.ScanRecord{},
		&entities.User{},
		&entities.FarmerProfile{},
		&entities.AdvisoryDoc{},
		&entities.AdvisoryChunk{},
	); err != nil {
		logger.Log.Fatalf("automigrate: %v", err)
	}

	return db
}
