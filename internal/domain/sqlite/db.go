package sqlite

import (
	"insuretrack/internal/domain/entity"
	"os"
	"path/filepath"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func Init() (*gorm.DB, error) {
	dbPath := os.Getenv("SQLITE_PATH")
	if dbPath == "" {
		dbPath = filepath.Join(".", "insuretrack.db")
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Contractor{},
		&entity.Broker{},
		&entity.Project{},
		&entity.ProjectSubcontractor{},
		&entity.Trade{},
		&entity.GeneratedCOI{},
		&entity.InsuranceProgram{},
		&entity.SubInsuranceRequirement{},
		&entity.StateRequirement{},
	)
	if err != nil {
		return nil, err
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db, nil
}
