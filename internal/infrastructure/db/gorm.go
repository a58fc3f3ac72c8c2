package db

import (
	"fmt"
	"time"

	"opsplatform-backend/internal/domain/fundingsource"
	"opsplatform-backend/internal/domain/permission"
	"opsplatform-backend/internal/domain/purchase"
	"opsplatform-backend/internal/domain/reimburse"
	"opsplatform-backend/internal/domain/role"
	"opsplatform-backend/internal/domain/workflow"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for driver ("mysql" or "postgres").
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "mysql":
		return mysql.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported db driver %q", driver)
}

func OpenGorm(driver, dsn string, w logger.Writer) (*gorm.DB, error) {
	dial, err := Dialector(driver, dsn)
	if err != nil {
		return nil, err
	}
	return OpenGormWithDialector(dial, w)
}

// OpenGormWithDialector opens db, tunes the pool and pings once. SQL is
// logged through w at warn level; slow queries are reported.
func OpenGormWithDialector(dial gorm.Dialector, w logger.Writer) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.New(w, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError:       true,
		DisableAutomaticPing: true,
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	return db, nil
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&role.SystemRole{},
		&permission.RolePermission{},
		&fundingsource.Source{},
		&purchase.Request{},
		&reimburse.Request{},
		&workflow.Event{},
	)
}
