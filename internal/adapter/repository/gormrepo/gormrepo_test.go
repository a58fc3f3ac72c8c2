package gormrepo

import (
	"testing"

	"opsplatform-backend/internal/domain/fundingsource"
	"opsplatform-backend/internal/domain/permission"
	"opsplatform-backend/internal/domain/purchase"
	"opsplatform-backend/internal/domain/reimburse"
	"opsplatform-backend/internal/domain/role"
	"opsplatform-backend/internal/domain/workflow"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// openTestDB returns an in-memory sqlite DB holding every table. A single
// connection keeps the in-memory schema visible to transactions.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	err = db.AutoMigrate(
		&purchase.Request{},
		&reimburse.Request{},
		&fundingsource.Source{},
		&role.SystemRole{},
		&permission.RolePermission{},
		&workflow.Event{},
	)
	if err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }
