package testutil

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/yuqie6/taskboard/internal/schema"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTestDB 打开内存 SQLite 并自动迁移所有表
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	// 内存库按连接隔离，固定单连接保证迁移与查询看到同一个库
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(schema.All()...); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}

	return db
}

// MustCreate 插入记录，失败时终止测试
func MustCreate(t *testing.T, db *gorm.DB, records ...any) {
	t.Helper()
	for _, rec := range records {
		if err := db.Create(rec).Error; err != nil {
			t.Fatalf("create %T: %v", rec, err)
		}
	}
}
