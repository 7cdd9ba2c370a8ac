// file: database/connect.go
package database

import (
	"ChaosLab/models"
	"log"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect 打开 sqlite 数据文件。单机工作坊场景：一个文件即全部持久化，
// 不依赖外部数据库服务。
func Connect(path string) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		log.Fatal("Failed to create data directory:", err)
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// sqlite 写入需要串行化，连接池收紧为单连接
	sqlDB, err := DB.DB()
	if err != nil {
		log.Fatal("Failed to get underlying sql.DB:", err)
	}
	sqlDB.SetMaxOpenConns(1)

	log.Println("Database connection successfully established.")
}

// MigrateTables 建表。三张表都是附属数据（动态、留档、快照），判分不依赖它们。
func MigrateTables() {
	err := DB.AutoMigrate(&models.SolveFeed{}, &models.SubmissionLog{}, &models.StateSnapshot{})
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
	log.Println("Database migration completed.")
}
