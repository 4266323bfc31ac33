package logic

import (
	"fmt"
	"testing"

	"github.com/barakahchain/charity-platform-sub001/internal/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// setupTestDB 每个测试一个独立的内存库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.AutoMigrate(&model.ProjectModel{}, &model.DonationModel{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return db
}

// seedProject 插入一个项目
func seedProject(t *testing.T, db *gorm.DB, contractAddress string, status model.ProjectStatus) *model.ProjectModel {
	t.Helper()

	project := model.ProjectModel{
		Title:           "测试项目",
		Status:          status,
		ContractAddress: NormalizeAddress(contractAddress),
		MetadataCid:     "QmSeed",
	}
	if err := db.Create(&project).Error; err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return &project
}
