package database

import (
	"context"
	"fmt"
	"strings"

	"eng_assess_backend/internal/config"
	"eng_assess_backend/internal/model"
	applog "eng_assess_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Models 需要自动迁移的全部表
var Models = []interface{}{
	&model.User{},
	&model.Assessment{},
	&model.AssessmentSubmission{},
	&model.Category{},
	&model.Resource{},
}

// Dialector 根据驱动与连接串（或分项配置）选择 gorm 方言
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "", "mysql":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
				cfg.User,
				cfg.Password,
				cfg.Host,
				cfg.Port,
				cfg.DBName,
				cfg.Charset,
				cfg.ParseTime,
			)
		}
		return mysql.Open(dsn), nil
	case "postgres", "postgresql":
		dsn := cfg.DSN
		if dsn == "" {
			dsn = fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
				cfg.Host,
				cfg.Port,
				cfg.User,
				cfg.Password,
				cfg.DBName,
				cfg.SSLMode,
			)
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func InitDB(cfg *config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	logLevel := logger.Warn
	if debug {
		logLevel = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	applog.Log.Info("Database connection established", zap.String("driver", db.Dialector.Name()))
	return db, nil
}

// Migrate 自动迁移所有模型
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(Models...); err != nil {
		return err
	}
	applog.Log.Info("Database migration completed")
	return nil
}

// DefaultCategories 空库时写入的学习路径
func DefaultCategories() []model.Category {
	return []model.Category{
		{
			Name:                "Computer Science Fundamentals",
			Description:         "Core computer science concepts and principles",
			EngineeringField:    string(model.ComputerScience),
			Level:               model.Beginner,
			Topics:              datatypes.JSONSlice[string]{"Algorithms", "Data Structures", "Programming Basics"},
			RecommendedDuration: 4,
			VideoResources: datatypes.JSONSlice[model.VideoResource]{
				{
					Title:       "Introduction to Programming",
					URL:         "https://www.youtube.com/watch?v=zOjov-2OZ0E",
					Description: "Learn programming basics",
				},
				{
					Title:       "Data Structures Explained",
					URL:         "https://www.youtube.com/watch?v=RBSGKlAvoiM",
					Description: "Understanding data structures",
				},
			},
		},
		{
			Name:                "Advanced Programming",
			Description:         "Advanced programming concepts and techniques",
			EngineeringField:    string(model.ComputerScience),
			Level:               model.Intermediate,
			Topics:              datatypes.JSONSlice[string]{"Object-Oriented Programming", "Design Patterns", "Software Architecture"},
			RecommendedDuration: 6,
			VideoResources: datatypes.JSONSlice[model.VideoResource]{
				{
					Title:       "Advanced Programming Concepts",
					URL:         "https://www.youtube.com/watch?v=Mus_vwhTCq0",
					Description: "Learn advanced programming",
				},
			},
		},
	}
}

// SeedCategories 分类表为空时写入默认数据，返回写入条数
func SeedCategories(ctx context.Context, db *gorm.DB) (int, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&model.Category{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	categories := DefaultCategories()
	if err := db.WithContext(ctx).Create(&categories).Error; err != nil {
		return 0, err
	}

	applog.Log.Info("Default categories seeded", zap.Int("count", len(categories)))
	return len(categories), nil
}
