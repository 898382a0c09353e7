package mysql

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// NewDB 创建数据库连接
// 设计说明：
// 1. 数据库只作为初始目录的来源，启动时读取一次
// 2. 配置连接池参数（MaxOpenConns、MaxIdleConns、ConnMaxLifetime）
// 3. 开发环境开启SQL日志，生产环境关闭
func NewDB(cfg *config.Config) (*gorm.DB, error) {
	logLevel := logger.Silent
	if cfg.Server.Mode == "debug" {
		logLevel = logger.Info
	}

	db, err := gorm.Open(mysql.Open(cfg.Database.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取SQL DB失败: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	// 开发环境自动建表，生产环境应由迁移脚本管理
	if err := db.AutoMigrate(&BookModel{}); err != nil {
		return nil, fmt.Errorf("数据库迁移失败: %w", err)
	}

	return db, nil
}

// BookModel GORM图书模型
// 设计说明:
// 1. 这是infrastructure层的数据模型，domain/book/entity.go不依赖GORM
// 2. ID只用于保持读取顺序，目录本身不使用ID
// 3. Status为空表示没有借阅信息
// 4. Attributes保存扩展字段的JSON,为空表示没有扩展字段
type BookModel struct {
	ID        uint      `gorm:"primaryKey"`
	Title     string    `gorm:"size:200;not null;comment:书名"`
	Author    string    `gorm:"size:100;not null;comment:作者"`
	Genre     string    `gorm:"index;size:50;comment:类型"`
	Year      int       `gorm:"comment:出版年份"`
	Status     string    `gorm:"size:20;comment:借阅状态(available/checked_out/unknown)"`
	Attributes string    `gorm:"type:text;comment:扩展字段(JSON)"`
	CreatedAt time.Time `gorm:"comment:创建时间"`
}

// TableName 指定表名
func (BookModel) TableName() string {
	return "books"
}
