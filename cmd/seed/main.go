// seed 把内置目录写入MySQL,之后可以用 seed.source=mysql 启动服务
package main

import (
	"context"
	"flag"
	"log"

	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/logger"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/seed"
)

func main() {
	configFile := flag.String("config", "", "配置文件路径,不指定时按默认规则查找")
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configFile == "" {
		cfg, err = config.Load()
	} else {
		cfg, err = config.LoadFile(*configFile)
	}
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	l := logger.New(cfg)

	db, err := mysql.NewDB(cfg)
	if err != nil {
		log.Fatalf("初始化数据库失败: %v", err)
	}

	source := mysql.NewBookSource(db)
	ctx := context.Background()

	existing, err := source.LoadBooks(ctx)
	if err != nil {
		log.Fatalf("读取目录失败: %v", err)
	}
	if len(existing) > 0 {
		l.Info("catalog table not empty, skipped", "rows", len(existing))
		return
	}

	books := seed.Books()
	if err := source.SaveBooks(ctx, books); err != nil {
		log.Fatalf("写入目录失败: %v", err)
	}
	l.Info("catalog seeded", "rows", len(books), "database", cfg.Database.DBName)
}
