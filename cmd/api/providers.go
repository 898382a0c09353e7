package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/domain/book"
	"github.com/xiebiao/library/internal/domain/catalog"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/infrastructure/logger"
	"github.com/xiebiao/library/internal/infrastructure/persistence/mysql"
	"github.com/xiebiao/library/internal/infrastructure/persistence/redis"
	"github.com/xiebiao/library/internal/infrastructure/seed"
	"github.com/xiebiao/library/internal/interface/http/router"
	"github.com/xiebiao/library/pkg/jwt"
	"github.com/xiebiao/library/pkg/memo"
	"github.com/xiebiao/library/pkg/metrics"
)

// ========================================
// Custom Providers
// ========================================
// 有些依赖要按配置选择实现(静态数据还是MySQL、内存还是Redis),
// Wire本身不做条件分支,所以放在自定义Provider里

// provideLogger 按配置创建日志,同时设为slog默认日志
func provideLogger(cfg *config.Config) *slog.Logger {
	l := logger.New(cfg)
	slog.SetDefault(l)
	return l
}

// provideBookSource 初始目录来源
// mysql来源返回的cleanup负责关闭连接池
func provideBookSource(cfg *config.Config, log *slog.Logger) (book.Source, func(), error) {
	switch cfg.Seed.Source {
	case config.SeedMySQL:
		db, err := mysql.NewDB(cfg)
		if err != nil {
			return nil, nil, err
		}
		cleanup := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		log.Info("seed source", "source", config.SeedMySQL, "database", cfg.Database.DBName)
		return mysql.NewBookSource(db), cleanup, nil
	default:
		log.Info("seed source", "source", config.SeedStatic)
		return seed.NewStaticSource(), func() {}, nil
	}
}

// provideManager 读取初始目录并创建目录管理器
func provideManager(ctx context.Context, source book.Source, log *slog.Logger) (*catalog.Manager, error) {
	books, err := source.LoadBooks(ctx)
	if err != nil {
		return nil, fmt.Errorf("加载初始目录失败: %w", err)
	}

	manager := catalog.NewManager(books...)

	stats := manager.Statistics()
	metrics.InitMetrics()
	metrics.SetCatalogGauges(stats.Total, stats.Available, stats.CheckedOut)

	log.Info("catalog loaded",
		"total", stats.Total,
		"available", stats.Available,
		"checked_out", stats.CheckedOut,
	)
	return manager, nil
}

// provideMemoCache 报表记忆化缓存后端
func provideMemoCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (memo.Cache[[]string], func(), error) {
	if cfg.Memo.Backend != config.MemoRedis {
		return memo.NewMapCache[[]string](), func() {}, nil
	}

	client, err := redis.NewClient(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	log.Info("memo cache", "backend", config.MemoRedis, "addr", cfg.Redis.Addr(), "ttl", cfg.Memo.TTL)

	cleanup := func() { _ = client.Close() }
	breaker := redis.NewBreaker(cfg.Memo.BreakerThreshold, cfg.Memo.BreakerTimeout, log)
	cache := redis.NewMemoCache[[]string](client, cfg.Memo.KeyPrefix, cfg.Memo.TTL).WithBreaker(breaker)
	return cache, cleanup, nil
}

// provideJWTManager 从配置创建JWT管理器
func provideJWTManager(cfg *config.Config) *jwt.Manager {
	return jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Expire, cfg.JWT.Issuer)
}

// provideRouterOptions release模式不挂载Swagger
func provideRouterOptions(cfg *config.Config) router.Options {
	return router.Options{
		Mode:    cfg.Server.Mode,
		Swagger: cfg.Server.Mode != gin.ReleaseMode,
	}
}
