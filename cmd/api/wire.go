//go:build wireinject
// +build wireinject

// Wire依赖注入配置文件
//
// Wire工作流程：
// Step 1: 编写wire.go（本文件），定义Providers和Injector
// Step 2: 运行 `wire gen ./cmd/api`
// Step 3: Wire生成wire_gen.go，包含完整的依赖创建代码
// Step 4: main.go调用wire_gen.go中的InitializeApp()

package main

import (
	"context"

	"github.com/google/wire"

	appcatalog "github.com/xiebiao/library/internal/application/catalog"
	"github.com/xiebiao/library/internal/infrastructure/config"
	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/internal/interface/http/router"
)

// ========================================
// Wire Provider Sets (依赖分组)
// ========================================

// infrastructureSet 基础设施层依赖
// 包含：配置加载、日志、初始目录来源、报表缓存
var infrastructureSet = wire.NewSet(
	config.Load,
	provideLogger,
	provideBookSource,
	provideMemoCache,
)

// domainSet 领域层依赖
var domainSet = wire.NewSet(
	provideManager,
)

// applicationSet 应用层依赖
// 包含：所有Use Case的构造函数
var applicationSet = wire.NewSet(
	appcatalog.NewSearchBooksUseCase,
	appcatalog.NewGetBookUseCase,
	appcatalog.NewAddBooksUseCase,
	appcatalog.NewUpdateBookUseCase,
	appcatalog.NewGetStatisticsUseCase,
	appcatalog.NewReportUseCase,
)

// middlewareSet 中间件依赖
var middlewareSet = wire.NewSet(
	provideJWTManager,
	middleware.NewAuthMiddleware,
)

// handlerSet HTTP处理器依赖
var handlerSet = wire.NewSet(
	handler.NewBookHandler,
	handler.NewReportHandler,
	provideRouterOptions,
	router.New,
)

// InitializeApp 初始化整个应用
// 返回的cleanup按创建的逆序关闭Redis、MySQL连接
func InitializeApp(ctx context.Context) (*App, func(), error) {
	wire.Build(
		infrastructureSet,
		domainSet,
		applicationSet,
		middlewareSet,
		handlerSet,
		newApp,
	)
	return nil, nil, nil
}
