package router

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/xiebiao/library/internal/interface/http/handler"
	"github.com/xiebiao/library/internal/interface/http/middleware"
	"github.com/xiebiao/library/pkg/response"
)

// Options 路由配置
type Options struct {
	Mode    string // debug | release | test
	Swagger bool   // 是否挂载Swagger UI
}

// New 创建并配置Gin引擎
//
// 路由：
//
//	GET   /ping                       健康检查
//	GET   /metrics                    Prometheus指标
//	GET   /swagger/*any               API文档
//	GET   /api/v1/books               搜索
//	GET   /api/v1/books/:index        详情
//	POST  /api/v1/books               添加（需要认证）
//	PATCH /api/v1/books/:index        更新（需要认证）
//	GET   /api/v1/statistics          统计
//	GET   /api/v1/reports/...         报表
func New(
	opts Options,
	logger *slog.Logger,
	bookHandler *handler.BookHandler,
	reportHandler *handler.ReportHandler,
	authMiddleware *middleware.AuthMiddleware,
) *gin.Engine {
	switch opts.Mode {
	case gin.ReleaseMode, gin.TestMode:
		gin.SetMode(opts.Mode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger), middleware.Metrics())

	r.GET("/ping", func(c *gin.Context) {
		response.Success(c, gin.H{
			"message": "pong",
			"status":  "healthy",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 生产环境建议关闭Swagger
	if opts.Swagger {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	v1 := r.Group("/api/v1")
	{
		books := v1.Group("/books")
		{
			books.GET("", bookHandler.SearchBooks)
			books.GET("/:index", bookHandler.GetBook)

			books.POST("", authMiddleware.RequireAuth(), bookHandler.AddBooks)
			books.PATCH("/:index", authMiddleware.RequireAuth(), bookHandler.UpdateBook)
		}

		v1.GET("/statistics", reportHandler.Statistics)

		reports := v1.Group("/reports")
		{
			reports.GET("/summaries", reportHandler.Summaries)
			reports.GET("/analysis", reportHandler.Analysis)
			reports.GET("/genres", reportHandler.Genres)
			reports.GET("/titles", reportHandler.Titles)
		}
	}

	return r
}
