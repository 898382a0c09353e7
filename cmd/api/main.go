// @title           Library Catalog API
// @version         1.0
// @description     图书目录服务:搜索、添加、更新、统计与报表
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/xiebiao/library/docs"
)

// main 主程序入口
// 依赖由Wire组装(wire.go声明,wire_gen.go生成)
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, cleanup, err := InitializeApp(ctx)
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	err = app.Run(ctx)
	cleanup()
	if err != nil {
		app.logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
