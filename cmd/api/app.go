package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

const shutdownTimeout = 5 * time.Second

// App 组装好的服务
type App struct {
	cfg    *config.Config
	logger *slog.Logger
	engine *gin.Engine
}

func newApp(cfg *config.Config, logger *slog.Logger, engine *gin.Engine) *App {
	return &App{
		cfg:    cfg,
		logger: logger,
		engine: engine,
	}
}

// Run 启动HTTP服务,ctx取消后优雅退出
func (a *App) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      a.engine,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server started",
			"addr", srv.Addr,
			"mode", a.cfg.Server.Mode,
			"seed", a.cfg.Seed.Source,
			"memo", a.cfg.Memo.Backend,
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("启动服务失败: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	a.logger.Info("server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("关闭服务失败: %w", err)
	}
	return nil
}
