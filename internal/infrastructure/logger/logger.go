package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/xiebiao/library/internal/infrastructure/config"
)

// New 按配置创建结构化日志
// format: text(默认,便于本地阅读) | json(便于日志平台采集)
func New(cfg *config.Config) *slog.Logger {
	return NewWithWriter(os.Stderr, cfg.Log)
}

// NewWithWriter 指定输出位置(测试使用)
func NewWithWriter(w io.Writer, cfg config.LogConfig) *slog.Logger {
	opts := &slog.HandlerOptions{Level: ParseLevel(cfg.Level)}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler)
}

// ParseLevel 未知级别按info处理
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
