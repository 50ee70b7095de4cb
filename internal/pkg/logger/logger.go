// Package logger 提供全局统一的 slog 初始化。
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// NewDefault 按配置的级别创建文本格式的 slog.Logger，
// 并把它设为进程默认 logger。
//
// 参数:
//
//	level: debug / info / warn / error，无法识别时用 info
//
// 返回值:
//
//	*slog.Logger: 已配置好的 logger
func NewDefault(level string) *slog.Logger {
	l := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(level),
	}))
	slog.SetDefault(l)
	return l
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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
