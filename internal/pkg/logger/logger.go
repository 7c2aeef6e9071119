package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const logFileName = "decoder.log"

// LogOption 日志初始化参数
type LogOption struct {
	Format   string // "console" 或 "json"
	LogDir   string // 为空时只输出到 stderr
	Level    string // debug / info / warn / error
	Compress bool   // 是否压缩轮转后的旧文件
}

var sugar atomic.Pointer[zap.SugaredLogger]

func init() {
	// Init 之前的默认输出：console 格式写 stderr
	core := zapcore.NewCore(newEncoder("console"), zapcore.Lock(os.Stderr), zapcore.InfoLevel)
	sugar.Store(zap.New(core).Sugar())
}

// Init 按配置重建全局 logger，可重复调用
func Init(opt LogOption) error {
	level, err := zapcore.ParseLevel(strings.ToLower(defaultIfEmpty(opt.Level, "info")))
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", opt.Level, err)
	}

	encoder := newEncoder(opt.Format)
	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level),
	}

	if opt.LogDir != "" {
		if err := os.MkdirAll(opt.LogDir, 0o755); err != nil {
			return fmt.Errorf("create log dir %s: %w", opt.LogDir, err)
		}
		writer := &lumberjack.Logger{
			Filename:   filepath.Join(opt.LogDir, logFileName),
			MaxSize:    200, // MB
			MaxBackups: 10,
			MaxAge:     7, // 天
			Compress:   opt.Compress,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(writer), level))
	}

	l := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	if old := sugar.Swap(l.Sugar()); old != nil {
		_ = old.Sync()
	}
	return nil
}

func newEncoder(format string) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	if strings.EqualFold(format, "json") {
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}

func defaultIfEmpty(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func Debugf(template string, args ...interface{}) { sugar.Load().Debugf(template, args...) }
func Infof(template string, args ...interface{})  { sugar.Load().Infof(template, args...) }
func Warnf(template string, args ...interface{})  { sugar.Load().Warnf(template, args...) }
func Errorf(template string, args ...interface{}) { sugar.Load().Errorf(template, args...) }

// Sync 刷新缓冲，退出前调用
func Sync() error {
	return sugar.Load().Sync()
}
