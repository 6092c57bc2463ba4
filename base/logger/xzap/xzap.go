package xzap

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	logging "github.com/ProjectsTask/TraitSigner/base/logger"
)

type ctxKey struct{}

var requestIDKey ctxKey

var global atomic.Pointer[zap.Logger]

func init() {
	// SetUp 之前使用控制台输出, 避免启动阶段的日志丢失
	global.Store(zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig()),
		zapcore.Lock(os.Stderr),
		zapcore.InfoLevel,
	)))
}

func encoderConfig() zapcore.EncoderConfig {
	c := zap.NewProductionEncoderConfig()
	c.TimeKey = "@timestamp"
	c.EncodeTime = zapcore.ISO8601TimeEncoder
	c.EncodeDuration = zapcore.StringDurationEncoder
	return c
}

// SetUp 根据配置初始化全局 Logger
// console 模式输出到 stderr, file 模式通过 lumberjack 按大小切割日志文件
func SetUp(c logging.LogConf) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if c.Level != "" {
		if err := level.UnmarshalText([]byte(strings.ToLower(c.Level))); err != nil {
			return nil, errors.Wrapf(err, "invalid log level %q", c.Level)
		}
	}

	var encoder zapcore.Encoder
	switch c.Encoding {
	case logging.EncodingPlain:
		encoder = zapcore.NewConsoleEncoder(encoderConfig())
	case "", logging.EncodingJson:
		encoder = zapcore.NewJSONEncoder(encoderConfig())
	default:
		return nil, errors.Errorf("unknown log encoding %q", c.Encoding)
	}

	var ws zapcore.WriteSyncer
	switch c.Mode {
	case "", logging.ModeConsole:
		ws = zapcore.Lock(os.Stderr)
	case logging.ModeFile:
		if c.Path == "" {
			return nil, errors.New("log path is required in file mode")
		}
		name := c.ServiceName
		if name == "" {
			name = "app"
		}
		ws = zapcore.AddSync(&lumberjack.Logger{
			Filename:   filepath.Join(c.Path, name+".log"),
			MaxSize:    c.MaxSize,
			MaxBackups: c.MaxBackups,
			MaxAge:     c.KeepDays,
			Compress:   c.Compress,
		})
	default:
		return nil, errors.Errorf("unknown log mode %q", c.Mode)
	}

	l := zap.New(zapcore.NewCore(encoder, ws, level), zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	if c.ServiceName != "" {
		l = l.With(zap.String("service", c.ServiceName))
	}
	global.Store(l)
	return l, nil
}

// ContextWithRequestID 将请求 ID 写入 context, 供 WithContext 读取
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDFromContext 读取请求 ID, 不存在时返回空串
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// WithContext 返回带有请求上下文字段 (request_id, trace_id, span_id) 的 Logger
func WithContext(ctx context.Context) *zap.Logger {
	l := global.Load()
	if ctx == nil {
		return l
	}

	var fields []zap.Field
	if id := RequestIDFromContext(ctx); id != "" {
		fields = append(fields, zap.String("request_id", id))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields,
			zap.String("trace_id", sc.TraceID().String()),
			zap.String("span_id", sc.SpanID().String()))
	}
	if len(fields) == 0 {
		return l
	}
	return l.With(fields...)
}

// Sync 刷新缓冲区, 进程退出前调用
func Sync() {
	_ = global.Load().Sync()
}
