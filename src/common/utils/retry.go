package utils

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProjectsTask/TraitSigner/base/logger/xzap"
)

// Retry 通用重试函数, 仅用于启动阶段 (连接节点等)
// @param name: 操作名称, 用于日志和错误信息
// @param attempts: 最大尝试次数
// @param sleep: 每次重试间隔
// @param fn: 返回 error 表示本次失败需要重试
// @return error: 全部失败时返回最后一次错误
func Retry(ctx context.Context, name string, attempts int, sleep time.Duration, fn func() error) error {
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		xzap.WithContext(ctx).Warn("retry",
			zap.String("name", name), zap.Int("attempt", i+1), zap.Error(lastErr))

		if i == attempts-1 {
			break
		}
		select {
		case <-ctx.Done():
			return errors.Wrapf(ctx.Err(), "%s canceled", name)
		case <-time.After(sleep):
		}
	}

	return errors.Wrapf(lastErr, "%s: retry time over", name)
}
