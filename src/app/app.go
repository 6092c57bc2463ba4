package app

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/ProjectsTask/TraitSigner/base/logger/xzap"
	"github.com/ProjectsTask/TraitSigner/src/config"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
)

// Platform 平台结构体，作为整个应用程序的容器
type Platform struct {
	config    *config.Config
	router    *gin.Engine
	serverCtx *svc.ServerCtx
	server    *http.Server
}

// NewPlatform 创建一个新的 Platform 实例
func NewPlatform(config *config.Config, router *gin.Engine, serverCtx *svc.ServerCtx) (*Platform, error) {
	return &Platform{
		config:    config,
		router:    router,
		serverCtx: serverCtx,
		server: &http.Server{
			Addr:              config.Api.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Start 启动 HTTP 服务, 阻塞直到服务关闭
// 通过 Shutdown 正常关闭时返回 nil
func (p *Platform) Start() error {
	xzap.WithContext(context.Background()).Info("trait signer run", zap.String("port", p.config.Api.Port))
	if err := p.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "failed on serve http")
	}
	return nil
}

// Shutdown 停止接收新请求, 等待处理中的请求结束后释放节点与数据库连接
func (p *Platform) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(p.config.Api.ShutdownTimeout)*time.Second)
	defer cancel()

	err := p.server.Shutdown(ctx)
	p.serverCtx.Close()
	if err != nil {
		return errors.Wrap(err, "failed on shutdown http server")
	}
	return nil
}
