package cmd

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof" // 引入 pprof 用于性能分析
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/zeromicro/go-zero/core/threading"
	"go.uber.org/zap"

	"github.com/ProjectsTask/TraitSigner/base/logger/xzap"
	"github.com/ProjectsTask/TraitSigner/src/api/router"
	"github.com/ProjectsTask/TraitSigner/src/app"
	"github.com/ProjectsTask/TraitSigner/src/config"
	"github.com/ProjectsTask/TraitSigner/src/service/svc"
)

// DaemonCmd 启动 HTTP 服务
var DaemonCmd = &cobra.Command{
	Use:   "daemon",
	Short: "run trait attestation http server.",
	Long:  "run trait attestation http server.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		// 1. 读取和解析配置文件
		cfg, err := config.UnmarshalCmdConfig()
		if err != nil {
			return err
		}

		// 2. 初始化服务上下文: 日志, 数据库, 节点连接, 签名私钥
		serverCtx, err := svc.NewServiceContext(cfg)
		if err != nil {
			return err
		}
		xzap.WithContext(ctx).Info("trait signer start",
			zap.Any("config", cfg), zap.String("signer", serverCtx.Signer.Address().Hex()))
		defer xzap.Sync()

		// 3. 初始化路由与平台
		platform, err := app.NewPlatform(cfg, router.NewRouter(serverCtx), serverCtx)
		if err != nil {
			serverCtx.Close()
			return err
		}

		// 服务退出信号通知chan
		onServeExit := make(chan error, 1)
		threading.GoSafe(func() {
			onServeExit <- platform.Start()
		})

		// 4. 如果配置开启了 Pprof，启动 HTTP 服务进行性能监控
		if cfg.Monitor.PprofEnable {
			threading.GoSafe(func() {
				addr := fmt.Sprintf("0.0.0.0:%d", cfg.Monitor.PprofPort)
				if err := http.ListenAndServe(addr, nil); err != nil {
					xzap.WithContext(ctx).Warn("pprof server exit", zap.Error(err))
				}
			})
		}

		// 监听 SIGINT (Ctrl+C) 和 SIGTERM (kill) 信号，实现优雅退出
		onSignal := make(chan os.Signal, 1)
		signal.Notify(onSignal, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-onSignal:
			xzap.WithContext(ctx).Info("Exit by signal", zap.String("signal", sig.String()))
		case err := <-onServeExit:
			if err != nil {
				xzap.WithContext(ctx).Error("Exit by error", zap.Error(err))
			}
		}

		return platform.Shutdown(ctx)
	},
}

func init() {
	rootCmd.AddCommand(DaemonCmd)
}
