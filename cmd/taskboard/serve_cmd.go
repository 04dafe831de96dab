package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"github.com/yuqie6/taskboard/internal/bootstrap"
	"github.com/yuqie6/taskboard/internal/httpapi"
	"github.com/yuqie6/taskboard/internal/pkg/buildinfo"
	"github.com/yuqie6/taskboard/internal/pkg/config"
)

func (a *app) serveCmd() *cobra.Command {
	var listen string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "启动 HTTP JSON 服务",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, v, err := config.LoadViper(a.cfgFile)
			if err != nil {
				return wrapExit("加载配置失败", err)
			}
			core, err := bootstrap.NewCoreFromConfig(cfg)
			if err != nil {
				return wrapExit("初始化失败", err)
			}
			defer core.Close()

			// 日志级别热更新；其余配置需重启生效
			if v.ConfigFileUsed() != "" {
				v.OnConfigChange(func(e fsnotify.Event) {
					if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
						return
					}
					next, err := config.Decode(v)
					if err != nil {
						slog.Warn("配置重载失败", "path", e.Name, "error", err)
						return
					}
					config.SetLogLevel(next.App.LogLevel)
					slog.Info("配置已重载", "path", e.Name, "log_level", next.App.LogLevel)
				})
				v.WatchConfig()
			}

			if listen == "" {
				listen = cfg.Server.ListenAddr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := httpapi.Start(ctx, core.Services.Analytics, httpapi.Options{
				ListenAddr:     listen,
				Name:           cfg.App.Name,
				Version:        buildinfo.Version,
				RequestTimeout: 2 * cfg.Analytics.FetchTimeout(),
			})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "listening on %s\n", srv.BaseURL())

			<-ctx.Done()
			slog.Info("收到退出信号，正在关闭")
			return nil
		},
	}

	cmd.Flags().StringVarP(&listen, "listen", "l", "", "监听地址（默认 server.listen_addr）")
	return cmd
}
