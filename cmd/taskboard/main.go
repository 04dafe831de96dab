package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yuqie6/taskboard/internal/bootstrap"
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "错误:", err)
		os.Exit(exitCodeOf(err))
	}
}

// app 子命令共享状态
type app struct {
	cfgFile string
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "taskboard",
		Short:         "Taskboard - 迭代统计与燃尽图",
		Long:          `Taskboard 计算迭代的完成度、阶段耗时、任务类型分布与燃尽图，可输出 JSON、终端摘要、PDF 或通过 HTTP 提供。`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&a.cfgFile, "config", "c", "", "配置文件路径")

	root.AddCommand(a.analyticsCmd())
	root.AddCommand(a.sprintsCmd())
	root.AddCommand(a.reportCmd())
	root.AddCommand(a.importCmd())
	root.AddCommand(a.serveCmd())
	root.AddCommand(a.configCmd())
	root.AddCommand(versionCmd())

	return root
}

// openCore 打开数据库并构建服务；调用方负责 Close
func (a *app) openCore() (*bootstrap.Core, error) {
	core, err := bootstrap.NewCore(a.cfgFile)
	if err != nil {
		return nil, wrapExit("初始化失败", err)
	}
	return core, nil
}
