package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yuqie6/taskboard/internal/report"
)

func (a *app) reportCmd() *cobra.Command {
	var (
		sprintID int64
		outPath  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "导出迭代统计 PDF",
		RunE: func(cmd *cobra.Command, args []string) error {
			if sprintID <= 0 {
				return usageErrorf("--sprint 必须为正整数")
			}

			core, err := a.openCore()
			if err != nil {
				return err
			}
			defer core.Close()

			res, err := core.Services.Analytics.ComputeSprintAnalytics(cmd.Context(), sprintID)
			if err != nil {
				return wrapExit(fmt.Sprintf("迭代 %d 统计失败", sprintID), err)
			}

			if outPath == "" {
				outPath = filepath.Join(core.Cfg.Report.OutputDir, fmt.Sprintf("sprint-%d.pdf", sprintID))
			}
			if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
				return fmt.Errorf("创建报表目录失败: %w", err)
			}

			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("创建报表文件失败: %w", err)
			}
			if err := report.WritePDF(f, res); err != nil {
				_ = f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return fmt.Errorf("写入报表文件失败: %w", err)
			}

			abs, _ := filepath.Abs(outPath)
			fmt.Fprintf(cmd.OutOrStdout(), "PDF 报表已生成: %s\n", abs)
			return nil
		},
	}

	cmd.Flags().Int64VarP(&sprintID, "sprint", "s", 0, "迭代 ID")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "输出文件（默认 report.output_dir/sprint-<id>.pdf）")
	return cmd
}
