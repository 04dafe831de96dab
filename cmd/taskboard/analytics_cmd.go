package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/yuqie6/taskboard/internal/report"
	"golang.org/x/term"
)

const (
	formatJSON = "json"
	formatText = "text"
)

// defaultFormat 终端输出摘要，管道/重定向输出 JSON
func defaultFormat(w io.Writer) string {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return formatText
	}
	return formatJSON
}

func (a *app) analyticsCmd() *cobra.Command {
	var (
		sprintID int64
		format   string
	)

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "计算迭代统计",
		Example: `  taskboard analytics --sprint 12
  taskboard analytics --sprint 12 --format json | jq .statistics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if sprintID <= 0 {
				return usageErrorf("--sprint 必须为正整数")
			}
			out := cmd.OutOrStdout()
			if format == "" {
				format = defaultFormat(out)
			}
			if format != formatJSON && format != formatText {
				return usageErrorf("未知输出格式 %q（可选 json、text）", format)
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

			if format == formatText {
				_, err = fmt.Fprintln(out, report.RenderSummary(res, report.DefaultTheme))
				return err
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}

	cmd.Flags().Int64VarP(&sprintID, "sprint", "s", 0, "迭代 ID")
	cmd.Flags().StringVarP(&format, "format", "f", "", "输出格式 json|text（默认按终端自动选择）")
	return cmd
}

func (a *app) sprintsCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "sprints",
		Short: "列出最近的迭代",
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := a.openCore()
			if err != nil {
				return err
			}
			defer core.Close()

			sprints, err := core.Services.Analytics.ListSprints(cmd.Context(), limit)
			if err != nil {
				return wrapExit("列出迭代失败", err)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tTITLE\tSTART\tEND\tWEEKENDS")
			for _, s := range sprints {
				weekends := "counted"
				if s.IgnoreWeekends {
					weekends = "ignored"
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", s.ID, s.Title,
					s.DateStart.Format(time.DateOnly), s.DateEnd.Format(time.DateOnly), weekends)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "最多显示条数")
	return cmd
}
