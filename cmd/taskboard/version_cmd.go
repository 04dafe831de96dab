package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/yuqie6/taskboard/internal/pkg/buildinfo"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "显示版本",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "taskboard %s\n", buildinfo.String())
		},
	}
}
