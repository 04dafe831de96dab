package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (a *app) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <snapshot.yaml>",
		Short: "从 YAML 快照导入迭代数据",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			core, err := a.openCore()
			if err != nil {
				return err
			}
			defer core.Close()

			id, err := core.Services.Import.ImportFile(cmd.Context(), args[0])
			if err != nil {
				return wrapExit("导入失败", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "已导入迭代 %d\n", id)
			return nil
		},
	}
}
