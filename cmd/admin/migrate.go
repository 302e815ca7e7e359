package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoDatabase = errors.New("未连接数据库")

func newMigrateCmd(cli *commandLine) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "数据库迁移",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "执行全部未应用的迁移",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if cli.sqlDB == nil {
					return errNoDatabase
				}
				return migrateUpFunc(cli.sqlDB, cli.logger)
			},
		},
		&cobra.Command{
			Use:   "down",
			Short: "回滚全部迁移（会删除所有数据）",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				if cli.sqlDB == nil {
					return errNoDatabase
				}
				return migrateDownFunc(cli.sqlDB, cli.logger)
			},
		},
	)
	return cmd
}
