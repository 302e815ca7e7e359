package main

import (
	"database/sql"
	"fmt"
	"io"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/priyanshuchauhan04/academics-analytics/config"
	"github.com/priyanshuchauhan04/academics-analytics/internal/repository"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/database"
	applogger "github.com/priyanshuchauhan04/academics-analytics/pkg/logger"
	"github.com/priyanshuchauhan04/academics-analytics/pkg/password"
)

// 以下函数可在测试中替换
var (
	readPasswordFunc = term.ReadPassword
	migrateUpFunc    = database.RunMigrations
	migrateDownFunc  = database.RollbackMigrations
)

// commandLine 管理命令共享的依赖
// repo 为 nil 时在命令执行前按配置连接数据库
type commandLine struct {
	configPath string

	sqlDB  *sql.DB
	repo   *repository.Repository
	hasher *password.Hasher
	logger *zap.Logger
	out    io.Writer
}

func newRootCmd(cli *commandLine) *cobra.Command {
	root := &cobra.Command{
		Use:           "admin",
		Short:         "学业数据平台管理工具",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return cli.connect()
		},
	}
	root.PersistentFlags().StringVar(&cli.configPath, "config", "", "配置文件路径")

	root.AddCommand(
		newMigrateCmd(cli),
		newSeedCmd(cli),
		newCreateUserCmd(cli),
	)
	return root
}

func (cli *commandLine) connect() error {
	if cli.repo != nil {
		return nil
	}

	cfg, err := config.Load(cli.configPath)
	if err != nil {
		return err
	}
	if cli.logger == nil {
		if cli.logger, err = applogger.NewLogger(&cfg.Log); err != nil {
			return fmt.Errorf("初始化日志失败: %w", err)
		}
	}

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, cli.logger)
	if err != nil {
		return err
	}
	if cli.sqlDB, err = db.DB(); err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}

	cli.repo = repository.NewRepository(db)
	cli.hasher = password.NewHasher(cfg.Auth.BcryptCost)
	return nil
}

func (cli *commandLine) close() {
	if cli.sqlDB != nil {
		_ = cli.sqlDB.Close()
		cli.sqlDB = nil
	}
	if cli.logger != nil {
		_ = cli.logger.Sync()
	}
}

// promptPassword 从终端读取密码，不回显
func (cli *commandLine) promptPassword(label string) (string, error) {
	fmt.Fprint(cli.out, label)
	pwd, err := readPasswordFunc(int(syscall.Stdin))
	fmt.Fprintln(cli.out)
	if err != nil {
		return "", err
	}
	return string(pwd), nil
}
