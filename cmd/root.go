package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var configDefault string

// globalFlags 所有子命令共用的参数
type globalFlags struct {
	dir    string // Project root directory // 项目根目录
	config string // Specified configuration file path // 指定要使用的配置文件路径
}

var flags = new(globalFlags)

var rootCmd = &cobra.Command{
	Use:           "fast-ledger-sync-service",
	Short:         "Fast Ledger Sync Service",
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.dir, "dir", "d", "", "run dir")
	pf.StringVarP(&flags.config, "config", "c", "", "config file")
}

func Execute(c string) {
	configDefault = c
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
