// Package cmd はkusaのコマンドラインインターフェースを提供します。
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/stsysd/kusa/config"
)

// app はサブコマンド間で共有される状態です。
type app struct {
	cfg *config.Config
}

// NewRootCmd はルートコマンドとすべてのサブコマンドを生成します。
func NewRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "kusa",
		Short: "Contribution graph server and renderer",
		Long: `kusa records daily contributions and draws them as a year-long grid:
12 months of 4 Monday-first weeks, colored by activity level.`,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// .env → 環境変数 → 設定の順に読み込む
			config.LoadEnvFile()
			cfg, err := config.NewConfig()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			a.cfg = cfg
			return nil
		},
	}

	root.AddCommand(newServeCmd(a))
	root.AddCommand(newRenderCmd(a))
	root.AddCommand(newShowCmd(a))
	root.AddCommand(newAddCmd(a))
	root.AddCommand(newMigrateCmd(a))
	return root
}

// Execute はルートコマンドを実行し、失敗時は終了コード1で終了します。
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
