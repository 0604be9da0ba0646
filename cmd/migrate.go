package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/stsysd/kusa/db"
	"github.com/stsysd/kusa/store"
)

func newMigrateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// ストアを開くとマイグレーションが適用される
			s, err := store.NewSQLiteStore(a.cfg.DataDir, db.Migrate)
			if err != nil {
				return err
			}
			if err := s.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Database is up to date: %s\n", filepath.Join(a.cfg.DataDir, store.DBFileName))
			return nil
		},
	}
}
