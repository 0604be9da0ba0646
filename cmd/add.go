package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/stsysd/kusa/db"
	"github.com/stsysd/kusa/model"
	"github.com/stsysd/kusa/store"
)

func newAddCmd(a *app) *cobra.Command {
	var date, note string
	cmd := &cobra.Command{
		Use:   "add [count]",
		Short: "Record contributions in the local database",
		Long: `Record contributions for a day directly in the local database.

Count defaults to 1 and date to today.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var count *int
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil {
					return fmt.Errorf("invalid count %q", args[0])
				}
				count = &n
			}

			d, err := model.NewDate(date)
			if err != nil {
				return err
			}
			c, err := model.NewCount(count)
			if err != nil {
				return err
			}

			s, err := store.NewSQLiteStore(a.cfg.DataDir, db.Migrate)
			if err != nil {
				return err
			}
			defer s.Close()

			record, err := model.NewRecord(d.String(), c.Int(), note)
			if err != nil {
				return err
			}
			if err := s.CreateRecord(cmd.Context(), record); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d on %s (%s)\n", record.Count, record.Date, record.ID)
			return nil
		},
	}
	cmd.Flags().StringVarP(&date, "date", "d", "", "Date as YYYY-MM-DD (default today)")
	cmd.Flags().StringVarP(&note, "note", "n", "", "Optional note")
	return cmd
}
