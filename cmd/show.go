package cmd

import (
	"github.com/spf13/cobra"
	"github.com/stsysd/kusa/tui"
)

func newShowCmd(a *app) *cobra.Command {
	var today string
	var f sourceFlags
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the contribution graph in an interactive terminal view",
		Long: `Show the contribution graph full-screen.

Click a day to see its contributions; click anywhere else to hide the tooltip.

Keyboard shortcuts:
  arrows / hjkl  Move the cursor (left/right by week, up/down by day)
  enter / space  Select the day under the cursor
  esc            Clear the selection
  q / Ctrl+C     Quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			setup, err := a.setupGraph(today, f)
			if err != nil {
				return err
			}
			defer setup.close()

			m := tui.NewModel(setup.grid, setup.source, setup.labels, a.cfg.Colors)
			return tui.Run(cmd.Context(), m)
		},
	}
	cmd.Flags().StringVar(&today, "today", "", "Reference date as YYYY-MM-DD (default today)")
	f.register(cmd)
	return cmd
}
