package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show card counts for every deck",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ov, err := a.study.Overview(cmd.Context())
			if err != nil {
				return err
			}

			now := a.study.Now()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "DECK\tCARDS\tDUE\tMASTERED\tLAST STUDIED")
			for _, d := range ov.Decks {
				last := "never"
				if d.LastStudied != nil {
					last = humanize.RelTime(*d.LastStudied, now, "ago", "from now")
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%s\n", d.Title, d.Total, d.Due, d.Mastered, last)
			}
			fmt.Fprintf(w, "TOTAL\t%d\t%d\t%d\t\n", ov.Total, ov.Due, ov.Mastered)
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "\nMastery: %d%%\n", ov.MasteryPercent)
			return nil
		},
	}
}
