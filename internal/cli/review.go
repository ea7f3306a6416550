package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conorfennell/recall/internal/study"
)

func newReviewCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "review <cardID> <didnt-know|hard|easy|0-5>",
		Short: "Record an answer for a card",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := study.ParseChoice(args[1])
			if err != nil {
				return err
			}
			card, err := a.study.Answer(cmd.Context(), args[0], q)
			if err != nil {
				return err
			}

			s := card.Schedule
			mark := color.New(color.FgGreen).Sprint("passed")
			if !q.Passed() {
				mark = color.New(color.FgRed).Sprint("lapsed")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: next review %s (interval %s, ease %.2f)\n",
				mark,
				humanize.RelTime(*s.NextReview, *s.LastReview, "ago", "from now"),
				pluralDays(s.Interval),
				s.EaseFactor,
			)
			return nil
		},
	}
}

func pluralDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
