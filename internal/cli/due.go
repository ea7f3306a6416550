package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conorfennell/recall/internal/domain"
	"github.com/conorfennell/recall/internal/study"
)

func newDueCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "due <deckID>",
		Short: "Show the cards due for review in a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cards, err := a.study.DueQueue(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(cards) == 0 {
				fmt.Fprintln(out, "Nothing due. Come back later.")
				return nil
			}

			bold := color.New(color.Bold)
			fmt.Fprintf(out, "%s\n\n", bold.Sprintf("%d card(s) due", len(cards)))
			for _, c := range cards {
				printDueCard(a, out, c)
			}
			return nil
		},
	}
	cmd.Flags().Int("max-cards", 0, "cap on cards shown (0 means no cap)")
	return cmd
}

func printDueCard(a *app, out io.Writer, c domain.Card) {
	faint := color.New(color.Faint)
	now := a.study.Now()

	fmt.Fprintf(out, "%s  %s\n", faint.Sprint(c.ID), c.Front)

	preview := a.study.Preview(c)
	parts := make([]string, 0, len(study.Choices))
	for _, choice := range study.Choices {
		next := preview[choice]
		parts = append(parts, fmt.Sprintf("%s: %s", choiceColor(choice).Sprint(choice),
			humanize.RelTime(*next.NextReview, now, "ago", "from now")))
	}
	fmt.Fprintf(out, "    %s\n", strings.Join(parts, "  "))
}

func choiceColor(c study.Choice) *color.Color {
	switch c {
	case study.DidntKnow:
		return color.New(color.FgRed)
	case study.Hard:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}
