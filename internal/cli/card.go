package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conorfennell/recall/internal/domain"
)

func newCardCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "card",
		Short: "Manage cards",
	}

	add := &cobra.Command{
		Use:   "add <deckID> <front> <back>",
		Short: "Add a card to a deck",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			card := domain.NewCard(args[0], args[1], args[2], a.study.Now())
			if err := domain.Validate(card); err != nil {
				return err
			}
			card, err := a.db.InsertCard(cmd.Context(), card)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added card %s\n", card.ID)
			return nil
		},
	}

	del := &cobra.Command{
		Use:   "delete <cardID>",
		Short: "Delete a card and its review history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.db.DeleteCard(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted card %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, del)
	return cmd
}
