package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conorfennell/recall/internal/domain"
)

func newDeckCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deck",
		Short: "Manage decks",
	}

	var description string
	add := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a deck",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			deck := domain.NewDeck(args[0], description, a.study.Now())
			if err := domain.Validate(deck); err != nil {
				return err
			}
			if err := a.db.InsertDeck(cmd.Context(), deck); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created deck %s (%s)\n", deck.Title, deck.ID)
			return nil
		},
	}
	add.Flags().StringVarP(&description, "description", "d", "", "deck description")

	list := &cobra.Command{
		Use:   "list",
		Short: "List decks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			decks, err := a.db.ListDecks(cmd.Context())
			if err != nil {
				return err
			}
			if len(decks) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No decks yet. Create one with: recall deck add <title>")
				return nil
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tTITLE\tDESCRIPTION")
			for _, d := range decks {
				fmt.Fprintf(w, "%s\t%s\t%s\n", d.ID, d.Title, d.Description)
			}
			return w.Flush()
		},
	}

	del := &cobra.Command{
		Use:   "delete <deckID>",
		Short: "Delete a deck and all of its cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.db.DeleteDeck(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted deck %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(add, list, del)
	return cmd
}
