package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bookit/internal/domain"
)

func favoritesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "favorites", Short: "Saved services"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved services",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			favs, err := appCtx.Favorites.List(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd, favs, func(w io.Writer) error {
				rows := make([][]any, 0, len(favs))
				for _, f := range favs {
					rows = append(rows, []any{f.Service.ID, f.Service.Title, f.Service.Price.StringFixed(2)})
				}
				return table(w, "SERVICE\tTITLE\tPRICE", rows)
			})
		},
	}
	addJSONFlag(list)

	add := &cobra.Command{
		Use:   "add <serviceID>",
		Short: "Save a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if _, err := appCtx.Favorites.Add(cmd.Context(), domain.ServiceID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %s\n", args[0])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:     "remove <serviceID>",
		Aliases: []string{"rm"},
		Short:   "Forget a saved service",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			if err := appCtx.Favorites.Remove(cmd.Context(), domain.ServiceID(args[0])); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}
