package commands

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"bookit/internal/domain"
)

func servicesCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "services", Short: "Browse the service catalog"}
	cmd.AddCommand(servicesSearchCmd())
	return cmd
}

// services search [query] --category --location --min-price --max-price --sort
func servicesSearchCmd() *cobra.Command {
	var f domain.ServiceFilter
	var minPrice, maxPrice string
	cmd := &cobra.Command{
		Use:   "search [query]",
		Short: "Search and filter services",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				f.Query = args[0]
			}
			var err error
			if f.MinPrice, err = parseAmount(minPrice); err != nil {
				return fmt.Errorf("--min-price: %w", err)
			}
			if f.MaxPrice, err = parseAmount(maxPrice); err != nil {
				return fmt.Errorf("--max-price: %w", err)
			}
			f.Page = page(cmd)
			list, err := appCtx.Catalog.Search(cmd.Context(), f)
			if err != nil {
				return err
			}
			return emit(cmd, list, func(w io.Writer) error {
				rows := make([][]any, 0, len(list))
				for _, s := range list {
					rows = append(rows, []any{s.ID, s.Title, s.Category, s.Price.StringFixed(2) + " " + s.Currency, fmt.Sprintf("%.1f", s.Rating)})
				}
				return table(w, "ID\tTITLE\tCATEGORY\tPRICE\tRATING", rows)
			})
		},
	}
	cmd.Flags().StringVar(&f.Category, "category", "", "category")
	cmd.Flags().StringVar(&f.Location, "location", "", "location")
	cmd.Flags().StringVar(&minPrice, "min-price", "", "minimum price")
	cmd.Flags().StringVar(&maxPrice, "max-price", "", "maximum price")
	cmd.Flags().Float64Var(&f.MinRating, "min-rating", 0, "minimum rating (0-5)")
	cmd.Flags().StringVar(&f.SortBy, "sort", "", "price, rating or newest")
	addPageFlags(cmd)
	addJSONFlag(cmd)
	return cmd
}

func parseAmount(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(s)
}
