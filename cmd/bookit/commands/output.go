package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"bookit/internal/domain"
)

var asJSON bool

func addJSONFlag(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON")
}

// table writes rows as aligned columns.
func table(w io.Writer, header string, rows [][]any) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	for _, r := range rows {
		for i, c := range r {
			if i > 0 {
				fmt.Fprint(tw, "\t")
			}
			fmt.Fprint(tw, c)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

// emit prints v as JSON when --json is set, else runs text.
func emit(cmd *cobra.Command, v any, text func(io.Writer) error) error {
	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	}
	return text(out)
}

func requireLogin() error {
	if appCtx.Auth.Token() == "" {
		return domain.ErrNoToken
	}
	return nil
}

func page(cmd *cobra.Command) domain.Page {
	p, _ := cmd.Flags().GetInt("page")
	l, _ := cmd.Flags().GetInt("limit")
	return domain.Page{Page: p, Limit: l}
}

func addPageFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 0, "page number")
	cmd.Flags().Int("limit", 20, "page size")
}
