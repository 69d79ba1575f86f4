package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bookit/internal/domain"
)

func paymentsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "payments", Short: "Payment history and refunds"}
	cmd.AddCommand(paymentsListCmd(), paymentsRefundCmd())
	return cmd
}

func paymentsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your payments",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			list, err := appCtx.Payments.List(cmd.Context(), page(cmd))
			if err != nil {
				return err
			}
			return emit(cmd, list, func(w io.Writer) error {
				rows := make([][]any, 0, len(list))
				for _, p := range list {
					rows = append(rows, []any{p.ID, p.Booking, p.Amount.StringFixed(2) + " " + p.Currency, p.Method, p.Status})
				}
				return table(w, "ID\tBOOKING\tAMOUNT\tMETHOD\tSTATUS", rows)
			})
		},
	}
	addPageFlags(cmd)
	addJSONFlag(cmd)
	return cmd
}

// payments refund <paymentID> --reason r [--amount a]
func paymentsRefundCmd() *cobra.Command {
	var amount, reason string
	cmd := &cobra.Command{
		Use:   "refund <paymentID>",
		Short: "Refund a payment in full or in part",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			amt, err := parseAmount(amount)
			if err != nil {
				return fmt.Errorf("--amount: %w", err)
			}
			p, err := appCtx.Payments.Refund(cmd.Context(), domain.PaymentID(args[0]), domain.RefundRequest{Amount: amt, Reason: reason})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s, refunded %s\n", p.ID, p.Status, p.RefundAmount.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().StringVar(&amount, "amount", "", "partial amount (default: full refund)")
	cmd.Flags().StringVar(&reason, "reason", "", "reason for the refund")
	_ = cmd.MarkFlagRequired("reason")
	return cmd
}
