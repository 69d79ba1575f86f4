package commands

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"bookit/internal/domain"
)

func bookingsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "bookings", Short: "Create and manage bookings"}
	cmd.AddCommand(bookingsListCmd(), bookingsCreateCmd(), bookingsStatusCmd(), bookingsRateCmd())
	return cmd
}

func bookingsListCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List your bookings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			list, err := appCtx.Bookings.List(cmd.Context(), domain.BookingQuery{Status: domain.BookingStatus(status), Page: page(cmd)})
			if err != nil {
				return err
			}
			return emit(cmd, list, func(w io.Writer) error { return bookingTable(w, list) })
		},
	}
	cmd.Flags().StringVar(&status, "status", "", "pending, confirmed, completed or cancelled")
	addPageFlags(cmd)
	addJSONFlag(cmd)
	return cmd
}

// bookings create <serviceID> --date YYYY-MM-DD --time HH:MM
func bookingsCreateCmd() *cobra.Command {
	var date, start, notes string
	cmd := &cobra.Command{
		Use:   "create <serviceID>",
		Short: "Book a service slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			day, err := time.Parse(time.DateOnly, date)
			if err != nil {
				return fmt.Errorf("--date: %w", err)
			}
			b, err := appCtx.Bookings.Create(cmd.Context(), domain.CreateBookingRequest{
				Service:   domain.ServiceID(args[0]),
				Date:      day,
				StartTime: start,
				Notes:     notes,
			})
			if err != nil {
				return err
			}
			return emit(cmd, b, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "booked %s on %s at %s (%s)\n", b.ID, b.Date.Format(time.DateOnly), b.StartTime, b.Status)
				return err
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "day as YYYY-MM-DD")
	cmd.Flags().StringVar(&start, "time", "", "start time as HH:MM")
	cmd.Flags().StringVar(&notes, "notes", "", "notes for the provider")
	_ = cmd.MarkFlagRequired("date")
	_ = cmd.MarkFlagRequired("time")
	addJSONFlag(cmd)
	return cmd
}

// bookings status <bookingID> <status> [--reason]
func bookingsStatusCmd() *cobra.Command {
	var reason string
	cmd := &cobra.Command{
		Use:   "status <bookingID> <status>",
		Short: "Confirm, complete or cancel a booking",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			b, err := appCtx.Bookings.UpdateStatus(cmd.Context(), domain.BookingID(args[0]),
				domain.BookingStatusUpdate{Status: domain.BookingStatus(args[1]), Reason: reason})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", b.ID, b.Status)
			return nil
		},
	}
	cmd.Flags().StringVar(&reason, "reason", "", "reason, e.g. for a cancellation")
	return cmd
}

// bookings rate <bookingID> <1-5> [--comment]
func bookingsRateCmd() *cobra.Command {
	var comment string
	cmd := &cobra.Command{
		Use:   "rate <bookingID> <rating>",
		Short: "Rate a completed booking from 1 to 5",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("rating must be a number: %w", err)
			}
			b, err := appCtx.Bookings.Rate(cmd.Context(), domain.BookingID(args[0]), domain.BookingRating{Rating: n, Comment: comment})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "rated %s: %d/5\n", b.ID, b.Rating)
			return nil
		},
	}
	cmd.Flags().StringVar(&comment, "comment", "", "optional comment")
	return cmd
}

func bookingTable(w io.Writer, list []domain.Booking) error {
	rows := make([][]any, 0, len(list))
	for _, b := range list {
		rows = append(rows, []any{b.ID, b.Service, b.Date.Format(time.DateOnly), b.StartTime, b.Status, b.TotalPrice.StringFixed(2)})
	}
	return table(w, "ID\tSERVICE\tDATE\tTIME\tSTATUS\tTOTAL", rows)
}
