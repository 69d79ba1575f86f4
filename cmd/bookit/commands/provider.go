package commands

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"bookit/internal/domain"
)

func providerCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "provider", Short: "Provider dashboard"}
	cmd.AddCommand(providerMetricsCmd(), providerAvailabilityCmd(), providerInsightsCmd(), providerBookingsCmd())
	return cmd
}

func providerMetricsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "metrics",
		Short: "Booking and revenue totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			m, err := appCtx.Providers.Metrics(cmd.Context())
			if err != nil {
				return err
			}
			return emit(cmd, m, func(w io.Writer) error {
				return table(w, "BOOKINGS\tCOMPLETED\tCANCELLED\tREVENUE\tRATING\tREVIEWS", [][]any{{
					m.TotalBookings, m.CompletedBookings, m.CancelledBookings,
					m.Revenue.StringFixed(2), fmt.Sprintf("%.2f", m.AverageRating), m.ReviewCount,
				}})
			})
		},
	}
	addJSONFlag(cmd)
	return cmd
}

func providerAvailabilityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "availability <providerID>",
		Short: "Weekly opening hours",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := appCtx.Providers.Availability(cmd.Context(), domain.ProviderID(args[0]))
			if err != nil {
				return err
			}
			return emit(cmd, a, func(w io.Writer) error {
				rows := make([][]any, 0, len(a.Days))
				for _, d := range a.Days {
					slots := make([]string, 0, len(d.Slots))
					for _, s := range d.Slots {
						slots = append(slots, s.Start+"-"+s.End)
					}
					if !d.Available {
						slots = []string{"closed"}
					}
					rows = append(rows, []any{time.Weekday(d.Day), strings.Join(slots, ", ")})
				}
				return table(w, "DAY\tHOURS", rows)
			})
		},
	}
	addJSONFlag(cmd)
	return cmd
}

func providerInsightsCmd() *cobra.Command {
	var rng string
	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Bookings and revenue over time",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			in, err := appCtx.Providers.Insights(cmd.Context(), rng)
			if err != nil {
				return err
			}
			return emit(cmd, in, func(w io.Writer) error {
				rows := make([][]any, 0, len(in.Series))
				for _, p := range in.Series {
					rows = append(rows, []any{p.Period, p.Bookings, p.Revenue.StringFixed(2)})
				}
				return table(w, "PERIOD\tBOOKINGS\tREVENUE", rows)
			})
		},
	}
	cmd.Flags().StringVar(&rng, "range", "month", "week, month, quarter or year")
	addJSONFlag(cmd)
	return cmd
}

func providerBookingsCmd() *cobra.Command {
	var status string
	cmd := &cobra.Command{
		Use:   "bookings",
		Short: "Bookings of your services",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			list, err := appCtx.Providers.Bookings(cmd.Context(), domain.BookingQuery{Status: domain.BookingStatus(status), Page: page(cmd)})
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
