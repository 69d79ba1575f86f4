package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"bookit/internal/domain"
)

func reviewsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "reviews", Short: "Read and write reviews"}
	cmd.AddCommand(reviewsListCmd(), reviewsCreateCmd(), reviewsRespondCmd())
	return cmd
}

func reviewsListCmd() *cobra.Command {
	var service, provider string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Reviews of a service or a provider",
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				list []domain.Review
				err  error
			)
			switch {
			case service != "":
				list, err = appCtx.Reviews.ForService(cmd.Context(), domain.ServiceID(service), page(cmd))
			case provider != "":
				list, err = appCtx.Reviews.ForProvider(cmd.Context(), domain.ProviderID(provider), page(cmd))
			default:
				return errors.New("one of --service or --provider is required")
			}
			if err != nil {
				return err
			}
			return emit(cmd, list, func(w io.Writer) error {
				for _, r := range list {
					fmt.Fprintf(w, "%s  %d/5  %s\n  %s\n", r.ID, r.Rating, r.Author.Name, r.Comment)
					if r.Response != nil {
						fmt.Fprintf(w, "  > %s\n", r.Response.Text)
					}
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&service, "service", "", "service ID")
	cmd.Flags().StringVar(&provider, "provider", "", "provider ID")
	cmd.MarkFlagsMutuallyExclusive("service", "provider")
	addPageFlags(cmd)
	addJSONFlag(cmd)
	return cmd
}

// reviews create <serviceID> --rating n --comment c [--booking]
func reviewsCreateCmd() *cobra.Command {
	var in domain.ReviewInput
	var booking string
	cmd := &cobra.Command{
		Use:   "create <serviceID>",
		Short: "Review a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			in.Service = domain.ServiceID(args[0])
			in.Booking = domain.BookingID(booking)
			r, err := appCtx.Reviews.Create(cmd.Context(), in)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "posted review %s\n", r.ID)
			return nil
		},
	}
	cmd.Flags().IntVar(&in.Rating, "rating", 0, "rating from 1 to 5")
	cmd.Flags().StringVar(&in.Comment, "comment", "", "review text")
	cmd.Flags().StringVar(&booking, "booking", "", "booking the review is for")
	_ = cmd.MarkFlagRequired("rating")
	_ = cmd.MarkFlagRequired("comment")
	return cmd
}

func reviewsRespondCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "respond <reviewID> <text>",
		Short: "Answer a review of one of your services",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(); err != nil {
				return err
			}
			_, err := appCtx.Reviews.Respond(cmd.Context(), domain.ReviewID(args[0]), domain.ReviewResponse{Text: args[1]})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "response posted")
			return nil
		},
	}
}
