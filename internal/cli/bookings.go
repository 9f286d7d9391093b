package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sosa_resort/internal/domain"
	"sosa_resort/internal/viewmodel"
)

func bookCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{Use: "book", Short: "Create bookings"}
	cmd.AddCommand(bookCottageCmd(r))
	return cmd
}

func bookCottageCmd(r *runner) *cobra.Command {
	var req domain.CreateBookingRequest

	cmd := &cobra.Command{
		Use:   "cottage",
		Short: "Book a cottage stay",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			b, err := viewmodel.NewBookingActions(env.Svc.Bookings, r.notifier()).Create(cmd.Context(), req)
			if err != nil {
				return err
			}
			if r.json {
				return r.writeJSON(b)
			}
			fmt.Fprintf(r.out, "Booking %d created (%s), %s to %s.\n", b.ID, b.Status, req.CheckIn, req.CheckOut)
			return nil
		},
	}
	cmd.Flags().Int64Var(&req.CottageID, "cottage", 0, "Cottage id")
	cmd.Flags().StringVar(&req.CheckIn, "check-in", "", "Check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.CheckOut, "check-out", "", "Check-out date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&req.Guests, "guests", 1, "Number of guests")
	cmd.Flags().StringVar(&req.FirstName, "first-name", "", "Guest first name")
	cmd.Flags().StringVar(&req.LastName, "last-name", "", "Guest last name")
	cmd.Flags().StringVar(&req.Email, "email", "", "Guest email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "Guest phone")
	cmd.Flags().StringVar(&req.SpecialRequests, "requests", "", "Special requests")
	return cmd
}

func bookingsCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{Use: "bookings", Short: "Manage cottage bookings"}
	cmd.AddCommand(bookingActionCmd(r, "get", "Show a booking"))
	cmd.AddCommand(bookingActionCmd(r, "confirm", "Confirm a booking"))
	cmd.AddCommand(bookingActionCmd(r, "cancel", "Cancel a booking"))
	return cmd
}

func bookingActionCmd(r *runner, action, short string) *cobra.Command {
	return &cobra.Command{
		Use:   action + " <id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			actions := viewmodel.NewBookingActions(env.Svc.Bookings, r.notifier())
			var b domain.Booking
			switch action {
			case "confirm":
				b, err = actions.Confirm(cmd.Context(), id)
			case "cancel":
				b, err = actions.Cancel(cmd.Context(), id)
			default:
				b, err = env.Svc.Bookings.Get(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			if r.json {
				return r.writeJSON(b)
			}
			fmt.Fprintf(r.out, "Booking %d: %s, cottage %d, %s to %s, %d guests, %s\n",
				b.ID, b.Status, b.CottageID, b.CheckInDate, b.CheckOutDate, b.NumberOfGuests, formatPrice(b.TotalPrice))
			return nil
		},
	}
}
