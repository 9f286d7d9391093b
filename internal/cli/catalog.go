package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sosa_resort/internal/domain"
	"sosa_resort/internal/viewmodel"
)

func cottagesCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{Use: "cottages", Short: "Browse cottages"}
	cmd.AddCommand(cottagesListCmd(r))
	cmd.AddCommand(cottagesGetCmd(r))
	cmd.AddCommand(cottagesFeaturedCmd(r))
	cmd.AddCommand(cottagesAvailabilityCmd(r))
	return cmd
}

func cottagesListCmd(r *runner) *cobra.Command {
	var f domain.CottageFilters
	var featured, all bool
	var minCapacity int
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cottages",
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("featured") {
				f.Featured = &featured
			}
			if minCapacity > 0 {
				f.MinCapacity = &minCapacity
			}
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			if all {
				f.Search = search
				return r.allCottages(cmd.Context(), env, f)
			}
			var res domain.PaginatedResponse[domain.Cottage]
			if search != "" {
				res, err = env.Svc.Cottages.Search(cmd.Context(), search, f)
			} else {
				res, err = env.Svc.Cottages.List(cmd.Context(), f)
			}
			if err != nil {
				return err
			}
			if r.json {
				return r.writeJSON(res)
			}
			if err := r.printCottages(res.Data); err != nil {
				return err
			}
			r.pageFooter(res.Pagination)
			return nil
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Search term")
	cmd.Flags().BoolVar(&featured, "featured", false, "Only featured cottages")
	cmd.Flags().IntVar(&minCapacity, "min-capacity", 0, "Minimum guests")
	cmd.Flags().IntVar(&f.Page, "page", 0, "Page number")
	cmd.Flags().IntVar(&f.PerPage, "per-page", 0, "Items per page")
	cmd.Flags().BoolVar(&all, "all", false, "Follow pagination to the last page")
	cmd.MarkFlagsMutuallyExclusive("all", "page")
	return cmd
}

// allCottages pages through the listing the way the browse page's
// "load more" button does.
func (r *runner) allCottages(ctx context.Context, env *Env, f domain.CottageFilters) error {
	list := viewmodel.NewList[domain.Cottage, domain.CottageFilters]("cottages", env.Svc.Cottages.Page, r.notifier())
	if err := list.SetFilters(ctx, f); err != nil {
		return err
	}
	for {
		snap := list.Snapshot()
		p := snap.Pagination
		if p == nil || !p.HasNext() {
			break
		}
		if err := list.LoadMore(ctx); err != nil {
			return err
		}
		if next := list.Snapshot().Pagination; next == nil || next.CurrentPage <= p.CurrentPage {
			break // upstream ignored the page parameter
		}
	}
	snap := list.Snapshot()
	if r.json {
		return r.writeJSON(snap)
	}
	return r.printCottages(snap.Items)
}

func (r *runner) printCottages(cs []domain.Cottage) error {
	if len(cs) == 0 {
		fmt.Fprintln(r.out, "No cottages found.")
		return nil
	}
	return r.table("ID\tNAME\tGUESTS\tPRICE/NIGHT\tSTATUS", func(w io.Writer) {
		for _, c := range cs {
			fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%s\n", c.ID, c.Name, c.Capacity, formatPrice(c.PricePerNight), c.Status)
		}
	})
}

func cottagesGetCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one cottage",
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
			c, err := env.Svc.Cottages.Get(cmd.Context(), id)
			if err != nil {
				return err
			}
			if r.json {
				return r.writeJSON(c)
			}
			fmt.Fprintf(r.out, "%s (#%d)\n", c.Name, c.ID)
			fmt.Fprintf(r.out, "Guests: %d  Price: %s/night  Status: %s\n", c.Capacity, formatPrice(c.PricePerNight), c.Status)
			if len(c.Amenities) > 0 {
				fmt.Fprintf(r.out, "Amenities: %s\n", strings.Join(c.Amenities, ", "))
			}
			for _, img := range env.Client.ImageURLs(c.Images) {
				fmt.Fprintf(r.out, "Image: %s\n", img)
			}
			return nil
		},
	}
}

func cottagesFeaturedCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "featured",
		Short: "List featured cottages",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			cs, err := env.Svc.Cottages.Featured(cmd.Context())
			if err != nil {
				return err
			}
			if r.json {
				return r.writeJSON(cs)
			}
			return r.printCottages(cs)
		},
	}
}

func cottagesAvailabilityCmd(r *runner) *cobra.Command {
	var req domain.AvailabilityCheckRequest

	cmd := &cobra.Command{
		Use:   "availability <id>",
		Short: "Check whether a cottage is free for a stay",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := domain.Validate(req); err != nil {
				return err
			}
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			w := viewmodel.NewAvailabilityWatcher(env.Svc.Cottages, env.Debounce, r.notifier())
			defer w.Stop()
			done := make(chan viewmodel.AvailabilityState, 1)
			w.OnChange(func(st viewmodel.AvailabilityState) {
				select {
				case done <- st:
				default:
				}
			})
			w.Select(cmd.Context(), id, req.CheckIn, req.CheckOut)

			var st viewmodel.AvailabilityState
			select {
			case st = <-done:
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
			if st.Available == nil {
				return errors.New(st.Message)
			}
			if r.json {
				return r.writeJSON(st)
			}
			fmt.Fprintf(r.out, "Available: %s\n", yesNo(*st.Available))
			if st.Message != "" {
				fmt.Fprintln(r.out, st.Message)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&req.CheckIn, "check-in", "", "Check-in date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.CheckOut, "check-out", "", "Check-out date (YYYY-MM-DD)")
	return cmd
}

func activitiesCmd(r *runner) *cobra.Command {
	var date, difficulty string

	cmd := &cobra.Command{
		Use:   "activities",
		Short: "List activities",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			var as []domain.Activity
			var res domain.PaginatedResponse[domain.Activity]
			switch {
			case date != "":
				as, err = env.Svc.Activities.AvailableOn(cmd.Context(), date)
			case difficulty != "":
				res, err = env.Svc.Activities.ByDifficulty(cmd.Context(), domain.Difficulty(difficulty))
				as = res.Data
			default:
				res, err = env.Svc.Activities.List(cmd.Context(), domain.ActivityFilters{})
				as = res.Data
			}
			if err != nil {
				return err
			}
			if r.json {
				return r.writeJSON(as)
			}
			if len(as) == 0 {
				fmt.Fprintln(r.out, "No activities found.")
				return nil
			}
			return r.table("ID\tNAME\tDIFFICULTY\tMINUTES\tPRICE", func(w io.Writer) {
				for _, a := range as {
					fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%s\n", a.ID, a.Name, a.Difficulty, a.DurationMinutes, formatPrice(a.Price))
				}
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "Only activities available on this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&difficulty, "difficulty", "", "beginner, easy, medium, challenging, hard or expert")
	cmd.MarkFlagsMutuallyExclusive("date", "difficulty")
	return cmd
}

func conferencesCmd(r *runner) *cobra.Command {
	cmd := &cobra.Command{Use: "conferences", Short: "Browse conference rooms"}
	cmd.AddCommand(conferencesListCmd(r))
	cmd.AddCommand(conferencesPriceCmd(r))
	return cmd
}

func conferencesListCmd(r *runner) *cobra.Command {
	var attendees int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conference rooms",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			var cs []domain.Conference
			if attendees > 0 {
				cs, err = env.Svc.Conferences.ByCapacity(cmd.Context(), attendees)
			} else {
				var res domain.PaginatedResponse[domain.Conference]
				res, err = env.Svc.Conferences.List(cmd.Context(), domain.ConferenceFilters{})
				cs = res.Data
			}
			if err != nil {
				return err
			}
			if r.json {
				return r.writeJSON(cs)
			}
			if len(cs) == 0 {
				fmt.Fprintln(r.out, "No conference rooms found.")
				return nil
			}
			return r.table("ID\tNAME\tCAPACITY\tHOURLY\tHALF DAY\tFULL DAY", func(w io.Writer) {
				for _, c := range cs {
					fmt.Fprintf(w, "%d\t%s\t%d-%d\t%s\t%s\t%s\n", c.ID, c.Name, c.MinCapacity, c.MaxCapacity,
						formatPrice(c.PricePerHour), formatPrice(c.PriceHalfDay), formatPrice(c.PriceFullDay))
				}
			})
		},
	}
	cmd.Flags().IntVar(&attendees, "attendees", 0, "Only rooms that fit this many people")
	return cmd
}

func conferencesPriceCmd(r *runner) *cobra.Command {
	var sel viewmodel.PriceSelection
	var bookingType string

	cmd := &cobra.Command{
		Use:   "price <id>",
		Short: "Quote a conference room booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			sel.ConferenceID = id
			sel.BookingType = domain.BookingType(bookingType)
			if sel.BookingDate == "" {
				return errors.New("--date is required")
			}
			if sel.BookingType == domain.BookingHourly {
				if sel.StartTime == "" || sel.EndTime == "" {
					return errors.New("hourly bookings need --start and --end")
				}
				if _, err := domain.DurationHours(sel.StartTime, sel.EndTime); err != nil {
					return err
				}
			}
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			q := viewmodel.NewPriceQuoter(env.Svc.Conferences, env.Debounce)
			defer q.Stop()
			done := make(chan viewmodel.PriceState, 1)
			q.OnChange(func(st viewmodel.PriceState) {
				select {
				case done <- st:
				default:
				}
			})
			q.Select(cmd.Context(), sel)

			var st viewmodel.PriceState
			select {
			case st = <-done:
			case <-cmd.Context().Done():
				return cmd.Context().Err()
			}
			if st.Price == nil {
				return errors.New("could not calculate a price for this booking")
			}
			if r.json {
				return r.writeJSON(st)
			}
			fmt.Fprintf(r.out, "Total: %s\n", formatPrice(*st.Price))
			return nil
		},
	}
	cmd.Flags().StringVar(&bookingType, "type", "hourly", "hourly, half_day or full_day")
	cmd.Flags().StringVar(&sel.BookingDate, "date", "", "Booking date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&sel.StartTime, "start", "", "Start time (HH:MM, hourly bookings)")
	cmd.Flags().StringVar(&sel.EndTime, "end", "", "End time (HH:MM, hourly bookings)")
	return cmd
}
