package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"sosa_resort/internal/domain"
)

func menuCmd(r *runner) *cobra.Command {
	var category string
	var featured bool

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Show the restaurant menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			var items []domain.MenuItem
			if featured {
				items, err = env.Svc.Restaurant.Featured(cmd.Context())
			} else {
				var res domain.PaginatedResponse[domain.MenuItem]
				res, err = env.Svc.Restaurant.Menu(cmd.Context(), domain.MenuFilters{Category: category})
				items = res.Data
			}
			if err != nil {
				return err
			}
			if r.json {
				return r.writeJSON(items)
			}
			if len(items) == 0 {
				fmt.Fprintln(r.out, "No menu items found.")
				return nil
			}
			return r.table("ID\tNAME\tCATEGORY\tPRICE\tAVAILABLE", func(w io.Writer) {
				for _, m := range items {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", m.ID, m.Name, m.Category, formatPrice(m.Price), yesNo(m.IsAvailable))
				}
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Menu category")
	cmd.Flags().BoolVar(&featured, "featured", false, "Only featured dishes")
	return cmd
}

func galleryCmd(r *runner) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "gallery",
		Short: "List gallery images",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			res, err := env.Svc.Gallery.List(cmd.Context(), domain.GalleryFilters{Category: category})
			if err != nil {
				return err
			}
			if r.json {
				return r.writeJSON(res)
			}
			if len(res.Data) == 0 {
				fmt.Fprintln(r.out, "No gallery images found.")
				return nil
			}
			return r.table("ID\tTITLE\tCATEGORY\tURL", func(w io.Writer) {
				for _, g := range res.Data {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", g.ID, g.Title, g.Category, env.Client.ImageURL(g.ImagePath))
				}
			})
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "Gallery category")
	return cmd
}

func testimonialsCmd(r *runner) *cobra.Command {
	var featured int

	cmd := &cobra.Command{
		Use:   "testimonials",
		Short: "List guest testimonials",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			var ts []domain.Testimonial
			if featured > 0 {
				ts, err = env.Svc.Testimonials.Featured(cmd.Context(), featured)
			} else {
				var res domain.PaginatedResponse[domain.Testimonial]
				res, err = env.Svc.Testimonials.List(cmd.Context(), domain.TestimonialFilters{})
				ts = res.Data
			}
			if err != nil {
				return err
			}
			if r.json {
				return r.writeJSON(ts)
			}
			if len(ts) == 0 {
				fmt.Fprintln(r.out, "No testimonials found.")
				return nil
			}
			return r.table("ID\tGUEST\tRATING\tQUOTE", func(w io.Writer) {
				for _, t := range ts {
					fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", t.ID, t.GuestName, strings.Repeat("*", t.Rating), excerpt(t.Content, 60))
				}
			})
		},
	}
	cmd.Flags().IntVar(&featured, "featured", 0, "Show this many featured testimonials")
	return cmd
}

func excerpt(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-3]) + "..."
	}
	return s
}
