package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"sosa_resort/internal/viewmodel"
)

func statusCmd(r *runner) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Probe the API once and report connectivity",
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := r.services(cmd.Context())
			if err != nil {
				return err
			}
			h := viewmodel.NewHealth(env.Client, 0)
			h.Check(cmd.Context())
			snap := h.Snapshot()
			if r.json {
				return r.writeJSON(snap)
			}
			fmt.Fprintf(r.out, "API: %s (%s)\n", snap.Label, env.Client.BaseURL())
			if snap.Banner != nil {
				fmt.Fprintf(r.out, "%s: %s\n", snap.Banner.Title, snap.Banner.Message)
			}
			if snap.Status == viewmodel.StatusOffline {
				return fmt.Errorf("api is offline")
			}
			return nil
		},
	}
}
