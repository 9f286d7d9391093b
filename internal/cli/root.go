// Package cli is the sosactl command tree.
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"sosa_resort/internal/adapters/sosa"
	"sosa_resort/internal/app"
	"sosa_resort/internal/domain"
	"sosa_resort/internal/viewmodel"
)

// Env is what a command runs against.
type Env struct {
	Client   *sosa.Client
	Svc      *app.Services
	Cache    domain.Cache  // nil when caching is off
	Debounce time.Duration // quiet period before availability and price checks
}

// Opener builds an Env on first use; the returned func releases it.
type Opener func(ctx context.Context) (*Env, func() error, error)

type runner struct {
	open    Opener
	env     *Env
	release func() error
	json    bool
	compact bool
	out     io.Writer
}

// NewRootCmd wires every subcommand to open.
func NewRootCmd(open Opener) *cobra.Command {
	r := &runner{open: open}
	root := &cobra.Command{
		Use:   "sosactl",
		Short: "Operator CLI for the Sosa resort API",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if r.json && r.compact {
				return fmt.Errorf("choose either --json or --compact")
			}
			r.out = cmd.OutOrStdout()
			if !cmd.Flags().Changed("compact") && !isTerminal(r.out) {
				r.compact = true
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if r.release != nil {
				return r.release()
			}
			return nil
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVar(&r.json, "json", false, "Output JSON")
	root.PersistentFlags().BoolVar(&r.compact, "compact", false, "Output compact text without headers")

	root.AddCommand(cottagesCmd(r))
	root.AddCommand(activitiesCmd(r))
	root.AddCommand(conferencesCmd(r))
	root.AddCommand(bookCmd(r))
	root.AddCommand(bookingsCmd(r))
	root.AddCommand(menuCmd(r))
	root.AddCommand(galleryCmd(r))
	root.AddCommand(testimonialsCmd(r))
	root.AddCommand(cacheCmd(r))
	root.AddCommand(statusCmd(r))
	return root
}

// Execute runs the tree and maps failure to exit status 1.
func Execute(open Opener) {
	if err := NewRootCmd(open).Execute(); err != nil {
		os.Exit(1)
	}
}

func (r *runner) services(ctx context.Context) (*Env, error) {
	if r.env != nil {
		return r.env, nil
	}
	env, release, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	r.env, r.release = env, release
	return env, nil
}

// notices go to the log; stdout is reserved for command output
func (r *runner) notifier() viewmodel.Notifier {
	return viewmodel.LogNotifier{L: log.Logger}
}

func (r *runner) writeJSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
