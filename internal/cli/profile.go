package cli

import (
	"fmt"
	"io"

	"numerology-workers/internal/numerology"

	"github.com/spf13/cobra"
)

func newProfileCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Read or store a user's numerology profile",
	}
	cmd.AddCommand(newProfileGetCommand(opts), newProfileSetCommand(opts))
	return cmd
}

func newProfileGetCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <user-id>",
		Short: "Show a stored profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := opts.OpenStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer release()

			p, err := store.Get(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("load profile %s: %w", args[0], err)
			}
			return newPrinter(opts, cmd.OutOrStdout()).print(p, func(w io.Writer) {
				fmt.Fprintf(w, "%s: expression %d, destiny %d, path %d\n", args[0], p.Expression, p.Destiny, p.Path)
			})
		},
	}
}

func newProfileSetCommand(opts *RootOptions) *cobra.Command {
	var p numerology.Profile

	cmd := &cobra.Command{
		Use:   "set <user-id>",
		Short: "Store or replace a profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := p.Validate(); err != nil {
				return err
			}

			store, release, err := opts.OpenStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer release()

			if err := store.Save(cmd.Context(), args[0], p); err != nil {
				return fmt.Errorf("save profile %s: %w", args[0], err)
			}
			return newPrinter(opts, cmd.OutOrStdout()).print(map[string]interface{}{"userId": args[0], "profile": p}, func(w io.Writer) {
				fmt.Fprintf(w, "saved profile for %s\n", args[0])
			})
		},
	}

	cmd.Flags().IntVar(&p.Expression, "expression", 0, "expression number")
	cmd.Flags().IntVar(&p.Destiny, "destiny", 0, "destiny number")
	cmd.Flags().IntVar(&p.Path, "path", 0, "life path number")
	return cmd
}

func newEvaluationsCommand(opts *RootOptions) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "evaluations <user-id>",
		Short: "List recorded aptitude evaluations for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, release, err := opts.OpenStore(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer release()

			records, err := store.ListEvaluations(cmd.Context(), args[0], limit)
			if err != nil {
				return err
			}
			return newPrinter(opts, cmd.OutOrStdout()).print(records, func(w io.Writer) {
				if len(records) == 0 {
					fmt.Fprintf(w, "no evaluations for %s\n", args[0])
					return
				}
				for _, r := range records {
					name := r.Profession
					if name == "" {
						name = "-"
					}
					fmt.Fprintf(w, "%s  %-20s  vib %2d  score %3d\n",
						r.CreatedAt.Format("2006-01-02 15:04"), name, r.Vibration, r.Score)
				}
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "maximum rows")
	return cmd
}
