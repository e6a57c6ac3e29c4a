package cli

import (
	"fmt"
	"io"

	"numerology-workers/internal/common/logger"
	"numerology-workers/internal/profiles"
	calculateaptitudescore "numerology-workers/internal/workers/numerology/calculate-aptitude-score"
	findidealvibration "numerology-workers/internal/workers/numerology/find-ideal-vibration"

	"github.com/spf13/cobra"
)

type profileFlags struct {
	expression int
	destiny    int
	path       int
	userID     string
}

func (f *profileFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVar(&f.expression, "expression", 0, "expression number")
	cmd.Flags().IntVar(&f.destiny, "destiny", 0, "destiny number")
	cmd.Flags().IntVar(&f.path, "path", 0, "life path number")
	cmd.Flags().StringVar(&f.userID, "user", "", "look the profile up by user id instead")
}

func (f *profileFlags) input() *profiles.ProfileInput {
	if f.expression == 0 && f.destiny == 0 && f.path == 0 {
		return nil
	}
	return &profiles.ProfileInput{
		Expression: profiles.Number(f.expression),
		Destiny:    profiles.Number(f.destiny),
		Path:       profiles.Number(f.path),
	}
}

func newScoreCommand(opts *RootOptions) *cobra.Command {
	var pf profileFlags
	var vibration, profession string

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score a profession vibration against a profile",
		Example: `  numerology score --expression 3 --destiny 6 --path 9 --vibration 6
  numerology score --user u-123 --vibration 22 --profession Architect --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			hopts := calculateaptitudescore.HandlerOptions{
				CustomConfig: calculateaptitudescore.DefaultConfig(),
				Logger:       logger.NewNoOpLogger(),
			}
			if pf.userID != "" && pf.input() == nil {
				store, release, err := opts.OpenStore(ctx, opts)
				if err != nil {
					return err
				}
				defer release()
				hopts.Profiles = store
			}

			h, err := calculateaptitudescore.NewHandler(hopts)
			if err != nil {
				return err
			}

			in := &calculateaptitudescore.Input{
				UserID:      pf.userID,
				UserProfile: pf.input(),
				Profession:  &calculateaptitudescore.Profession{Name: profession},
			}
			if vibration != "" {
				in.Profession.Vibration = vibration
			}

			out, err := h.Execute(ctx, in)
			if err != nil {
				return err
			}

			return newPrinter(opts, cmd.OutOrStdout()).print(out, func(w io.Writer) {
				label := "Vibration"
				if out.Profession != "" {
					label = out.Profession
				}
				fmt.Fprintf(w, "%s (%d): %d/100\n", label, out.ProfessionVibration, out.CalculatedScore)
				if out.VibrationDefaulted {
					fmt.Fprintln(w, "  vibration missing or unreadable, scored as 1")
				}
				for _, r := range out.Reasons {
					fmt.Fprintf(w, "  - %s\n", r)
				}
				if out.Suggestions.Needed {
					fmt.Fprintf(w, "Suggestion: vibration %d scores up to %d/100\n",
						out.Suggestions.IdealVibration, out.Suggestions.MaxPossibleScore)
				}
			})
		},
	}

	pf.register(cmd)
	cmd.Flags().StringVar(&vibration, "vibration", "", "profession vibration (number or numeric string)")
	cmd.Flags().StringVar(&profession, "profession", "", "profession name")
	return cmd
}

func newIdealCommand(opts *RootOptions) *cobra.Command {
	var pf profileFlags
	var table bool

	cmd := &cobra.Command{
		Use:   "ideal",
		Short: "Find the best achievable vibration for a profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg := findidealvibration.DefaultConfig()
			cfg.IncludeTable = table
			hopts := findidealvibration.HandlerOptions{CustomConfig: cfg, Logger: logger.NewNoOpLogger()}
			if pf.userID != "" && pf.input() == nil {
				store, release, err := opts.OpenStore(ctx, opts)
				if err != nil {
					return err
				}
				defer release()
				hopts.Profiles = store
			}

			h, err := findidealvibration.NewHandler(hopts)
			if err != nil {
				return err
			}

			out, err := h.Execute(ctx, &findidealvibration.Input{UserID: pf.userID, UserProfile: pf.input()})
			if err != nil {
				return err
			}

			return newPrinter(opts, cmd.OutOrStdout()).print(out, func(w io.Writer) {
				fmt.Fprintf(w, "Profile: expression %d, destiny %d, path %d\n",
					out.Profile.Expression, out.Profile.Destiny, out.Profile.Path)
				fmt.Fprintf(w, "Ideal vibration: %d (%d/100)\n", out.IdealVibration, out.MaxPossibleScore)
				fmt.Fprintf(w, "Favorable: %v\n", out.Favorable)
				for _, vs := range out.VibrationScores {
					fmt.Fprintf(w, "  %2d  %3d\n", vs.Vibration, vs.Score)
				}
			})
		},
	}

	pf.register(cmd)
	cmd.Flags().BoolVar(&table, "table", false, "print the score of every vibration")
	return cmd
}
