package cli

import (
	"fmt"
	"io"
	"time"

	"numerology-workers/internal/common/database"
	"numerology-workers/internal/workers"
	"numerology-workers/pkg/registry"

	"github.com/spf13/cobra"
)

func newRegistryCommand(opts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "registry",
		Short: "Export or check the activity registry",
	}
	cmd.AddCommand(newRegistryExportCommand(opts), newRegistryValidateCommand(opts))
	return cmd
}

func newRegistryExportCommand(opts *RootOptions) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every task type with its schemas and error codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := registry.Build(workers.Activities(nil), time.Now())
			if output == "" {
				return (&printer{format: "json", w: cmd.OutOrStdout()}).print(reg, nil)
			}
			if err := registry.Save(reg, output); err != nil {
				return err
			}
			return newPrinter(opts, cmd.OutOrStdout()).print(map[string]interface{}{"path": output, "activities": len(reg.Activities)}, func(w io.Writer) {
				fmt.Fprintf(w, "wrote %d activities to %s\n", len(reg.Activities), output)
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to write (default stdout)")
	return cmd
}

func newRegistryValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate <path>",
		Short: "Check a registry file and report task types the workers no longer serve",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.LoadRegistry(args[0])
			if err != nil {
				return err
			}
			if err := reg.Validate(); err != nil {
				return err
			}

			known := make(map[string]bool)
			for _, t := range workers.TaskTypes() {
				known[t] = true
			}
			var unknown []string
			for _, a := range reg.Activities {
				if !known[a.TaskType] {
					unknown = append(unknown, a.TaskType)
				}
			}
			if len(unknown) > 0 {
				return fmt.Errorf("registry lists task types without a worker: %v", unknown)
			}

			return newPrinter(opts, cmd.OutOrStdout()).print(map[string]interface{}{"valid": true, "activities": len(reg.Activities)}, func(w io.Writer) {
				fmt.Fprintf(w, "registry valid: %d activities\n", len(reg.Activities))
			})
		},
	}
}

func newMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			applied, err := opts.Migrate(cmd.Context(), opts)
			if err != nil {
				return err
			}
			if applied == nil {
				applied = []database.MigrationResult{}
			}
			return newPrinter(opts, cmd.OutOrStdout()).print(applied, func(w io.Writer) {
				if len(applied) == 0 {
					fmt.Fprintln(w, "database is up to date")
					return
				}
				for _, m := range applied {
					fmt.Fprintf(w, "applied %d %s\n", m.Version, m.Path)
				}
			})
		},
	}
}
