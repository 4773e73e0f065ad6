// Package cli is the hedgegen command tree. Running the bare command
// generates every artifact; `migrate` additionally reconciles the live
// store with the model.
package cli

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// Execute creates the root command tree and runs it.
func Execute(version, commit, date string) error {
	rootCmd := newRootCmd(version, commit, date)
	return rootCmd.Execute()
}

func newRootCmd(version, commit, date string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hedgegen",
		Short: "Generate code and migrations from annotated domain models",
		Long: `hedgegen reads domain type declarations annotated with marker wrapper
types, derives a relational schema from them, and emits the dependent
artifacts: table DDL, row-access statements, admin entity descriptors,
serialization and validation code, client bindings, and route tables.

Running hedgegen with no arguments regenerates every artifact; files whose
content did not change are left untouched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./hedgegen.yaml)")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newMigrateCmd())
	cmd.AddCommand(newVersionCmd(version, commit, date))

	return cmd
}
