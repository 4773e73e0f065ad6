package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/justinTNT/hedge-sub000/internal/config"
	"github.com/justinTNT/hedge-sub000/internal/generator"
)

func newGenerateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "generate",
		Short: "Regenerate all artifacts from the domain model",
		Long: `Parse the domain declarations, derive table metadata, and regenerate
every artifact. Each file is reported as Created or Updated; unchanged
files are skipped silently, so a rerun on an unchanged model is a no-op.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd)
		},
	}
}

func runGenerate(cmd *cobra.Command) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	result, err := generator.NewManager(cfg, out).Generate()
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "%d types, %d endpoints processed\n", result.Types, result.Endpoints)
	return nil
}
