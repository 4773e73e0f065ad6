package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/justinTNT/hedge-sub000/internal/config"
	"github.com/justinTNT/hedge-sub000/internal/generator"
	"github.com/justinTNT/hedge-sub000/internal/introspect"
	"github.com/justinTNT/hedge-sub000/internal/migrate"
)

func newMigrateCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Diff the model against the live database and apply a migration",
		Long: `Introspect the configured database, diff it against the desired schema,
write the result to the next numbered migration file, and apply it.

New tables are created outright. Purely additive drift becomes ALTER TABLE
ADD COLUMN statements; any column alteration or removal degrades to a full
table rebuild (shadow table, copy, drop, rename). Columns only present in
the live store are reported, never dropped automatically.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(cmd, dryRun)
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "write the migration file but do not apply it")

	return cmd
}

func runMigrate(cmd *cobra.Command, dryRun bool) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Migration runs on top of a full generation pass: the artifacts are
	// regenerated first, then the same metas drive the diff.
	mgr := generator.NewManager(cfg, out)
	types, endpoints, err := mgr.Load()
	if err != nil {
		return err
	}
	metas, err := mgr.Metas(types)
	if err != nil {
		return err
	}
	result, err := mgr.Emit(types, endpoints, metas)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%d types, %d endpoints processed\n", result.Types, result.Endpoints)

	if cfg.Database == "" {
		// Generation works without a store; only migration needs one.
		fmt.Fprintln(out, config.ErrNoDatabase)
		return nil
	}

	bridge, err := introspect.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer bridge.Close()

	ctx := cmd.Context()
	plan, err := migrate.BuildPlan(ctx, bridge, metas)
	if err != nil {
		return err
	}
	for _, w := range plan.Warnings {
		fmt.Fprintf(out, "drift: %s\n", w)
	}
	if plan.Empty() {
		fmt.Fprintln(out, "schema up to date")
		return nil
	}

	path, err := migrate.WriteMigration(cfg.MigrationsDir, plan)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Created: %s\n", path)

	if dryRun {
		logger.Info("dry run, migration not applied", "file", path)
		return nil
	}
	if err := migrate.Apply(ctx, bridge, plan); err != nil {
		// The migration file stays on disk as the record of what was
		// attempted.
		return fmt.Errorf("apply %s: %w", path, err)
	}
	logger.Info("migration applied", "file", path, "statements", len(plan.Statements))
	return nil
}
