package migrate

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/generator"
	"github.com/justinTNT/hedge-sub000/internal/introspect"
	"github.com/justinTNT/hedge-sub000/internal/meta"
)

// migrationSuffix names every migration file after its sequence number.
const migrationSuffix = "_migration.sql"

// Plan is the rendered outcome of one diff run.
type Plan struct {
	// Statements are the migration statements, in execution order.
	Statements []string
	// Warnings are drift observations that produce no SQL: columns that
	// would be dropped, live tables the model no longer declares.
	Warnings []string
}

// Empty reports whether the plan has nothing to apply.
func (p Plan) Empty() bool { return len(p.Statements) == 0 }

// BuildPlan introspects the live store and renders the migration for every
// desired table, in the dependency order given.
func BuildPlan(ctx context.Context, bridge *introspect.Bridge, metas []meta.TableMeta) (Plan, error) {
	var plan Plan

	liveTables, err := bridge.ListTables(ctx)
	if err != nil {
		return plan, err
	}
	liveSet := make(map[string]bool, len(liveTables))
	for _, t := range liveTables {
		liveSet[t] = true
	}

	pks := generator.PrimaryKeyColumns(metas)
	desiredSet := make(map[string]bool, len(metas))

	for _, m := range metas {
		desiredSet[m.TableName] = true

		if !liveSet[m.TableName] {
			plan.Statements = append(plan.Statements, createTableStatements(m, pks)...)
			continue
		}

		live, err := bridge.TableColumns(ctx, m.TableName)
		if err != nil {
			return plan, err
		}
		changes := DiffTable(m, live)
		if len(changes) == 0 {
			continue
		}

		for _, c := range changes {
			if c.Kind == DropColumn {
				plan.Warnings = append(plan.Warnings,
					fmt.Sprintf("table %s: live column %q is not in the model; the rebuild will not carry it over",
						m.TableName, c.Name))
			}
		}

		if additiveOnly(changes) {
			plan.Statements = append(plan.Statements, addColumnStatements(m, changes)...)
		} else {
			plan.Statements = append(plan.Statements, rebuildStatements(m, live, pks)...)
		}
	}

	for _, t := range liveTables {
		if !desiredSet[t] {
			plan.Warnings = append(plan.Warnings,
				fmt.Sprintf("live table %q has no %s model declaration; leaving it untouched",
					t, meta.EntityName(t)))
		}
	}
	return plan, nil
}

func createTableStatements(m meta.TableMeta, pks map[string]string) []string {
	out := []string{strings.TrimSuffix(generator.CreateTableSQL(m, pks), "\n")}
	return append(out, generator.IndexSQL(m)...)
}

// addColumnStatements renders the additive path. The store refuses non-null
// column additions to non-empty tables without a default, so those get one.
func addColumnStatements(m meta.TableMeta, changes []ColumnChange) []string {
	var out []string
	for _, c := range changes {
		stmt := fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", m.TableName, c.Name, c.SQLType)
		if c.NotNull {
			stmt += " NOT NULL DEFAULT " + defaultLiteral(c.SQLType)
		}
		out = append(out, stmt+";")
	}
	return out
}

func defaultLiteral(sqlType string) string {
	if strings.EqualFold(sqlType, "INTEGER") {
		return "0"
	}
	return "''"
}

// rebuildStatements renders the degrade-to-rebuild path: create a shadow
// table with the desired shape, copy the columns common to both schemas in
// desired order, swap it into place, and restore indexes.
func rebuildStatements(m meta.TableMeta, live []introspect.ColInfo, pks map[string]string) []string {
	liveNames := make(map[string]bool, len(live))
	for _, c := range live {
		liveNames[c.Name] = true
	}
	var common []string
	for _, c := range m.Columns {
		if liveNames[c.Name] {
			common = append(common, c.Name)
		}
	}

	shadow := m
	shadow.TableName = "new_" + m.TableName

	out := []string{strings.TrimSuffix(generator.CreateTableSQL(shadow, pks), "\n")}
	if len(common) > 0 {
		cols := strings.Join(common, ", ")
		out = append(out, fmt.Sprintf("INSERT INTO %s (%s) SELECT %s FROM %s;",
			shadow.TableName, cols, cols, m.TableName))
	}
	out = append(out,
		fmt.Sprintf("DROP TABLE %s;", m.TableName),
		fmt.Sprintf("ALTER TABLE %s RENAME TO %s;", shadow.TableName, m.TableName),
	)
	return append(out, generator.IndexSQL(m)...)
}

// NextSequence scans dir for leading numeric prefixes and returns the next
// migration number (1 when the directory is empty or absent).
func NextSequence(dir string) (int, error) {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 1, nil
	}
	if err != nil {
		return 0, fmt.Errorf("read migrations dir %q: %w", dir, err)
	}

	max := 0
	for _, e := range entries {
		name := e.Name()
		i := 0
		for i < len(name) && name[i] >= '0' && name[i] <= '9' {
			i++
		}
		if i == 0 {
			continue
		}
		n, err := strconv.Atoi(name[:i])
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max + 1, nil
}

// WriteMigration writes the plan to the next numbered migration file and
// returns its path. The file is a permanent record even if a later apply
// fails.
func WriteMigration(dir string, plan Plan) (string, error) {
	seq, err := NextSequence(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create migrations dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%04d%s", seq, migrationSuffix))
	content := strings.Join(plan.Statements, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("write migration file: %w", err)
	}
	return path, nil
}

// Apply executes the plan's statements against the store, in order,
// stopping at the first failure.
func Apply(ctx context.Context, bridge *introspect.Bridge, plan Plan) error {
	for _, stmt := range plan.Statements {
		if err := bridge.Apply(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
