// Package migrate compares the desired schema against a live store and
// renders the discrepancies into forward migrations. Additive changes stay
// additive; anything that would alter or drop a column degrades to a full
// table rebuild, the only safe move on a store without ALTER COLUMN.
package migrate

import (
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/introspect"
	"github.com/justinTNT/hedge-sub000/internal/meta"
)

// ChangeKind classifies one column discrepancy.
type ChangeKind int

const (
	// AddColumn: desired column missing from the live table.
	AddColumn ChangeKind = iota
	// AlterColumn: live type or nullability disagrees with the desired column.
	AlterColumn
	// DropColumn: live column absent from the desired schema. Reported,
	// never auto-applied; dropping data is a human decision.
	DropColumn
)

// ColumnChange is one diff entry. SQLType and NotNull are filled for
// AddColumn, where they drive the ALTER TABLE statement.
type ColumnChange struct {
	Kind    ChangeKind
	Name    string
	SQLType string
	NotNull bool
}

// DiffTable classifies every discrepancy between the desired table and its
// live column inventory. Primary-key columns are exempt from the
// nullability comparison: PRIMARY KEY already implies NOT NULL on the live
// side.
func DiffTable(desired meta.TableMeta, live []introspect.ColInfo) []ColumnChange {
	liveByName := make(map[string]introspect.ColInfo, len(live))
	for _, c := range live {
		liveByName[c.Name] = c
	}
	desiredNames := make(map[string]bool, len(desired.Columns))

	var changes []ColumnChange
	for _, want := range desired.Columns {
		desiredNames[want.Name] = true

		got, exists := liveByName[want.Name]
		if !exists {
			changes = append(changes, ColumnChange{
				Kind:    AddColumn,
				Name:    want.Name,
				SQLType: want.SQLType,
				NotNull: want.NotNull,
			})
			continue
		}

		typeChanged := !strings.EqualFold(strings.TrimSpace(got.Type), want.SQLType)
		nullChanged := !want.PrimaryKey && got.NotNull != want.NotNull
		if typeChanged || nullChanged {
			changes = append(changes, ColumnChange{Kind: AlterColumn, Name: want.Name})
		}
	}

	for _, got := range live {
		if !desiredNames[got.Name] {
			changes = append(changes, ColumnChange{Kind: DropColumn, Name: got.Name})
		}
	}
	return changes
}

// additiveOnly reports whether every change can be applied with
// ALTER TABLE ADD COLUMN.
func additiveOnly(changes []ColumnChange) bool {
	for _, c := range changes {
		if c.Kind != AddColumn {
			return false
		}
	}
	return true
}
