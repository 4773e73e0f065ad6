package meta

import (
	"fmt"
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/schema"
)

// Order sorts tables so that any table referenced via foreign key precedes
// its dependents, producing a valid creation/migration emission order.
// Foreign-key cycles are a configuration error: emitting a cyclic schema
// would violate its own constraints at creation time, so the cycle is
// reported instead.
func Order(metas []TableMeta) ([]TableMeta, error) {
	byName := make(map[string]int, len(metas))
	for i, m := range metas {
		byName[m.DisplayName] = i
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make([]int, len(metas))
	ordered := make([]TableMeta, 0, len(metas))
	var stack []string

	var visit func(i int) error
	visit = func(i int) error {
		switch state[i] {
		case done:
			return nil
		case visiting:
			cycle := append(stack, metas[i].DisplayName)
			return fmt.Errorf("foreign-key cycle: %s", strings.Join(cycle, " -> "))
		}

		state[i] = visiting
		stack = append(stack, metas[i].DisplayName)
		for _, f := range metas[i].ForeignKeyFields {
			attr, ok := f.Attr(schema.AttrForeignKey)
			if !ok {
				continue
			}
			dep, known := byName[attr.Ref]
			if !known {
				// References to undeclared types impose no ordering.
				continue
			}
			if dep == i {
				continue // self-reference orders trivially
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		stack = stack[:len(stack)-1]
		state[i] = done
		ordered = append(ordered, metas[i])
		return nil
	}

	for i := range metas {
		if err := visit(i); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}
