package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/justinTNT/hedge-sub000/internal/config"
	"github.com/justinTNT/hedge-sub000/internal/meta"
	"github.com/justinTNT/hedge-sub000/internal/parser"
	"github.com/justinTNT/hedge-sub000/internal/schema"
)

// Result summarizes one generation run for the CLI report.
type Result struct {
	Types     int
	Endpoints int
	Created   int
	Updated   int
}

// Manager runs the full generation pass: parse, classify, derive, order,
// emit. All file writes are diff-gated.
type Manager struct {
	cfg *config.Config
	out io.Writer
}

// NewManager builds a Manager reporting to out (os.Stdout when nil).
func NewManager(cfg *config.Config, out io.Writer) *Manager {
	if out == nil {
		out = os.Stdout
	}
	return &Manager{cfg: cfg, out: out}
}

// Load parses the domain declarations and endpoint descriptors.
func (m *Manager) Load() ([]schema.TypeSchema, []parser.Endpoint, error) {
	types, err := parser.LoadModels(m.cfg.ModelsDir)
	if err != nil {
		return nil, nil, err
	}
	endpoints, err := parser.LoadEndpoints(m.cfg.EndpointsFile)
	if err != nil {
		return nil, nil, err
	}
	return types, endpoints, nil
}

// Metas derives and dependency-orders table metadata, reporting any
// primary-key fallbacks as warnings.
func (m *Manager) Metas(types []schema.TypeSchema) ([]meta.TableMeta, error) {
	metas := meta.ComputeAll(types, m.cfg.PageSize)
	for _, tm := range metas {
		if !tm.HasPrimaryKey && len(tm.DBFields) > 0 {
			fmt.Fprintf(m.out, "warning: %s has no primary key field; falling back to column %q\n",
				tm.DisplayName, tm.PrimaryKeyColumn)
		}
	}
	return meta.Order(metas)
}

// Generate runs the full pass: load, derive, emit.
func (m *Manager) Generate() (*Result, error) {
	types, endpoints, err := m.Load()
	if err != nil {
		return nil, err
	}
	metas, err := m.Metas(types)
	if err != nil {
		return nil, err
	}
	return m.Emit(types, endpoints, metas)
}

// Emit runs every artifact generator over already-derived inputs and writes
// the results. The migrate path calls this directly so it can reuse the
// metas for diffing.
func (m *Manager) Emit(types []schema.TypeSchema, endpoints []parser.Endpoint, metas []meta.TableMeta) (*Result, error) {
	opts := Options{
		ModelsImport:   m.cfg.ModelsImport,
		HandlersImport: m.cfg.HandlersImport,
		GenImport:      m.cfg.GenImport,
	}
	w := &Writer{Out: m.out}

	if err := w.Write(m.cfg.SchemaFile, SchemaSQL(metas)); err != nil {
		return nil, err
	}
	if err := w.Write(m.genPath("rows"), RowsSource(metas, "rows")); err != nil {
		return nil, err
	}
	if err := w.Write(m.genPath("admin"), AdminSource(metas, "admin")); err != nil {
		return nil, err
	}
	if err := w.Write(m.genPath("serde"), SerdeSource(types, endpoints, "serde", opts)); err != nil {
		return nil, err
	}

	if len(endpoints) > 0 {
		if err := w.Write(m.genPath("client"), ClientSource(endpoints, "client", opts)); err != nil {
			return nil, err
		}
		if err := w.Write(m.genPath("routes"), RoutesSource(endpoints, "routes", opts)); err != nil {
			return nil, err
		}
		for _, ep := range endpoints {
			stub := filepath.Join(m.cfg.HandlersDir, HandlerFileName(ep))
			if err := w.WriteOnce(stub, HandlerSource(ep, filepath.Base(m.cfg.HandlersDir), opts)); err != nil {
				return nil, err
			}
		}
		doc, err := OpenAPISource(types, endpoints)
		if err != nil {
			return nil, err
		}
		if err := w.Write(m.cfg.OpenAPIFile, doc); err != nil {
			return nil, err
		}
	}

	return &Result{
		Types:     len(types),
		Endpoints: len(endpoints),
		Created:   w.Created(),
		Updated:   w.Updated(),
	}, nil
}

// genPath places a generated package file: <gen_dir>/<pkg>/<pkg>.go.
func (m *Manager) genPath(pkg string) string {
	return filepath.Join(m.cfg.GenDir, pkg, pkg+".go")
}
