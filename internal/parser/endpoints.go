package parser

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Endpoint is one declared API operation. Request/Response/View name domain
// types by their declared (short) names; View marks read-only projections
// that have no request body.
type Endpoint struct {
	Name     string `yaml:"name"`
	Method   string `yaml:"method"`
	Path     string `yaml:"path"`
	Request  string `yaml:"request,omitempty"`
	Response string `yaml:"response,omitempty"`
	View     string `yaml:"view,omitempty"`
}

type endpointFile struct {
	Endpoints []Endpoint `yaml:"endpoints"`
}

// LoadEndpoints reads the endpoint descriptor file. A missing file is not an
// error: endpoints are optional and only drive the API-facing generators.
func LoadEndpoints(path string) ([]Endpoint, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read endpoints file %q: %w", path, err)
	}

	var file endpointFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse endpoints file %q: %w", path, err)
	}

	for i := range file.Endpoints {
		ep := &file.Endpoints[i]
		ep.Method = strings.ToUpper(strings.TrimSpace(ep.Method))
		if ep.Name == "" {
			return nil, fmt.Errorf("endpoints file %q: endpoint %d has no name", path, i)
		}
		if ep.Method == "" || ep.Path == "" {
			return nil, fmt.Errorf("endpoints file %q: endpoint %q needs method and path", path, ep.Name)
		}
	}
	return file.Endpoints, nil
}
