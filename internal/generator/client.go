package generator

import (
	"fmt"
	"strings"

	"github.com/justinTNT/hedge-sub000/internal/parser"
)

// ClientSource emits one typed call per declared endpoint over net/http.
// Request bodies are JSON; responses and views decode into their declared
// model types.
func ClientSource(endpoints []parser.Endpoint, pkg string, opts Options) string {
	hasRequest := false
	for _, ep := range endpoints {
		if ep.Request != "" {
			hasRequest = true
		}
	}

	var b strings.Builder
	b.WriteString(goHeader)
	fmt.Fprintf(&b, "\npackage %s\n\n", pkg)
	b.WriteString("import (\n")
	if hasRequest {
		b.WriteString("\t\"bytes\"\n")
	}
	b.WriteString("\t\"context\"\n\t\"encoding/json\"\n\t\"fmt\"\n\t\"net/http\"\n\n")
	fmt.Fprintf(&b, "\t%q\n)\n", opts.ModelsImport)

	models := opts.modelsPkg()

	b.WriteString(`
// Client issues typed calls against the API.
type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func (c *Client) httpClient() *http.Client {
	if c.HTTP != nil {
		return c.HTTP
	}
	return http.DefaultClient
}

func (c *Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpClient().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s: unexpected status %d", req.Method, req.URL.Path, resp.StatusCode)
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
`)

	for _, ep := range endpoints {
		result := ep.Response
		if result == "" {
			result = ep.View
		}

		fmt.Fprintf(&b, "\n// %s calls %s %s.\n", ep.Name, ep.Method, ep.Path)
		switch {
		case ep.Request != "" && result != "":
			fmt.Fprintf(&b, "func (c *Client) %s(ctx context.Context, req *%s.%s) (*%s.%s, error) {\n",
				ep.Name, models, ep.Request, models, result)
		case ep.Request != "":
			fmt.Fprintf(&b, "func (c *Client) %s(ctx context.Context, req *%s.%s) error {\n",
				ep.Name, models, ep.Request)
		case result != "":
			fmt.Fprintf(&b, "func (c *Client) %s(ctx context.Context) (*%s.%s, error) {\n",
				ep.Name, models, result)
		default:
			fmt.Fprintf(&b, "func (c *Client) %s(ctx context.Context) error {\n", ep.Name)
		}

		nilErr := "nil, err"
		if result == "" {
			nilErr = "err"
		}

		if ep.Request != "" {
			fmt.Fprintf(&b, "\tbody, err := json.Marshal(req)\n\tif err != nil {\n\t\treturn %s\n\t}\n", nilErr)
			fmt.Fprintf(&b, "\thttpReq, err := http.NewRequestWithContext(ctx, %q, c.BaseURL+%q, bytes.NewReader(body))\n",
				ep.Method, ep.Path)
		} else {
			fmt.Fprintf(&b, "\thttpReq, err := http.NewRequestWithContext(ctx, %q, c.BaseURL+%q, nil)\n",
				ep.Method, ep.Path)
		}
		fmt.Fprintf(&b, "\tif err != nil {\n\t\treturn %s\n\t}\n", nilErr)
		if ep.Request != "" {
			b.WriteString("\thttpReq.Header.Set(\"Content-Type\", \"application/json\")\n")
		}

		if result != "" {
			fmt.Fprintf(&b, "\tvar out %s.%s\n", models, result)
			b.WriteString("\tif err := c.do(httpReq, &out); err != nil {\n\t\treturn nil, err\n\t}\n")
			b.WriteString("\treturn &out, nil\n}\n")
		} else {
			b.WriteString("\treturn c.do(httpReq, nil)\n}\n")
		}
	}
	return b.String()
}
