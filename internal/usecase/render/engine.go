package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

// Context is the mapping of named values supplied to a render call.
type Context map[string]any

// MissingFieldError reports required context fields that the caller did not
// supply. A missing required field is a caller contract violation and the
// render is rejected, never executed with empty values.
type MissingFieldError struct {
	Fields []string
}

// Error implements error interface
func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required context fields: %s", strings.Join(e.Fields, ", "))
}

// Require checks that every listed field is present and non-nil in the context.
func (c Context) Require(fields ...string) error {
	var missing []string
	for _, f := range fields {
		if v, ok := c[f]; !ok || v == nil {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return &MissingFieldError{Fields: missing}
	}
	return nil
}

// Engine renders Django-syntax templates from an fs.FS using a pongo2
// template set. Parsed templates are cached per path. Rendering is a pure
// function of the supplied context: the same context always produces
// byte-identical output.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// NewEngine creates an Engine backed by the given template filesystem.
func NewEngine(files fs.FS) *Engine {
	return &Engine{
		set:       pongo2.NewSet("notifier", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}
}

// RenderTemplate executes the named template file against ctx.
func (e *Engine) RenderTemplate(name string, ctx Context) (string, error) {
	tmpl, err := e.template(name)
	if err != nil {
		return "", err
	}

	pctx, err := toPongoContext(ctx)
	if err != nil {
		return "", fmt.Errorf("render: convert context: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pctx, &buf); err != nil {
		return "", fmt.Errorf("render: execute template %q: %w", name, err)
	}
	return buf.String(), nil
}

// RenderString parses src as inline template content and executes it
// against ctx.
func (e *Engine) RenderString(src string, ctx Context) (string, error) {
	tmpl, err := e.set.FromString(src)
	if err != nil {
		return "", fmt.Errorf("render: parse template string: %w", err)
	}

	pctx, err := toPongoContext(ctx)
	if err != nil {
		return "", fmt.Errorf("render: convert context: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteWriter(pctx, &buf); err != nil {
		return "", fmt.Errorf("render: execute template string: %w", err)
	}
	return buf.String(), nil
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}

	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", path, err)
	}

	e.templates[path] = tmpl
	return tmpl, nil
}

// toPongoContext converts the context through JSON so that struct values are
// addressed inside templates by their json tags (entry.timestamp, entry.text)
// rather than Go field names.
func toPongoContext(ctx Context) (pongo2.Context, error) {
	out := make(pongo2.Context, len(ctx))
	for key, value := range ctx {
		switch value.(type) {
		case nil, string, bool, int, int32, int64, float32, float64:
			out[key] = value
			continue
		}

		b, err := json.Marshal(value)
		if err != nil {
			return nil, fmt.Errorf("marshal field %q: %w", key, err)
		}
		var decoded any
		if err := json.Unmarshal(b, &decoded); err != nil {
			return nil, fmt.Errorf("unmarshal field %q: %w", key, err)
		}
		out[key] = decoded
	}
	return out, nil
}
