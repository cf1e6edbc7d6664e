// Package render is the template engine used by the generator.
//
// An Environment is built once per run from a template file system and is
// immutable afterwards: the function map is created per Environment and
// never registered globally, so two runs in one process cannot see each
// other's filters. Rendering is a pure function of template and context.
package render

import (
	"bytes"
	"io/fs"
	"path"
	"text/template"

	"github.com/idlbridge/idlbridge/internal/errors"
	"github.com/idlbridge/idlbridge/internal/idl"
	"github.com/idlbridge/idlbridge/internal/naming"
	"github.com/idlbridge/idlbridge/internal/typetraits"
)

// Environment holds the parsed templates of one run.
type Environment struct {
	templates map[string]*template.Template
}

// NewEnvironment reads and parses the named templates from files. Every
// template is loaded exactly once; a missing, unreadable or syntactically
// invalid template fails with a TemplateLoadError.
//
// Parameters:
//   - files: The template file system (embedded set or an override directory).
//   - names: The templates to load.
//
// Returns:
//   - *Environment: The ready-to-use environment.
//   - error: A TemplateLoadError naming the failing template.
func NewEnvironment(files fs.FS, names ...string) (*Environment, error) {
	if files == nil {
		return nil, errors.TemplateLoad(nil, "no template file system configured")
	}

	funcs := FuncMap()
	env := &Environment{templates: make(map[string]*template.Template, len(names))}
	for _, name := range names {
		content, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, errors.TemplateLoad(err, "load template %s", name)
		}
		t, err := template.New(path.Base(name)).
			Option("missingkey=error").
			Funcs(funcs).
			Parse(string(content))
		if err != nil {
			return nil, errors.TemplateLoad(err, "parse template %s", name)
		}
		env.templates[name] = t
	}
	return env, nil
}

// Render executes the template called name against data and returns the
// output. The same data value may be rendered concurrently into any number
// of templates.
func (e *Environment) Render(name string, data any) (string, error) {
	t, ok := e.templates[name]
	if !ok {
		return "", errors.TemplateLoad(nil, "template %s is not loaded", name)
	}

	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", errors.Render(err, "render %s", name)
	}
	return buf.String(), nil
}

// FuncMap returns a fresh map of the functions available to every template.
//
// The two case filters:
//   - titlecase: "getLastCallInfo" -> "GetLastCallInfo"
//   - snakecase: "HTTPRequest" -> "http_request"
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"titlecase": naming.TitleCase,
		"snakecase": naming.SnakeCase,
		// Type lookup helpers
		"nativeType": typetraits.NativeType,
		"argType":    typetraits.ArgType,
		"jsType":     typetraits.JSType,
		"requiredArgs": func(args []idl.Argument) int {
			n := 0
			for _, a := range args {
				if !a.Optional && !a.Variadic {
					n++
				}
			}
			return n
		},
		// receiver returns the call prefix for a member of iface.
		"receiver": func(iface string, static bool) string {
			if static {
				return iface + "::"
			}
			return "impl_->"
		},
	}
}
