package scaffold

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"text/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.tmpl"))

type Kind string

const (
	KindModel   Kind = "model"
	KindRequest Kind = "request"
	KindService Kind = "service"
	KindHandler Kind = "handler"
	KindRoute   Kind = "route"
	KindRest    Kind = "rest"
)

// Kinds lists every file kind in generation order.
var Kinds = []Kind{KindModel, KindRequest, KindService, KindHandler, KindRoute, KindRest}

const (
	DefaultModule = "github.com/monocle-dev/herald"
	DefaultPort   = "3000"
)

var ErrExists = errors.New("file already exists")

type Options struct {
	Module string
	Port   string
	Force  bool
	Only   []Kind
}

func (o Options) withDefaults() Options {
	if o.Module == "" {
		o.Module = DefaultModule
	}
	if o.Port == "" {
		o.Port = DefaultPort
	}
	if len(o.Only) == 0 {
		o.Only = Kinds
	}
	return o
}

type templateData struct {
	Names
	Module string
	Port   string
}

// ParseKind validates a kind name from the command line.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown kind %q", s)
}

// Path returns the repository-relative path of the file kind for n.
func Path(kind Kind, n Names) string {
	switch kind {
	case KindModel:
		return filepath.Join("internal", "models", n.Snake+".go")
	case KindRequest:
		return filepath.Join("internal", "types", n.Snake+".go")
	case KindService:
		return filepath.Join("internal", "services", n.Snake+".go")
	case KindHandler:
		return filepath.Join("internal", "handlers", n.Snake+".go")
	case KindRoute:
		return filepath.Join("internal", "router", n.Snake+".go")
	case KindRest:
		return filepath.Join("test", n.SnakePlural+".rest")
	}
	return ""
}

func templateName(kind Kind) string {
	if kind == KindRest {
		return "rest.tmpl"
	}
	return string(kind) + ".go.tmpl"
}

// Render produces the contents of one file. Go sources are gofmt-ed.
func Render(kind Kind, n Names, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	var buf bytes.Buffer
	data := templateData{Names: n, Module: opts.Module, Port: opts.Port}
	if err := templates.ExecuteTemplate(&buf, templateName(kind), data); err != nil {
		return nil, fmt.Errorf("render %s: %w", kind, err)
	}

	if kind == KindRest {
		return buf.Bytes(), nil
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", kind, err)
	}
	return src, nil
}

// Generate writes the scaffold for resource under root and returns the written paths.
// Existing files are left alone unless opts.Force is set; nothing is written when any would be clobbered.
func Generate(root, resource string, opts Options) ([]string, error) {
	opts = opts.withDefaults()

	n, err := NewNames(resource)
	if err != nil {
		return nil, err
	}

	type file struct {
		path     string
		contents []byte
	}

	files := make([]file, 0, len(opts.Only))
	for _, kind := range opts.Only {
		contents, err := Render(kind, n, opts)
		if err != nil {
			return nil, err
		}

		path := filepath.Join(root, Path(kind, n))
		if !opts.Force {
			if _, err := os.Stat(path); err == nil {
				return nil, fmt.Errorf("%s: %w (use -force to overwrite)", path, ErrExists)
			} else if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
		}
		files = append(files, file{path: path, contents: contents})
	}

	written := make([]string, 0, len(files))
	for _, f := range files {
		if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
			return written, err
		}
		if err := os.WriteFile(f.path, f.contents, 0o644); err != nil {
			return written, err
		}
		written = append(written, f.path)
	}

	return written, nil
}

// NextSteps describes the manual wiring left after generation.
func NextSteps(n Names) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Register the resource:\n")
	fmt.Fprintf(&b, "  - add &models.%s{} to db.Models\n", n.Type)
	fmt.Fprintf(&b, "  - add %sResource(deps) to router.Resources\n", n.Singular)
	fmt.Fprintf(&b, "  - adjust handlers.%sPolicy and the model fields\n", n.Type)
	return b.String()
}
