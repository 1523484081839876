package gen

import (
	"bytes"
	"context"
	"fmt"
	"go/format"
	"log/slog"
	"text/template"

	"fieldtmpl/internal/analyze"
	"fieldtmpl/internal/diagnostic"
)

// DefaultTagKey is the struct tag consulted for template field names. It
// matches reflectfields.TagKey.
const DefaultTagKey = "tmpl"

// Config holds configuration for code generation.
type Config struct {
	// TagKey is the struct tag used to rename (`tmpl:"name"`) or skip
	// (`tmpl:"-"`) fields.
	TagKey string
	// GenerateComments labels each switch case with its Go field name.
	GenerateComments bool
	// Logger receives progress messages. Nil discards them.
	Logger *slog.Logger
}

// DefaultConfig returns the default generator configuration.
func DefaultConfig() Config {
	return Config{
		TagKey:           DefaultTagKey,
		GenerateComments: true,
	}
}

// Target selects the types of one package to generate providers for.
type Target struct {
	// PkgPath is the import path of the package declaring the types.
	PkgPath string
	// Types are the type names to generate for.
	Types []string
	// OutputDir overrides where files are written. Empty means the
	// package's own directory.
	OutputDir string
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory the file belongs in.
	Dir string
	// Filename is the name of the file (e.g., "invoice_tmpl.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Result is the outcome of a generator run.
type Result struct {
	Files       []GeneratedFile
	Diagnostics diagnostic.Diagnostics
}

// Generator emits tmpl.Params implementations for struct types.
type Generator struct {
	config Config
	logger *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config Config) *Generator {
	if config.TagKey == "" {
		config.TagKey = DefaultTagKey
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.New(discardHandler{})
	}

	return &Generator{config: config, logger: logger}
}

// Generate produces one file per requested type. Problems with individual
// types are collected as diagnostics; the returned error is non-nil when
// any diagnostic is an error or a file could not be rendered.
func (g *Generator) Generate(ctx context.Context, graph *analyze.TypeGraph, targets ...Target) (*Result, error) {
	res := &Result{}

	// A type requested twice for the same directory yields one file.
	type output struct {
		id  analyze.TypeID
		dir string
	}
	seen := make(map[output]bool)

	for _, target := range targets {
		pkg := graph.Packages[target.PkgPath]
		if pkg == nil {
			res.Diagnostics.AddError(diagnostic.CodeTypeNotFound,
				fmt.Sprintf("package %s was not loaded", target.PkgPath), "", "")

			continue
		}

		outDir := target.OutputDir
		if outDir == "" {
			outDir = pkg.Dir
		}

		for _, name := range target.Types {
			id := analyze.TypeID{PkgPath: pkg.Path, Name: name}
			key := output{id, outDir}
			if seen[key] {
				g.logger.DebugContext(ctx, "skipping duplicate type", slog.String("type", id.String()))
				continue
			}
			seen[key] = true

			data, ok := g.buildTemplateData(pkg, graph.GetType(id), name, &res.Diagnostics)
			if !ok {
				continue
			}

			file, err := g.generateType(data, outDir)
			if err != nil {
				return res, fmt.Errorf("generating %s.%s: %w", pkg.Path, name, err)
			}

			g.logger.DebugContext(ctx, "generated template fields",
				slog.String("type", data.QualifiedName),
				slog.Int("fields", len(data.Fields)),
				slog.String("file", file.Filename))

			res.Files = append(res.Files, *file)
		}
	}

	return res, res.Diagnostics.Error()
}

// generateType renders and formats the file for a single type.
func (g *Generator) generateType(data *templateData, outDir string) (*GeneratedFile, error) {
	var buf bytes.Buffer
	if err := fieldsTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if outDir != "" {
			_ = writeDebugUnformatted(outDir, data.Filename, buf.Bytes())
		}

		return &GeneratedFile{
			Dir:      outDir,
			Filename: data.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Dir:      outDir,
		Filename: data.Filename,
		Content:  formatted,
	}, nil
}

var fieldsTemplate = template.Must(template.New("fields").Parse(`// Code generated by tmplgen. DO NOT EDIT.

package {{.PackageName}}

import (
{{range .Imports}}	"{{.}}"
{{end}})

var {{.NamesVar}} = []string{ {{- range $i, $f := .Fields}}{{if $i}}, {{end}}{{printf "%q" $f.Name}}{{end -}} }

// TemplateFields returns the placeholder names accepted by templates over
// {{.TypeName}}.
func ({{.TypeName}}) TemplateFields() []string {
	return {{.NamesVar}}
}

// TemplateField renders the field at index as text.
func (v {{.TypeName}}) TemplateField(index int) string {
	switch index {
{{- range $i, $f := .Fields}}
	case {{$i}}:{{if $.GenerateComments}} // {{$f.GoName}}{{end}}
		return {{$f.Expr}}
{{- end}}
	default:
		panic(fmt.Sprintf("{{.QualifiedName}}: template field index %d out of range", index))
	}
}
`))

// discardHandler drops every record.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool { return false }

func (discardHandler) Handle(context.Context, slog.Record) error { return nil }

func (h discardHandler) WithAttrs([]slog.Attr) slog.Handler { return h }

func (h discardHandler) WithGroup(string) slog.Handler { return h }
