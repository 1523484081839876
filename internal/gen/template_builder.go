package gen

import (
	"fmt"
	"sort"

	"fieldtmpl/internal/analyze"
	"fieldtmpl/internal/common"
	"fieldtmpl/internal/diagnostic"
	"fieldtmpl/internal/match"
	"fieldtmpl/reflectfields"
)

// templateData holds all data needed for the fields template.
type templateData struct {
	PackageName      string
	Filename         string
	Imports          []string
	TypeName         string
	QualifiedName    string
	NamesVar         string
	Fields           []fieldData
	GenerateComments bool
}

// fieldData is one case of the generated TemplateField switch.
type fieldData struct {
	Name   string // template name
	GoName string // Go field name
	Expr   string // expression rendering the field as a string
}

// buildTemplateData validates a requested type and collects everything the
// template needs. It reports problems to diags and returns false if the
// type cannot be generated.
func (g *Generator) buildTemplateData(
	pkg *analyze.PackageInfo,
	info *analyze.TypeInfo,
	name string,
	diags *diagnostic.Diagnostics,
) (*templateData, bool) {
	qualified := pkg.Name + "." + name

	switch {
	case info == nil:
		diags.AddError(diagnostic.CodeTypeNotFound,
			fmt.Sprintf("type %s not found in %s%s", name, pkg.Path, match.Hint(name, pkg.TypeNames())), qualified, "")

		return nil, false

	case info.Kind != analyze.TypeKindStruct:
		diags.AddError(diagnostic.CodeNotAStruct,
			fmt.Sprintf("type is not a struct (kind: %s)", info.Kind), qualified, "")

		return nil, false

	case info.TypeParams > 0:
		diags.AddError(diagnostic.CodeGenericType,
			"generic types are not supported", qualified, "")

		return nil, false
	}

	data := &templateData{
		PackageName:      pkg.Name,
		Filename:         common.SnakeCase(name) + "_tmpl.go",
		TypeName:         name,
		QualifiedName:    qualified,
		NamesVar:         "templateFields" + exportedName(name),
		GenerateComments: g.config.GenerateComments,
	}

	imports := map[string]struct{}{"fmt": {}}
	seen := make(map[string]string)
	valid := true

	for i := range info.Fields {
		field := &info.Fields[i]

		tmplName, skipped := templateName(field, g.config.TagKey)
		if skipped != "" {
			diags.AddInfo(diagnostic.CodeFieldSkipped, skipped, qualified, field.Name)
			continue
		}

		if prev, dup := seen[tmplName]; dup {
			diags.AddError(diagnostic.CodeDuplicateField,
				fmt.Sprintf("template name %q already used by field %s", tmplName, prev), qualified, field.Name)

			valid = false

			continue
		}
		seen[tmplName] = field.Name

		data.Fields = append(data.Fields, fieldData{
			Name:   tmplName,
			GoName: field.Name,
			Expr:   fieldExpr("v."+field.Name, field.Type, imports),
		})
	}

	if !valid {
		return nil, false
	}

	if len(data.Fields) == 0 {
		diags.AddWarning(diagnostic.CodeNoFields, "type has no template fields", qualified, "")
	}

	for path := range imports {
		data.Imports = append(data.Imports, path)
	}
	sort.Strings(data.Imports)

	return data, true
}

// Field is a struct field visible to templates.
type Field struct {
	// Name is the placeholder name.
	Name string
	// Info describes the Go field.
	Info *analyze.FieldInfo
}

// Fields lists the fields of info that templates can reference under
// tagKey, in placeholder index order. Duplicate names are kept; Generate
// rejects them.
func Fields(info *analyze.TypeInfo, tagKey string) []Field {
	if tagKey == "" {
		tagKey = DefaultTagKey
	}

	var fields []Field
	for i := range info.Fields {
		if name, skipped := templateName(&info.Fields[i], tagKey); skipped == "" {
			fields = append(fields, Field{Name: name, Info: &info.Fields[i]})
		}
	}

	return fields
}

// templateName returns the placeholder name of field, or a reason it is
// not visible to templates.
func templateName(field *analyze.FieldInfo, tagKey string) (name, skipped string) {
	if !field.Exported {
		return "", "unexported field"
	}

	name, ok := reflectfields.FieldName(field.Name, field.Tag.Get(tagKey))
	if !ok {
		return "", fmt.Sprintf("excluded by `%s:\"-\"`", tagKey)
	}

	return name, ""
}

// exportedName upper-cases the first letter of an ASCII identifier so it
// reads naturally after a lower-case prefix.
func exportedName(name string) string {
	if name == "" || name[0] < 'a' || name[0] > 'z' {
		return name
	}

	return string(name[0]-'a'+'A') + name[1:]
}
