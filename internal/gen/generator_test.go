package gen

import (
	"context"
	"go/types"
	"os"
	"path/filepath"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fieldtmpl/internal/analyze"
	"fieldtmpl/internal/diagnostic"
)

const shopPath = "example.com/shop"

// shopGraph builds a type graph for a package that was never loaded from
// disk, so generator behavior can be tested without go/packages.
func shopGraph(dir string) *analyze.TypeGraph {
	graph := analyze.NewTypeGraph()
	graph.Packages[shopPath] = &analyze.PackageInfo{Path: shopPath, Name: "shop", Dir: dir}

	add := func(name string, kind analyze.TypeKind, fields ...analyze.FieldInfo) *analyze.TypeInfo {
		for i := range fields {
			fields[i].Index = i
		}

		id := analyze.TypeID{PkgPath: shopPath, Name: name}
		info := &analyze.TypeInfo{ID: id, Kind: kind, Fields: fields}
		graph.Types[id] = info
		graph.Packages[shopPath].Types = append(graph.Packages[shopPath].Types, id)

		return info
	}

	level := newNamed("Level", types.Typ[types.Int], types.Typ[types.String], "String")

	add("Order", analyze.TypeKindStruct,
		analyze.FieldInfo{Name: "ID", Exported: true, Type: types.Typ[types.Uint32]},
		analyze.FieldInfo{Name: "Customer", Exported: true, Type: types.Typ[types.String], Tag: `tmpl:"customer"`},
		analyze.FieldInfo{Name: "Level", Exported: true, Type: level},
		analyze.FieldInfo{Name: "Secret", Exported: true, Type: types.Typ[types.String], Tag: `tmpl:"-"`},
		analyze.FieldInfo{Name: "total", Type: types.Typ[types.Int]},
	)
	add("lineItem", analyze.TypeKindStruct,
		analyze.FieldInfo{Name: "SKU", Exported: true, Type: types.Typ[types.String]},
	)
	add("Clash", analyze.TypeKindStruct,
		analyze.FieldInfo{Name: "A", Exported: true, Type: types.Typ[types.String], Tag: `tmpl:"name"`},
		analyze.FieldInfo{Name: "B", Exported: true, Type: types.Typ[types.String], Tag: `tmpl:"name"`},
	)
	add("Empty", analyze.TypeKindStruct,
		analyze.FieldInfo{Name: "hidden", Type: types.Typ[types.String]},
	)
	add("Status", analyze.TypeKindBasic)
	add("Box", analyze.TypeKindStruct).TypeParams = 1

	return graph
}

func TestGenerate_Order(t *testing.T) {
	res, err := NewGenerator(DefaultConfig()).Generate(context.Background(), shopGraph("/tmp/shop"),
		Target{PkgPath: shopPath, Types: []string{"Order"}})
	require.NoError(t, err)
	require.Len(t, res.Files, 1, spew.Sdump(res.Diagnostics))

	file := res.Files[0]
	assert.Equal(t, "/tmp/shop", file.Dir)
	assert.Equal(t, "order_tmpl.go", file.Filename)

	want := `// Code generated by tmplgen. DO NOT EDIT.

package shop

import (
	"fmt"
	"strconv"
)

var templateFieldsOrder = []string{"ID", "customer", "Level"}

// TemplateFields returns the placeholder names accepted by templates over
// Order.
func (Order) TemplateFields() []string {
	return templateFieldsOrder
}

// TemplateField renders the field at index as text.
func (v Order) TemplateField(index int) string {
	switch index {
	case 0: // ID
		return strconv.FormatUint(uint64(v.ID), 10)
	case 1: // Customer
		return v.Customer
	case 2: // Level
		return v.Level.String()
	default:
		panic(fmt.Sprintf("shop.Order: template field index %d out of range", index))
	}
}
`
	assert.Equal(t, want, string(file.Content))

	assert.Empty(t, res.Diagnostics.Errors)
	assert.Empty(t, res.Diagnostics.Warnings)
	require.Len(t, res.Diagnostics.Infos, 2)
	assert.Equal(t, "Secret", res.Diagnostics.Infos[0].Field)
	assert.Equal(t, "total", res.Diagnostics.Infos[1].Field)
	assert.Equal(t, diagnostic.CodeFieldSkipped, res.Diagnostics.Infos[1].Code)
}

func TestGenerate_NoComments(t *testing.T) {
	cfg := DefaultConfig()
	cfg.GenerateComments = false

	res, err := NewGenerator(cfg).Generate(context.Background(), shopGraph(""),
		Target{PkgPath: shopPath, Types: []string{"lineItem"}, OutputDir: "out"})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	file := res.Files[0]
	assert.Equal(t, "out", file.Dir)
	assert.Equal(t, "line_item_tmpl.go", file.Filename)

	content := string(file.Content)
	assert.Contains(t, content, "var templateFieldsLineItem = []string{\"SKU\"}")
	assert.Contains(t, content, "func (v lineItem) TemplateField(index int) string {")
	assert.Contains(t, content, "\tcase 0:\n\t\treturn v.SKU\n")
	assert.NotContains(t, content, "strconv")
	assert.NotContains(t, content, "// SKU")
}

func TestGenerate_CustomTag(t *testing.T) {
	graph := shopGraph("")
	order := graph.GetType(analyze.TypeID{PkgPath: shopPath, Name: "Order"})
	order.Fields[0].Tag = `json:"id" text:"order_id"`

	res, err := NewGenerator(Config{TagKey: "text"}).Generate(context.Background(), graph,
		Target{PkgPath: shopPath, Types: []string{"Order"}})
	require.NoError(t, err)
	require.Len(t, res.Files, 1)

	// Under another tag key the tmpl tags are ignored.
	assert.Contains(t, string(res.Files[0].Content),
		`[]string{"order_id", "Customer", "Level", "Secret"}`)
}

func TestGenerate_Diagnostics(t *testing.T) {
	tests := []struct {
		name     string
		target   Target
		wantCode string
		wantMsg  string
	}{
		{
			name:     "missing type",
			target:   Target{PkgPath: shopPath, Types: []string{"Missing"}},
			wantCode: diagnostic.CodeTypeNotFound,
			wantMsg:  "[shop.Missing]: [type-not-found] type Missing not found in example.com/shop",
		},
		{
			name:     "misspelled type",
			target:   Target{PkgPath: shopPath, Types: []string{"Ordr"}},
			wantCode: diagnostic.CodeTypeNotFound,
			wantMsg:  `[shop.Ordr]: [type-not-found] type Ordr not found in example.com/shop (did you mean "Order"?)`,
		},
		{
			name:     "missing package",
			target:   Target{PkgPath: "example.com/nope", Types: []string{"Order"}},
			wantCode: diagnostic.CodeTypeNotFound,
			wantMsg:  "[type-not-found] package example.com/nope was not loaded",
		},
		{
			name:     "not a struct",
			target:   Target{PkgPath: shopPath, Types: []string{"Status"}},
			wantCode: diagnostic.CodeNotAStruct,
			wantMsg:  "[shop.Status]: [not-a-struct] type is not a struct (kind: basic)",
		},
		{
			name:     "generic",
			target:   Target{PkgPath: shopPath, Types: []string{"Box"}},
			wantCode: diagnostic.CodeGenericType,
			wantMsg:  "[shop.Box]: [generic-type] generic types are not supported",
		},
		{
			name:     "duplicate name",
			target:   Target{PkgPath: shopPath, Types: []string{"Clash"}},
			wantCode: diagnostic.CodeDuplicateField,
			wantMsg:  `[shop.Clash] B: [duplicate-field] template name "name" already used by field A`,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res, err := NewGenerator(DefaultConfig()).Generate(context.Background(), shopGraph(""), tc.target)
			require.Error(t, err)
			assert.Equal(t, tc.wantMsg, err.Error())

			assert.Empty(t, res.Files)
			require.Len(t, res.Diagnostics.Errors, 1)
			assert.Equal(t, tc.wantCode, res.Diagnostics.Errors[0].Code)
		})
	}
}

func TestGenerate_PartialFailure(t *testing.T) {
	res, err := NewGenerator(DefaultConfig()).Generate(context.Background(), shopGraph(""),
		Target{PkgPath: shopPath, Types: []string{"Clash", "Order", "Empty"}})
	require.Error(t, err)

	// Valid types are still generated alongside the failing one.
	require.Len(t, res.Files, 2)
	assert.Equal(t, "order_tmpl.go", res.Files[0].Filename)
	assert.Equal(t, "empty_tmpl.go", res.Files[1].Filename)

	require.Len(t, res.Diagnostics.Warnings, 1)
	assert.Equal(t, diagnostic.CodeNoFields, res.Diagnostics.Warnings[0].Code)
	assert.Contains(t, string(res.Files[1].Content), "var templateFieldsEmpty = []string{}")
}

func TestGenerate_DuplicateTypes(t *testing.T) {
	res, err := NewGenerator(DefaultConfig()).Generate(context.Background(), shopGraph(""),
		Target{PkgPath: shopPath, Types: []string{"Order", "Order"}},
		Target{PkgPath: shopPath, Types: []string{"Order"}},
		Target{PkgPath: shopPath, Types: []string{"Order"}, OutputDir: "elsewhere"})
	require.NoError(t, err)

	require.Len(t, res.Files, 2)
	assert.Equal(t, "order_tmpl.go", res.Files[0].Filename)
	assert.Equal(t, "elsewhere", res.Files[1].Dir)

	// Diagnostics are reported once per generated file, not per request.
	single, err := NewGenerator(DefaultConfig()).Generate(context.Background(), shopGraph(""),
		Target{PkgPath: shopPath, Types: []string{"Order"}})
	require.NoError(t, err)
	assert.Len(t, res.Diagnostics.All(), 2*len(single.Diagnostics.All()))
}

// TestGenerate_Greeting checks the committed providers of the example
// package are what the generator currently produces.
func TestGenerate_Greeting(t *testing.T) {
	const pkgPath = "fieldtmpl/examples/greeting"

	graph, err := analyze.NewAnalyzer("").LoadPackages(context.Background(), pkgPath)
	require.NoError(t, err)

	res, err := NewGenerator(DefaultConfig()).Generate(context.Background(), graph,
		Target{PkgPath: pkgPath, Types: []string{"Greeting", "Invoice", "Coordinates"}})
	require.NoError(t, err)
	require.Len(t, res.Files, 3)

	for _, file := range res.Files {
		committed, err := os.ReadFile(filepath.Join(file.Dir, file.Filename))
		require.NoError(t, err)
		assert.Equal(t, string(committed), string(file.Content), "%s is stale, run go generate", file.Filename)
	}
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "shop")

	files := []GeneratedFile{
		{Dir: dir, Filename: "a_tmpl.go", Content: []byte("package shop\n")},
		{Dir: dir, Filename: "b_tmpl.go", Content: []byte("package shop\n\n// b\n")},
	}

	written, err := WriteFiles(files)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a_tmpl.go"), filepath.Join(dir, "b_tmpl.go")}, written)

	for _, f := range files {
		got, err := os.ReadFile(filepath.Join(dir, f.Filename))
		require.NoError(t, err)
		assert.Equal(t, f.Content, got)
	}
}

func TestWriteDebugUnformatted(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, writeDebugUnformatted(dir, "broken_tmpl.go", []byte("package (")))

	got, err := os.ReadFile(filepath.Join(dir, "broken_tmpl.unformatted.go"))
	require.NoError(t, err)
	assert.Equal(t, "package (", string(got))

	assert.NoError(t, writeDebugUnformatted("", "x.go", nil))
}

func TestExportedName(t *testing.T) {
	assert.Equal(t, "LineItem", exportedName("lineItem"))
	assert.Equal(t, "Order", exportedName("Order"))
	assert.Empty(t, exportedName(""))
}

func TestNewGenerator_Defaults(t *testing.T) {
	g := NewGenerator(Config{})

	assert.Equal(t, DefaultTagKey, g.config.TagKey)
	assert.NotNil(t, g.logger)
}

func TestFields(t *testing.T) {
	order := shopGraph("").GetType(analyze.TypeID{PkgPath: shopPath, Name: "Order"})

	var names, goNames []string
	for _, f := range Fields(order, "") {
		names = append(names, f.Name)
		goNames = append(goNames, f.Info.Name)
	}

	assert.Equal(t, []string{"ID", "customer", "Level"}, names)
	assert.Equal(t, []string{"ID", "Customer", "Level"}, goNames)

	clash := shopGraph("").GetType(analyze.TypeID{PkgPath: shopPath, Name: "Clash"})
	assert.Len(t, Fields(clash, DefaultTagKey), 2)
}
