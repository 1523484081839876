package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/types"
	"path/filepath"
	"reflect"
	"sort"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

var (
	// ErrTypeNotFound is returned by GetStruct and Lookup when no loaded
	// package declares the requested type.
	ErrTypeNotFound = errors.New("type not found")

	// ErrAmbiguousType is returned by Lookup when several loaded packages
	// declare a type with the requested name.
	ErrAmbiguousType = errors.New("type name is ambiguous")

	// ErrNotSinglePackage is returned by LoadPackage when the pattern
	// matches zero or several packages.
	ErrNotSinglePackage = errors.New("pattern must match a single package")
)

// Analyzer loads Go packages and builds a type graph.
type Analyzer struct {
	graph *TypeGraph
	dir   string
}

// NewAnalyzer creates a new Analyzer. Relative package patterns are
// resolved against dir; an empty dir means the current directory.
func NewAnalyzer(dir string) *Analyzer {
	return &Analyzer{
		graph: NewTypeGraph(),
		dir:   dir,
	}
}

// LoadPackages loads the specified packages and adds their named types to
// the type graph. Patterns are standard Go package patterns (e.g.,
// "./examples/greeting", "fieldtmpl/examples/greeting").
func (a *Analyzer) LoadPackages(ctx context.Context, patterns ...string) (*TypeGraph, error) {
	pkgs, err := a.load(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	for _, pkg := range pkgs {
		a.processPackage(pkg)
	}

	return a.graph, nil
}

// LoadPackage loads a pattern that must match exactly one package and
// returns that package. Its types are added to the type graph.
func (a *Analyzer) LoadPackage(ctx context.Context, pattern string) (*PackageInfo, error) {
	pkgs, err := a.load(ctx, pattern)
	if err != nil {
		return nil, err
	}

	if len(pkgs) != 1 {
		return nil, fmt.Errorf("pattern %q matched %d packages: %w", pattern, len(pkgs), ErrNotSinglePackage)
	}

	a.processPackage(pkgs[0])

	return a.graph.Packages[pkgs[0].PkgPath], nil
}

// load runs go/packages and collects package errors.
func (a *Analyzer) load(ctx context.Context, patterns ...string) ([]*packages.Package, error) {
	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.dir,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	return pkgs, nil
}

// Graph returns the current type graph.
func (a *Analyzer) Graph() *TypeGraph {
	return a.graph
}

// processPackage extracts named types from a loaded package.
func (a *Analyzer) processPackage(pkg *packages.Package) {
	pkgInfo := &PackageInfo{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}
	if len(pkg.GoFiles) > 0 {
		pkgInfo.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	scope := pkg.Types.Scope()
	for _, name := range scope.Names() {
		// Only process type names (not variables, constants, functions)
		typeName, ok := scope.Lookup(name).(*types.TypeName)
		if !ok || typeName.IsAlias() {
			continue
		}

		named, ok := typeName.Type().(*types.Named)
		if !ok {
			continue
		}

		typeID := TypeID{
			PkgPath: pkg.PkgPath,
			Name:    name,
		}

		typeInfo := analyzeNamedType(named)
		typeInfo.ID = typeID

		a.graph.Types[typeID] = typeInfo
		pkgInfo.Types = append(pkgInfo.Types, typeID)
	}

	a.graph.Packages[pkg.PkgPath] = pkgInfo
}

// analyzeNamedType describes a named type declared in a loaded package.
func analyzeNamedType(named *types.Named) *TypeInfo {
	info := &TypeInfo{
		GoType:     named,
		TypeParams: named.TypeParams().Len(),
	}

	switch ut := named.Underlying().(type) {
	case *types.Struct:
		info.Kind = TypeKindStruct
		info.Fields = analyzeStructFields(ut)

	case *types.Basic:
		info.Kind = TypeKindBasic

	case *types.Interface:
		info.Kind = TypeKindInterface

	default:
		info.Kind = TypeKindOther
	}

	return info
}

// analyzeStructFields extracts every field of a struct type. Unexported
// fields are kept so callers can report them.
func analyzeStructFields(st *types.Struct) []FieldInfo {
	fields := make([]FieldInfo, 0, st.NumFields())
	for i := range st.NumFields() {
		field := st.Field(i)

		fields = append(fields, FieldInfo{
			Name:     field.Name(),
			Exported: field.Exported(),
			Type:     field.Type(),
			Tag:      reflect.StructTag(st.Tag(i)),
			Embedded: field.Embedded(),
			Index:    i,
		})
	}

	return fields
}

// GetStruct returns the TypeInfo for a named struct by package path and
// name.
func (g *TypeGraph) GetStruct(pkgPath, typeName string) (*TypeInfo, error) {
	id := TypeID{PkgPath: pkgPath, Name: typeName}
	info := g.GetType(id)
	if info == nil {
		return nil, fmt.Errorf("%s: %w", id, ErrTypeNotFound)
	}
	if info.Kind != TypeKindStruct {
		return nil, fmt.Errorf("type %s is not a struct (kind: %s)", id, info.Kind)
	}

	return info, nil
}

// Lookup finds a type by its bare name across all loaded packages.
func (g *TypeGraph) Lookup(name string) (*TypeInfo, error) {
	var found []*TypeInfo
	for id, info := range g.Types {
		if id.Name == name {
			found = append(found, info)
		}
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%s: %w", name, ErrTypeNotFound)
	case 1:
		return found[0], nil
	default:
		paths := make([]string, 0, len(found))
		for _, info := range found {
			paths = append(paths, info.ID.PkgPath)
		}
		sort.Strings(paths)

		return nil, fmt.Errorf("%s declared in %v: %w", name, paths, ErrAmbiguousType)
	}
}

// PackageOf returns the package that declares id, or nil.
func (g *TypeGraph) PackageOf(id TypeID) *PackageInfo {
	return g.Packages[id.PkgPath]
}
