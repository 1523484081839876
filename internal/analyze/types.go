package analyze

import (
	"go/types"
	"reflect"
	"slices"

	"fieldtmpl/internal/common"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "fieldtmpl/examples/greeting"
	Name    string // e.g., "Invoice"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind represents the kind of a named type's underlying type.
type TypeKind int

const (
	TypeKindUnknown   TypeKind = iota
	TypeKindBasic              // named basic type, e.g. type Status string
	TypeKindStruct             // struct type
	TypeKindInterface          // interface type
	TypeKindOther              // slices, maps, funcs and the like
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindInterface:
		return "interface"
	case TypeKindOther:
		return "other"
	default:
		return common.UnknownStr
	}
}

// TypeInfo describes a named type declared in a loaded package.
type TypeInfo struct {
	ID         TypeID      // Unique identifier
	Kind       TypeKind    // Kind of the underlying type
	Fields     []FieldInfo // For structs, every field in declaration order
	GoType     types.Type  // The original go/types.Type
	TypeParams int         // Number of type parameters; generic types are not supported by gen
}

// FieldInfo describes a struct field.
type FieldInfo struct {
	Name     string            // Go field name
	Exported bool              // Whether the field is exported
	Type     types.Type        // Field type
	Tag      reflect.StructTag // Raw struct tag
	Embedded bool              // Whether the field is embedded (anonymous)
	Index    int               // Field index in the struct
}

// TypeString renders the field type as it would be written inside the
// package at pkgPath.
func (f *FieldInfo) TypeString(pkgPath string) string {
	return types.TypeString(f.Type, Qualifier(pkgPath))
}

// Qualifier returns a types.Qualifier that omits pkgPath and uses package
// names for everything else.
func Qualifier(pkgPath string) types.Qualifier {
	return func(pkg *types.Package) string {
		if pkg.Path() == pkgPath {
			return ""
		}

		return pkg.Name()
	}
}

// TypeGraph holds all analyzed types from loaded packages.
type TypeGraph struct {
	// Types maps TypeID to TypeInfo for all named types.
	Types map[TypeID]*TypeInfo
	// Packages maps package paths to their package info.
	Packages map[string]*PackageInfo
}

// NewTypeGraph creates a new empty TypeGraph.
func NewTypeGraph() *TypeGraph {
	return &TypeGraph{
		Types:    make(map[TypeID]*TypeInfo),
		Packages: make(map[string]*PackageInfo),
	}
}

// GetType returns the TypeInfo for a given TypeID, or nil if not found.
func (g *TypeGraph) GetType(id TypeID) *TypeInfo {
	return g.Types[id]
}

// TypeNames returns the distinct bare names of every type in the graph,
// sorted.
func (g *TypeGraph) TypeNames() []string {
	names := make([]string, 0, len(g.Types))
	for id := range g.Types {
		names = append(names, id.Name)
	}
	slices.Sort(names)

	return slices.Compact(names)
}

// PackageInfo holds information about a loaded package.
type PackageInfo struct {
	Path  string   // Import path
	Name  string   // Package name
	Dir   string   // Directory holding the package's Go files
	Types []TypeID // Named types defined in this package
}

// TypeNames returns the bare names of the package's types.
func (p *PackageInfo) TypeNames() []string {
	names := make([]string, len(p.Types))
	for i, id := range p.Types {
		names[i] = id.Name
	}

	return names
}
