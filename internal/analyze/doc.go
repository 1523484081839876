// Package analyze provides package loading and struct field extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find the
// named struct types of a package and describe their fields, which is all
// the generator needs to emit template field providers.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeInfo: a named type with its kind and, for structs, its fields
//   - FieldInfo: field name, go/types type, tag, embedding and position
package analyze
