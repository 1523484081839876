// Package gen provides deterministic Go code generation for template field
// providers.
//
// For every requested struct type it emits a file with two methods that
// make the type a tmpl.Params:
//   - TemplateFields, returning the ordered template field names
//   - TemplateField, a switch rendering one field as text
//
// Generation uses text/template + go/format. Per-field rendering picks the
// cheapest expression that matches fmt.Sprint: direct strings, String() and
// Error() methods, strconv for booleans and numbers, fmt.Sprint otherwise.
package gen
