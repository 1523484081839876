// Package diagnostic provides structured errors, warnings and notes for
// the template field generator.
//
// Key capabilities:
//   - Missing or non-struct target types
//   - Duplicate template field names
//   - Fields skipped by tag or visibility
package diagnostic
