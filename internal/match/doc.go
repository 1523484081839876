// Package match finds the known name closest to a misspelled one. It
// backs the "did you mean" hints of tmplgen.
//
// Names are compared after normalization (case folding, separators
// removed) by Levenshtein similarity.
package match
