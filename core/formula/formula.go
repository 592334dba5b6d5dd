// Package formula extracts cell dependencies from spreadsheet formula text.
//
// References are recognised lexically: every run of uppercase letters followed
// by digits counts, and all references are assumed to point into the formula's
// own table. Cross-table or cross-sheet references are therefore qualified into
// the current table, which may name cells that were never authored.
package formula

import (
	"regexp"

	"sheet-graph/core/identity"
)

var referencePattern = regexp.MustCompile(`[A-Z]+[0-9]+`)

// ExtractReferences returns the distinct coordinate references in expr, in
// first-seen order. Text without references yields an empty slice.
func ExtractReferences(expr string) []string {
	matches := referencePattern.FindAllString(expr, -1)
	refs := make([]string, 0, len(matches))
	seen := make(map[string]struct{}, len(matches))
	for _, m := range matches {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		refs = append(refs, m)
	}
	return refs
}

// Dependencies returns the cell identifiers expr depends on, qualified into table.
func Dependencies(expr, table string) []string {
	refs := ExtractReferences(expr)
	deps := make([]string, len(refs))
	for i, ref := range refs {
		deps[i] = identity.QualifyRef(table, ref)
	}
	return deps
}
