// Package diff renders test failure diffs.
package diff

import (
	"strings"

	"github.com/google/go-cmp/cmp"
)

// Diff returns an empty string when want and got are equal, otherwise a
// marked-up diff describing how to turn got into want.
func Diff[T any](want T, got T, opts ...cmp.Option) string {
	abc := cmp.Diff(want, got, opts...)
	if abc == "" {
		return ""
	}
	str := "\n\n"
	str += "to convert ACTUAL ⏩️ EXPECTED:\n\n"
	str += "add:    ➕\n"
	str += "remove: ➖\n"
	str += "\n"
	// cmp marks want with "-" and got with "+"
	str += strings.ReplaceAll(strings.ReplaceAll(abc, "\n-", "\n➕"), "\n+", "\n➖")

	return str
}
