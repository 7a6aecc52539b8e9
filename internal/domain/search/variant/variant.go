// Package variant expands search text into the literal query variants
// needed to find values that may be stored percent-encoded or decoded,
// as is common for Package-URL identifiers.
package variant

import "strings"

// PackageURLMarker triggers the variant sweep when present in search text.
const PackageURLMarker = "pkg:"

// Substitution replaces every occurrence of From with To.
type Substitution struct {
	From string
	To   string
}

// Mapping is an ordered substitution table. Order decides variant order.
type Mapping []Substitution

var forward = Mapping{
	{" ", "%20"},
	{"+", "%2B"},
	{"@", "%40"},
	{"&", "%26"},
	{"#", "%23"},
	{"?", "%3F"},
}

// The inverse table keeps the iteration order SW360 has always used for it,
// which differs from the forward order.
var inverse = Mapping{
	{"%40", "@"},
	{"%20", " "},
	{"%2B", "+"},
	{"%23", "#"},
	{"%3F", "?"},
	{"%26", "&"},
}

// Forward returns the character to percent-encoding table.
func Forward() Mapping { return append(Mapping(nil), forward...) }

// Inverse returns the percent-encoding to character table.
func Inverse() Mapping { return append(Mapping(nil), inverse...) }

// Quote wraps text in double quotes to force an exact phrase match.
func Quote(text string) string {
	return `"` + text + `"`
}

// IsPackageURL reports whether text should go through the variant sweep.
func IsPackageURL(text string) bool {
	return strings.Contains(text, PackageURLMarker)
}

// HasSpecial reports whether text contains any key of either table.
func HasSpecial(text string) bool {
	return len(forward.found(text)) > 0 || len(inverse.found(text)) > 0
}

// Expand returns the quoted text followed by its substitution variants under
// the forward table and then the inverse table. Entries may repeat; each
// entry stands for one backend query.
func Expand(text string) []string {
	quoted := Quote(text)
	out := []string{quoted}
	out = append(out, Substitutions(quoted, forward)...)
	out = append(out, Substitutions(quoted, inverse)...)
	return out
}

// Substitutions returns the variants of quoted under m: one per key found
// in quoted, then one per ordered pair (i<j) of found keys. Pair variants
// build on a single working string, so each one keeps the replacements of
// the pairs visited before it.
func Substitutions(quoted string, m Mapping) []string {
	found := m.found(quoted)
	if len(found) == 0 {
		return nil
	}

	out := make([]string, 0, len(found)+len(found)*(len(found)-1)/2)
	for _, s := range found {
		out = append(out, strings.ReplaceAll(quoted, s.From, s.To))
	}

	temp := quoted
	for i := 0; i < len(found); i++ {
		for j := i + 1; j < len(found); j++ {
			temp = strings.ReplaceAll(temp, found[i].From, found[i].To)
			temp = strings.ReplaceAll(temp, found[j].From, found[j].To)
			out = append(out, temp)
		}
	}
	return out
}

// found lists the entries of m whose key occurs in text, in table order.
func (m Mapping) found(text string) Mapping {
	var f Mapping
	for _, s := range m {
		if strings.Contains(text, s.From) {
			f = append(f, s)
		}
	}
	return f
}
