package keys

import (
	"regexp"
	"strings"
)

// DefaultFunctions are the translation call aliases recognized in source.
var DefaultFunctions = []string{"t", "tc", "$t", "i18n.t", "translate"}

// IsAncestor reports whether key path b equals a or sits under it. The
// separator check prevents "a.bc" from counting as a descendant of "a.b".
func IsAncestor(a, b string) bool {
	return b == a || strings.HasPrefix(b, a+".")
}

// staticMatcher holds one key's pre-compiled static reference patterns.
type staticMatcher struct {
	quoted   []string // 'key', "key", `key` — last-resort broad contains
	call     *regexp.Regexp
	bracket  *regexp.Regexp
	property *regexp.Regexp
}

// Matcher tests a block of source text for references to a fixed key set.
// All patterns are compiled once per run, not per file, keeping the scan
// linear in files × keys.
type Matcher struct {
	keys     []FlattenedKey
	static   []staticMatcher
	prefixes []string
	dynamic  []*regexp.Regexp
}

// FileMatches reports which keys one file references.
type FileMatches struct {
	Static  []int    // indexes into the key set
	Dynamic []string // matched ancestor prefixes
}

// NewMatcher compiles patterns for every key and every unique dot-path
// prefix of the key set.
func NewMatcher(flat []FlattenedKey, functions []string) *Matcher {
	if len(functions) == 0 {
		functions = DefaultFunctions
	}
	callAlt := aliasAlternation(functions)

	m := &Matcher{keys: flat}

	for _, k := range flat {
		quoted := regexp.QuoteMeta(k.Path)
		segments := strings.Split(k.Path, ".")
		last := regexp.QuoteMeta(segments[len(segments)-1])

		m.static = append(m.static, staticMatcher{
			quoted: []string{
				"'" + k.Path + "'",
				`"` + k.Path + `"`,
				"`" + k.Path + "`",
			},
			// t('full.key'), tc("full.key") ...
			call: regexp.MustCompile(callAlt + `\(\s*['"` + "`" + `]` + quoted + `['"` + "`" + `]`),
			// messages['full.key']
			bracket: regexp.MustCompile(`\[\s*['"` + "`" + `]` + quoted + `['"` + "`" + `]\s*\]`),
			// trailing segment as property access, right-bounded so that
			// ".home" never matches inside ".homepage"
			property: regexp.MustCompile(`\.` + last + `(?:[^A-Za-z0-9_$]|$)`),
		})
	}

	// Every prefix of every key (ancestors plus the full key) gets one
	// dynamic-construction pattern; a hit marks all structural descendants.
	seen := make(map[string]bool)
	for _, k := range flat {
		segments := strings.Split(k.Path, ".")
		for i := 1; i <= len(segments); i++ {
			prefix := strings.Join(segments[:i], ".")
			if seen[prefix] {
				continue
			}
			seen[prefix] = true
			m.prefixes = append(m.prefixes, prefix)

			quoted := regexp.QuoteMeta(prefix)
			// Template interpolation: t(`prefix.${...}`) — or string
			// concatenation: 'prefix.' + variable.
			pattern := callAlt + `\(\s*` + "`" + quoted + `\.?\$\{` +
				`|['"]` + quoted + `\.?['"]\s*\+\s*[A-Za-z_$(]`
			m.dynamic = append(m.dynamic, regexp.MustCompile(pattern))
		}
	}

	return m
}

// aliasAlternation builds a left-bounded alternation of call names so that
// "format" never matches the "t" alias.
func aliasAlternation(functions []string) string {
	parts := make([]string, len(functions))
	for i, fn := range functions {
		parts[i] = regexp.QuoteMeta(fn)
	}
	return `(?:^|[^A-Za-z0-9_$.])(?:` + strings.Join(parts, "|") + `)`
}

// MatchFile scans one file's text against the whole key set.
func (m *Matcher) MatchFile(text string) FileMatches {
	var fm FileMatches

	for i := range m.keys {
		if m.matchStatic(i, text) {
			fm.Static = append(fm.Static, i)
		}
	}
	for i, prefix := range m.prefixes {
		if m.dynamic[i].MatchString(text) {
			fm.Dynamic = append(fm.Dynamic, prefix)
		}
	}
	return fm
}

// matchStatic applies one key's static checks in cheapest-first order. The
// broad quoted match is deliberately permissive: a false "used" is safe, a
// false "unused" deletes a live translation.
func (m *Matcher) matchStatic(i int, text string) bool {
	sm := &m.static[i]
	for _, q := range sm.quoted {
		if strings.Contains(text, q) {
			return true
		}
	}
	return sm.call.MatchString(text) ||
		sm.bracket.MatchString(text) ||
		sm.property.MatchString(text)
}

// Descendants returns the indexes of all keys under the given prefix,
// including the key equal to it.
func (m *Matcher) Descendants(prefix string) []int {
	var out []int
	for i, k := range m.keys {
		if IsAncestor(prefix, k.Path) {
			out = append(out, i)
		}
	}
	return out
}
