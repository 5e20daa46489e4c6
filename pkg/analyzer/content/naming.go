package content

import (
	"path/filepath"
	"regexp"
	"strings"
)

// Naming-convention labels. CaseUnknown is the fallback when no pattern
// matches (including the empty string).
const (
	CaseCamel    = "camel"
	CasePascal   = "pascal"
	CaseSnake    = "snake"
	CaseKebab    = "kebab"
	CaseConstant = "constant"
	CaseDot      = "dot"
	CasePath     = "path"
	CaseStart    = "start"
	CaseSentence = "sentence"
	CaseSpace    = "space"
	CaseUpper    = "upper"
	CaseLower    = "lower"
	CaseNoCase   = "no-case"
	CaseUnknown  = "unknown"
)

type casePattern struct {
	label string
	regex *regexp.Regexp
}

// casePatterns is evaluated in order and the first full match wins. The
// order is part of the contract: several patterns overlap (a single
// lowercase word satisfies both "lower" and "no-case"), so reordering
// changes results.
var casePatterns = []casePattern{
	{CaseConstant, regexp.MustCompile(`^[A-Z][A-Z0-9]*(?:_[A-Z0-9]+)+$`)},
	{CaseUpper, regexp.MustCompile(`^[A-Z][A-Z0-9]*$`)},
	{CasePascal, regexp.MustCompile(`^[A-Z][a-z0-9]+(?:[A-Z][a-z0-9]*)+$`)},
	{CaseCamel, regexp.MustCompile(`^[a-z][a-z0-9]*(?:[A-Z][a-z0-9]*)+$`)},
	{CaseSnake, regexp.MustCompile(`^[a-z0-9]+(?:_[a-z0-9]+)+$`)},
	{CaseKebab, regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)+$`)},
	{CaseDot, regexp.MustCompile(`^[a-z0-9]+(?:\.[a-z0-9]+)+$`)},
	{CasePath, regexp.MustCompile(`^[a-z0-9]+(?:/[a-z0-9]+)+$`)},
	{CaseStart, regexp.MustCompile(`^[A-Z][a-z0-9]*(?: [A-Z][a-z0-9]*)+$`)},
	{CaseSentence, regexp.MustCompile(`^[A-Z][a-z0-9]*(?: [a-z0-9]+)+$`)},
	{CaseSpace, regexp.MustCompile(`^[a-z0-9]+(?: [a-z0-9]+)+$`)},
	{CaseLower, regexp.MustCompile(`^[a-z][a-z0-9]*$`)},
	{CaseNoCase, regexp.MustCompile(`^[a-z0-9]+$`)},
}

// ClassifyCase returns the naming-convention label for a bare name. Every
// input produces a label; unmatched strings classify as CaseUnknown.
func ClassifyCase(name string) string {
	for _, p := range casePatterns {
		if p.regex.MatchString(name) {
			return p.label
		}
	}
	return CaseUnknown
}

// ClassifyFileCase classifies a file path by its base name without the
// final extension.
func ClassifyFileCase(path string) string {
	base := filepath.Base(path)
	return ClassifyCase(strings.TrimSuffix(base, filepath.Ext(base)))
}
