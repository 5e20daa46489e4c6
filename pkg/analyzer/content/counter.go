package content

import (
	"path/filepath"
	"strings"
)

// todoMarker flags work-note lines. Detection is orthogonal to comment
// classification: a commented TODO increments both counters.
const todoMarker = "TODO"

// CommentStyle defines the comment markers the line classifier recognizes.
type CommentStyle struct {
	Line         string
	BlockOpen    string
	BlockClose   string
	Continuation string
}

// CStyle covers the //, /* */ family (Go, JS/TS, Java, C, Rust, PHP, CSS-ish).
var CStyle = CommentStyle{Line: "//", BlockOpen: "/*", BlockClose: "*/", Continuation: "*"}

// HashStyle covers #-commented languages; the block markers match
// triple-quoted docstrings.
var HashStyle = CommentStyle{Line: "#", BlockOpen: `"""`, BlockClose: `"""`}

// StyleFor picks a comment style from the file extension.
func StyleFor(path string) CommentStyle {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".py", ".rb", ".sh":
		return HashStyle
	default:
		return CStyle
	}
}

// counterState tracks the classifier's position across lines.
type counterState int

const (
	stateNormal counterState = iota
	stateInsideMixedBlock
)

// CountLines classifies every physical line of content into the accumulator.
// Lines are trimmed before classification; the original line boundaries
// define what counts as a physical line. Classification is a two-state
// machine: Normal, and InsideMixedBlock while consuming a multi-line block
// comment opened by a mixed line.
func CountLines(content string, style CommentStyle, c *Counters) {
	state := stateNormal
	openerEmpty := false

	// Manual line walk: lines have no length ceiling (minified assets run to
	// megabytes on one line), so a fixed-buffer scanner cannot be used.
	for len(content) > 0 {
		line := content
		if i := strings.IndexByte(content, '\n'); i >= 0 {
			line = content[:i]
			content = content[i+1:]
		} else {
			content = ""
		}

		trimmed := strings.TrimSpace(line)
		c.Physical++

		if strings.Contains(trimmed, todoMarker) {
			c.Todo++
		}

		if state == stateInsideMixedBlock {
			// Continuation lines are not re-classified; they tally as block
			// comment body until the closing marker, using the opener's
			// emptiness to pick the sub-category.
			c.Comment++
			if openerEmpty {
				c.EmptyBlockComment++
			} else {
				c.BlockComment++
			}
			if strings.HasSuffix(trimmed, style.BlockClose) {
				state = stateNormal
			}
			continue
		}

		switch {
		case trimmed == "":
			c.Empty++
		case strings.HasPrefix(trimmed, style.Line):
			c.SingleLineComment++
			c.Comment++
		case isOneLineBlock(trimmed, style):
			c.BlockComment++
			c.Comment++
		case strings.HasPrefix(trimmed, style.BlockOpen):
			c.Mixed++
			c.Comment++
			state = stateInsideMixedBlock
			openerEmpty = isEmptyOpener(trimmed, style)
		case style.Continuation != "" && strings.HasPrefix(trimmed, style.Continuation):
			c.Mixed++
			c.Comment++
			state = stateInsideMixedBlock
			openerEmpty = false
		default:
			// Source line: tracked implicitly via the derived Source().
		}
	}
}

// isOneLineBlock reports whether a trimmed line is a complete single-line
// block comment. The length guard keeps a bare opener (`/*`, `"""`) from
// matching its own tail as a close marker.
func isOneLineBlock(trimmed string, style CommentStyle) bool {
	return strings.HasPrefix(trimmed, style.BlockOpen) &&
		strings.HasSuffix(trimmed, style.BlockClose) &&
		len(trimmed) >= len(style.BlockOpen)+len(style.BlockClose)
}

// isEmptyOpener reports whether a block opener carries no content of its
// own (`/*`, `/**`). Bodies of such blocks tally as EmptyBlockComment.
func isEmptyOpener(trimmed string, style CommentStyle) bool {
	rest := strings.TrimPrefix(trimmed, style.BlockOpen)
	if style.Continuation != "" {
		rest = strings.TrimLeft(rest, style.Continuation)
	}
	return strings.TrimSpace(rest) == ""
}
