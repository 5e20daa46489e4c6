package content

// Counters aggregates per-line classification results across a run. One
// instance exists per analysis; per-file partial counters are merged into it
// single-threaded after each batch settles.
type Counters struct {
	Physical          int `json:"physical"`
	Comment           int `json:"comment"`
	SingleLineComment int `json:"single_line_comment"`
	BlockComment      int `json:"block_comment"`
	Mixed             int `json:"mixed"`
	EmptyBlockComment int `json:"empty_block_comment"`
	Empty             int `json:"empty"`
	Todo              int `json:"todo"`
}

// Source returns the derived source-line count. The formula is
// physical - comment - empty - todo and is intentionally not corrected for
// overlapping categories (a blank TODO inside a comment is subtracted more
// than once), so the result can go negative.
func (c *Counters) Source() int {
	return c.Physical - c.Comment - c.Empty - c.Todo
}

// Merge adds another set of counters into this one.
func (c *Counters) Merge(other Counters) {
	c.Physical += other.Physical
	c.Comment += other.Comment
	c.SingleLineComment += other.SingleLineComment
	c.BlockComment += other.BlockComment
	c.Mixed += other.Mixed
	c.EmptyBlockComment += other.EmptyBlockComment
	c.Empty += other.Empty
	c.Todo += other.Todo
}

// FileStats is one file's contribution to the aggregate.
type FileStats struct {
	Counters  Counters `json:"counters"`
	CaseLabel string   `json:"case_label,omitempty"`
}

// Analysis is the full content analysis result.
type Analysis struct {
	FileCount    int            `json:"file_count"`
	SkippedFiles int            `json:"skipped_files,omitempty"`
	Counters     Counters       `json:"counters"`
	Source       int            `json:"source"`
	Cases        map[string]int `json:"cases,omitempty"`
	DurationSecs float64        `json:"duration_seconds"`
}
