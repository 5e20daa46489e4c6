package keys

// FlattenedKey is one leaf of the localization tree. Path is the dot-joined
// form used for matching and display; OriginalPath keeps the raw segments
// and is authoritative when mutating the tree, since segments may contain
// characters that are ambiguous in dot notation.
type FlattenedKey struct {
	Path         string   `json:"path"`
	Value        any      `json:"value"`
	OriginalPath []string `json:"original_path"`
}

// UsageResult accumulates what the scan learned about one key.
type UsageResult struct {
	Found        bool     `json:"found"`
	IsDynamic    bool     `json:"is_dynamic"`
	MatchedFiles []string `json:"matched_files,omitempty"`
}

// Analysis is the unused-key report for one run.
type Analysis struct {
	TotalKeys       int                 `json:"total_keys"`
	UnusedKeys      []FlattenedKey      `json:"unused_keys"`
	DynamicKeyCount int                 `json:"dynamic_key_count"`
	MatchedFiles    map[string][]string `json:"matched_files,omitempty"`
	FilesScanned    int                 `json:"files_scanned"`
	DurationSecs    float64             `json:"duration_seconds"`
}
