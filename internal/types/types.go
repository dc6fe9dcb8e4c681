// Package types defines the data structures shared across the ctc packages.
package types

const (
	CommandAdd      = "add"
	CommandRemove   = "remove"
	CommandList     = "list"
	CommandClearAll = "clear-all"
	CommandCopy     = "copy"
	CommandInit     = "init"
)

// EntryKind classifies a pattern-store entry.
type EntryKind string

const (
	// EntryKindPattern marks an entry containing glob wildcard characters.
	EntryKindPattern EntryKind = "pattern"
	// EntryKindExplicitPath marks an entry naming a single file verbatim.
	EntryKindExplicitPath EntryKind = "explicit"
)

// StoredPatterns is the persisted pattern-store document. Both slices
// preserve insertion order and contain no duplicates.
type StoredPatterns struct {
	IncludePatterns []string `json:"include_patterns"`
	ExplicitFiles   []string `json:"explicit_files"`
}

// CandidateFile is a file selected for possible inclusion before limit enforcement.
type CandidateFile struct {
	// AbsolutePath locates the file on disk.
	AbsolutePath string
	// RelativePath is the slash-separated path relative to the project root.
	RelativePath string
	// SizeBytes is the size reported by the directory walk.
	SizeBytes int64
	// IsExplicit reports whether the file was added verbatim rather than
	// matched by an include pattern.
	IsExplicit bool
}

// CopyLimits bounds a single copy invocation. Limits are never persisted.
type CopyLimits struct {
	MaxFiles  int
	MaxChars  int
	MaxTokens int
	ModelName string
}

// CopySummary captures aggregate information about one copy invocation.
type CopySummary struct {
	FilesIncluded   int
	FilesSkipped    int
	CharsCopied     int
	TokensEstimated int
	LinesCopied     int
	LinesSkipped    int
	SkippedPaths    []string
	// ReadFailures counts candidates that could not be read at all.
	ReadFailures int
}
