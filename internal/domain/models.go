package domain

// Document represents a readable document found on disk
type Document struct {
	Path        string
	Name        string
	DisplayName string // Name shown in UI, may include path for duplicates
	Format      string // "txt" or "md"
	SizeBytes   int64
	LineCount   int // estimated line count, 0 until metadata is read
}

// Position represents where the reader currently is inside a document
type Position struct {
	CurrentPage int // 1-based
	TotalPages  int // 0 means unknown/still paginating
}

// ScanProgress represents the current library scanning state
type ScanProgress struct {
	IsScanning  bool
	DocsFound   int
	CurrentPath string
}
