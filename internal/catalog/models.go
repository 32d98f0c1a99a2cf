package catalog

import "time"

// Picture is one catalog row per distinct (content hash, size) pair.
type Picture struct {
	ID          int64
	Filename    string
	FirstPath   string
	TypeID      int64
	Size        int64
	ContentHash string
	Tags        []string
	DupeCount   int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewPicture carries the fields for a first-sighting insert. Filename and
// FirstPath are informational metadata from the first sighting and are
// never re-validated against the filesystem afterwards.
type NewPicture struct {
	Filename    string
	FirstPath   string
	TypeID      int64
	Size        int64
	ContentHash string
	Tags        []string
}

// TypeDescriptor is one row per distinct classifier output string.
type TypeDescriptor struct {
	ID    int64
	Label string
}

// TypeCount pairs a type descriptor with the number of pictures carrying it.
type TypeCount struct {
	ID    int64
	Label string
	Count int64
}

// Totals aggregates catalog-wide counts for summary output.
type Totals struct {
	Pictures int64
	Types    int64
}

// DatabaseHealth reports diagnostic information about the catalog database.
type DatabaseHealth struct {
	DBPath           string
	DatabaseExists   bool
	DatabaseReadable bool
	TablesPresent    bool
	IntegrityCheck   bool
	TotalPictures    int64
	Error            string
}
