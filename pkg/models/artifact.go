package models

// Artifact describes a rendered document persisted to the output directory.
// It is created once per generate call and never mutated; retention of the
// underlying file is the caller's responsibility.
type Artifact struct {
	Filename string `json:"filename"`
	Filepath string `json:"filepath"`
	Size     int64  `json:"size"`  // exact byte length of the persisted document
	Pages    int    `json:"pages"` // always 1 under the single-page layout
	URL      string `json:"url"`   // caller-facing retrieval path, /invoices/<filename>
}
