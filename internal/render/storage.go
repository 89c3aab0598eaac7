package render

import (
	"os"
	"path/filepath"
)

// ArtifactFilename derives the deterministic artifact name for an invoice
// number. Distinct invoice numbers map to distinct filenames; identical
// numbers overwrite, last writer wins.
func ArtifactFilename(invoiceNumber string) string {
	return "Invoice-" + invoiceNumber + ".pdf"
}

// writeArtifact persists data under dir/filename. The bytes go to a
// temporary file first and are renamed into place, so a failed write never
// leaves a truncated file discoverable at the final name.
func writeArtifact(dir, filename string, data []byte) (string, error) {
	tmp, err := os.CreateTemp(dir, filename+".*")
	if err != nil {
		return "", NewRenderError("writeArtifact", ErrStorageWrite,
			"creating temp file: "+err.Error())
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", NewRenderError("writeArtifact", ErrStorageWrite,
			"writing document bytes: "+err.Error())
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", NewRenderError("writeArtifact", ErrStorageWrite,
			"closing temp file: "+err.Error())
	}

	final := filepath.Join(dir, filename)
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return "", NewRenderError("writeArtifact", ErrStorageWrite,
			"renaming into place: "+err.Error())
	}
	return final, nil
}
