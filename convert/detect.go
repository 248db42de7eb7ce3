package convert

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"strings"
)

var zipMagic = []byte("PK\x03\x04")

// isArchiveFile checks whether the file looks like a zip archive.
func isArchiveFile(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}
	defer f.Close()

	sig := make([]byte, len(zipMagic))
	if _, err := f.Read(sig); err != nil {
		// too short to be an archive
		return false, nil
	}
	return bytes.Equal(sig, zipMagic), nil
}

// isHTMLFile decides by extension. Content sniffing is left to the parser
// which handles legacy encodings on its own.
func isHTMLFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		return true
	}
	return false
}

// isHTMLInArchive applies the same extension check to an archive entry.
func isHTMLInArchive(f *zip.File) bool {
	return isHTMLFile(f.FileHeader.Name)
}
