// Package archive walks archive files so their contents can be inspected
// with the same override model as a live directory tree.
package archive

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var supportedExtensions = map[string]bool{
	".gz":  true,
	".tgz": true,
	".xz":  true,
	".txz": true,
	".tar": true,
	".zip": true,
	".7z":  true,
	".rpm": true,
}

// WalkFunc receives one archive entry per call: its cleaned slash-separated
// path inside the archive and its header metadata.
type WalkFunc func(path string, info fs.FileInfo, err error) error

// IsSupported reports whether path looks like an archive this package can
// walk, by extension.
func IsSupported(path string) bool {
	return supportedExtensions[filepath.Ext(path)]
}

// Walk opens the archive at path and calls walkFunc for every entry in it.
func Walk(path string, walkFunc WalkFunc) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return err
	}

	ext := filepath.Ext(path)
	switch ext {
	case ".gz", ".tgz":
		return WalkTarGzip(f, walkFunc)
	case ".xz", ".txz":
		return WalkTarXz(f, walkFunc)
	case ".tar":
		return WalkTar(f, walkFunc)
	case ".zip":
		return WalkZip(f, stat.Size(), walkFunc)
	case ".7z":
		return Walk7Zip(f, stat.Size(), walkFunc)
	case ".rpm":
		return WalkRPM(f, walkFunc)
	}
	return fmt.Errorf("unknown file extension: %s", ext)
}
