package archive

import (
	"archive/zip"
	"io"
	"path"
)

func WalkZip(file io.ReaderAt, fileSize int64, walkFunc WalkFunc) error {
	zfs, err := zip.NewReader(file, fileSize)
	if err != nil {
		return err
	}

	for _, f := range zfs.File {
		err = walkFunc(path.Clean(f.Name), f.FileInfo(), nil)
		if err != nil {
			return err
		}
	}
	return nil
}
