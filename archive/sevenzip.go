package archive

import (
	"io"
	"path"

	"github.com/bodgit/sevenzip"
)

func Walk7Zip(file io.ReaderAt, fileSize int64, walkFunc WalkFunc) error {
	szr, err := sevenzip.NewReader(file, fileSize)
	if err != nil {
		return err
	}

	for _, f := range szr.File {
		err = walkFunc(path.Clean(f.Name), f.FileInfo(), nil)
		if err != nil {
			return err
		}
	}
	return nil
}
