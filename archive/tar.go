package archive

import (
	"archive/tar"
	"compress/gzip"
	"errors"
	"io"
	"path"

	"github.com/ulikunitz/xz"
)

// WalkTar may be passed a compressed reader instead of an explicit file.
func WalkTar(file io.Reader, walkFunc WalkFunc) error {

	tr := tar.NewReader(file)

	for {
		header, err := tr.Next()

		switch {
		// if no more files are found return
		case errors.Is(err, io.EOF):
			return nil

		// return any other error
		case err != nil:
			return err

		// if the header is nil, just skip it (not sure how this happens)
		case header == nil:
			continue
		}

		err = walkFunc(path.Clean(header.Name), header.FileInfo(), nil)
		if err != nil {
			return err
		}
	}
}

func WalkTarGzip(file io.Reader, walkFunc WalkFunc) error {
	gz, err := gzip.NewReader(file)
	if err != nil {
		return err
	}
	defer gz.Close()

	return WalkTar(gz, walkFunc)
}

func WalkTarXz(file io.Reader, walkFunc WalkFunc) error {
	xr, err := xz.NewReader(file)
	if err != nil {
		return err
	}

	return WalkTar(xr, walkFunc)
}
