package archive

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"path"

	"github.com/cavaliergopher/cpio"
	"github.com/cavaliergopher/rpm"

	"github.com/ulikunitz/xz"
)

func WalkRPM(file io.Reader, walkFunc WalkFunc) error {
	// Read the package headers
	pkg, err := rpm.Read(file)
	if err != nil {
		return err
	}

	// Check the archive format of the payload
	if format := pkg.PayloadFormat(); format != "cpio" {
		return fmt.Errorf("unsupported payload format: %s", format)
	}

	var compReader io.Reader

	switch format := pkg.PayloadCompression(); format {
	case "xz":
		compReader, err = xz.NewReader(file)

	case "gzip":
		compReader, err = gzip.NewReader(file)
	default:
		return fmt.Errorf("unsupported rpm compression format: %s", format)
	}
	if err != nil {
		return err
	}

	cpioReader := cpio.NewReader(compReader)
	for {
		// Move to the next file in the payload
		header, err := cpioReader.Next()
		switch {
		// if no more files are found return
		case errors.Is(err, io.EOF):
			return nil

		// return any other error
		case err != nil:
			return err
		}

		err = walkFunc(path.Clean(header.Name), header.FileInfo(), nil)
		if err != nil {
			return err
		}
	}
}
