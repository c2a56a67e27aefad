package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
)

// ErrEmptyArchive is returned when an archive holds no files.
var ErrEmptyArchive = errors.New("archive is empty")

// LoadFile loads the given file and performs decompression if
// necessary. Compression is inferred from the file extension:
// .gz files are decompressed, and the first file in a .zip or
// .7z archive is extracted. Any other file is returned as is.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	return Decompress(filepath.Ext(filename), data)
}

// Decompress decompresses data according to the given file
// extension.
func Decompress(ext string, data []byte) ([]byte, error) {
	var decoder io.Reader
	switch strings.ToLower(ext) {
	case ".gz":
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		defer r.Close()
		decoder = r
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		return readFirst(len(r.File), func() (io.ReadCloser, error) { return r.File[0].Open() })
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, err
		}
		return readFirst(len(r.File), func() (io.ReadCloser, error) { return r.File[0].Open() })
	default:
		return data, nil
	}

	return io.ReadAll(decoder)
}

// readFirst reads the first file of an archive holding n files.
func readFirst(n int, open func() (io.ReadCloser, error)) ([]byte, error) {
	if n == 0 {
		return nil, ErrEmptyArchive
	}
	rc, err := open()
	if err != nil {
		return nil, fmt.Errorf("opening archive entry: %w", err)
	}
	defer rc.Close()

	return io.ReadAll(rc)
}
