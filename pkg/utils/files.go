package utils

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/ulikunitz/xz"
)

// MaxFileSize is the largest decompressed image LoadFile will
// return. Anything larger could not fit the address space anyway.
const MaxFileSize = 0x10000

var (
	// ErrEmptyArchive is returned when an archive holds no files.
	ErrEmptyArchive = errors.New("utils: archive contains no files")
	// ErrFileTooLarge is returned when the decompressed image
	// exceeds MaxFileSize.
	ErrFileTooLarge = errors.New("utils: file too large")
)

// LoadFile loads the given file and performs decompression if
// necessary, based on the file extension. Archives (.zip, .7z)
// yield their first regular file.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	data, err = Decompress(filepath.Ext(filename), data)
	if err != nil {
		return nil, fmt.Errorf("utils: loading %s: %w", filename, err)
	}
	return data, nil
}

// Decompress decodes data according to the given file extension.
// Unknown extensions are returned as is.
func Decompress(ext string, data []byte) ([]byte, error) {
	var (
		decoder io.Reader
		err     error
	)
	switch strings.ToLower(ext) {
	case ".gz":
		var r *gzip.Reader
		if r, err = gzip.NewReader(bytes.NewReader(data)); err == nil {
			defer r.Close()
			decoder = r
		}
	case ".zst":
		var d *zstd.Decoder
		if d, err = zstd.NewReader(bytes.NewReader(data)); err == nil {
			defer d.Close()
			decoder = d
		}
	case ".lz4":
		decoder = lz4.NewReader(bytes.NewReader(data))
	case ".xz":
		decoder, err = xz.NewReader(bytes.NewReader(data))
	case ".zip":
		var rc io.ReadCloser
		if rc, err = openZip(data); err == nil {
			defer rc.Close()
			decoder = rc
		}
	case ".7z":
		var rc io.ReadCloser
		if rc, err = open7z(data); err == nil {
			defer rc.Close()
			decoder = rc
		}
	default:
		return data, nil
	}
	if err != nil {
		return nil, err
	}

	return readLimited(decoder)
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFileSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}

func openZip(data []byte) (io.ReadCloser, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if isRegular(f.FileInfo()) {
			return f.Open()
		}
	}
	return nil, ErrEmptyArchive
}

func open7z(data []byte) (io.ReadCloser, error) {
	r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	for _, f := range r.File {
		if isRegular(f.FileInfo()) {
			return f.Open()
		}
	}
	return nil, ErrEmptyArchive
}

func isRegular(info fs.FileInfo) bool {
	return !info.IsDir()
}
