package dataset

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Upload validation errors.
var (
	ErrInvalidFileType = errors.New("unsupported file type")
	ErrFileTooLarge    = errors.New("file exceeds the upload size limit")
	ErrEmptyFile       = errors.New("file contains no data")
	ErrMalformedFile   = errors.New("file could not be parsed")
)

// DefaultMaxUploadBytes caps uploads at 10 MiB unless configured otherwise.
const DefaultMaxUploadBytes = 10 << 20

var allowedExtensions = map[string]bool{
	".csv":  true,
	".xlsx": true,
	".xls":  true,
}

// ValidateUpload checks filename extension and declared size before any
// bytes are parsed. maxBytes <= 0 applies DefaultMaxUploadBytes.
func ValidateUpload(filename string, size int64, maxBytes int64) error {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxUploadBytes
	}

	ext := extOf(filename)
	if !allowedExtensions[ext] {
		return fmt.Errorf("%w: %s", ErrInvalidFileType, ext)
	}
	if size == 0 {
		return ErrEmptyFile
	}
	if size > maxBytes {
		return fmt.Errorf("%w: %d bytes (limit %d)", ErrFileTooLarge, size, maxBytes)
	}
	return nil
}

func extOf(filename string) string {
	return strings.ToLower(filepath.Ext(filename))
}

func isExcelExt(ext string) bool {
	return ext == ".xlsx" || ext == ".xls"
}
