package cv

import "errors"

var (
	// ErrNoFile upload tanpa file
	ErrNoFile = errors.New("no file uploaded")
	// ErrUnsupportedFormat extension outside the allow-list
	ErrUnsupportedFormat = errors.New("unsupported file format")
	// ErrExtractionFailed the document library could not read the file
	ErrExtractionFailed = errors.New("text extraction failed")
	// ErrStorageFailed writing the upload to the upload directory failed
	ErrStorageFailed = errors.New("storing uploaded file failed")
)
