package usecase

import "errors"

var (
	// ErrFilenameRequired is returned when no original filename is supplied.
	ErrFilenameRequired = errors.New("filename is required")
	// ErrBodyRequired is returned when the upload body is empty.
	ErrBodyRequired = errors.New("file body is required")
	// ErrStoreFailed wraps errors returned by the blob store.
	ErrStoreFailed = errors.New("blob store failed")
)
